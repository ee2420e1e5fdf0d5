/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ipfix

import "math/bits"

// FlowKeyApplicable reports whether k's highest set bit indexes a field
// that exists in t, per the RFC 7011 §8.2 flowKeyIndicator encoding (bit i
// selects field i).
func FlowKeyApplicable(t *Template, k uint64) error {
	if k == 0 {
		return nil
	}
	highest := bits.Len64(k) - 1
	if highest >= int(t.FieldsTotal) {
		return flowKeyOutOfRange(highest, int(t.FieldsTotal))
	}
	return nil
}

// FlowKeyDefine applies a flowKeyIndicator mask to t: bit i of k sets
// FieldFlowKey on Fields[i], and clears it otherwise. The template's
// FlagHasFlowKey tracks whether k is non-zero.
func FlowKeyDefine(t *Template, k uint64) error {
	if err := FlowKeyApplicable(t, k); err != nil {
		return err
	}
	for i := range t.Fields {
		t.Fields[i].Flags.set(FieldFlowKey, k&(1<<uint(i)) != 0)
	}
	t.Flags.set(FlagHasFlowKey, k != 0)
	t.flowKey = k
	return nil
}

// FlowKeyCmp reports whether t's current flow-key annotation equals what
// FlowKeyDefine(t, k) would produce: 0 if equal, 1 otherwise (including
// when k is out of range for t).
func FlowKeyCmp(t *Template, k uint64) int {
	if FlowKeyApplicable(t, k) != nil {
		return 1
	}
	if t.flowKey != k {
		return 1
	}
	return 0
}
