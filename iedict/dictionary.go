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

package iedict

import (
	"sync"

	ipfix "github.com/flowforge/ipfix-tmplengine"
)

type key struct {
	en uint32
	id uint16
}

// Dictionary is a concrete ipfix.IEMgr backed by an in-memory table of
// Definitions, keyed by (enterprise number, element id). A zero Dictionary
// is ready to use.
//
// Lookups under ipfix.ReversePEN are synthesized on the fly from the
// matching IANA (en=0) definition, per RFC 5103: Dictionary never stores
// a reverse entry directly, it derives one from Reversible and the
// forward definition's name.
type Dictionary struct {
	mu    sync.RWMutex
	table map[key]*Definition
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{table: make(map[key]*Definition)}
}

var _ ipfix.IEMgr = (*Dictionary)(nil)

// Add registers def, replacing any existing definition for the same
// (enterprise, id) pair. Add panics if def declares ipfix.ReversePEN:
// reverse entries are always synthesized, never stored.
func (d *Dictionary) Add(def *Definition) {
	if def.EnterpriseId == ipfix.ReversePEN {
		panic("iedict: cannot register a definition directly under ReversePEN")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.table == nil {
		d.table = make(map[key]*Definition)
	}
	d.table[key{def.EnterpriseId, def.Id_}] = def
}

// AddAll registers every definition in defs.
func (d *Dictionary) AddAll(defs []*Definition) {
	for _, def := range defs {
		d.Add(def)
	}
}

// Lookup implements ipfix.IEMgr.
func (d *Dictionary) Lookup(en uint32, id uint16) (ipfix.IEDefinition, bool) {
	if en == ipfix.ReversePEN {
		return d.lookupReverse(id)
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	def, ok := d.table[key{en, id}]
	if !ok {
		return nil, false
	}
	return def, true
}

// lookupReverse synthesizes the reverse-direction definition for an IANA
// IE carried under ReversePEN (§4.5, RFC 5103). It returns false if the
// forward IE is unknown or the IANA registry marks it non-reversible.
func (d *Dictionary) lookupReverse(id uint16) (ipfix.IEDefinition, bool) {
	if !ipfix.Reversible(id) {
		return nil, false
	}
	d.mu.RLock()
	fwd, ok := d.table[key{0, id}]
	d.mu.RUnlock()
	if !ok {
		return nil, false
	}
	rev := fwd.clone()
	rev.EnterpriseId = ipfix.ReversePEN
	rev.Name_ = reversedName(fwd.Name_)
	rev.reverse = true
	rev.reverseOf = fwd
	return rev, true
}

// reversedName prefixes name with "reversed" in camelCase, mirroring the
// convention used across implementations for RFC 5103 field names (e.g.
// "octetDeltaCount" -> "reversedOctetDeltaCount").
func reversedName(name string) string {
	if name == "" {
		return ""
	}
	b := []byte(name)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return "reversed" + string(b)
}
