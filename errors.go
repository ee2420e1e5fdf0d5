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

import (
	"errors"
	"fmt"
)

// ErrFormat and ErrNoMemory are the two error kinds the template engine
// returns, per the parser's error handling design. Callers branch on kind
// with errors.Is, not on message text.
var (
	ErrFormat   error = errors.New("malformed template record")
	ErrNoMemory error = errors.New("allocation failed")
)

func truncated(what string, need, have int) error {
	return fmt.Errorf("%w: truncated %s, need %d bytes, have %d", ErrFormat, what, need, have)
}

func reservedTemplateID(id uint16) error {
	return fmt.Errorf("%w: template id %d is reserved (must be >= %d)", ErrFormat, id, MinTemplateID)
}

func invalidScopeCount(scopeCount, fieldCount uint16) error {
	return fmt.Errorf("%w: scope field count %d is zero or exceeds field count %d", ErrFormat, scopeCount, fieldCount)
}

func recordTooLarge(dataLength int) error {
	return fmt.Errorf("%w: data record length %d exceeds maximum of %d", ErrFormat, dataLength, MaxDataRecordLength)
}

func flowKeyOutOfRange(highestBit, fieldsTotal int) error {
	return fmt.Errorf("%w: flow key bit %d is out of range for %d fields", ErrFormat, highestBit, fieldsTotal)
}

// AllocationFailed wraps ErrNoMemory. It models the NOMEM contract of §4.6:
// a template whose declared field count would exceed MaxFieldCount is
// rejected before the corresponding make([]TField, n) allocation, rather
// than letting the runtime abort the process.
func AllocationFailed(reason string) error {
	return fmt.Errorf("%w: %s", ErrNoMemory, reason)
}
