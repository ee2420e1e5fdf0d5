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

// TemplateFlags is a bitset over the per-template properties §3 defines.
type TemplateFlags uint16

const (
	// FlagHasMultiIE is set iff some field in the template carries
	// FieldMultiIE.
	FlagHasMultiIE TemplateFlags = 1 << iota
	// FlagHasDynamic is set iff some field has Length == VariableLength.
	FlagHasDynamic
	// FlagHasReverse is set iff some bound field carries FieldReverse.
	FlagHasReverse
	// FlagHasStruct is set iff some bound field carries FieldStructured.
	FlagHasStruct
	// FlagHasFlowKey is set iff the current flow key mask is non-zero.
	FlagHasFlowKey
)

func (f TemplateFlags) has(bit TemplateFlags) bool {
	return f&bit != 0
}

func (f *TemplateFlags) set(bit TemplateFlags, v bool) {
	if v {
		*f |= bit
	} else {
		*f &^= bit
	}
}

// deriveFlags runs the two FlagDeriver passes over t.Fields (§4.3).
//
// Pass A assigns SCOPE to the leading fieldsScope fields and derives
// MULTI_IE/LAST_IE for every distinct (enterprise, id) pair: the last
// positional occurrence of a pair carries LAST_IE, and every occurrence of
// a pair that appears more than once carries MULTI_IE.
//
// Pass B walks fields left to right to compute each field's byte offset
// and the template's minimum data record length, and to derive
// HAS_MULTI_IE/HAS_DYNAMIC. It returns a FORMAT error if the resulting
// data length exceeds the single-message budget.
//
// Design note: the source prefilters Pass A with a 64-bit bitmap keyed on
// id mod 64 before falling back to a linear scan on a collision. This
// implementation instead tracks seen (enterprise, id) pairs in an exact map
// and runs the linear marking scan only on a confirmed duplicate, which is
// semantically identical.
func deriveFlags(t *Template) error {
	deriveScopeAndIE(t)
	return deriveLengthsAndOffsets(t)
}

func deriveScopeAndIE(t *Template) {
	fields := t.Fields
	for i := range fields {
		fields[i].Flags.set(FieldScope, i < int(t.FieldsScope))
	}

	seenLast := make(map[fieldKey]bool, len(fields))
	for i := len(fields) - 1; i >= 0; i-- {
		k := fields[i].key()
		if seenLast[k] {
			// Already saw a later occurrence of this key: this one is an
			// earlier duplicate, so it carries MULTI_IE too, and so does
			// the one we already marked LAST_IE/MULTI_IE.
			fields[i].Flags.set(FieldMultiIE, true)
			markEarlierOccurrencesMultiIE(fields, i, k)
			continue
		}
		seenLast[k] = true
		fields[i].Flags.set(FieldLastIE, true)
	}
}

// markEarlierOccurrencesMultiIE flags every occurrence of k in fields with
// MULTI_IE, both at or before index i and after it (which includes the one
// that carries LAST_IE). This is the linear confirmation step the bitmap prefilter in
// the source guards: once any collision on a key is confirmed real (by
// finding >= 2 occurrences), every occurrence of that key is MULTI_IE.
func markEarlierOccurrencesMultiIE(fields []TField, i int, k fieldKey) {
	for j := i; j >= 0; j-- {
		if fields[j].key() == k {
			fields[j].Flags.set(FieldMultiIE, true)
		}
	}
	for j := i + 1; j < len(fields); j++ {
		if fields[j].key() == k {
			fields[j].Flags.set(FieldMultiIE, true)
		}
	}
}

func deriveLengthsAndOffsets(t *Template) error {
	var dataLength int
	offsetCursor := uint16(0)
	hasMultiIE := false
	hasDynamic := false

	for i := range t.Fields {
		f := &t.Fields[i]
		f.Offset = offsetCursor

		if f.IsMultiIE() {
			hasMultiIE = true
		}

		if f.IsVariableLength() {
			hasDynamic = true
			dataLength++
			offsetCursor = VariableLength
		} else {
			dataLength += int(f.Length)
			if offsetCursor != VariableLength {
				offsetCursor += f.Length
			}
		}
	}

	t.Flags.set(FlagHasMultiIE, hasMultiIE)
	t.Flags.set(FlagHasDynamic, hasDynamic)

	if dataLength > MaxDataRecordLength {
		return recordTooLarge(dataLength)
	}
	t.DataLength = dataLength
	return nil
}
