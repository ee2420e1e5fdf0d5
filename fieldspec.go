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

import "fmt"

// FieldFlags is a bitset over the per-field properties §3 defines.
type FieldFlags uint16

const (
	// FieldScope marks a field as belonging to an Options Template's
	// leading scope fields.
	FieldScope FieldFlags = 1 << iota
	// FieldMultiIE marks a field whose (enterprise, id) pair occurs more
	// than once in the template.
	FieldMultiIE
	// FieldLastIE marks the last positional occurrence of a distinct
	// (enterprise, id) pair.
	FieldLastIE
	// FieldReverse marks a field bound to an IE definition flagged
	// is_reverse (RFC 5103 biflow reverse-value field).
	FieldReverse
	// FieldStructured marks a field bound to an IE definition whose data
	// type is one of the RFC 6313 structured types.
	FieldStructured
	// FieldFlowKey marks a field selected by the current flow key mask.
	FieldFlowKey
	// FieldBiflowCommon marks a field that is neither a reverse-value nor
	// a paired forward-value field, i.e., it is shared between both flow
	// directions (RFC 5103 biflow common key).
	FieldBiflowCommon
	// FieldBiflowSource marks a biflow common-key field whose IE name
	// begins with "source" (case-insensitive, ASCII).
	FieldBiflowSource
	// FieldBiflowDest marks a biflow common-key field whose IE name
	// begins with "destination" (case-insensitive, ASCII).
	FieldBiflowDest
)

func (f FieldFlags) has(bit FieldFlags) bool {
	return f&bit != 0
}

// TField is a single Field Specifier as decoded from a template, decorated
// with the flags and offset/length bookkeeping §3/§4 describe.
type TField struct {
	// Id is the 15-bit IE id, enterprise bit stripped.
	Id uint16
	// EnterpriseId is the 32-bit private enterprise number, or 0 for IANA.
	EnterpriseId uint32
	// Length is the wire length in bytes, or VariableLength.
	Length uint16
	// Offset is this field's byte offset within a data record, or
	// VariableLength if any preceding field is variable-length.
	Offset uint16

	Flags FieldFlags

	// Def is a weak (borrowed) reference to the bound IE definition. It is
	// nil until IEBind is called with a dictionary that recognizes this
	// field's (EnterpriseId, Id) pair.
	Def IEDefinition
}

// fieldKey identifies a field by its information element, ignoring length,
// offset and derived flags. Two fields with the same key refer to the same
// information element.
type fieldKey struct {
	EnterpriseId uint32
	Id           uint16
}

func (f *TField) key() fieldKey {
	return fieldKey{EnterpriseId: f.EnterpriseId, Id: f.Id}
}

func (f *TField) String() string {
	pen := ""
	if f.EnterpriseId != 0 {
		pen = fmt.Sprintf("/%d", f.EnterpriseId)
	}
	length := fmt.Sprintf("%d", f.Length)
	if f.Length == VariableLength {
		length = "var"
	}
	return fmt.Sprintf("<id=%d%s,len=%s>", f.Id, pen, length)
}

// IsScope reports whether the field carries FieldScope.
func (f *TField) IsScope() bool { return f.Flags.has(FieldScope) }

// IsMultiIE reports whether the field carries FieldMultiIE.
func (f *TField) IsMultiIE() bool { return f.Flags.has(FieldMultiIE) }

// IsLastIE reports whether the field carries FieldLastIE.
func (f *TField) IsLastIE() bool { return f.Flags.has(FieldLastIE) }

// IsVariableLength reports whether the field is declared variable-length.
func (f *TField) IsVariableLength() bool { return f.Length == VariableLength }

// parseFieldSpecifiers decodes fieldsTotal Field Specifiers starting at the
// reader's current position (C3 / §4.2). It populates Id, EnterpriseId and
// Length on each of the given fields; SCOPE/MULTI_IE/LAST_IE/offsets are
// the responsibility of deriveFlags.
func parseFieldSpecifiers(r *wireReader, fields []TField) error {
	for i := range fields {
		rawId, err := r.uint16("field specifier id")
		if err != nil {
			return err
		}
		length, err := r.uint16("field specifier length")
		if err != nil {
			return err
		}

		var en uint32
		if rawId&enterpriseBit != 0 {
			en, err = r.uint32("field specifier enterprise number")
			if err != nil {
				return err
			}
		}

		fields[i].Id = rawId &^ enterpriseBit
		fields[i].EnterpriseId = en
		fields[i].Length = length
	}
	return nil
}
