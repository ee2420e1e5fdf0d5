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

// IEDataType classifies an Information Element's abstract data type for
// the purposes of structured-field detection (§4.5). It is a coarse
// subset of RFC 7011/6313's abstract data types: the template engine only
// needs to tell "structured" (list-bearing) types apart from everything
// else.
type IEDataType int

const (
	// IEDataTypeOther covers every RFC 7011/6313 abstract data type that
	// is not one of the three structured list types below.
	IEDataTypeOther IEDataType = iota
	// IEDataTypeBasicList is RFC 6313's basicList.
	IEDataTypeBasicList
	// IEDataTypeSubTemplateList is RFC 6313's subTemplateList.
	IEDataTypeSubTemplateList
	// IEDataTypeSubTemplateMultiList is RFC 6313's subTemplateMultiList.
	IEDataTypeSubTemplateMultiList
)

func (t IEDataType) String() string {
	switch t {
	case IEDataTypeBasicList:
		return "basicList"
	case IEDataTypeSubTemplateList:
		return "subTemplateList"
	case IEDataTypeSubTemplateMultiList:
		return "subTemplateMultiList"
	default:
		return "other"
	}
}

func (t IEDataType) isStructured() bool {
	switch t {
	case IEDataTypeBasicList, IEDataTypeSubTemplateList, IEDataTypeSubTemplateMultiList:
		return true
	default:
		return false
	}
}

// IEDefinition is the external collaborator interface an IE dictionary
// hands back for a known (enterprise, id) pair (§6). Implementations are
// expected to be immutable value-ish types that outlive any Template
// whose fields point into them: TField.Def is a weak reference, never
// owned by the template engine.
type IEDefinition interface {
	// EnterpriseNumber returns the owning private enterprise number, or 0
	// for the IANA registry.
	EnterpriseNumber() uint32
	// Id returns the 15-bit information element id.
	Id() uint16
	// Name returns the IE's registered name, or "" if unknown. Biflow
	// source/destination classification is name-prefix based, so an
	// empty name never participates in BKEY_SRC/BKEY_DST.
	Name() string
	// DataType returns the coarse data type classification used to
	// derive FieldStructured.
	DataType() IEDataType
	// IsReverse reports whether this definition itself describes a
	// reverse-direction (RFC 5103) value.
	IsReverse() bool
	// ReverseElement returns this definition's paired counterpart in the
	// opposite direction — the reverse definition if this is a forward
	// definition, or the forward definition if this is a reverse one —
	// or nil if no pairing is declared. Biflow common-key classification
	// calls this on forward definitions to check whether a matching
	// reverse field is present elsewhere in the same template.
	ReverseElement() IEDefinition
}

// IEMgr is the external IE dictionary collaborator (§1, §6): a lookup
// from (enterprise, id) to IEDefinition. The template engine never
// mutates or owns an IEMgr; it only reads from one during IEBind.
type IEMgr interface {
	// Lookup returns the definition for (en, id), and false if unknown.
	Lookup(en uint32, id uint16) (IEDefinition, bool)
}
