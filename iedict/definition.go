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

// Package iedict is a reference ipfix.IEMgr/ipfix.IEDefinition
// implementation backed by the IANA IPFIX Information Element registry
// (loaded from CSV or YAML) plus RFC 5103 reverse-element synthesis.
//
// It deliberately carries no DataTypeConstructor-style value decoder: the
// template engine only needs a definition's name, coarse data type, and
// reverse pairing, never how to parse a data record's bytes.
package iedict

import (
	"encoding/json"

	ipfix "github.com/flowforge/ipfix-tmplengine"
	"github.com/flowforge/ipfix-tmplengine/iana/semantics"
	"github.com/flowforge/ipfix-tmplengine/iana/status"
)

// Range is an IE's declared valid-value range, as published by IANA.
type Range struct {
	Low  int `json:"low,omitempty" yaml:"low,omitempty"`
	High int `json:"high,omitempty" yaml:"high,omitempty"`
}

// Definition is a concrete ipfix.IEDefinition describing one registered
// Information Element (§6). Definitions loaded by this package are
// immutable after construction and safe to share across Templates.
type Definition struct {
	Id_          uint16             `json:"id,omitempty" yaml:"id,omitempty"`
	Name_        string             `json:"name,omitempty" yaml:"name,omitempty"`
	EnterpriseId uint32             `json:"pen,omitempty" yaml:"pen,omitempty"`
	Semantics    semantics.Semantic `json:"semantics,omitempty" yaml:"semantics,omitempty"`
	Status       status.Status      `json:"status,omitempty" yaml:"status,omitempty"`
	Type         string             `json:"type,omitempty" yaml:"type,omitempty"`
	Description  string             `json:"description,omitempty" yaml:"description,omitempty"`
	Units        string             `json:"units,omitempty" yaml:"units,omitempty"`
	Range        *Range             `json:"range,omitempty" yaml:"range,omitempty"`
	Reference    string             `json:"reference,omitempty" yaml:"reference,omitempty"`
	Revision     int                `json:"revision,omitempty" yaml:"revision,omitempty"`

	reverse   bool
	reverseOf *Definition
}

var _ ipfix.IEDefinition = (*Definition)(nil)

func (d *Definition) EnterpriseNumber() uint32 { return d.EnterpriseId }
func (d *Definition) Id() uint16               { return d.Id_ }
func (d *Definition) Name() string             { return d.Name_ }

func (d *Definition) DataType() ipfix.IEDataType {
	switch d.Type {
	case "basicList":
		return ipfix.IEDataTypeBasicList
	case "subTemplateList":
		return ipfix.IEDataTypeSubTemplateList
	case "subTemplateMultiList":
		return ipfix.IEDataTypeSubTemplateMultiList
	default:
		return ipfix.IEDataTypeOther
	}
}

func (d *Definition) IsReverse() bool { return d.reverse }

// ReverseElement returns d's paired counterpart in the opposite direction.
// For a reverse definition (synthesized by Dictionary.Lookup under
// ReversePEN) this is the forward definition it was derived from. For a
// forward definition it is a synthesized stub identifying the reverse
// definition Dictionary.Lookup(ReversePEN, d.Id_) would produce — built on
// the fly rather than cached, since not every forward lookup is followed
// by a biflow check.
func (d *Definition) ReverseElement() ipfix.IEDefinition {
	if d.reverse {
		return d.reverseOf
	}
	if d.EnterpriseId != 0 || !ipfix.Reversible(d.Id_) {
		return nil
	}
	return &Definition{
		Id_:          d.Id_,
		Name_:        reversedName(d.Name_),
		EnterpriseId: ipfix.ReversePEN,
		Type:         d.Type,
		reverse:      true,
	}
}

func (d *Definition) String() string {
	b, err := json.Marshal(d)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// clone returns a shallow copy of d with no reverse pairing set, used as
// the basis for a synthesized reverse-direction definition.
func (d *Definition) clone() *Definition {
	c := *d
	c.reverse = false
	c.reverseOf = nil
	return &c
}
