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

import "testing"

// fakeDef is a minimal IEDefinition for exercising IEBind without pulling
// in the iedict package (which itself imports this one).
type fakeDef struct {
	en      uint32
	id      uint16
	name    string
	dt      IEDataType
	reverse bool
	revOf   IEDefinition
}

func (f *fakeDef) EnterpriseNumber() uint32     { return f.en }
func (f *fakeDef) Id() uint16                   { return f.id }
func (f *fakeDef) Name() string                 { return f.name }
func (f *fakeDef) DataType() IEDataType         { return f.dt }
func (f *fakeDef) IsReverse() bool              { return f.reverse }
func (f *fakeDef) ReverseElement() IEDefinition { return f.revOf }

type fakeDict struct {
	defs map[fieldKey]IEDefinition
}

func (d *fakeDict) Lookup(en uint32, id uint16) (IEDefinition, bool) {
	def, ok := d.defs[fieldKey{EnterpriseId: en, Id: id}]
	return def, ok
}

func newFakeTemplate(fields ...TField) *Template {
	return &Template{
		Type:        Normal,
		Id:          256,
		FieldsTotal: uint16(len(fields)),
		Fields:      fields,
	}
}

func TestIEBindSetsStructuredWithoutReverse(t *testing.T) {
	srcBytes := &fakeDef{id: 8, name: "sourceIPv4Address", dt: IEDataTypeOther}
	bl := &fakeDef{id: 291, name: "basicListField", dt: IEDataTypeBasicList}

	dict := &fakeDict{defs: map[fieldKey]IEDefinition{
		{EnterpriseId: 0, Id: 8}:   srcBytes,
		{EnterpriseId: 0, Id: 291}: bl,
	}}

	tmpl := newFakeTemplate(
		TField{Id: 8, EnterpriseId: 0},
		TField{Id: 291, EnterpriseId: 0},
	)

	IEBind(tmpl, dict, false)

	if tmpl.Fields[1].Flags.has(FieldStructured) != true {
		t.Error("expected basicList field to be flagged STRUCTURED")
	}
	if !tmpl.Flags.has(FlagHasStruct) {
		t.Error("expected template HAS_STRUCT")
	}
	if tmpl.Flags.has(FlagHasReverse) {
		t.Error("did not expect HAS_REVERSE")
	}
}

func TestIEBindBiflowClassification(t *testing.T) {
	srcBytes := &fakeDef{id: 1, name: "sourceOctetDeltaCount", dt: IEDataTypeOther}
	reversed := &fakeDef{id: 1, en: ReversePEN, name: "reversedOctetDeltaCount", dt: IEDataTypeOther, reverse: true}
	reversed.revOf = srcBytes
	srcBytes.revOf = reversed

	other := &fakeDef{id: 2, name: "destinationIPv4Address", dt: IEDataTypeOther}

	dict := &fakeDict{defs: map[fieldKey]IEDefinition{
		{EnterpriseId: 0, Id: 1}:          srcBytes,
		{EnterpriseId: ReversePEN, Id: 1}: reversed,
		{EnterpriseId: 0, Id: 2}:          other,
	}}

	tmpl := newFakeTemplate(
		TField{Id: 1, EnterpriseId: 0},
		TField{Id: 1, EnterpriseId: ReversePEN},
		TField{Id: 2, EnterpriseId: 0},
	)

	IEBind(tmpl, dict, false)

	if !tmpl.Flags.has(FlagHasReverse) {
		t.Fatal("expected HAS_REVERSE")
	}
	if tmpl.Fields[0].Flags.has(FieldBiflowCommon) {
		t.Error("forward field paired with a present reverse field should not be BKEY_COM")
	}
	if !tmpl.Fields[1].Flags.has(FieldReverse) {
		t.Error("reverse field should carry FieldReverse")
	}
	if tmpl.Fields[1].Flags.has(FieldBiflowCommon) {
		t.Error("reverse-value field itself should never be BKEY_COM")
	}
	if !tmpl.Fields[2].Flags.has(FieldBiflowCommon) {
		t.Error("field 2 has no reverse pair present, should be BKEY_COM")
	}
	if !tmpl.Fields[2].Flags.has(FieldBiflowDest) {
		t.Error("field 2 name starts with 'destination', expected BKEY_DST")
	}
}

func TestIEBindPreserveNoOp(t *testing.T) {
	tmpl := newFakeTemplate(TField{Id: 8, EnterpriseId: 0, Flags: FieldReverse})
	IEBind(tmpl, nil, true)

	if !tmpl.Fields[0].Flags.has(FieldReverse) {
		t.Error("preserve+nil dict should be a no-op, not clear existing flags")
	}
}

func TestIEBindUnboundClearsFlags(t *testing.T) {
	tmpl := newFakeTemplate(TField{Id: 99, EnterpriseId: 0, Flags: FieldReverse | FieldStructured})
	IEBind(tmpl, &fakeDict{defs: map[fieldKey]IEDefinition{}}, false)

	if tmpl.Fields[0].Flags.has(FieldReverse) || tmpl.Fields[0].Flags.has(FieldStructured) {
		t.Error("unbound field should have REVERSE/STRUCTURED cleared")
	}
	if tmpl.Fields[0].Def != nil {
		t.Error("unbound field should have nil Def")
	}
}

func TestHasASCIIPrefixFold(t *testing.T) {
	cases := []struct {
		s, prefix string
		want      bool
	}{
		{"sourceIPv4Address", "source", true},
		{"SOURCEIPv4Address", "source", true},
		{"destinationPort", "source", false},
		{"src", "source", false},
		{"", "source", false},
	}
	for _, c := range cases {
		if got := hasASCIIPrefixFold(c.s, c.prefix); got != c.want {
			t.Errorf("hasASCIIPrefixFold(%q, %q) = %v, want %v", c.s, c.prefix, got, c.want)
		}
	}
}
