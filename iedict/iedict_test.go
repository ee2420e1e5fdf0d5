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
	"bytes"
	"strings"
	"testing"

	ipfix "github.com/flowforge/ipfix-tmplengine"
)

const sampleCSV = `id,name,type,semantics,status,description,units,range,reference,revision
8,sourceIPv4Address,unsigned32,default,current,a,octets,0x00000000-0xFFFFFFFF,RFC7012,1
1,octetDeltaCount,unsigned64,deltaCounter,current,a,octets,,RFC7012,1
291,basicListField,basicList,list,current,a,,,RFC6313,1
`

func TestReadCSV(t *testing.T) {
	defs, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 3 {
		t.Fatalf("got %d definitions, want 3", len(defs))
	}
	if defs[0].Id_ != 8 || defs[0].Name_ != "sourceIPv4Address" {
		t.Errorf("unexpected first definition: %+v", defs[0])
	}
	if defs[0].Units != "octets" {
		t.Errorf("units = %q, want octets", defs[0].Units)
	}
	if defs[0].Range == nil || defs[0].Range.Low != 0 || defs[0].Range.High != 0xFFFFFFFF {
		t.Errorf("range = %+v, want 0-0xFFFFFFFF", defs[0].Range)
	}
	if defs[2].DataType() != ipfix.IEDataTypeBasicList {
		t.Errorf("data type = %v, want basicList", defs[2].DataType())
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	defs := []*Definition{
		{Id_: 1, Name_: "octetDeltaCount", Type: "unsigned64"},
		{Id_: 2, Name_: "packetDeltaCount", Type: "unsigned64", EnterpriseId: 4294836000},
	}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, "test registry", defs); err != nil {
		t.Fatal(err)
	}

	got, err := ReadYAML(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d definitions, want 2", len(got))
	}
	if got[1].EnterpriseId != 4294836000 {
		t.Errorf("enterprise id = %d, want 4294836000", got[1].EnterpriseId)
	}
}

func TestDictionaryLookupAndReverse(t *testing.T) {
	d := New()
	d.AddAll([]*Definition{
		{Id_: 1, Name_: "octetDeltaCount", Type: "unsigned64"},
		{Id_: 10, Name_: "ingressInterface", Type: "unsigned32"},
	})

	def, ok := d.Lookup(0, 1)
	if !ok {
		t.Fatal("expected to find (0, 1)")
	}
	if def.Name() != "octetDeltaCount" {
		t.Errorf("name = %q, want octetDeltaCount", def.Name())
	}

	rev, ok := d.Lookup(ipfix.ReversePEN, 1)
	if !ok {
		t.Fatal("expected a synthesized reverse definition for reversible id 1")
	}
	if !rev.IsReverse() {
		t.Error("synthesized definition should report IsReverse true")
	}
	if rev.Name() != "reversedOctetDeltaCount" {
		t.Errorf("reverse name = %q, want reversedOctetDeltaCount", rev.Name())
	}
	if rev.ReverseElement() == nil || rev.ReverseElement().Name() != "octetDeltaCount" {
		t.Error("reverse definition should point back to the forward one")
	}

	if _, ok := d.Lookup(ipfix.ReversePEN, 10); ok {
		t.Error("ingressInterface (id 10) is declared non-reversible, lookup should fail")
	}

	if _, ok := d.Lookup(0, 999); ok {
		t.Error("unknown id should not be found")
	}
}

func TestDefinitionForwardReverseElement(t *testing.T) {
	d := New()
	d.Add(&Definition{Id_: 1, Name_: "octetDeltaCount", Type: "unsigned64"})

	fwd, _ := d.Lookup(0, 1)
	pair := fwd.ReverseElement()
	if pair == nil {
		t.Fatal("forward definition should synthesize a reverse counterpart")
	}
	if pair.EnterpriseNumber() != ipfix.ReversePEN || pair.Id() != 1 {
		t.Errorf("pair = (%d, %d), want (%d, 1)", pair.EnterpriseNumber(), pair.Id(), ipfix.ReversePEN)
	}
}
