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
	"bytes"
	"errors"
	"testing"
)

// S1: Normal template, two fixed-length IEs.
func TestParseNormalTemplate(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x02, 0x00, 0x08, 0x00, 0x04, 0x00, 0x0C, 0x00, 0x04}

	tmpl, n, err := Parse(Normal, data)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d, want %d", n, len(data))
	}

	if tmpl.Type != Normal {
		t.Errorf("type = %s, want Normal", tmpl.Type)
	}
	if tmpl.Id != 256 {
		t.Errorf("id = %d, want 256", tmpl.Id)
	}
	if tmpl.FieldsTotal != 2 {
		t.Errorf("fields_total = %d, want 2", tmpl.FieldsTotal)
	}
	if tmpl.FieldsScope != 0 {
		t.Errorf("fields_scope = %d, want 0", tmpl.FieldsScope)
	}
	if tmpl.DataLength != 8 {
		t.Errorf("data_length = %d, want 8", tmpl.DataLength)
	}
	if tmpl.Flags != 0 {
		t.Errorf("flags = %v, want empty", tmpl.Flags)
	}

	wantOffsets := []uint16{0, 4}
	for i, want := range wantOffsets {
		if tmpl.Fields[i].Offset != want {
			t.Errorf("field %d offset = %d, want %d", i, tmpl.Fields[i].Offset, want)
		}
		if !tmpl.Fields[i].IsLastIE() {
			t.Errorf("field %d should carry LAST_IE", i)
		}
		if tmpl.Fields[i].IsMultiIE() {
			t.Errorf("field %d should not carry MULTI_IE", i)
		}
	}

	if !bytes.Equal(tmpl.Raw, data) {
		t.Errorf("raw = %x, want %x", tmpl.Raw, data)
	}
}

// S2: Options template with an enterprise IE and a variable-length field.
func TestParseOptionsTemplateWithEnterpriseAndDynamic(t *testing.T) {
	data := []byte{
		0x02, 0x00, 0x00, 0x02, 0x00, 0x01,
		0x80, 0x0A, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x20,
		0x00, 0x08, 0x00, 0x04,
	}

	tmpl, n, err := Parse(Options, data)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d, want %d", n, len(data))
	}

	if tmpl.Type != Options {
		t.Errorf("type = %s, want Options", tmpl.Type)
	}
	if tmpl.Id != 512 {
		t.Errorf("id = %d, want 512", tmpl.Id)
	}
	if tmpl.FieldsScope != 1 {
		t.Errorf("fields_scope = %d, want 1", tmpl.FieldsScope)
	}
	if tmpl.DataLength != 5 {
		t.Errorf("data_length = %d, want 5", tmpl.DataLength)
	}
	if !tmpl.Flags.has(FlagHasDynamic) {
		t.Error("expected HAS_DYNAMIC")
	}

	if tmpl.Fields[0].EnterpriseId != 32 {
		t.Errorf("field 0 enterprise id = %d, want 32", tmpl.Fields[0].EnterpriseId)
	}
	if tmpl.Fields[0].Id != 10 {
		t.Errorf("field 0 id = %d, want 10", tmpl.Fields[0].Id)
	}
	if tmpl.Fields[0].Offset != 0 {
		t.Errorf("field 0 offset = %d, want 0", tmpl.Fields[0].Offset)
	}
	if tmpl.Fields[1].Offset != VariableLength {
		t.Errorf("field 1 offset = %d, want sentinel", tmpl.Fields[1].Offset)
	}
}

// S6: multi-IE detection across a repeated (en=0, id=8) field.
func TestParseMultiIEDetection(t *testing.T) {
	data := []byte{
		0x01, 0x00, 0x00, 0x03,
		0x00, 0x08, 0x00, 0x04,
		0x00, 0x0C, 0x00, 0x04,
		0x00, 0x08, 0x00, 0x04,
	}

	tmpl, _, err := Parse(Normal, data)
	if err != nil {
		t.Fatal(err)
	}

	if !tmpl.Fields[0].IsMultiIE() {
		t.Error("field 0 (first id=8) should carry MULTI_IE")
	}
	if tmpl.Fields[0].IsLastIE() {
		t.Error("field 0 (first id=8) should not carry LAST_IE")
	}
	if !tmpl.Fields[2].IsMultiIE() {
		t.Error("field 2 (second id=8) should carry MULTI_IE")
	}
	if !tmpl.Fields[2].IsLastIE() {
		t.Error("field 2 (second id=8) should carry LAST_IE")
	}
	if !tmpl.Fields[1].IsLastIE() {
		t.Error("field 1 (id=12) should carry LAST_IE")
	}
	if tmpl.Fields[1].IsMultiIE() {
		t.Error("field 1 (id=12) should not carry MULTI_IE")
	}
	if !tmpl.Flags.has(FlagHasMultiIE) {
		t.Error("expected HAS_MULTI_IE on template")
	}
}

// S7: malformed, scope_field_count > field_count.
func TestParseInvalidScopeCount(t *testing.T) {
	data := []byte{0x03, 0x00, 0x00, 0x02, 0x00, 0x03}

	tmpl, _, err := Parse(Options, data)
	if tmpl != nil {
		t.Fatal("expected no template on FORMAT error")
	}
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want wrapping ErrFormat", err)
	}
}

func TestParseWithdrawal(t *testing.T) {
	data := []byte{0x01, 0x23, 0x00, 0x00}

	tmpl, n, err := Parse(Normal, data)
	if err != nil {
		t.Fatal(err)
	}
	if !tmpl.IsWithdrawal() {
		t.Error("expected withdrawal template")
	}
	if n != len(data) {
		t.Fatalf("consumed %d, want %d", n, len(data))
	}
	if !bytes.Equal(tmpl.Raw, data) {
		t.Errorf("raw = %x, want %x", tmpl.Raw, data)
	}
}

func TestParseTruncated(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x01, 0x00, 0x08}
	_, _, err := Parse(Normal, data)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want wrapping ErrFormat", err)
	}
}

func TestParseReservedTemplateID(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x00, 0x00}
	_, _, err := Parse(Normal, data)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want wrapping ErrFormat", err)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x02, 0x00, 0x08, 0x00, 0x04, 0x00, 0x0C, 0x00, 0x04}
	tmpl, _, err := Parse(Normal, data)
	if err != nil {
		t.Fatal(err)
	}

	clone := Copy(tmpl)
	clone.Fields[0].Flags.set(FieldReverse, true)
	clone.Raw[0] = 0xFF

	if tmpl.Fields[0].Flags.has(FieldReverse) {
		t.Error("mutating clone's fields affected original")
	}
	if tmpl.Raw[0] == 0xFF {
		t.Error("mutating clone's raw affected original")
	}

	Destroy(clone)
	if clone.Fields != nil || clone.Raw != nil {
		t.Error("Destroy should release owned allocations")
	}
}

func TestFind(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x02, 0x00, 0x08, 0x00, 0x04, 0x00, 0x0C, 0x00, 0x04}
	tmpl, _, err := Parse(Normal, data)
	if err != nil {
		t.Fatal(err)
	}

	if f := Find(tmpl, 0, 8); f == nil {
		t.Error("expected to find (0, 8)")
	}
	if f := Find(tmpl, 0, 99); f != nil {
		t.Error("expected nil for unknown field")
	}
}

func TestCompare(t *testing.T) {
	a, _, _ := Parse(Normal, []byte{0x01, 0x00, 0x00, 0x02, 0x00, 0x08, 0x00, 0x04, 0x00, 0x0C, 0x00, 0x04})
	b, _, _ := Parse(Normal, []byte{0x01, 0x00, 0x00, 0x02, 0x00, 0x08, 0x00, 0x04, 0x00, 0x0C, 0x00, 0x04})
	c, _, _ := Parse(Normal, []byte{0x01, 0x00, 0x00, 0x01, 0x00, 0x08, 0x00, 0x04})

	if Compare(a, b) != Equal {
		t.Error("identical templates should compare Equal")
	}
	if Compare(a, c) != Greater {
		t.Error("longer raw should compare Greater")
	}
	if Compare(c, a) != Less {
		t.Error("shorter raw should compare Less")
	}
}
