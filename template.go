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
	"fmt"
)

// TemplateType distinguishes a Template Set record from an Options
// Template Set record (§3).
type TemplateType int

const (
	Normal TemplateType = iota
	Options
)

func (t TemplateType) String() string {
	if t == Options {
		return "Options"
	}
	return "Normal"
}

// Template is a parsed, flagged, and (optionally) IE-bound IPFIX template
// (§3). Between Parse and a caller discarding the value, FieldsTotal,
// FieldsScope, Id, Type, Raw and DataLength are immutable; only Flags,
// OptsTypes and per-field flag subsets change, and only via IEBind or the
// flow-key mutators.
//
// Template is not safe for concurrent use by a mutator and any reader;
// concurrent read-only access is safe (§5).
type Template struct {
	Type TemplateType

	// Id is the 16-bit template identifier; always >= MinTemplateID.
	Id uint16

	// FieldsTotal is the number of Field Specifiers; 0 marks a
	// withdrawal record.
	FieldsTotal uint16

	// FieldsScope is the number of leading scope fields. Always 0 for
	// Normal templates and for withdrawals.
	FieldsScope uint16

	// DataLength is the expected minimum data-record length in bytes.
	DataLength int

	Flags     TemplateFlags
	OptsTypes OptionsType

	Fields []TField

	// Raw is the exact byte slice the template was parsed from (an owned
	// copy), used for byte-level Compare/equality.
	Raw []byte

	// flowKey is the mask last applied via FlowKeyDefine, retained so
	// FlowKeyCmp can answer without recomputing from field flags.
	flowKey uint64
}

func (t *Template) String() string {
	return fmt.Sprintf("<type=%s,id=%d,fields=%d,scope=%d,len=%d>", t.Type, t.Id, t.FieldsTotal, t.FieldsScope, t.DataLength)
}

// IsWithdrawal reports whether the template is a withdrawal record
// (FieldsTotal == 0).
func (t *Template) IsWithdrawal() bool {
	return t.FieldsTotal == 0
}

// Parse decodes a Template or Options Template Set record from bytes
// (§4.1-§4.3, §4.6). On success it returns the parsed template and the
// number of bytes consumed from bytes (the header plus all Field
// Specifiers); bytes beyond that are not inspected and not part of Raw.
//
// Parse returns an error wrapping ErrFormat for any malformed input
// (truncation, a reserved template id, a bad scope count, or a data
// record length exceeding the single-message budget), and an error
// wrapping ErrNoMemory if fieldsTotal would require an implausibly large
// field array. No partial Template is returned alongside an error.
func Parse(typ TemplateType, data []byte) (*Template, int, error) {
	r := newWireReader(data)

	id, err := r.uint16("template id")
	if err != nil {
		TemplateParseErrorsTotal.WithLabelValues("truncated").Inc()
		return nil, 0, err
	}
	if id < MinTemplateID {
		TemplateParseErrorsTotal.WithLabelValues("reserved_id").Inc()
		return nil, 0, reservedTemplateID(id)
	}

	fieldsTotal, err := r.uint16("field count")
	if err != nil {
		TemplateParseErrorsTotal.WithLabelValues("truncated").Inc()
		return nil, 0, err
	}

	t := &Template{
		Type: typ,
		Id:   id,
	}

	if fieldsTotal == 0 {
		// Withdrawal: never read a scope count, even for Options.
		t.FieldsTotal = 0
		t.FieldsScope = 0
		consumed := r.consumed()
		t.Raw = append([]byte(nil), data[:consumed]...)
		TemplatesWithdrawnTotal.Inc()
		return t, consumed, nil
	}

	var fieldsScope uint16
	if typ == Options {
		fieldsScope, err = r.uint16("scope field count")
		if err != nil {
			TemplateParseErrorsTotal.WithLabelValues("truncated").Inc()
			return nil, 0, err
		}
		if fieldsScope == 0 || fieldsScope > fieldsTotal {
			TemplateParseErrorsTotal.WithLabelValues("bad_scope_count").Inc()
			return nil, 0, invalidScopeCount(fieldsScope, fieldsTotal)
		}
	}

	if int(fieldsTotal) > MaxFieldCount {
		TemplateParseErrorsTotal.WithLabelValues("field_count_overflow").Inc()
		return nil, 0, AllocationFailed(fmt.Sprintf("field count %d exceeds maximum of %d", fieldsTotal, MaxFieldCount))
	}

	t.FieldsTotal = fieldsTotal
	t.FieldsScope = fieldsScope
	t.Fields = make([]TField, fieldsTotal)

	if err := parseFieldSpecifiers(r, t.Fields); err != nil {
		TemplateParseErrorsTotal.WithLabelValues("truncated").Inc()
		return nil, 0, err
	}

	if err := deriveFlags(t); err != nil {
		TemplateParseErrorsTotal.WithLabelValues("record_too_large").Inc()
		return nil, 0, err
	}

	if t.Type == Options {
		classifyOptions(t)
		if t.OptsTypes != 0 {
			for _, label := range optionsTypeLabels(t.OptsTypes) {
				OptionsClassifiedTotal.WithLabelValues(label).Inc()
			}
		}
	}

	consumed := r.consumed()
	t.Raw = append([]byte(nil), data[:consumed]...)

	TemplatesParsedTotal.WithLabelValues(t.Type.String()).Inc()
	Log.V(2).Info("parsed template", "template", t.String())
	return t, consumed, nil
}

// Copy returns a deep clone of t: a fresh Fields slice and a fresh Raw
// copy, preserving every flag and IE binding. The clone shares no backing
// array with t, so mutating one (via IEBind or the flow-key mutators)
// never affects the other.
func Copy(t *Template) *Template {
	c := &Template{
		Type:        t.Type,
		Id:          t.Id,
		FieldsTotal: t.FieldsTotal,
		FieldsScope: t.FieldsScope,
		DataLength:  t.DataLength,
		Flags:       t.Flags,
		OptsTypes:   t.OptsTypes,
		flowKey:     t.flowKey,
	}
	c.Fields = append([]TField(nil), t.Fields...)
	c.Raw = append([]byte(nil), t.Raw...)
	return c
}

// Destroy releases t's owned allocations. Go's garbage collector makes
// this unnecessary for memory safety, but the explicit call documents the
// ownership boundary from §3/§5 (Raw and Fields are exclusively owned by
// the template) and gives a caller a single place to drop large slices
// promptly rather than waiting on a GC cycle.
func Destroy(t *Template) {
	t.Fields = nil
	t.Raw = nil
}

// Find returns the first field matching (en, id), or nil if none does.
func Find(t *Template, en uint32, id uint16) *TField {
	for i := range t.Fields {
		if t.Fields[i].EnterpriseId == en && t.Fields[i].Id == id {
			return &t.Fields[i]
		}
	}
	return nil
}

// Ordering is the result of Compare.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

// Compare orders two templates by their raw wire length, breaking ties
// lexicographically by raw byte content. Two templates compare Equal iff
// their wire bytes are identical.
func Compare(a, b *Template) Ordering {
	if len(a.Raw) != len(b.Raw) {
		if len(a.Raw) < len(b.Raw) {
			return Less
		}
		return Greater
	}
	switch bytes.Compare(a.Raw, b.Raw) {
	case -1:
		return Less
	case 1:
		return Greater
	default:
		return Equal
	}
}
