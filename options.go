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

// OptionsType is a bitset over the Options Template subtypes the
// classifier recognizes (§4.4).
type OptionsType uint16

const (
	// OptionsMeteringProcessStat is set when the template's scope
	// identifies a metering process or observation domain, and its
	// non-scope fields report exported octet/message/record counts.
	OptionsMeteringProcessStat OptionsType = 1 << iota
	// OptionsMeteringReliabilityStat additionally reports ignored
	// packet/octet counts and a pair of observation-time fields.
	OptionsMeteringReliabilityStat
	// OptionsExportingReliabilityStat is set when the template's scope
	// identifies an exporting process, and its non-scope fields report
	// not-sent flow/packet/octet counts plus observation time.
	OptionsExportingReliabilityStat
	// OptionsFlowKeys is set for RFC 7011 §8.2's Flow Keys options
	// template, identifying which fields of another template are flow
	// keys.
	OptionsFlowKeys
	// OptionsIEType is set for the RFC 5610 Information Element Type
	// options template, which an exporter uses to announce
	// enterprise-specific IE definitions.
	OptionsIEType
)

func (o OptionsType) has(bit OptionsType) bool {
	return o&bit != 0
}

// optionsTypeLabels returns the metric label for each subtype bit set in o,
// in declaration order.
func optionsTypeLabels(o OptionsType) []string {
	var labels []string
	for _, b := range []struct {
		bit   OptionsType
		label string
	}{
		{OptionsMeteringProcessStat, "metering_process_stat"},
		{OptionsMeteringReliabilityStat, "metering_reliability_stat"},
		{OptionsExportingReliabilityStat, "exporting_reliability_stat"},
		{OptionsFlowKeys, "flow_keys"},
		{OptionsIEType, "ie_type"},
	} {
		if o.has(b.bit) {
			labels = append(labels, b.label)
		}
	}
	return labels
}

// Well-known IANA registry 0 IE ids referenced by the classifiers below.
const (
	ieObservationDomainId          uint16 = 149
	ieMeteringProcessId            uint16 = 143
	ieExportedOctetTotalCount      uint16 = 40
	ieExportedMessageTotalCount    uint16 = 41
	ieExportedFlowRecordTotalCount uint16 = 42
	ieIgnoredPacketTotalCount      uint16 = 164
	ieIgnoredOctetTotalCount       uint16 = 165

	ieExporterIPv4Address uint16 = 130
	ieExporterIPv6Address uint16 = 131
	ieExportingProcessId  uint16 = 144

	ieNotSentFlowTotalCount   uint16 = 166
	ieNotSentPacketTotalCount uint16 = 167
	ieNotSentOctetTotalCount  uint16 = 168

	ieTemplateId       uint16 = 145
	ieFlowKeyIndicator uint16 = 173

	// RFC 5610 Information Element Type record fields.
	ieInformationElementId       uint16 = 303
	iePrivateEnterpriseNumber    uint16 = 346
	ieInformationElementDataType uint16 = 339
	ieInformationElementName     uint16 = 341
	ieInformationElementSemantics uint16 = 344
)

// classifyOptions runs the four independent Options Template subtype
// detectors (§4.4) against a non-withdrawal Options Template and ORs their
// results into t.OptsTypes. It never fails: an unrecognized pattern simply
// leaves the corresponding bit unset.
func classifyOptions(t *Template) {
	if t.Type != Options || t.FieldsTotal == 0 {
		return
	}

	classifyMeteringProcess(t)
	classifyExportingProcessReliability(t)
	classifyFlowKeys(t)
	classifyIEType(t)
}

// scopeField returns the first scope field carrying the IANA (en=0) id, or
// nil. It does not check MULTI_IE; callers that care check it themselves.
func scopeField(t *Template, id uint16) *TField {
	for i := range t.Fields {
		f := &t.Fields[i]
		if !f.IsScope() {
			continue
		}
		if f.Id == id && f.EnterpriseId == 0 {
			return f
		}
	}
	return nil
}

// fieldByID returns the first field carrying the given IANA (en=0) id,
// scope or not, or nil if the id does not appear in the template at all.
func fieldByID(t *Template, id uint16) *TField {
	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Id == id && f.EnterpriseId == 0 {
			return f
		}
	}
	return nil
}

// hasNonScopeFields reports whether every (en, id) pair named in ids
// appears as a non-scope, IANA (en=0) field.
func hasNonScopeFields(t *Template, ids ...uint16) bool {
	for _, id := range ids {
		found := false
		for i := range t.Fields {
			f := &t.Fields[i]
			if f.IsScope() {
				continue
			}
			if f.Id == id && f.EnterpriseId == 0 {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// hasObservationTime reports whether exactly two non-scope, IANA fields
// carry an observationTimeSeconds..Nanoseconds id (322-325).
//
// Open question carried from the source: this only counts IEs, it does
// not verify the two present are of *different* precision. Preserved
// intentionally rather than tightened silently.
func hasObservationTime(t *Template) bool {
	count := 0
	for i := range t.Fields {
		f := &t.Fields[i]
		if f.IsScope() || f.EnterpriseId != 0 {
			continue
		}
		switch f.Id {
		case ieObservationTimeSeconds, ieObservationTimeMilliseconds,
			ieObservationTimeMicroseconds, ieObservationTimeNanoseconds:
			count++
		}
	}
	return count == 2
}

// classifyMeteringProcess implements the "each present one must qualify"
// rule (§4.4): of observationDomainId (149) and meteringProcessId (143),
// every one of the two that actually appears in the template must carry
// SCOPE and must not carry MULTI_IE, or the whole detector family aborts
// — not just whichever of the two is found first.
func classifyMeteringProcess(t *Template) {
	var scopeIE *TField
	for _, id := range []uint16{ieObservationDomainId, ieMeteringProcessId} {
		f := fieldByID(t, id)
		if f == nil {
			continue
		}
		if !f.IsScope() || f.IsMultiIE() {
			return
		}
		if scopeIE == nil {
			scopeIE = f
		}
	}
	if scopeIE == nil {
		return
	}

	if !hasNonScopeFields(t, ieExportedOctetTotalCount, ieExportedMessageTotalCount, ieExportedFlowRecordTotalCount) {
		return
	}
	t.OptsTypes |= OptionsMeteringProcessStat

	if hasNonScopeFields(t, ieIgnoredPacketTotalCount, ieIgnoredOctetTotalCount) && hasObservationTime(t) {
		t.OptsTypes |= OptionsMeteringReliabilityStat
	}
}

// classifyExportingProcessReliability implements the "first match wins"
// behaviour carried over from the source: of {130, 131, 144}, in that
// declared order, only the first one found as a SCOPE+LAST_IE field is
// checked. If multiple would qualify, the rest are ignored.
func classifyExportingProcessReliability(t *Template) {
	var scopeIE *TField
	for _, id := range []uint16{ieExporterIPv4Address, ieExporterIPv6Address, ieExportingProcessId} {
		if f := scopeField(t, id); f != nil && f.IsLastIE() {
			scopeIE = f
			break
		}
	}
	if scopeIE == nil {
		return
	}

	if !hasNonScopeFields(t, ieNotSentFlowTotalCount, ieNotSentPacketTotalCount, ieNotSentOctetTotalCount) {
		return
	}
	if !hasObservationTime(t) {
		return
	}
	t.OptsTypes |= OptionsExportingReliabilityStat
}

func classifyFlowKeys(t *Template) {
	f := scopeField(t, ieTemplateId)
	if f == nil || f.IsMultiIE() {
		return
	}
	if hasNonScopeFields(t, ieFlowKeyIndicator) {
		t.OptsTypes |= OptionsFlowKeys
	}
}

func classifyIEType(t *Template) {
	idField := scopeField(t, ieInformationElementId)
	penField := scopeField(t, iePrivateEnterpriseNumber)
	if idField == nil || penField == nil {
		return
	}
	if idField.IsMultiIE() || penField.IsMultiIE() {
		return
	}
	if hasNonScopeFields(t, ieInformationElementDataType, ieInformationElementName, ieInformationElementSemantics) {
		t.OptsTypes |= OptionsIEType
	}
}
