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


// IEBind attaches IE definitions from dict to every field of t, derives
// each field's REVERSE/STRUCTURED flags and the template's aggregate
// HAS_REVERSE/HAS_STRUCT flags, and, if HAS_REVERSE ends up set, runs
// biflow key classification (§4.5).
//
// If dict is nil and preserve is true, IEBind is a no-op: existing
// bindings (if any) are left untouched. This lets a caller re-run binding
// after a dictionary swap without accidentally clearing bindings when no
// replacement dictionary is supplied yet.
//
// IEBind never fails: an (enterprise, id) pair missing from dict simply
// clears that field's Def, REVERSE and STRUCTURED.
func IEBind(t *Template, dict IEMgr, preserve bool) {
	if dict == nil && preserve {
		return
	}

	hasReverse := false
	hasStruct := false

	for i := range t.Fields {
		f := &t.Fields[i]
		f.Flags.set(FieldBiflowCommon, false)
		f.Flags.set(FieldBiflowSource, false)
		f.Flags.set(FieldBiflowDest, false)

		if preserve && f.Def != nil {
			if f.Flags.has(FieldReverse) {
				hasReverse = true
			}
			if f.Flags.has(FieldStructured) {
				hasStruct = true
			}
			continue
		}

		f.Flags.set(FieldReverse, false)
		f.Flags.set(FieldStructured, false)
		f.Def = nil

		if dict == nil {
			continue
		}
		def, ok := dict.Lookup(f.EnterpriseId, f.Id)
		if !ok {
			continue
		}
		f.Def = def
		if def.IsReverse() {
			f.Flags.set(FieldReverse, true)
			hasReverse = true
		}
		if def.DataType().isStructured() {
			f.Flags.set(FieldStructured, true)
			hasStruct = true
		}
	}

	t.Flags.set(FlagHasReverse, hasReverse)
	t.Flags.set(FlagHasStruct, hasStruct)

	if hasReverse {
		classifyBiflowKeys(t)
	}
}

// classifyBiflowKeys implements RFC 5103 biflow common-key classification
// (§4.5). A field is a biflow common key (BKEY_COM) unless it is itself a
// reverse-value field, or it is the forward-value field paired with a
// reverse field present elsewhere in the same template. BKEY_SRC/BKEY_DST
// further tag common-key fields whose name declares them as the source or
// destination of the flow.
func classifyBiflowKeys(t *Template) {
	for i := range t.Fields {
		f := &t.Fields[i]

		if f.Def == nil {
			f.Flags.set(FieldBiflowCommon, true)
			continue
		}
		if f.Def.IsReverse() {
			continue
		}
		if rev := f.Def.ReverseElement(); rev != nil && templateHasDefinition(t, rev) {
			continue
		}

		f.Flags.set(FieldBiflowCommon, true)
		name := f.Def.Name()
		if name == "" {
			continue
		}
		switch {
		case hasASCIIPrefixFold(name, "source"):
			f.Flags.set(FieldBiflowSource, true)
		case hasASCIIPrefixFold(name, "destination"):
			f.Flags.set(FieldBiflowDest, true)
		}
	}
}

// templateHasDefinition reports whether some field in t is bound to a
// definition identifying the same (enterprise, id) pair as def.
func templateHasDefinition(t *Template, def IEDefinition) bool {
	for i := range t.Fields {
		other := t.Fields[i].Def
		if other == nil {
			continue
		}
		if other.EnterpriseNumber() == def.EnterpriseNumber() && other.Id() == def.Id() {
			return true
		}
	}
	return false
}

// hasASCIIPrefixFold reports whether s begins with prefix under
// ASCII-only case folding, byte by byte. Locale-dependent (or even
// Unicode simple-folding) comparison is deliberately avoided per the
// source's design notes.
func hasASCIIPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if asciiLower(s[i]) != asciiLower(prefix[i]) {
			return false
		}
	}
	return true
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
