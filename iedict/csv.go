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
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/flowforge/ipfix-tmplengine/iana/units"
)

// ReadCSV parses an IANA-format IPFIX Information Element registry export
// (the same column layout as
// https://www.iana.org/assignments/ipfix/ipfix-information-elements.csv)
// into a slice of Definitions. The header row is discarded.
func ReadCSV(r io.Reader) ([]*Definition, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	if _, err := csvReader.Read(); err != nil {
		return nil, err
	}

	var defs []*Definition

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 8 {
			continue
		}

		id, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}

		def := &Definition{
			Id_:   uint16(id),
			Name_: record[1],
			Type:  record[2],
		}
		if sem := record[3]; sem != "" {
			_ = def.Semantics.UnmarshalText([]byte(sem))
		}
		if stat := record[4]; stat != "" {
			_ = def.Status.UnmarshalText([]byte(stat))
		}
		def.Description = record[5]
		def.Units = parseUnits(record[6])

		if rng := record[7]; rng != "" {
			if r := parseRange(rng); r != nil {
				def.Range = r
			}
		}

		if len(record) > 8 {
			def.Reference = record[8]
		}
		if len(record) > 9 {
			if rev, err := strconv.Atoi(record[9]); err == nil {
				def.Revision = rev
			}
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// parseUnits normalizes a registry units field: some older registry
// exports carry the IANA dataUnits numeric code instead of its name.
func parseUnits(s string) string {
	if s == "" {
		return ""
	}
	if code, err := strconv.ParseUint(s, 10, 16); err == nil {
		return units.FromNumber(uint16(code))
	}
	return s
}

// parseRange parses a "low-high" range, where either bound may be a
// decimal or 0x-prefixed hexadecimal literal. It returns nil if the field
// does not split into exactly two parts.
func parseRange(s string) *Range {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil
	}
	low, ok := parseBound(parts[0])
	if !ok {
		return nil
	}
	high, ok := parseBound(parts[1])
	if !ok {
		return nil
	}
	return &Range{Low: low, High: high}
}

func parseBound(s string) (int, bool) {
	if strings.HasPrefix(s, "0x") {
		// base 0 lets ParseInt interpret the "0x" prefix itself.
		v, err := strconv.ParseInt(s, 0, 64)
		return int(v), err == nil
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}
