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
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Export is the top-level document format for a dictionary written by
// WriteYAML, e.g. an enterprise's custom IE registry shipped as a config
// file alongside a collector.
type Export struct {
	Name            string        `yaml:"name"`
	ExportTimestamp time.Time     `yaml:"exportTimestamp"`
	Fields          []*Definition `yaml:"fields"`
}

// ReadYAML parses an Export document into a slice of Definitions.
// Unknown fields are rejected: a config typo should fail loudly rather
// than silently binding nothing.
func ReadYAML(r io.Reader) ([]*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Export
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Fields, nil
}

// WriteYAML serializes defs as an Export document, stamped with the
// current time and the given registry name.
func WriteYAML(w io.Writer, name string, defs []*Definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	return enc.Encode(Export{
		Name:            name,
		ExportTimestamp: time.Now(),
		Fields:          defs,
	})
}

// LoadCSVAndYAML builds a Dictionary from a base IANA CSV registry,
// overlaid with enterprise-specific definitions from a YAML export. Either
// reader may be nil to skip that source.
func LoadCSVAndYAML(csvSrc, yamlSrc io.Reader) (*Dictionary, error) {
	d := New()

	if csvSrc != nil {
		defs, err := ReadCSV(csvSrc)
		if err != nil {
			return nil, err
		}
		d.AddAll(defs)
	}

	if yamlSrc != nil {
		defs, err := ReadYAML(yamlSrc)
		if err != nil {
			return nil, err
		}
		d.AddAll(defs)
	}

	return d, nil
}
