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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config declares how a collector operator wants a Dictionary built,
// without recompiling: a base IANA registry CSV, plus any number of
// enterprise-specific YAML overlays applied in order.
type Config struct {
	CSVPath  string   `yaml:"csvPath"`
	Overlays []string `yaml:"overlays"`
}

// LoadConfig reads and decodes a Config from path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding dictionary config: %w", err)
	}
	return &cfg, nil
}

// Build constructs a Dictionary from cfg: the base CSV registry, then each
// overlay YAML file in order, later overlays taking precedence on
// conflicting (enterprise, id) pairs.
func (cfg *Config) Build() (*Dictionary, error) {
	d := New()

	if cfg.CSVPath != "" {
		f, err := os.Open(cfg.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("opening base registry %q: %w", cfg.CSVPath, err)
		}
		defs, err := ReadCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing base registry %q: %w", cfg.CSVPath, err)
		}
		d.AddAll(defs)
	}

	for _, overlay := range cfg.Overlays {
		f, err := os.Open(overlay)
		if err != nil {
			return nil, fmt.Errorf("opening overlay %q: %w", overlay, err)
		}
		defs, err := ReadYAML(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing overlay %q: %w", overlay, err)
		}
		d.AddAll(defs)
	}

	return d, nil
}
