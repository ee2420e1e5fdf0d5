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

import "github.com/prometheus/client_golang/prometheus"

// These counters are exported for a caller to register and expose (e.g.
// via prometheus.MustRegister and promhttp.Handler()); the template engine
// itself never registers them, never starts an HTTP server and never owns
// a registry.
var (
	TemplatesParsedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipfix_templates_parsed_total",
		Help: "Total number of template records successfully parsed, by type",
	}, []string{"type"})

	TemplateParseErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipfix_template_parse_errors_total",
		Help: "Total number of template records rejected during parsing, by error kind",
	}, []string{"kind"})

	OptionsClassifiedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipfix_options_templates_classified_total",
		Help: "Total number of options templates matching a known subtype, by subtype",
	}, []string{"subtype"})

	TemplatesWithdrawnTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ipfix_templates_withdrawn_total",
		Help: "Total number of withdrawal records parsed",
	})
)
