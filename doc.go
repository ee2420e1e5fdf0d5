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

/*
Package ipfix implements the IPFIX (RFC 7011) template engine: parsing raw
Template and Options Template set records from wire bytes, deriving their
structural flags, classifying well-known Options Template subtypes, and
binding Information Element metadata from an external dictionary.

# Scope

This package owns exactly the template side of IPFIX decoding. It does not
decode data records, does not manage template lifecycles across an
observation domain, and does not speak any transport. A caller supplies raw
Template/Options Template set bytes (read off whatever transport it uses)
and an optional IE dictionary; this package returns a fully-flagged,
queryable Template value.

# Wire format

A Template Set record starts with a 4-byte header (template ID, field
count); an Options Template Set record starts with a 6-byte header
(template ID, field count, scope field count). Both are followed by that
many Field Specifiers: a 2-byte IE id (top bit signals a 4-byte enterprise
number follows) and a 2-byte length, optionally followed by the 4-byte
enterprise number.

# Flags and classification

Parse derives, per RFC 7011 semantics, which fields are scope fields,
which IE ids repeat across the template (MULTI_IE) and which occurrence of
a repeated IE is authoritative (LAST_IE), the data record's minimum byte
length, and each field's byte offset (or the variable-length sentinel).
Options Templates are additionally probed against four well-known subtype
signatures (Metering Process statistics, Exporting Process reliability
statistics, Flow Keys, and RFC 5610 IE Type records).

Binding an IE dictionary (IEBind) attaches semantic metadata to each field,
flags reverse (RFC 5103 biflow) and structured (RFC 6313 list) fields, and
classifies the biflow common-key fields.

# History

This package began life as a factoring of a larger IPFIX codec library
(encoding, decoding, TCP/UDP listeners, the full RFC 6313 data type zoo).
That scope was trimmed down to the template engine alone: parsing,
flagging, classification, and IE binding. The record decoder, transport
listeners, and template-manager lifecycle are intentionally left to
higher-level collaborators.
*/
package ipfix
