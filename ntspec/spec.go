// Package ntspec reads declarative descriptions of normative type
// structures from YAML or TOML and builds them with package nt.
//
// A description names the type, the optional members to include and the
// extra members to append:
//
//	type: NTScalarMultiChannel
//	value: int
//	include: [timeStamp, severity]
//	exclude: [isConnected]
//	extra:
//	  - {name: gain, type: double}
//	  - {name: limits, type: control_t}
//
// Tables list their columns instead of a value type:
//
//	type = "NTTable"
//	include = ["descriptor"]
//	columns = [{name = "x", type = "double"}, {name = "label", type = "string"}]
package ntspec

// Spec is one normative type description.
type Spec struct {
	// Type is a short name ("NTTable", "table") or a URI.
	Type string `yaml:"type" toml:"type"`
	// Value is the value element type of NTScalarMultiChannel ("double" when
	// empty).
	Value   string   `yaml:"value,omitempty" toml:"value,omitempty"`
	Include []string `yaml:"include,omitempty" toml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
	Columns []Member `yaml:"columns,omitempty" toml:"columns,omitempty"`
	Extra   []Member `yaml:"extra,omitempty" toml:"extra,omitempty"`
}

// Member is a named column or extra member. Type is a scalar or scalar
// array name ("double", "string[]"), "any", or the identifier of a known
// sub-structure ("alarm_t", "time_t", "display_t", "control_t", "enum_t",
// "codec_t", "dimension_t") optionally followed by "[]".
type Member struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
}
