package nt

import (
	"strings"

	"github.com/reoring/gont"
	"github.com/reoring/gont/pvdata"
)

// Type describes one normative type.
type Type struct {
	// Name is the short name ("NTTable").
	Name     string
	URI      string
	Contract *gont.Contract
}

var types = []Type{
	{Name: "NTScalarMultiChannel", URI: ScalarMultiChannelURI, Contract: scalarMultiChannelContract},
	{Name: "NTTable", URI: TableURI, Contract: tableContract},
	{Name: "NTNDArray", URI: NDArrayURI, Contract: ndArrayContract},
}

// Types lists the supported normative types.
func Types() []Type { return append([]Type(nil), types...) }

// Lookup resolves a type by URI or by short name. Short names match
// case-insensitively, with or without the "NT" prefix.
func Lookup(name string) (Type, bool) {
	n := strings.TrimSpace(name)
	for _, t := range types {
		if n == t.URI || strings.EqualFold(n, t.Name) || strings.EqualFold(n, strings.TrimPrefix(t.Name, "NT")) {
			return t, true
		}
	}
	return Type{}, false
}

// Detect returns the type whose URI s carries.
func Detect(s *pvdata.Structure) (Type, bool) {
	for _, t := range types {
		if t.Contract.IsA(s) {
			return t, true
		}
	}
	return Type{}, false
}

// Check diffs s against the contract of the named type. An unknown name
// yields a single unknown_type issue.
func Check(name string, s *pvdata.Structure, opts ...gont.CheckOpt) gont.Issues {
	t, ok := Lookup(name)
	if !ok {
		return gont.Issues{gont.Root().Issue(gont.CodeUnknownType, "no normative type "+name, "got", name)}
	}
	return t.Contract.Check(s, opts...)
}
