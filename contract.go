package gont

import (
	"github.com/reoring/gont/pvdata"
)

// FieldRule describes one member of a normative type.
type FieldRule struct {
	Name string
	// Required members must exist. Optional members may be absent, but when
	// present they must still match.
	Required bool
	// Expect describes the required shape in diagnostics ("int[]", "alarm_t").
	Expect string
	// Match reports whether a present member has the required shape.
	// A nil Match accepts any type.
	Match func(pvdata.Field) bool
	// Nested is checked against the member structure (or the element
	// structure of a structure array) once Match succeeded.
	Nested *Contract
}

// Optional returns a copy of r that tolerates an absent member.
func (r FieldRule) Optional() FieldRule {
	r.Required = false
	return r
}

// Contract is the structural contract of a normative type: an identifier
// and a flat list of member rules.
type Contract struct {
	ID string
	// MatchID makes Check compare the structure identifier with ID. Top level
	// normative type contracts leave it off and use IsA instead.
	MatchID bool
	Fields  []FieldRule
}

// IsA reports whether s carries the identifier of c.
func (c *Contract) IsA(s *pvdata.Structure) bool {
	return s != nil && s.ID() == c.ID
}

// Check diffs s against c and returns every violation found, in rule order.
// Required members that are missing yield CodeRequired, present members of
// the wrong shape CodeInvalidType, a nil s CodeNilInput.
func (c *Contract) Check(s *pvdata.Structure, opts ...CheckOpt) Issues {
	return c.check(Root(), s, resolveCheckOpt(opts))
}

// CheckPV checks the structure of pv.
func (c *Contract) CheckPV(pv *pvdata.PVStructure, opts ...CheckOpt) Issues {
	if pv == nil {
		return Issues{Root().Issue(CodeNilInput, "instance is nil")}
	}
	return c.Check(pv.Structure(), opts...)
}

// Compatible reports whether s satisfies c. It stops at the first issue.
func (c *Contract) Compatible(s *pvdata.Structure) bool {
	return len(c.check(Root(), s, CheckOpt{FailFast: true})) == 0
}

// CompatiblePV reports whether the structure of pv satisfies c.
func (c *Contract) CompatiblePV(pv *pvdata.PVStructure) bool {
	return pv != nil && c.Compatible(pv.Structure())
}

func (c *Contract) check(at PathRef, s *pvdata.Structure, opt CheckOpt) Issues {
	if s == nil {
		return Issues{at.Issue(CodeNilInput, "structure is nil")}
	}
	var iss Issues
	if c.MatchID && s.ID() != c.ID {
		iss = AppendIssues(iss, at.Issue(CodeIDMismatch, "expected identifier "+c.ID, "expected", c.ID, "got", s.ID()))
		if opt.FailFast {
			return iss
		}
	}
	for _, r := range c.Fields {
		p := at.Field(r.Name)
		f := s.Field(r.Name)
		if f == nil {
			if r.Required {
				iss = AppendIssues(iss, p.Issue(CodeRequired, "expected "+r.Expect, "expected", r.Expect))
				if opt.FailFast {
					return iss
				}
			}
			continue
		}
		if r.Match != nil && !r.Match(f) {
			iss = AppendIssues(iss, p.Issue(CodeInvalidType, "expected "+r.Expect, "expected", r.Expect, "got", f.ID()))
			if opt.FailFast {
				return iss
			}
			continue
		}
		if r.Nested == nil {
			continue
		}
		if child := r.Nested.check(p, nestedStructure(f), opt); len(child) > 0 {
			iss = AppendIssues(iss, child...)
			if opt.FailFast {
				return iss
			}
		}
	}
	return iss
}

// Presence reports the optional members of c found in s, nested contracts
// included. Required members are not listed.
func (c *Contract) Presence(s *pvdata.Structure) PresenceMap {
	return c.presence(Root(), s)
}

func (c *Contract) presence(at PathRef, s *pvdata.Structure) PresenceMap {
	pm := PresenceMap{}
	if s == nil {
		return pm
	}
	for _, r := range c.Fields {
		f := s.Field(r.Name)
		if f == nil {
			continue
		}
		p := at.Field(r.Name)
		if !r.Required {
			flags := PresenceSeen
			if r.Match == nil || r.Match(f) {
				flags |= PresenceMatched
			}
			pm[p.Pointer()] = flags
		}
		if r.Nested != nil {
			pm = mergePresenceMaps(pm, r.Nested.presence(p, nestedStructure(f)))
		}
	}
	return pm
}

func nestedStructure(f pvdata.Field) *pvdata.Structure {
	switch t := f.(type) {
	case *pvdata.Structure:
		return t
	case *pvdata.StructureArray:
		return t.Structure()
	}
	return nil
}

// ScalarOf requires a scalar member of type t.
func ScalarOf(name string, t pvdata.ScalarType) FieldRule {
	return FieldRule{Name: name, Required: true, Expect: t.String(), Match: func(f pvdata.Field) bool {
		s, ok := f.(*pvdata.Scalar)
		return ok && s.ScalarType() == t
	}}
}

// ScalarArrayOf requires a scalar array member with element type t.
func ScalarArrayOf(name string, t pvdata.ScalarType) FieldRule {
	return FieldRule{Name: name, Required: true, Expect: pvdata.NewScalarArray(t).ID(), Match: func(f pvdata.Field) bool {
		a, ok := f.(*pvdata.ScalarArray)
		return ok && a.ElementType() == t
	}}
}

// AnyScalarArray requires a scalar array member of any element type.
func AnyScalarArray(name string) FieldRule {
	return FieldRule{Name: name, Required: true, Expect: "scalar array", Match: func(f pvdata.Field) bool {
		return f.Kind() == pvdata.KindScalarArray
	}}
}

// Shape requires a member accepted by match; expect names the shape.
func Shape(name, expect string, match func(pvdata.Field) bool) FieldRule {
	return FieldRule{Name: name, Required: true, Expect: expect, Match: match}
}

// StructureOf requires a structure member that satisfies c.
func StructureOf(name string, c *Contract) FieldRule {
	return FieldRule{Name: name, Required: true, Expect: expectStructure(c), Nested: c, Match: func(f pvdata.Field) bool {
		return f.Kind() == pvdata.KindStructure
	}}
}

// StructureArrayOf requires a structure array member whose element structure
// satisfies c.
func StructureArrayOf(name string, c *Contract) FieldRule {
	return FieldRule{Name: name, Required: true, Expect: expectStructure(c) + "[]", Nested: c, Match: func(f pvdata.Field) bool {
		return f.Kind() == pvdata.KindStructureArray
	}}
}

// UnionOf requires a union member, regulated or variant.
func UnionOf(name string) FieldRule {
	return FieldRule{Name: name, Required: true, Expect: "union", Match: func(f pvdata.Field) bool {
		return f.Kind() == pvdata.KindUnion
	}}
}

func expectStructure(c *Contract) string {
	if c != nil && c.MatchID {
		return c.ID
	}
	return pvdata.DefaultStructureID
}
