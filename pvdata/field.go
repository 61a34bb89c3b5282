package pvdata

import (
	"fmt"
	"strings"
)

// Kind discriminates the introspection descriptors.
type Kind int

const (
	KindScalar Kind = iota
	KindScalarArray
	KindStructure
	KindStructureArray
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindScalarArray:
		return "scalarArray"
	case KindStructure:
		return "structure"
	case KindStructureArray:
		return "structureArray"
	case KindUnion:
		return "union"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Default identifiers used when a structure or union is created without one.
const (
	DefaultStructureID = "structure"
	DefaultUnionID     = "union"
	VariantUnionID     = "any"
)

const (
	structureArraySuffix = "[]"
	introspectionIndent  = "    "
)

// Field is an immutable introspection descriptor.
type Field interface {
	Kind() Kind
	// ID is the type identifier: the scalar type name, "T[]" for arrays, or
	// the structure/union identifier.
	ID() string
	// String renders the descriptor in the indented introspection format.
	String() string

	dump(b *strings.Builder, name string, depth int)
}

// Scalar describes a single value of a ScalarType.
type Scalar struct {
	typ ScalarType
}

var scalarCache, scalarArrayCache = func() ([]*Scalar, []*ScalarArray) {
	s := make([]*Scalar, String+1)
	a := make([]*ScalarArray, String+1)
	for t := Boolean; t <= String; t++ {
		s[t] = &Scalar{typ: t}
		a[t] = &ScalarArray{elem: t}
	}
	return s, a
}()

// NewScalar returns the shared descriptor for a scalar of type t.
//
// Panics if t is not a valid ScalarType.
func NewScalar(t ScalarType) *Scalar {
	if !t.Valid() {
		panic(fmt.Sprintf("pvdata: invalid scalar type %d", int(t)))
	}
	return scalarCache[t]
}

func (s *Scalar) Kind() Kind             { return KindScalar }
func (s *Scalar) ID() string             { return s.typ.String() }
func (s *Scalar) ScalarType() ScalarType { return s.typ }
func (s *Scalar) String() string         { return s.ID() }

func (s *Scalar) dump(b *strings.Builder, name string, depth int) {
	writeLine(b, depth, s.ID(), name)
}

// ScalarArray describes a variable length array of a ScalarType.
type ScalarArray struct {
	elem ScalarType
}

// NewScalarArray returns the shared descriptor for an array of t.
//
// Panics if t is not a valid ScalarType.
func NewScalarArray(t ScalarType) *ScalarArray {
	if !t.Valid() {
		panic(fmt.Sprintf("pvdata: invalid scalar type %d", int(t)))
	}
	return scalarArrayCache[t]
}

func (a *ScalarArray) Kind() Kind              { return KindScalarArray }
func (a *ScalarArray) ID() string              { return a.elem.String() + structureArraySuffix }
func (a *ScalarArray) ElementType() ScalarType { return a.elem }
func (a *ScalarArray) String() string          { return a.ID() }

func (a *ScalarArray) dump(b *strings.Builder, name string, depth int) {
	writeLine(b, depth, a.ID(), name)
}

// members is the ordered name/field list shared by Structure and Union.
type members struct {
	id     string
	names  []string
	fields []Field
	index  map[string]int
}

func newMembers(kind, id string, names []string, fields []Field) members {
	if len(names) != len(fields) {
		panic(fmt.Sprintf("pvdata: %s %q: %d names for %d fields", kind, id, len(names), len(fields)))
	}
	m := members{
		id:     id,
		names:  append([]string(nil), names...),
		fields: append([]Field(nil), fields...),
		index:  make(map[string]int, len(names)),
	}
	for i, n := range m.names {
		if n == "" {
			panic(fmt.Sprintf("pvdata: %s %q: empty field name at %d", kind, id, i))
		}
		if m.fields[i] == nil {
			panic(fmt.Sprintf("pvdata: %s %q: field %q is nil", kind, id, n))
		}
		if _, dup := m.index[n]; dup {
			panic(fmt.Sprintf("pvdata: %s %q: duplicate field name %q", kind, id, n))
		}
		m.index[n] = i
	}
	return m
}

// NumFields returns the number of members.
func (m *members) NumFields() int { return len(m.fields) }

// FieldNames returns a copy of the member names in declaration order.
func (m *members) FieldNames() []string { return append([]string(nil), m.names...) }

// Fields returns a copy of the member descriptors in declaration order.
func (m *members) Fields() []Field { return append([]Field(nil), m.fields...) }

// FieldName returns the name of the i-th member.
func (m *members) FieldName(i int) string { return m.names[i] }

// FieldAt returns the i-th member.
func (m *members) FieldAt(i int) Field { return m.fields[i] }

// FieldIndex returns the position of the named member, or -1.
func (m *members) FieldIndex(name string) int {
	if i, ok := m.index[name]; ok {
		return i
	}
	return -1
}

// Field returns the named member, or nil when absent.
func (m *members) Field(name string) Field {
	if i, ok := m.index[name]; ok {
		return m.fields[i]
	}
	return nil
}

func (m *members) dumpMembers(b *strings.Builder, depth int) {
	for i, f := range m.fields {
		f.dump(b, m.names[i], depth)
	}
}

// Structure is an ordered, immutable set of named fields with an identifier.
type Structure struct {
	members
}

// NewStructure creates a structure. An empty id becomes DefaultStructureID.
//
// # Panics:
//   - if names and fields differ in length,
//   - if a name is empty or repeated,
//   - if a field is nil.
func NewStructure(id string, names []string, fields []Field) *Structure {
	if id == "" {
		id = DefaultStructureID
	}
	return &Structure{members: newMembers("structure", id, names, fields)}
}

func (s *Structure) Kind() Kind { return KindStructure }
func (s *Structure) ID() string { return s.id }

func (s *Structure) String() string {
	b := &strings.Builder{}
	s.dump(b, "", 0)
	return b.String()
}

func (s *Structure) dump(b *strings.Builder, name string, depth int) {
	writeLine(b, depth, s.id, name)
	s.dumpMembers(b, depth+1)
}

// FieldAs returns the named member of s when it exists and has type T.
// It returns the zero T otherwise, including for a nil s.
func FieldAs[T Field](s *Structure, name string) T {
	var zero T
	if s == nil {
		return zero
	}
	f, ok := s.Field(name).(T)
	if !ok {
		return zero
	}
	return f
}

// StructureArray describes a variable length array of structures.
type StructureArray struct {
	elem *Structure
}

// NewStructureArray creates an array descriptor of elem.
//
// Panics if elem is nil.
func NewStructureArray(elem *Structure) *StructureArray {
	if elem == nil {
		panic("pvdata: structure array of nil structure")
	}
	return &StructureArray{elem: elem}
}

func (a *StructureArray) Kind() Kind            { return KindStructureArray }
func (a *StructureArray) ID() string            { return a.elem.ID() + structureArraySuffix }
func (a *StructureArray) Structure() *Structure { return a.elem }
func (a *StructureArray) String() string {
	b := &strings.Builder{}
	a.dump(b, "", 0)
	return b.String()
}

func (a *StructureArray) dump(b *strings.Builder, name string, depth int) {
	writeLine(b, depth, a.ID(), name)
	a.elem.dumpMembers(b, depth+1)
}

// Union describes a value that holds at most one of its members at a time.
// A variant union has no members and may hold any field.
type Union struct {
	members
}

// NewUnion creates a regulated union. An empty id becomes DefaultUnionID.
// Panics under the same conditions as NewStructure.
func NewUnion(id string, names []string, fields []Field) *Union {
	if id == "" {
		id = DefaultUnionID
	}
	return &Union{members: newMembers("union", id, names, fields)}
}

var variantUnion = &Union{members: members{id: VariantUnionID, index: map[string]int{}}}

// NewVariantUnion returns the shared variant ("any") union descriptor.
func NewVariantUnion() *Union { return variantUnion }

func (u *Union) Kind() Kind { return KindUnion }
func (u *Union) ID() string { return u.id }

// IsVariant reports whether u accepts any field.
func (u *Union) IsVariant() bool { return len(u.fields) == 0 && u.id == VariantUnionID }

func (u *Union) String() string {
	b := &strings.Builder{}
	u.dump(b, "", 0)
	return b.String()
}

func (u *Union) dump(b *strings.Builder, name string, depth int) {
	writeLine(b, depth, u.id, name)
	u.dumpMembers(b, depth+1)
}

func writeLine(b *strings.Builder, depth int, id, name string) {
	b.WriteString(strings.Repeat(introspectionIndent, depth))
	b.WriteString(id)
	if name != "" {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	b.WriteByte('\n')
}

// Equal reports whether a and b describe the same type: same kind, same
// identifier and, for structures and unions, the same member names and types
// in the same order.
func Equal(a, b Field) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() || a.ID() != b.ID() {
		return false
	}
	switch ta := a.(type) {
	case *Structure:
		return sameMembers(&ta.members, &b.(*Structure).members)
	case *Union:
		return sameMembers(&ta.members, &b.(*Union).members)
	case *StructureArray:
		return Equal(ta.elem, b.(*StructureArray).elem)
	}
	// scalars and scalar arrays are fully described by their ID
	return true
}

// SameLayout is like Equal for structures but ignores the top level
// identifier of a and b.
func SameLayout(a, b *Structure) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return sameMembers(&a.members, &b.members)
}

func sameMembers(a, b *members) bool {
	if len(a.fields) != len(b.fields) {
		return false
	}
	for i := range a.fields {
		if a.names[i] != b.names[i] || !Equal(a.fields[i], b.fields[i]) {
			return false
		}
	}
	return true
}

// ParseFieldType resolves a type string of a scalar ("double") or a scalar
// array ("double[]"), or the variant union ("any").
func ParseFieldType(s string) (Field, error) {
	t := strings.TrimSpace(s)
	if t == VariantUnionID {
		return NewVariantUnion(), nil
	}
	if elem, ok := strings.CutSuffix(t, structureArraySuffix); ok {
		st, err := ParseScalarType(elem)
		if err != nil {
			return nil, err
		}
		return NewScalarArray(st), nil
	}
	st, err := ParseScalarType(t)
	if err != nil {
		return nil, err
	}
	return NewScalar(st), nil
}
