package pvdata

import "fmt"

// FieldBuilder assembles structures and unions member by member.
//
// Create* methods return the result and reset the builder so it can be
// reused. Nested structures are opened with AddNestedStructure and closed
// with EndNested, which returns the parent builder.
//
// A FieldBuilder is not safe for concurrent use.
type FieldBuilder struct {
	id     string
	names  []string
	fields []Field

	parent     *FieldBuilder
	nestedName string
	nestedKind Kind
	nestedArr  bool
}

// NewFieldBuilder returns an empty builder.
func NewFieldBuilder() *FieldBuilder { return &FieldBuilder{} }

// SetID sets the identifier of the next created structure or union.
func (b *FieldBuilder) SetID(id string) *FieldBuilder {
	b.id = id
	return b
}

// Add appends a member of arbitrary type.
//
// Panics if f is nil.
func (b *FieldBuilder) Add(name string, f Field) *FieldBuilder {
	if f == nil {
		panic(fmt.Sprintf("pvdata: field builder: nil field for %q", name))
	}
	b.names = append(b.names, name)
	b.fields = append(b.fields, f)
	return b
}

// AddScalar appends a scalar member of type t.
func (b *FieldBuilder) AddScalar(name string, t ScalarType) *FieldBuilder {
	return b.Add(name, NewScalar(t))
}

// AddArray appends a scalar array member of element type t.
func (b *FieldBuilder) AddArray(name string, t ScalarType) *FieldBuilder {
	return b.Add(name, NewScalarArray(t))
}

// AddStructureArray appends an array member whose elements are s.
func (b *FieldBuilder) AddStructureArray(name string, s *Structure) *FieldBuilder {
	return b.Add(name, NewStructureArray(s))
}

// AddNestedStructure opens a nested structure member and returns its
// builder. Close it with EndNested.
func (b *FieldBuilder) AddNestedStructure(name string) *FieldBuilder {
	return &FieldBuilder{parent: b, nestedName: name, nestedKind: KindStructure}
}

// AddNestedStructureArray opens a nested structure used as the element type
// of an array member.
func (b *FieldBuilder) AddNestedStructureArray(name string) *FieldBuilder {
	return &FieldBuilder{parent: b, nestedName: name, nestedKind: KindStructure, nestedArr: true}
}

// AddNestedUnion opens a nested union member.
func (b *FieldBuilder) AddNestedUnion(name string) *FieldBuilder {
	return &FieldBuilder{parent: b, nestedName: name, nestedKind: KindUnion}
}

// EndNested closes a nested member, adds it to the parent and returns the
// parent builder.
//
// Panics if b was not opened by one of the AddNested* methods.
func (b *FieldBuilder) EndNested() *FieldBuilder {
	if b.parent == nil {
		panic("pvdata: field builder: EndNested without AddNested")
	}
	var f Field
	if b.nestedKind == KindUnion {
		f = NewUnion(b.id, b.names, b.fields)
	} else {
		s := NewStructure(b.id, b.names, b.fields)
		f = s
		if b.nestedArr {
			f = NewStructureArray(s)
		}
	}
	return b.parent.Add(b.nestedName, f)
}

// CreateStructure builds the structure and resets the builder.
func (b *FieldBuilder) CreateStructure() *Structure {
	b.mustBeTop()
	s := NewStructure(b.id, b.names, b.fields)
	b.reset()
	return s
}

// CreateUnion builds a regulated union and resets the builder.
func (b *FieldBuilder) CreateUnion() *Union {
	b.mustBeTop()
	u := NewUnion(b.id, b.names, b.fields)
	b.reset()
	return u
}

func (b *FieldBuilder) mustBeTop() {
	if b.parent != nil {
		panic(fmt.Sprintf("pvdata: field builder: nested %q not closed", b.nestedName))
	}
}

func (b *FieldBuilder) reset() {
	b.id = ""
	b.names = nil
	b.fields = nil
}
