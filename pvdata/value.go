package pvdata

import (
	"fmt"
	"strings"
)

// PVField is a mutable value conforming to one introspection descriptor.
type PVField interface {
	// Field returns the introspection descriptor of the value.
	Field() Field
	// FieldName is the member name inside the parent structure, "" at the top.
	FieldName() string
	// FullName is the dotted path from the top level structure.
	FullName() string
	// Parent returns the enclosing structure, nil at the top.
	Parent() *PVStructure

	attach(parent *PVStructure, name string)
}

type pvBase struct {
	parent *PVStructure
	name   string
}

func (b *pvBase) FieldName() string    { return b.name }
func (b *pvBase) Parent() *PVStructure { return b.parent }

func (b *pvBase) FullName() string {
	if b.parent == nil {
		return b.name
	}
	if pn := b.parent.FullName(); pn != "" {
		return pn + "." + b.name
	}
	return b.name
}

func (b *pvBase) attach(parent *PVStructure, name string) {
	b.parent = parent
	b.name = name
}

// Go types backing the scalar types.
type scalarValue interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64 | string
}

// PVScalar is implemented by every PVScalarOf instantiation.
type PVScalar interface {
	PVField
	ScalarType() ScalarType
	// Any returns the value boxed in its Go type.
	Any() any
	// SetAny converts v to the scalar type and stores it.
	SetAny(v any) error
}

// PVScalarArray is implemented by every PVArrayOf instantiation.
type PVScalarArray interface {
	PVField
	ElementType() ScalarType
	Len() int
	// AnySlice returns a copy of the elements boxed in their Go type.
	AnySlice() []any
	// SetAnySlice converts every element and replaces the content.
	SetAnySlice(v []any) error
}

// PVScalarOf holds a single scalar value.
type PVScalarOf[T scalarValue] struct {
	pvBase
	field *Scalar
	value T
}

func (p *PVScalarOf[T]) Field() Field           { return p.field }
func (p *PVScalarOf[T]) ScalarType() ScalarType { return p.field.typ }
func (p *PVScalarOf[T]) Get() T                 { return p.value }
func (p *PVScalarOf[T]) Put(v T)                { p.value = v }
func (p *PVScalarOf[T]) Any() any               { return p.value }

func (p *PVScalarOf[T]) SetAny(v any) error {
	c, err := convertScalar(p.field.typ, v)
	if err != nil {
		return fmt.Errorf("%s: %w", p.FullName(), err)
	}
	p.value = c.(T)
	return nil
}

// PVArrayOf holds a scalar array.
type PVArrayOf[T scalarValue] struct {
	pvBase
	field *ScalarArray
	value []T
}

func (p *PVArrayOf[T]) Field() Field            { return p.field }
func (p *PVArrayOf[T]) ElementType() ScalarType { return p.field.elem }
func (p *PVArrayOf[T]) Len() int                { return len(p.value) }

// Get returns the elements. The slice is shared with p; treat it as
// read-only and use Put to replace the content.
func (p *PVArrayOf[T]) Get() []T { return p.value }

// Put replaces the content with a copy of v.
func (p *PVArrayOf[T]) Put(v []T) { p.value = append([]T(nil), v...) }

// Append adds elements at the end.
func (p *PVArrayOf[T]) Append(v ...T) { p.value = append(p.value, v...) }

func (p *PVArrayOf[T]) AnySlice() []any {
	out := make([]any, len(p.value))
	for i, v := range p.value {
		out[i] = v
	}
	return out
}

func (p *PVArrayOf[T]) SetAnySlice(v []any) error {
	out := make([]T, len(v))
	for i, e := range v {
		c, err := convertScalar(p.field.elem, e)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", p.FullName(), i, err)
		}
		out[i] = c.(T)
	}
	p.value = out
	return nil
}

type (
	PVBoolean = PVScalarOf[bool]
	PVByte    = PVScalarOf[int8]
	PVShort   = PVScalarOf[int16]
	PVInt     = PVScalarOf[int32]
	PVLong    = PVScalarOf[int64]
	PVUByte   = PVScalarOf[uint8]
	PVUShort  = PVScalarOf[uint16]
	PVUInt    = PVScalarOf[uint32]
	PVULong   = PVScalarOf[uint64]
	PVFloat   = PVScalarOf[float32]
	PVDouble  = PVScalarOf[float64]
	PVString  = PVScalarOf[string]

	PVBooleanArray = PVArrayOf[bool]
	PVByteArray    = PVArrayOf[int8]
	PVShortArray   = PVArrayOf[int16]
	PVIntArray     = PVArrayOf[int32]
	PVLongArray    = PVArrayOf[int64]
	PVUByteArray   = PVArrayOf[uint8]
	PVUShortArray  = PVArrayOf[uint16]
	PVUIntArray    = PVArrayOf[uint32]
	PVULongArray   = PVArrayOf[uint64]
	PVFloatArray   = PVArrayOf[float32]
	PVDoubleArray  = PVArrayOf[float64]
	PVStringArray  = PVArrayOf[string]
)

// PVStructure holds one value per member of its Structure.
type PVStructure struct {
	pvBase
	structure *Structure
	fields    []PVField
}

func (s *PVStructure) Field() Field { return s.structure }

// Structure returns the introspection descriptor.
func (s *PVStructure) Structure() *Structure { return s.structure }

// PVFields returns the member values in declaration order.
func (s *PVStructure) PVFields() []PVField { return append([]PVField(nil), s.fields...) }

// SubField resolves a member by name. Dotted names ("codec.name") descend
// into nested structures. It returns nil when s is nil or the member does not
// exist.
func (s *PVStructure) SubField(name string) PVField {
	cur := s
	for cur != nil {
		head, rest, nested := strings.Cut(name, ".")
		i := cur.structure.FieldIndex(head)
		if i < 0 {
			return nil
		}
		if !nested {
			return cur.fields[i]
		}
		cur, _ = cur.fields[i].(*PVStructure)
		name = rest
	}
	return nil
}

// SubField resolves a member of s like (*PVStructure).SubField and returns
// it when it has type T. It returns the zero T when the member is absent or
// has another type.
func SubField[T PVField](s *PVStructure, name string) T {
	var zero T
	if s == nil {
		return zero
	}
	f, ok := s.SubField(name).(T)
	if !ok {
		return zero
	}
	return f
}

// PVStructureArray holds a sequence of structures of one element type.
type PVStructureArray struct {
	pvBase
	field *StructureArray
	value []*PVStructure
}

func (a *PVStructureArray) Field() Field { return a.field }

// StructureArray returns the introspection descriptor.
func (a *PVStructureArray) StructureArray() *StructureArray { return a.field }
func (a *PVStructureArray) Len() int                        { return len(a.value) }

// Get returns the elements; the slice is shared with a.
func (a *PVStructureArray) Get() []*PVStructure { return a.value }

// Clear drops every element.
func (a *PVStructureArray) Clear() { a.value = nil }

// AppendNew appends a zero valued element and returns it.
func (a *PVStructureArray) AppendNew() *PVStructure {
	e := NewPVStructure(a.field.elem)
	a.value = append(a.value, e)
	return e
}

// Append adds elements whose structure equals the array element type.
func (a *PVStructureArray) Append(elems ...*PVStructure) error {
	for i, e := range elems {
		if e == nil || !Equal(e.structure, a.field.elem) {
			return fmt.Errorf("pvdata: %s: element %d does not match %s", a.FullName(), i, a.field.elem.ID())
		}
	}
	a.value = append(a.value, elems...)
	return nil
}

// UndefinedIndex is the selector of a union holding nothing.
const UndefinedIndex = -1

// PVUnion holds at most one value selected from its Union members, or any
// value for a variant union.
type PVUnion struct {
	pvBase
	union    *Union
	selector int
	value    PVField
}

func (u *PVUnion) Field() Field { return u.union }

// Union returns the introspection descriptor.
func (u *PVUnion) Union() *Union { return u.union }

// Selector returns the index of the selected member, UndefinedIndex when
// nothing is selected or the union is a variant.
func (u *PVUnion) Selector() int { return u.selector }

// SelectedName returns the name of the selected member, "" if none.
func (u *PVUnion) SelectedName() string {
	if u.selector == UndefinedIndex {
		return ""
	}
	return u.union.FieldName(u.selector)
}

// Value returns the held value, nil if none.
func (u *PVUnion) Value() PVField { return u.value }

// Select replaces the held value with a zero value of the named member.
func (u *PVUnion) Select(name string) (PVField, error) {
	if u.union.IsVariant() {
		return nil, fmt.Errorf("pvdata: %s: select on variant union", u.FullName())
	}
	i := u.union.FieldIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("pvdata: %s: no union member %q", u.FullName(), name)
	}
	u.selector = i
	u.value = NewPVField(u.union.FieldAt(i))
	return u.value, nil
}

// Set stores v. For a regulated union name selects the member and v must
// match its type; for a variant union name must be empty.
func (u *PVUnion) Set(name string, v PVField) error {
	if u.union.IsVariant() {
		if name != "" {
			return fmt.Errorf("pvdata: %s: variant union takes no member name", u.FullName())
		}
		u.value = v
		return nil
	}
	i := u.union.FieldIndex(name)
	if i < 0 {
		return fmt.Errorf("pvdata: %s: no union member %q", u.FullName(), name)
	}
	if v == nil || !Equal(v.Field(), u.union.FieldAt(i)) {
		return fmt.Errorf("pvdata: %s: value does not match member %q", u.FullName(), name)
	}
	u.selector = i
	u.value = v
	return nil
}

// Clear drops the held value.
func (u *PVUnion) Clear() {
	u.selector = UndefinedIndex
	u.value = nil
}

// UnionValue returns the value held by u when it has type T, or the zero T.
func UnionValue[T PVField](u *PVUnion) T {
	var zero T
	if u == nil {
		return zero
	}
	v, ok := u.value.(T)
	if !ok {
		return zero
	}
	return v
}
