package pvdata

import (
	"fmt"
	"math"
	"strconv"
)

// NewPVStructure allocates a zero valued instance of s: numbers are 0,
// strings empty, arrays empty, unions hold nothing.
//
// Panics if s is nil.
func NewPVStructure(s *Structure) *PVStructure {
	if s == nil {
		panic("pvdata: NewPVStructure of nil structure")
	}
	pv := &PVStructure{structure: s, fields: make([]PVField, len(s.fields))}
	for i, f := range s.fields {
		c := NewPVField(f)
		c.attach(pv, s.names[i])
		pv.fields[i] = c
	}
	return pv
}

// NewPVField allocates a zero valued instance of any descriptor.
//
// Panics if f is nil or of an unknown kind.
func NewPVField(f Field) PVField {
	switch t := f.(type) {
	case *Scalar:
		return newPVScalar(t)
	case *ScalarArray:
		return newPVScalarArray(t)
	case *Structure:
		return NewPVStructure(t)
	case *StructureArray:
		return &PVStructureArray{field: t}
	case *Union:
		return &PVUnion{union: t, selector: UndefinedIndex}
	}
	panic(fmt.Sprintf("pvdata: cannot instantiate %T", f))
}

func newPVScalar(f *Scalar) PVScalar {
	switch f.typ {
	case Boolean:
		return &PVBoolean{field: f}
	case Byte:
		return &PVByte{field: f}
	case Short:
		return &PVShort{field: f}
	case Int:
		return &PVInt{field: f}
	case Long:
		return &PVLong{field: f}
	case UByte:
		return &PVUByte{field: f}
	case UShort:
		return &PVUShort{field: f}
	case UInt:
		return &PVUInt{field: f}
	case ULong:
		return &PVULong{field: f}
	case Float:
		return &PVFloat{field: f}
	case Double:
		return &PVDouble{field: f}
	default:
		return &PVString{field: f}
	}
}

func newPVScalarArray(f *ScalarArray) PVScalarArray {
	switch f.elem {
	case Boolean:
		return &PVBooleanArray{field: f}
	case Byte:
		return &PVByteArray{field: f}
	case Short:
		return &PVShortArray{field: f}
	case Int:
		return &PVIntArray{field: f}
	case Long:
		return &PVLongArray{field: f}
	case UByte:
		return &PVUByteArray{field: f}
	case UShort:
		return &PVUShortArray{field: f}
	case UInt:
		return &PVUIntArray{field: f}
	case ULong:
		return &PVULongArray{field: f}
	case Float:
		return &PVFloatArray{field: f}
	case Double:
		return &PVDoubleArray{field: f}
	default:
		return &PVStringArray{field: f}
	}
}

// number is satisfied by json.Number of encoding/json and go-json.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// convertScalar converts v into the Go type backing t.
func convertScalar(t ScalarType, v any) (any, error) {
	switch t {
	case Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("cannot use %T as boolean", v)
		}
		return b, nil
	case String:
		switch s := v.(type) {
		case string:
			return s, nil
		case fmt.Stringer:
			return s.String(), nil
		}
		return nil, fmt.Errorf("cannot use %T as string", v)
	case Float, Double:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%v is not a finite number", f)
		}
		if t == Float {
			if math.Abs(f) > math.MaxFloat32 {
				return nil, fmt.Errorf("%v overflows %v", f, t)
			}
			return float32(f), nil
		}
		return f, nil
	}
	if !t.IsInteger() {
		return nil, fmt.Errorf("invalid scalar type %v", t)
	}
	if t == ULong {
		switch n := v.(type) {
		case uint64:
			return n, nil
		case number:
			u, err := strconv.ParseUint(n.String(), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s is not an ulong: %w", n.String(), err)
			}
			return u, nil
		}
	}
	i, err := toInt(v)
	if err != nil {
		return nil, err
	}
	var lo, hi float64
	switch t {
	case Byte:
		lo, hi = math.MinInt8, math.MaxInt8
	case Short:
		lo, hi = math.MinInt16, math.MaxInt16
	case Int:
		lo, hi = math.MinInt32, math.MaxInt32
	case Long:
		return i, nil
	case UByte:
		lo, hi = 0, math.MaxUint8
	case UShort:
		lo, hi = 0, math.MaxUint16
	case UInt:
		lo, hi = 0, math.MaxUint32
	case ULong:
		if i < 0 {
			return nil, fmt.Errorf("%d overflows %v", i, t)
		}
		return uint64(i), nil
	}
	if f := float64(i); f < lo || f > hi {
		return nil, fmt.Errorf("%d overflows %v", i, t)
	}
	switch t {
	case Byte:
		return int8(i), nil
	case Short:
		return int16(i), nil
	case Int:
		return int32(i), nil
	case UByte:
		return uint8(i), nil
	case UShort:
		return uint16(i), nil
	default:
		return uint32(i), nil
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case number:
		return n.Float64()
	}
	return 0, fmt.Errorf("cannot use %T as a number", v)
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows long", n)
		}
		return int64(n), nil
	case float32, float64:
		f, _ := toFloat(n)
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an integer", f)
		}
		return int64(f), nil
	case number:
		return n.Int64()
	}
	return 0, fmt.Errorf("cannot use %T as an integer", v)
}
