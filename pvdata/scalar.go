package pvdata

import (
	"fmt"
	"strings"
)

// ScalarType enumerates the element types of scalars and scalar arrays.
type ScalarType int

const (
	Boolean ScalarType = iota
	Byte
	Short
	Int
	Long
	UByte
	UShort
	UInt
	ULong
	Float
	Double
	String
)

var scalarTypeNames = [...]string{
	Boolean: "boolean",
	Byte:    "byte",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	UByte:   "ubyte",
	UShort:  "ushort",
	UInt:    "uint",
	ULong:   "ulong",
	Float:   "float",
	Double:  "double",
	String:  "string",
}

// String returns the introspection name ("double", "ubyte", ...).
func (t ScalarType) String() string {
	if t < Boolean || t > String {
		return fmt.Sprintf("ScalarType(%d)", int(t))
	}
	return scalarTypeNames[t]
}

// Valid reports whether t is one of the declared scalar types.
func (t ScalarType) Valid() bool { return t >= Boolean && t <= String }

// IsInteger reports whether t is a signed or unsigned integer type.
func (t ScalarType) IsInteger() bool { return t >= Byte && t <= ULong }

// IsNumeric reports whether t is an integer or floating point type.
func (t ScalarType) IsNumeric() bool { return t >= Byte && t <= Double }

// ElementSize returns the size in bytes of one element of t.
// String has no fixed size and reports 0.
func (t ScalarType) ElementSize() int {
	switch t {
	case Boolean, Byte, UByte:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt, Float:
		return 4
	case Long, ULong, Double:
		return 8
	}
	return 0
}

// ParseScalarType resolves an introspection name into a ScalarType.
func ParseScalarType(name string) (ScalarType, error) {
	n := strings.TrimSpace(name)
	for i, s := range scalarTypeNames {
		if s == n {
			return ScalarType(i), nil
		}
	}
	return 0, fmt.Errorf("pvdata: unknown scalar type %q", name)
}
