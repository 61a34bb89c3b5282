package jsonschema

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/reoring/gont/pvdata"
)

// ErrNilField is returned by FromField for a nil descriptor.
var ErrNilField = errors.New("jsonschema: nil field")

// FromField projects f onto the JSON Schema of its value encoding (see
// package pvjson): structures are closed objects, arrays are arrays, integer
// scalars carry their range, regulated unions are a oneOf of single member
// objects and variant unions an object with "type" and "value". Empty unions
// encode as null.
func FromField(f pvdata.Field) (*Schema, error) {
	s, err := project(f)
	if err != nil {
		return nil, err
	}
	s.SchemaURI = Draft
	return s, nil
}

func project(f pvdata.Field) (*Schema, error) {
	switch t := f.(type) {
	case nil:
		return nil, ErrNilField
	case *pvdata.Scalar:
		return scalar(t.ScalarType()), nil
	case *pvdata.ScalarArray:
		return &Schema{Type: "array", Items: scalar(t.ElementType())}, nil
	case *pvdata.Structure:
		return structure(t)
	case *pvdata.StructureArray:
		es, err := structure(t.Structure())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: es}, nil
	case *pvdata.Union:
		return union(t)
	}
	return nil, fmt.Errorf("jsonschema: unsupported field %T", f)
}

func structure(s *pvdata.Structure) (*Schema, error) {
	props := make(map[string]*Schema, s.NumFields())
	for i := 0; i < s.NumFields(); i++ {
		ps, err := project(s.FieldAt(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.FieldName(i), err)
		}
		props[s.FieldName(i)] = ps
	}
	// Required list (sorted for deterministic output)
	req := s.FieldNames()
	sort.Strings(req)
	out := &Schema{Type: "object", Properties: props, AdditionalProperties: false}
	if len(req) > 0 {
		out.Required = req
	}
	if s.ID() != pvdata.DefaultStructureID {
		out.Title = s.ID()
	}
	return out, nil
}

func union(u *pvdata.Union) (*Schema, error) {
	out := &Schema{OneOf: []*Schema{{Type: "null"}}}
	if u.IsVariant() {
		out.OneOf = append(out.OneOf, &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"type":  {},
				"value": {},
			},
			Required:             []string{"type", "value"},
			AdditionalProperties: false,
		})
		return out, nil
	}
	for i := 0; i < u.NumFields(); i++ {
		ms, err := project(u.FieldAt(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.FieldName(i), err)
		}
		name := u.FieldName(i)
		out.OneOf = append(out.OneOf, &Schema{
			Type:                 "object",
			Properties:           map[string]*Schema{name: ms},
			Required:             []string{name},
			AdditionalProperties: false,
		})
	}
	if u.ID() != pvdata.DefaultUnionID {
		out.Title = u.ID()
	}
	return out, nil
}

func scalar(t pvdata.ScalarType) *Schema {
	switch t {
	case pvdata.Boolean:
		return &Schema{Type: "boolean"}
	case pvdata.String:
		return &Schema{Type: "string"}
	case pvdata.Float, pvdata.Double:
		return &Schema{Type: "number"}
	}
	lo, hi := integerRange(t)
	return &Schema{Type: "integer", Minimum: &lo, Maximum: &hi}
}

func integerRange(t pvdata.ScalarType) (float64, float64) {
	switch t {
	case pvdata.Byte:
		return math.MinInt8, math.MaxInt8
	case pvdata.Short:
		return math.MinInt16, math.MaxInt16
	case pvdata.Int:
		return math.MinInt32, math.MaxInt32
	case pvdata.UByte:
		return 0, math.MaxUint8
	case pvdata.UShort:
		return 0, math.MaxUint16
	case pvdata.UInt:
		return 0, math.MaxUint32
	case pvdata.ULong:
		return 0, math.MaxUint64
	}
	return math.MinInt64, math.MaxInt64
}
