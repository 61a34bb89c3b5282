package pvjson

import (
	"bytes"
	"fmt"

	j "github.com/goccy/go-json"

	"github.com/reoring/gont/pvdata"
)

// Introspection kinds of the object form.
const (
	kindStructure      = "structure"
	kindStructureArray = "structureArray"
	kindUnion          = "union"
)

// MarshalIntrospection encodes the descriptor f. Scalars, scalar arrays and
// the variant union are encoded as their type name ("double", "int[]",
// "any"); structures, structure arrays and regulated unions as objects:
//
//	{"kind":"structure","id":"time_t","fields":[{"name":"userTag","type":"int"}]}
//	{"kind":"structureArray","element":{...}}
//	{"kind":"union","id":"union","fields":[...]}
func MarshalIntrospection(f pvdata.Field) ([]byte, error) {
	v, err := introspect(f)
	if err != nil {
		return nil, err
	}
	return j.Marshal(v)
}

// UnmarshalIntrospection decodes a descriptor written by MarshalIntrospection.
func UnmarshalIntrospection(data []byte) (pvdata.Field, error) {
	v, err := decode(data)
	if err != nil {
		return nil, err
	}
	return fieldOf(v)
}

// UnmarshalStructure decodes a descriptor that must be a structure.
func UnmarshalStructure(data []byte) (*pvdata.Structure, error) {
	f, err := UnmarshalIntrospection(data)
	if err != nil {
		return nil, err
	}
	s, ok := f.(*pvdata.Structure)
	if !ok {
		return nil, fmt.Errorf("pvjson: %s is not a structure", f.ID())
	}
	return s, nil
}

func decode(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("pvjson: %w", err)
	}
	return v, nil
}

func introspect(f pvdata.Field) (any, error) {
	switch t := f.(type) {
	case nil:
		return nil, fmt.Errorf("pvjson: nil field")
	case *pvdata.Scalar, *pvdata.ScalarArray:
		return f.ID(), nil
	case *pvdata.Structure:
		fields, err := introspectMembers(t.FieldNames(), t.Fields())
		if err != nil {
			return nil, err
		}
		return newObject("kind", kindStructure, "id", t.ID(), "fields", fields), nil
	case *pvdata.StructureArray:
		elem, err := introspect(t.Structure())
		if err != nil {
			return nil, err
		}
		return newObject("kind", kindStructureArray, "element", elem), nil
	case *pvdata.Union:
		if t.IsVariant() {
			return pvdata.VariantUnionID, nil
		}
		fields, err := introspectMembers(t.FieldNames(), t.Fields())
		if err != nil {
			return nil, err
		}
		return newObject("kind", kindUnion, "id", t.ID(), "fields", fields), nil
	}
	return nil, fmt.Errorf("pvjson: unsupported field %T", f)
}

func introspectMembers(names []string, fields []pvdata.Field) ([]any, error) {
	out := make([]any, len(names))
	for i, n := range names {
		v, err := introspect(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n, err)
		}
		out[i] = newObject("name", n, "type", v)
	}
	return out, nil
}

func fieldOf(v any) (pvdata.Field, error) {
	switch t := v.(type) {
	case string:
		f, err := pvdata.ParseFieldType(t)
		if err != nil {
			return nil, fmt.Errorf("pvjson: %w", err)
		}
		return f, nil
	case map[string]any:
		kind, _ := t["kind"].(string)
		id, _ := t["id"].(string)
		switch kind {
		case kindStructure:
			names, fields, err := membersOf(t["fields"])
			if err != nil {
				return nil, err
			}
			st, err := newStructure(id, names, fields)
			if err != nil {
				return nil, err
			}
			return st, nil
		case kindStructureArray:
			elem, err := fieldOf(t["element"])
			if err != nil {
				return nil, err
			}
			s, ok := elem.(*pvdata.Structure)
			if !ok {
				return nil, fmt.Errorf("pvjson: structure array of %s", elem.ID())
			}
			return pvdata.NewStructureArray(s), nil
		case kindUnion:
			names, fields, err := membersOf(t["fields"])
			if err != nil {
				return nil, err
			}
			u, err := newUnion(id, names, fields)
			if err != nil {
				return nil, err
			}
			return u, nil
		}
		return nil, fmt.Errorf("pvjson: unknown kind %q", kind)
	}
	return nil, fmt.Errorf("pvjson: cannot decode a field from %T", v)
}

func membersOf(v any) ([]string, []pvdata.Field, error) {
	if v == nil {
		return nil, nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("pvjson: fields must be an array, got %T", v)
	}
	names := make([]string, len(list))
	fields := make([]pvdata.Field, len(list))
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("pvjson: field %d must be an object, got %T", i, e)
		}
		name, _ := m["name"].(string)
		f, err := fieldOf(m["type"])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		names[i] = name
		fields[i] = f
	}
	return names, fields, nil
}

// newStructure reports the panics of pvdata.NewStructure (empty or repeated
// names) as errors.
func newStructure(id string, names []string, fields []pvdata.Field) (s *pvdata.Structure, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pvjson: %v", r)
		}
	}()
	return pvdata.NewStructure(id, names, fields), nil
}

func newUnion(id string, names []string, fields []pvdata.Field) (u *pvdata.Union, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pvjson: %v", r)
		}
	}()
	return pvdata.NewUnion(id, names, fields), nil
}
