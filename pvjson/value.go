package pvjson

import (
	"fmt"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/gont"
	"github.com/reoring/gont/pvdata"
)

// MarshalValue encodes the content of pv as a JSON object whose keys follow
// the member order of its structure. Scalars and arrays map onto JSON
// values, structure arrays onto arrays of objects. A regulated union holding
// a value is encoded as {"<member>": value}, a variant union as
// {"type": <introspection>, "value": value}; an empty union is null.
func MarshalValue(pv *pvdata.PVStructure) ([]byte, error) {
	if pv == nil {
		return nil, fmt.Errorf("pvjson: nil instance")
	}
	v, err := valueOf(pv)
	if err != nil {
		return nil, err
	}
	return j.Marshal(v)
}

// MarshalValueIndent is MarshalValue with indented output.
func MarshalValueIndent(pv *pvdata.PVStructure, prefix, indent string) ([]byte, error) {
	if pv == nil {
		return nil, fmt.Errorf("pvjson: nil instance")
	}
	v, err := valueOf(pv)
	if err != nil {
		return nil, err
	}
	return j.MarshalIndent(v, prefix, indent)
}

func valueOf(f pvdata.PVField) (any, error) {
	switch t := f.(type) {
	case *pvdata.PVStructure:
		names := t.Structure().FieldNames()
		o := &object{}
		for i, c := range t.PVFields() {
			v, err := valueOf(c)
			if err != nil {
				return nil, err
			}
			o.set(names[i], v)
		}
		return o, nil
	case pvdata.PVScalar:
		return t.Any(), nil
	case pvdata.PVScalarArray:
		return t.AnySlice(), nil
	case *pvdata.PVStructureArray:
		out := make([]any, 0, t.Len())
		for _, e := range t.Get() {
			v, err := valueOf(e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *pvdata.PVUnion:
		if t.Value() == nil {
			return nil, nil
		}
		v, err := valueOf(t.Value())
		if err != nil {
			return nil, err
		}
		if t.Union().IsVariant() {
			typ, err := introspect(t.Value().Field())
			if err != nil {
				return nil, err
			}
			return newObject("type", typ, "value", v), nil
		}
		return newObject(t.SelectedName(), v), nil
	}
	return nil, fmt.Errorf("pvjson: unsupported value %T", f)
}

// UnmarshalValue stores the JSON object data into pv. Members missing from
// data keep their value; unknown members are rejected. Failures are
// reported as gont.Issues located by JSON Pointer.
func UnmarshalValue(data []byte, pv *pvdata.PVStructure) error {
	if pv == nil {
		return gont.Issues{gont.Root().Issue(gont.CodeNilInput, "instance is nil")}
	}
	v, err := decode(data)
	if err != nil {
		return gont.Issues{gont.Root().Issue(gont.CodeParseError, err.Error())}
	}
	if iss := assign(gont.Root(), pv, v); len(iss) > 0 {
		return iss
	}
	return nil
}

func assign(at gont.PathRef, f pvdata.PVField, v any) gont.Issues {
	invalid := func(err error) gont.Issues {
		return gont.Issues{at.Issue(gont.CodeInvalidValue, err.Error())}
	}
	mismatch := func(expected string) gont.Issues {
		return gont.Issues{at.Issue(gont.CodeInvalidType, "expected "+expected, "expected", expected, "got", jsonType(v))}
	}
	switch t := f.(type) {
	case *pvdata.PVStructure:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch("object")
		}
		for k := range m {
			if t.Structure().Field(k) == nil {
				return gont.Issues{at.Field(k).Issue(gont.CodeInvalidValue, "unknown member")}
			}
		}
		for _, c := range t.PVFields() {
			cv, ok := m[c.FieldName()]
			if !ok {
				continue
			}
			if iss := assign(at.Field(c.FieldName()), c, cv); len(iss) > 0 {
				return iss
			}
		}
		return nil
	case pvdata.PVScalar:
		if t.ScalarType() == pvdata.String {
			if _, ok := v.(string); !ok {
				return mismatch("string")
			}
		}
		if err := t.SetAny(v); err != nil {
			return invalid(err)
		}
		return nil
	case pvdata.PVScalarArray:
		list, ok := v.([]any)
		if !ok {
			return mismatch("array")
		}
		if t.ElementType() == pvdata.String {
			for _, e := range list {
				if _, ok := e.(string); !ok {
					return mismatch("array of strings")
				}
			}
		}
		if err := t.SetAnySlice(list); err != nil {
			return invalid(err)
		}
		return nil
	case *pvdata.PVStructureArray:
		list, ok := v.([]any)
		if !ok {
			return mismatch("array")
		}
		t.Clear()
		for i, e := range list {
			if iss := assign(at.Field(strconv.Itoa(i)), t.AppendNew(), e); len(iss) > 0 {
				return iss
			}
		}
		return nil
	case *pvdata.PVUnion:
		if v == nil {
			t.Clear()
			return nil
		}
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch("object or null")
		}
		if t.Union().IsVariant() {
			typ, err := fieldOf(m["type"])
			if err != nil {
				return gont.Issues{at.Field("type").Issue(gont.CodeInvalidValue, err.Error())}
			}
			nv := pvdata.NewPVField(typ)
			if iss := assign(at.Field("value"), nv, m["value"]); len(iss) > 0 {
				return iss
			}
			if err := t.Set("", nv); err != nil {
				return invalid(err)
			}
			return nil
		}
		if len(m) != 1 {
			return gont.Issues{at.Issue(gont.CodeInvalidValue, "a union holds exactly one member", "got", strconv.Itoa(len(m))+" members")}
		}
		for name, mv := range m {
			nv, err := t.Select(name)
			if err != nil {
				return gont.Issues{at.Field(name).Issue(gont.CodeInvalidValue, err.Error())}
			}
			return assign(at.Field(name), nv, mv)
		}
	}
	return gont.Issues{at.Issue(gont.CodeInvalidType, fmt.Sprintf("unsupported value %T", f))}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case j.Number:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
