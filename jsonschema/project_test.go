package jsonschema_test

import (
	"errors"
	"reflect"
	"testing"

	j "github.com/goccy/go-json"

	"github.com/reoring/gont/jsonschema"
	"github.com/reoring/gont/nt"
	"github.com/reoring/gont/pvdata"
)

// normalize marshals v to JSON and unmarshals back into interface{} to remove ordering effects.
func normalize(v any) any {
	b, err := j.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	_ = j.Unmarshal(b, &out)
	return out
}

func TestFromField_Scalars(t *testing.T) {
	cases := map[pvdata.ScalarType]map[string]any{
		pvdata.Boolean: {"type": "boolean"},
		pvdata.String:  {"type": "string"},
		pvdata.Double:  {"type": "number"},
		pvdata.UByte:   {"type": "integer", "minimum": 0, "maximum": 255},
		pvdata.Short:   {"type": "integer", "minimum": -32768, "maximum": 32767},
	}
	for st, want := range cases {
		s, err := jsonschema.FromField(pvdata.NewScalar(st))
		if err != nil {
			t.Fatalf("%s: %v", st, err)
		}
		want["$schema"] = jsonschema.Draft
		if got := normalize(s); !reflect.DeepEqual(got, normalize(want)) {
			t.Fatalf("%s schema mismatch\n got=%v\nwant=%v", st, got, normalize(want))
		}
	}
}

func TestFromField_Structure(t *testing.T) {
	s := nt.NewTableBuilder().AddColumn("x", pvdata.Float).AddDescriptor().CreateStructure()
	got, err := jsonschema.FromField(s)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"$schema": jsonschema.Draft,
		"type":    "object",
		"title":   nt.TableURI,
		"properties": map[string]any{
			"labels": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"value": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"x": map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
				},
				"required":             []string{"x"},
				"additionalProperties": false,
			},
			"descriptor": map[string]any{"type": "string"},
		},
		"required":             []string{"descriptor", "labels", "value"},
		"additionalProperties": false,
	}
	if !reflect.DeepEqual(normalize(got), normalize(want)) {
		t.Fatalf("schema mismatch\n got=%v\nwant=%v", normalize(got), normalize(want))
	}
}

func TestFromField_Unions(t *testing.T) {
	s, err := jsonschema.FromField(nt.NewNDArrayBuilder().CreateStructure())
	if err != nil {
		t.Fatal(err)
	}
	value := s.Properties["value"]
	if value == nil || len(value.OneOf) != 12 || value.OneOf[0].Type != "null" {
		t.Fatalf("value should be null or one of 11 arrays: %+v", value)
	}
	if m := value.OneOf[1]; m.Required[0] != "booleanValue" || m.Properties["booleanValue"].Items.Type != "boolean" {
		t.Fatalf("unexpected first member %+v", m)
	}

	params := s.Properties["codec"].Properties["parameters"]
	if len(params.OneOf) != 2 || !reflect.DeepEqual(params.OneOf[1].Required, []string{"type", "value"}) {
		t.Fatalf("variant union should be null or {type, value}: %+v", params)
	}

	dim := s.Properties["dimension"]
	if dim.Type != "array" || dim.Items.Title != nt.DimensionID {
		t.Fatalf("dimension should be an array of %s: %+v", nt.DimensionID, dim)
	}
}

func TestFromField_Nil(t *testing.T) {
	if _, err := jsonschema.FromField(nil); !errors.Is(err, jsonschema.ErrNilField) {
		t.Fatalf("expected ErrNilField, got %v", err)
	}
}
