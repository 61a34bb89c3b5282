package pvjson_test

import (
	"strings"
	"testing"

	"github.com/reoring/gont"
	"github.com/reoring/gont/nt"
	"github.com/reoring/gont/pvdata"
	"github.com/reoring/gont/pvjson"
)

func TestIntrospection_RoundTrip(t *testing.T) {
	for name, s := range map[string]*pvdata.Structure{
		"multichannel": nt.NewScalarMultiChannelBuilder().AddAlarm().AddTimeStamp().AddSeverity().CreateStructure(),
		"table":        nt.NewTableBuilder().AddColumn("a", pvdata.UInt).AddDescriptor().CreateStructure(),
		"ndarray":      nt.NewNDArrayBuilder().AddDisplay().CreateStructure(),
	} {
		b, err := pvjson.MarshalIntrospection(s)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		got, err := pvjson.UnmarshalStructure(b)
		if err != nil {
			t.Fatalf("%s: unmarshal: %v\n%s", name, err, b)
		}
		if !pvdata.Equal(got, s) {
			t.Fatalf("%s: round trip changed the structure\nwant:\n%s\ngot:\n%s", name, s, got)
		}
	}
}

func TestIntrospection_Format(t *testing.T) {
	b, err := pvjson.MarshalIntrospection(pvdata.TimeStamp())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"kind":"structure","id":"time_t","fields":[{"name":"secondsPastEpoch","type":"long"},{"name":"nanoseconds","type":"int"},{"name":"userTag","type":"int"}]}`
	if string(b) != want {
		t.Fatalf("unexpected encoding\n got=%s\nwant=%s", b, want)
	}
	if b, _ := pvjson.MarshalIntrospection(pvdata.NewScalarArray(pvdata.Short)); string(b) != `"short[]"` {
		t.Fatalf("unexpected scalar array encoding %s", b)
	}
}

func TestIntrospection_Errors(t *testing.T) {
	for _, in := range []string{
		`"quad"`,
		`{"kind":"tree"}`,
		`{"kind":"structure","fields":[{"name":"a","type":"int"},{"name":"a","type":"int"}]}`,
		`{"kind":"structureArray","element":"int"}`,
		`{"kind":"structure","fields":{}}`,
		`{`,
	} {
		if _, err := pvjson.UnmarshalIntrospection([]byte(in)); err == nil {
			t.Fatalf("%s: expected an error", in)
		}
	}
	if _, err := pvjson.UnmarshalStructure([]byte(`"int"`)); err == nil {
		t.Fatalf("a scalar is not a structure")
	}
	if _, err := pvjson.MarshalIntrospection(nil); err == nil {
		t.Fatalf("nil must fail")
	}
}

func TestValue_MarshalOrder(t *testing.T) {
	m := nt.NewScalarMultiChannelBuilder().Value(pvdata.Int).ExcludeIsConnected().AddTimeStamp().Create()
	nt.ScalarMultiChannelValue[*pvdata.PVIntArray](m).Put([]int32{1, -2})
	m.ChannelName().Put([]string{"a", "b"})

	b, err := pvjson.MarshalValue(m.PVStructure())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"value":[1,-2],"channelName":["a","b"],"timeStamp":{"secondsPastEpoch":0,"nanoseconds":0,"userTag":0}}`
	if string(b) != want {
		t.Fatalf("unexpected value\n got=%s\nwant=%s", b, want)
	}
}

func TestValue_RoundTrip(t *testing.T) {
	a := nt.NewNDArrayBuilder().AddDescriptor().Create()
	v, err := a.Value().Select("ubyteValue")
	if err != nil {
		t.Fatal(err)
	}
	v.(*pvdata.PVUByteArray).Put([]uint8{1, 2, 255})
	a.CompressedDataSize().Put(3)
	a.UncompressedDataSize().Put(3)
	pvdata.SubField[*pvdata.PVInt](a.Dimension().AppendNew(), "size").Put(3)
	attr := a.Attribute().AppendNew()
	pvdata.SubField[*pvdata.PVString](attr, "name").Put("gain")
	gain := pvdata.NewPVField(pvdata.NewScalar(pvdata.Double)).(*pvdata.PVDouble)
	gain.Put(1.5)
	if err := pvdata.SubField[*pvdata.PVUnion](attr, "value").Set("", gain); err != nil {
		t.Fatal(err)
	}
	a.Descriptor().Put("frame")

	b, err := pvjson.MarshalValue(a.PVStructure())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"value":{"ubyteValue":[1,2,255]}`) {
		t.Fatalf("regulated union encoding: %s", b)
	}
	if !strings.Contains(string(b), `"value":{"type":"double","value":1.5}`) {
		t.Fatalf("variant union encoding: %s", b)
	}
	if !strings.Contains(string(b), `"parameters":null`) {
		t.Fatalf("empty union encoding: %s", b)
	}

	c := nt.NewNDArrayBuilder().AddDescriptor().Create()
	if err := pvjson.UnmarshalValue(b, c.PVStructure()); err != nil {
		t.Fatal(err)
	}
	if !c.IsValid() {
		t.Fatalf("decoded array should be valid")
	}
	if got := pvdata.UnionValue[*pvdata.PVUByteArray](c.Value()); got == nil || len(got.Get()) != 3 || got.Get()[2] != 255 {
		t.Fatalf("value not decoded: %v", got)
	}
	if c.Descriptor().Get() != "frame" || c.Attribute().Len() != 1 {
		t.Fatalf("members not decoded")
	}
	av := pvdata.SubField[*pvdata.PVUnion](c.Attribute().Get()[0], "value")
	if d := pvdata.UnionValue[*pvdata.PVDouble](av); d == nil || d.Get() != 1.5 {
		t.Fatalf("variant value not decoded")
	}

	again, err := pvjson.MarshalValue(c.PVStructure())
	if err != nil || string(again) != string(b) {
		t.Fatalf("second encoding differs\n got=%s\nwant=%s", again, b)
	}
}

func TestValue_UnmarshalIssues(t *testing.T) {
	cases := []struct {
		in   string
		path string
		code string
	}{
		{`{"labels":"x"}`, "/labels", gont.CodeInvalidType},
		{`{"labels":[1]}`, "/labels", gont.CodeInvalidType},
		{`{"value":{"n":[300]}}`, "/value/n", gont.CodeInvalidValue},
		{`{"value":{"n":[1.5]}}`, "/value/n", gont.CodeInvalidValue},
		{`{"nope":1}`, "/nope", gont.CodeInvalidValue},
		{`{"value":`, "/", gont.CodeParseError},
	}
	for _, tc := range cases {
		tbl := nt.NewTableBuilder().AddColumn("n", pvdata.UByte).Create()
		err := pvjson.UnmarshalValue([]byte(tc.in), tbl.PVStructure())
		iss, ok := gont.AsIssues(err)
		if !ok || len(iss) != 1 {
			t.Fatalf("%s: expected one issue, got %v", tc.in, err)
		}
		if iss[0].Path != tc.path || iss[0].Code != tc.code {
			t.Fatalf("%s: want %s at %s, got %s at %s", tc.in, tc.code, tc.path, iss[0].Code, iss[0].Path)
		}
	}
}

func TestValue_Unions(t *testing.T) {
	a := nt.NewNDArrayBuilder().Create()
	if err := pvjson.UnmarshalValue([]byte(`{"value":{"intValue":[1],"byteValue":[2]}}`), a.PVStructure()); err == nil {
		t.Fatalf("two members must be rejected")
	}
	if err := pvjson.UnmarshalValue([]byte(`{"value":{"stringValue":["x"]}}`), a.PVStructure()); err == nil {
		t.Fatalf("unknown member must be rejected")
	}
	if err := pvjson.UnmarshalValue([]byte(`{"value":{"intValue":[7]}}`), a.PVStructure()); err != nil {
		t.Fatal(err)
	}
	if a.Value().SelectedName() != "intValue" {
		t.Fatalf("member not selected")
	}
	if err := pvjson.UnmarshalValue([]byte(`{"value":null}`), a.PVStructure()); err != nil {
		t.Fatal(err)
	}
	if a.Value().Value() != nil || a.Value().Selector() != pvdata.UndefinedIndex {
		t.Fatalf("null must clear the union")
	}
}

func TestValue_ULong(t *testing.T) {
	s := pvdata.NewFieldBuilder().AddScalar("n", pvdata.ULong).CreateStructure()
	pv := pvdata.NewPVStructure(s)
	if err := pvjson.UnmarshalValue([]byte(`{"n":18446744073709551615}`), pv); err != nil {
		t.Fatal(err)
	}
	if got := pvdata.SubField[*pvdata.PVULong](pv, "n").Get(); got != 18446744073709551615 {
		t.Fatalf("unexpected value %d", got)
	}
	b, err := pvjson.MarshalValueIndent(pv, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "18446744073709551615") {
		t.Fatalf("ulong lost precision: %s", b)
	}
}

func TestValue_FloatOverflow(t *testing.T) {
	s := pvdata.NewFieldBuilder().
		AddScalar("f", pvdata.Float).
		AddArray("fs", pvdata.Float).
		CreateStructure()
	for _, in := range []string{`{"f":1e39}`, `{"f":-3.5e38}`, `{"fs":[1,1e39]}`} {
		pv := pvdata.NewPVStructure(s)
		iss, ok := gont.AsIssues(pvjson.UnmarshalValue([]byte(in), pv))
		if !ok || len(iss) != 1 || iss[0].Code != gont.CodeInvalidValue {
			t.Fatalf("%s: expected one invalid_value issue, got %v", in, iss)
		}
		if _, err := pvjson.MarshalValue(pv); err != nil {
			t.Fatalf("%s: instance must stay encodable: %v", in, err)
		}
	}

	pv := pvdata.NewPVStructure(s)
	if err := pvjson.UnmarshalValue([]byte(`{"f":3.25,"fs":[-1e38]}`), pv); err != nil {
		t.Fatal(err)
	}
	b, err := pvjson.MarshalValue(pv)
	if err != nil {
		t.Fatal(err)
	}
	back := pvdata.NewPVStructure(s)
	if err := pvjson.UnmarshalValue(b, back); err != nil {
		t.Fatalf("re-decoding %s: %v", b, err)
	}
	if got := pvdata.SubField[*pvdata.PVFloat](back, "f").Get(); got != 3.25 {
		t.Fatalf("unexpected value %v", got)
	}
}
