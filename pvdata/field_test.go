package pvdata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/gont/pvdata"
)

func TestScalarType_Names(t *testing.T) {
	require := require.New(t)

	for st := pvdata.Boolean; st <= pvdata.String; st++ {
		got, err := pvdata.ParseScalarType(st.String())
		require.NoError(err)
		require.Equal(st, got)
	}
	_, err := pvdata.ParseScalarType("complex")
	require.Error(err)

	require.Equal(8, pvdata.Double.ElementSize())
	require.Equal(1, pvdata.Boolean.ElementSize())
	require.Equal(0, pvdata.String.ElementSize())
	require.True(pvdata.ULong.IsInteger())
	require.False(pvdata.Float.IsInteger())
}

func TestNewStructure(t *testing.T) {
	r := require.New(t)

	s := pvdata.NewStructure("my_t",
		[]string{"a", "b", "c"},
		[]pvdata.Field{pvdata.NewScalar(pvdata.Int), pvdata.NewScalarArray(pvdata.String), pvdata.Alarm()})

	r.Equal("my_t", s.ID())
	r.Equal(3, s.NumFields())
	r.Equal([]string{"a", "b", "c"}, s.FieldNames())
	r.Equal(1, s.FieldIndex("b"))
	r.Equal(-1, s.FieldIndex("zz"))
	r.Nil(s.Field("zz"))
	r.Equal("string[]", s.Field("b").ID())

	t.Run("default id", func(t *testing.T) {
		require.Equal(t, pvdata.DefaultStructureID, pvdata.NewStructure("", nil, nil).ID())
	})

	t.Run("panics", func(t *testing.T) {
		require.Panics(t, func() {
			pvdata.NewStructure("", []string{"a", "a"}, []pvdata.Field{pvdata.NewScalar(pvdata.Int), pvdata.NewScalar(pvdata.Int)})
		}, "duplicate name")
		require.Panics(t, func() {
			pvdata.NewStructure("", []string{""}, []pvdata.Field{pvdata.NewScalar(pvdata.Int)})
		}, "empty name")
		require.Panics(t, func() {
			pvdata.NewStructure("", []string{"a"}, []pvdata.Field{nil})
		}, "nil field")
		require.Panics(t, func() {
			pvdata.NewStructure("", []string{"a"}, nil)
		}, "length mismatch")
	})
}

func TestFieldAs(t *testing.T) {
	require := require.New(t)

	s := pvdata.NewFieldBuilder().
		AddArray("value", pvdata.Double).
		AddScalar("descriptor", pvdata.String).
		CreateStructure()

	require.NotNil(pvdata.FieldAs[*pvdata.ScalarArray](s, "value"))
	require.Nil(pvdata.FieldAs[*pvdata.Scalar](s, "value"))
	require.Nil(pvdata.FieldAs[*pvdata.Scalar](s, "missing"))
	require.Nil(pvdata.FieldAs[*pvdata.Scalar](nil, "value"))
	require.Equal(pvdata.String, pvdata.FieldAs[*pvdata.Scalar](s, "descriptor").ScalarType())
}

func TestFieldBuilder_Nested(t *testing.T) {
	require := require.New(t)

	fb := pvdata.NewFieldBuilder()
	u := fb.AddArray("intValue", pvdata.Int).AddArray("doubleValue", pvdata.Double).CreateUnion()
	require.Equal(pvdata.DefaultUnionID, u.ID())
	require.Equal(2, u.NumFields())

	// the builder was reset by CreateUnion
	s := fb.SetID("outer_t").
		Add("value", u).
		AddNestedStructure("codec").
		SetID("codec_t").
		AddScalar("name", pvdata.String).
		Add("parameters", pvdata.NewVariantUnion()).
		EndNested().
		AddNestedStructureArray("dimension").
		AddScalar("size", pvdata.Int).
		EndNested().
		CreateStructure()

	require.Equal("outer_t", s.ID())
	require.Equal([]string{"value", "codec", "dimension"}, s.FieldNames())
	codec := pvdata.FieldAs[*pvdata.Structure](s, "codec")
	require.NotNil(codec)
	require.Equal("codec_t", codec.ID())
	require.True(pvdata.FieldAs[*pvdata.Union](codec, "parameters").IsVariant())
	dim := pvdata.FieldAs[*pvdata.StructureArray](s, "dimension")
	require.NotNil(dim)
	require.Equal("structure[]", dim.ID())

	require.Panics(func() { pvdata.NewFieldBuilder().EndNested() })
	require.Panics(func() { pvdata.NewFieldBuilder().AddNestedStructure("x").CreateStructure() })
	require.Panics(func() { pvdata.NewFieldBuilder().Add("x", nil) })
}

func TestEqual(t *testing.T) {
	require := require.New(t)

	a := pvdata.NewFieldBuilder().SetID("x_t").AddScalar("a", pvdata.Int).CreateStructure()
	b := pvdata.NewFieldBuilder().SetID("x_t").AddScalar("a", pvdata.Int).CreateStructure()
	c := pvdata.NewFieldBuilder().SetID("y_t").AddScalar("a", pvdata.Int).CreateStructure()
	d := pvdata.NewFieldBuilder().SetID("x_t").AddScalar("a", pvdata.Long).CreateStructure()

	require.True(pvdata.Equal(a, b))
	require.False(pvdata.Equal(a, c))
	require.True(pvdata.SameLayout(a, c))
	require.False(pvdata.Equal(a, d))
	require.False(pvdata.Equal(a, nil))
	require.True(pvdata.Equal(nil, nil))
	require.True(pvdata.Equal(pvdata.NewScalarArray(pvdata.Int), pvdata.NewScalarArray(pvdata.Int)))
	require.False(pvdata.Equal(pvdata.NewScalarArray(pvdata.Int), pvdata.NewScalar(pvdata.Int)))
}

func TestParseFieldType(t *testing.T) {
	require := require.New(t)

	f, err := pvdata.ParseFieldType("int[]")
	require.NoError(err)
	require.Equal(pvdata.KindScalarArray, f.Kind())

	f, err = pvdata.ParseFieldType(" double ")
	require.NoError(err)
	require.Equal("double", f.ID())

	f, err = pvdata.ParseFieldType("any")
	require.NoError(err)
	require.Equal(pvdata.KindUnion, f.Kind())

	_, err = pvdata.ParseFieldType("widget[]")
	require.Error(err)
}

func TestStructure_String(t *testing.T) {
	s := pvdata.NewFieldBuilder().SetID("top_t").
		AddArray("value", pvdata.Double).
		Add("alarm", pvdata.Alarm()).
		CreateStructure()

	want := "top_t\n" +
		"    double[] value\n" +
		"    alarm_t alarm\n" +
		"        int severity\n" +
		"        int status\n" +
		"        string message\n"
	require.Equal(t, want, s.String())
}

func TestStandardPredicates(t *testing.T) {
	require := require.New(t)

	require.True(pvdata.IsAlarm(pvdata.Alarm()))
	require.True(pvdata.IsTimeStamp(pvdata.TimeStamp()))
	require.True(pvdata.IsDisplay(pvdata.Display()))
	require.True(pvdata.IsControl(pvdata.Control()))
	require.True(pvdata.IsEnumerated(pvdata.Enumerated()))

	require.False(pvdata.IsAlarm(pvdata.TimeStamp()))
	require.False(pvdata.IsTimeStamp(pvdata.NewScalar(pvdata.Long)))
	require.False(pvdata.IsAlarm(nil))

	// the identifier is not part of the shape
	renamed := pvdata.NewFieldBuilder().SetID("myAlarm").
		AddScalar("severity", pvdata.Int).
		AddScalar("status", pvdata.Int).
		AddScalar("message", pvdata.String).
		CreateStructure()
	require.True(pvdata.IsAlarm(renamed))

	reordered := pvdata.NewFieldBuilder().SetID(pvdata.AlarmID).
		AddScalar("status", pvdata.Int).
		AddScalar("severity", pvdata.Int).
		AddScalar("message", pvdata.String).
		CreateStructure()
	require.False(pvdata.IsAlarm(reordered))

	s, ok := pvdata.StandardByID(pvdata.DisplayID)
	require.True(ok)
	require.Same(pvdata.Display(), s)
	_, ok = pvdata.StandardByID("nope_t")
	require.False(ok)
}
