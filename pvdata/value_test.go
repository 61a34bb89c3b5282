package pvdata_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reoring/gont/pvdata"
)

func sampleStructure() *pvdata.Structure {
	return pvdata.NewFieldBuilder().SetID("sample_t").
		AddArray("value", pvdata.Int).
		AddScalar("count", pvdata.UByte).
		AddNestedStructure("codec").
		AddScalar("name", pvdata.String).
		Add("parameters", pvdata.NewVariantUnion()).
		EndNested().
		Add("timeStamp", pvdata.TimeStamp()).
		Add("alarm", pvdata.Alarm()).
		AddStructureArray("items", pvdata.Enumerated()).
		Add("choice", pvdata.NewFieldBuilder().AddArray("intValue", pvdata.Int).AddArray("doubleValue", pvdata.Double).CreateUnion()).
		CreateStructure()
}

func TestNewPVStructure_ZeroValues(t *testing.T) {
	require := require.New(t)

	pv := pvdata.NewPVStructure(sampleStructure())
	require.Len(pv.PVFields(), 7)

	value := pvdata.SubField[*pvdata.PVIntArray](pv, "value")
	require.NotNil(value)
	require.Equal(0, value.Len())

	name := pvdata.SubField[*pvdata.PVString](pv, "codec.name")
	require.NotNil(name)
	require.Equal("", name.Get())
	require.Equal("codec.name", name.FullName())
	require.Equal("name", name.FieldName())

	params := pvdata.SubField[*pvdata.PVUnion](pv, "codec.parameters")
	require.NotNil(params)
	require.Nil(params.Value())
	require.Equal(pvdata.UndefinedIndex, params.Selector())

	items := pvdata.SubField[*pvdata.PVStructureArray](pv, "items")
	require.NotNil(items)
	require.Equal(0, items.Len())
}

func TestSubField_Mismatch(t *testing.T) {
	require := require.New(t)

	pv := pvdata.NewPVStructure(sampleStructure())
	require.Nil(pvdata.SubField[*pvdata.PVDoubleArray](pv, "value"), "wrong element type")
	require.Nil(pvdata.SubField[*pvdata.PVIntArray](pv, "missing"))
	require.Nil(pvdata.SubField[*pvdata.PVString](pv, "value.name"), "descends into a non-structure")
	require.Nil(pvdata.SubField[*pvdata.PVString](nil, "value"))
	require.Nil(pv.SubField("codec.missing"))

	var sa pvdata.PVScalarArray = pvdata.SubField[pvdata.PVScalarArray](pv, "value")
	require.NotNil(sa)
	require.Equal(pvdata.Int, sa.ElementType())
}

func TestScalar_SetAny(t *testing.T) {
	require := require.New(t)

	pv := pvdata.NewPVStructure(sampleStructure())
	count := pvdata.SubField[*pvdata.PVUByte](pv, "count")
	require.NoError(count.SetAny(float64(200)))
	require.Equal(uint8(200), count.Get())
	require.Error(count.SetAny(float64(300)), "overflow")
	require.Error(count.SetAny(1.5), "fraction")
	require.Error(count.SetAny("7"), "string")

	value := pvdata.SubField[*pvdata.PVIntArray](pv, "value")
	require.NoError(value.SetAnySlice([]any{1, int64(2), float64(3)}))
	require.Equal([]int32{1, 2, 3}, value.Get())
	require.Equal([]any{int32(1), int32(2), int32(3)}, value.AnySlice())
	require.Error(value.SetAnySlice([]any{true}))

	value.Put([]int32{9})
	value.Append(10)
	require.Equal([]int32{9, 10}, value.Get())
}

func TestScalar_SetAnyFloat(t *testing.T) {
	require := require.New(t)

	f := pvdata.NewPVField(pvdata.NewScalar(pvdata.Float)).(*pvdata.PVFloat)
	require.NoError(f.SetAny(1.5))
	require.Equal(float32(1.5), f.Get())
	require.NoError(f.SetAny(-math.MaxFloat32))
	require.Error(f.SetAny(1e39), "overflow")
	require.Error(f.SetAny(-1e39), "overflow")
	require.Error(f.SetAny(math.Inf(1)), "infinity")
	require.Equal(float32(-math.MaxFloat32), f.Get(), "failed sets keep the value")

	d := pvdata.NewPVField(pvdata.NewScalar(pvdata.Double)).(*pvdata.PVDouble)
	require.NoError(d.SetAny(1e39))
	require.Error(d.SetAny(math.NaN()), "nan")
}

func TestUnion_SelectAndSet(t *testing.T) {
	require := require.New(t)

	pv := pvdata.NewPVStructure(sampleStructure())
	choice := pvdata.SubField[*pvdata.PVUnion](pv, "choice")

	f, err := choice.Select("doubleValue")
	require.NoError(err)
	require.Equal("doubleValue", choice.SelectedName())
	arr, ok := f.(*pvdata.PVDoubleArray)
	require.True(ok)
	arr.Put([]float64{1.5})
	require.Equal([]float64{1.5}, pvdata.UnionValue[*pvdata.PVDoubleArray](choice).Get())
	require.Nil(pvdata.UnionValue[*pvdata.PVIntArray](choice))

	_, err = choice.Select("nope")
	require.Error(err)

	require.Error(choice.Set("intValue", arr), "type does not match member")
	ints := pvdata.NewPVField(pvdata.NewScalarArray(pvdata.Int))
	require.NoError(choice.Set("intValue", ints))
	require.Equal(0, choice.Selector())

	choice.Clear()
	require.Equal("", choice.SelectedName())
	require.Nil(choice.Value())

	params := pvdata.SubField[*pvdata.PVUnion](pv, "codec.parameters")
	_, err = params.Select("x")
	require.Error(err, "variant unions have no members")
	require.NoError(params.Set("", ints))
	require.Error(params.Set("x", ints))
	require.Same(ints, params.Value())
}

func TestStructureArray(t *testing.T) {
	require := require.New(t)

	pv := pvdata.NewPVStructure(sampleStructure())
	items := pvdata.SubField[*pvdata.PVStructureArray](pv, "items")

	e := items.AppendNew()
	pvdata.SubField[*pvdata.PVInt](e, "index").Put(2)
	require.Equal(1, items.Len())

	require.NoError(items.Append(pvdata.NewPVStructure(pvdata.Enumerated())))
	require.Error(items.Append(pvdata.NewPVStructure(pvdata.Alarm())))
	require.Error(items.Append(nil))
	require.Equal(2, items.Len())
	require.Equal(int32(2), pvdata.SubField[*pvdata.PVInt](items.Get()[0], "index").Get())
}

func TestPVAlarm_Attach(t *testing.T) {
	require := require.New(t)

	pv := pvdata.NewPVStructure(sampleStructure())

	var alarm pvdata.PVAlarm
	_, err := alarm.Get()
	require.ErrorIs(err, pvdata.ErrNotAttached)

	require.False(alarm.Attach(pv.SubField("timeStamp")))
	require.False(alarm.Attach(nil))
	require.True(alarm.Attach(pv.SubField("alarm")))

	require.NoError(alarm.Set(pvdata.AlarmValue{Severity: pvdata.MajorAlarm, Status: pvdata.DeviceStatus, Message: "HIHI"}))
	got, err := alarm.Get()
	require.NoError(err)
	require.Equal(pvdata.MajorAlarm, got.Severity)
	require.Equal("MAJOR", got.Severity.String())
	require.Equal(int32(2), pvdata.SubField[*pvdata.PVInt](pv, "alarm.severity").Get())

	alarm.Detach()
	require.False(alarm.IsAttached())
	require.ErrorIs(alarm.Set(pvdata.AlarmValue{}), pvdata.ErrNotAttached)
}

func TestPVTimeStamp_Attach(t *testing.T) {
	require := require.New(t)

	pv := pvdata.NewPVStructure(sampleStructure())

	var ts pvdata.PVTimeStamp
	require.False(ts.Attach(pv.SubField("alarm")))
	require.True(ts.Attach(pv.SubField("timeStamp")))

	now := time.Unix(1700000000, 123456789)
	require.NoError(ts.Set(pvdata.TimeStampFrom(now)))
	got, err := ts.Get()
	require.NoError(err)
	require.True(now.Equal(got.Time()))
	require.Equal(int64(1700000000), pvdata.SubField[*pvdata.PVLong](pv, "timeStamp.secondsPastEpoch").Get())
}
