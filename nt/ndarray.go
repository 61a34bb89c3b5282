package nt

import (
	"github.com/reoring/gont"
	"github.com/reoring/gont/pvdata"
)

// Identifiers used by NTNDArray.
const (
	NDArrayURI   = "uri:ev4:nt/2014/pwd:NTNDArray"
	AttributeURI = "uri:ev4:nt/2014/pwd:NTAttribute"
	CodecID      = "codec_t"
	DimensionID  = "dimension_t"
)

var ndValueUnion = func() *pvdata.Union {
	fb := pvdata.NewFieldBuilder()
	for t := pvdata.Boolean; t < pvdata.String; t++ {
		fb.AddArray(t.String()+"Value", t)
	}
	return fb.CreateUnion()
}()

var ndCodec = pvdata.NewFieldBuilder().SetID(CodecID).
	AddScalar("name", pvdata.String).
	Add("parameters", pvdata.NewVariantUnion()).
	CreateStructure()

var ndDimension = pvdata.NewFieldBuilder().SetID(DimensionID).
	AddScalar("size", pvdata.Int).
	AddScalar("offset", pvdata.Int).
	AddScalar("fullSize", pvdata.Int).
	AddScalar("binning", pvdata.Int).
	AddScalar("reverse", pvdata.Boolean).
	CreateStructure()

var ndAttribute = pvdata.NewFieldBuilder().SetID(AttributeURI).
	AddScalar("name", pvdata.String).
	Add("value", pvdata.NewVariantUnion()).
	AddScalar("descriptor", pvdata.String).
	AddScalar("sourceType", pvdata.Int).
	AddScalar("source", pvdata.String).
	CreateStructure()

// NDArrayValue returns the union of the value member: one array member per
// numeric and boolean element type, named "<type>Value".
func NDArrayValue() *pvdata.Union { return ndValueUnion }

// Codec returns the codec_t structure.
func Codec() *pvdata.Structure { return ndCodec }

// Dimension returns the dimension_t structure.
func Dimension() *pvdata.Structure { return ndDimension }

// Attribute returns the NTAttribute structure used by the attribute member.
func Attribute() *pvdata.Structure { return ndAttribute }

// NDArrayBuilder assembles NTNDArray structures.
type NDArrayBuilder struct {
	descriptor bool
	timeStamp  bool
	alarm      bool
	display    bool

	extras extras
}

// NewNDArrayBuilder returns a builder with every optional member off.
func NewNDArrayBuilder() *NDArrayBuilder { return &NDArrayBuilder{} }

// AddDescriptor adds the descriptor string.
func (b *NDArrayBuilder) AddDescriptor() *NDArrayBuilder {
	b.descriptor = true
	return b
}

// AddTimeStamp adds the time_t member.
func (b *NDArrayBuilder) AddTimeStamp() *NDArrayBuilder {
	b.timeStamp = true
	return b
}

// AddAlarm adds the alarm_t member.
func (b *NDArrayBuilder) AddAlarm() *NDArrayBuilder {
	b.alarm = true
	return b
}

// AddDisplay adds the display_t member.
func (b *NDArrayBuilder) AddDisplay() *NDArrayBuilder {
	b.display = true
	return b
}

// Add appends an extra member after the standard ones.
//
// Panics if f is nil.
func (b *NDArrayBuilder) Add(name string, f pvdata.Field) *NDArrayBuilder {
	b.extras.add(name, f)
	return b
}

// CreateStructure returns the structure and resets the builder, also when
// it panics on a repeated member name.
func (b *NDArrayBuilder) CreateStructure() *pvdata.Structure {
	defer func() { *b = NDArrayBuilder{} }()
	fb := pvdata.NewFieldBuilder().SetID(NDArrayURI).
		Add("value", ndValueUnion).
		Add("codec", ndCodec).
		AddScalar("compressedSize", pvdata.Long).
		AddScalar("uncompressedSize", pvdata.Long).
		AddStructureArray("dimension", ndDimension).
		AddScalar("uniqueId", pvdata.Int).
		Add("dataTimeStamp", pvdata.TimeStamp()).
		AddStructureArray("attribute", ndAttribute)
	if b.descriptor {
		fb.AddScalar("descriptor", pvdata.String)
	}
	if b.timeStamp {
		fb.Add("timeStamp", pvdata.TimeStamp())
	}
	if b.alarm {
		fb.Add("alarm", pvdata.Alarm())
	}
	if b.display {
		fb.Add("display", pvdata.Display())
	}
	b.extras.appendTo(fb)
	return fb.CreateStructure()
}

// CreatePVStructure returns a zero valued instance and resets the builder.
func (b *NDArrayBuilder) CreatePVStructure() *pvdata.PVStructure {
	return pvdata.NewPVStructure(b.CreateStructure())
}

// Create wraps a fresh instance and resets the builder.
func (b *NDArrayBuilder) Create() *NDArray {
	return WrapNDArrayUnsafe(b.CreatePVStructure())
}

var ndArrayContract = &gont.Contract{
	ID: NDArrayURI,
	Fields: []gont.FieldRule{
		gont.UnionOf("value"),
		gont.StructureOf("codec", &gont.Contract{ID: CodecID, Fields: []gont.FieldRule{
			gont.ScalarOf("name", pvdata.String),
			gont.UnionOf("parameters"),
		}}),
		gont.ScalarOf("compressedSize", pvdata.Long),
		gont.ScalarOf("uncompressedSize", pvdata.Long),
		gont.StructureArrayOf("dimension", &gont.Contract{ID: DimensionID, MatchID: true}),
		gont.ScalarOf("uniqueId", pvdata.Int),
		gont.Shape("dataTimeStamp", pvdata.TimeStampID, pvdata.IsTimeStamp).Optional(),
		gont.StructureArrayOf("attribute", &gont.Contract{ID: AttributeURI, MatchID: true}),
		descriptorRule,
		alarmRule,
		timeStampRule,
		displayRule,
	},
}

// NDArrayContract returns the NTNDArray contract. The returned value is
// shared and must not be modified.
func NDArrayContract() *gont.Contract { return ndArrayContract }

// IsANDArray reports whether s carries NDArrayURI.
func IsANDArray(s *pvdata.Structure) bool { return ndArrayContract.IsA(s) }

// IsCompatibleNDArray reports whether s has the members of an NTNDArray,
// whatever its identifier.
func IsCompatibleNDArray(s *pvdata.Structure) bool { return ndArrayContract.Compatible(s) }

// IsCompatibleNDArrayPV is IsCompatibleNDArray for an instance.
func IsCompatibleNDArrayPV(pv *pvdata.PVStructure) bool { return ndArrayContract.CompatiblePV(pv) }

// CheckNDArray lists every way s departs from the contract.
func CheckNDArray(s *pvdata.Structure, opts ...gont.CheckOpt) gont.Issues {
	return ndArrayContract.Check(s, opts...)
}

// NDArray is a view of an NTNDArray instance.
type NDArray struct {
	pv               *pvdata.PVStructure
	value            *pvdata.PVUnion
	codec            *pvdata.PVStructure
	compressedSize   *pvdata.PVLong
	uncompressedSize *pvdata.PVLong
	dimension        *pvdata.PVStructureArray
	uniqueID         *pvdata.PVInt
	dataTimeStamp    *pvdata.PVStructure
	attribute        *pvdata.PVStructureArray
	descriptor       *pvdata.PVString
	timeStamp        *pvdata.PVStructure
	alarm            *pvdata.PVStructure
	display          *pvdata.PVStructure
}

// WrapNDArray returns a view of pv, or nil if pv is not compatible.
func WrapNDArray(pv *pvdata.PVStructure) *NDArray {
	if !IsCompatibleNDArrayPV(pv) {
		return nil
	}
	return WrapNDArrayUnsafe(pv)
}

// WrapNDArrayUnsafe returns a view of pv without checking it.
func WrapNDArrayUnsafe(pv *pvdata.PVStructure) *NDArray {
	return &NDArray{
		pv:               pv,
		value:            pvdata.SubField[*pvdata.PVUnion](pv, "value"),
		codec:            pvdata.SubField[*pvdata.PVStructure](pv, "codec"),
		compressedSize:   pvdata.SubField[*pvdata.PVLong](pv, "compressedSize"),
		uncompressedSize: pvdata.SubField[*pvdata.PVLong](pv, "uncompressedSize"),
		dimension:        pvdata.SubField[*pvdata.PVStructureArray](pv, "dimension"),
		uniqueID:         pvdata.SubField[*pvdata.PVInt](pv, "uniqueId"),
		dataTimeStamp:    pvdata.SubField[*pvdata.PVStructure](pv, "dataTimeStamp"),
		attribute:        pvdata.SubField[*pvdata.PVStructureArray](pv, "attribute"),
		descriptor:       pvdata.SubField[*pvdata.PVString](pv, "descriptor"),
		timeStamp:        pvdata.SubField[*pvdata.PVStructure](pv, "timeStamp"),
		alarm:            pvdata.SubField[*pvdata.PVStructure](pv, "alarm"),
		display:          pvdata.SubField[*pvdata.PVStructure](pv, "display"),
	}
}

// Member getters return nil for absent optional members.
func (a *NDArray) PVStructure() *pvdata.PVStructure     { return a.pv }
func (a *NDArray) Value() *pvdata.PVUnion               { return a.value }
func (a *NDArray) Codec() *pvdata.PVStructure           { return a.codec }
func (a *NDArray) CompressedDataSize() *pvdata.PVLong   { return a.compressedSize }
func (a *NDArray) UncompressedDataSize() *pvdata.PVLong { return a.uncompressedSize }
func (a *NDArray) Dimension() *pvdata.PVStructureArray  { return a.dimension }
func (a *NDArray) UniqueID() *pvdata.PVInt              { return a.uniqueID }
func (a *NDArray) DataTimeStamp() *pvdata.PVStructure   { return a.dataTimeStamp }
func (a *NDArray) Attribute() *pvdata.PVStructureArray  { return a.attribute }
func (a *NDArray) Descriptor() *pvdata.PVString         { return a.descriptor }
func (a *NDArray) TimeStamp() *pvdata.PVStructure       { return a.timeStamp }
func (a *NDArray) Alarm() *pvdata.PVStructure           { return a.alarm }
func (a *NDArray) Display() *pvdata.PVStructure         { return a.display }

// AttachTimeStamp binds p to the timeStamp member. It returns false when
// the member is absent.
func (a *NDArray) AttachTimeStamp(p *pvdata.PVTimeStamp) bool {
	return attachTimeStamp(a.timeStamp, p)
}

// AttachDataTimeStamp binds p to the dataTimeStamp member.
func (a *NDArray) AttachDataTimeStamp(p *pvdata.PVTimeStamp) bool {
	return attachTimeStamp(a.dataTimeStamp, p)
}

// AttachAlarm binds p to the alarm member. It returns false when the
// member is absent.
func (a *NDArray) AttachAlarm(p *pvdata.PVAlarm) bool {
	return attachAlarm(a.alarm, p)
}

// ValueSize returns the byte size of the selected value array, 0 when
// nothing is selected.
func (a *NDArray) ValueSize() int64 {
	v := pvdata.UnionValue[pvdata.PVScalarArray](a.value)
	if v == nil {
		return 0
	}
	return int64(v.Len()) * int64(v.ElementType().ElementSize())
}

// ExpectedUncompressedSize is the element size of the selected value times
// the product of the dimension sizes, 0 without dimensions.
func (a *NDArray) ExpectedUncompressedSize() int64 {
	if a.dimension == nil || a.dimension.Len() == 0 {
		return 0
	}
	var size int64
	if v := pvdata.UnionValue[pvdata.PVScalarArray](a.value); v != nil {
		size = int64(v.ElementType().ElementSize())
	}
	for _, d := range a.dimension.Get() {
		if n := pvdata.SubField[*pvdata.PVInt](d, "size"); n != nil {
			size *= int64(n.Get())
		}
	}
	return size
}

// IsValid reports whether the sizes agree with the value and dimensions:
// the value byte size equals compressedSize, uncompressedSize equals
// ExpectedUncompressedSize, and an uncompressed value (empty codec name) is
// not shorter than uncompressedSize.
func (a *NDArray) IsValid() bool {
	if a.compressedSize == nil || a.uncompressedSize == nil {
		return false
	}
	valueSize := a.ValueSize()
	if valueSize != a.compressedSize.Get() {
		return false
	}
	uncompressed := a.uncompressedSize.Get()
	if uncompressed != a.ExpectedUncompressedSize() {
		return false
	}
	name := pvdata.SubField[*pvdata.PVString](a.codec, "name")
	if name != nil && name.Get() == "" && valueSize < uncompressed {
		return false
	}
	return true
}

// PresentOptional reports the optional members found in the wrapped
// structure.
func (a *NDArray) PresentOptional() gont.PresenceMap {
	return ndArrayContract.Presence(structureOf(a.pv))
}
