package nt

import (
	"fmt"

	"github.com/reoring/gont"
	"github.com/reoring/gont/pvdata"
)

// ScalarMultiChannelURI identifies NTScalarMultiChannel structures.
const ScalarMultiChannelURI = "epics:nt/NTScalarMultiChannel:1.0"

// ScalarMultiChannelBuilder assembles NTScalarMultiChannel structures.
// The zero value is not usable; call NewScalarMultiChannelBuilder.
type ScalarMultiChannelBuilder struct {
	valueType pvdata.ScalarType

	descriptor       bool
	alarm            bool
	timeStamp        bool
	severity         bool
	status           bool
	message          bool
	secondsPastEpoch bool
	nanoseconds      bool
	userTag          bool
	isConnected      bool

	extras extras
}

// NewScalarMultiChannelBuilder returns a builder for a double valued
// structure with only the isConnected member enabled.
func NewScalarMultiChannelBuilder() *ScalarMultiChannelBuilder {
	b := &ScalarMultiChannelBuilder{}
	b.reset()
	return b
}

func (b *ScalarMultiChannelBuilder) reset() {
	*b = ScalarMultiChannelBuilder{valueType: pvdata.Double, isConnected: true}
}

// Value sets the element type of the value array.
func (b *ScalarMultiChannelBuilder) Value(t pvdata.ScalarType) *ScalarMultiChannelBuilder {
	if !t.Valid() {
		panic(fmt.Sprintf("nt: invalid value element type %d", int(t)))
	}
	b.valueType = t
	return b
}

// AddDescriptor adds the descriptor string.
func (b *ScalarMultiChannelBuilder) AddDescriptor() *ScalarMultiChannelBuilder {
	b.descriptor = true
	return b
}

// AddAlarm adds the alarm_t member.
func (b *ScalarMultiChannelBuilder) AddAlarm() *ScalarMultiChannelBuilder {
	b.alarm = true
	return b
}

// AddTimeStamp adds the time_t member.
func (b *ScalarMultiChannelBuilder) AddTimeStamp() *ScalarMultiChannelBuilder {
	b.timeStamp = true
	return b
}

// AddSeverity adds the per channel alarm severity array.
func (b *ScalarMultiChannelBuilder) AddSeverity() *ScalarMultiChannelBuilder {
	b.severity = true
	return b
}

// AddStatus adds the per channel alarm status array.
func (b *ScalarMultiChannelBuilder) AddStatus() *ScalarMultiChannelBuilder {
	b.status = true
	return b
}

// AddMessage adds the per channel alarm message array.
func (b *ScalarMultiChannelBuilder) AddMessage() *ScalarMultiChannelBuilder {
	b.message = true
	return b
}

// AddSecondsPastEpoch adds the per channel seconds array.
func (b *ScalarMultiChannelBuilder) AddSecondsPastEpoch() *ScalarMultiChannelBuilder {
	b.secondsPastEpoch = true
	return b
}

// AddNanoseconds adds the per channel nanoseconds array.
func (b *ScalarMultiChannelBuilder) AddNanoseconds() *ScalarMultiChannelBuilder {
	b.nanoseconds = true
	return b
}

// AddUserTag adds the per channel user tag array.
func (b *ScalarMultiChannelBuilder) AddUserTag() *ScalarMultiChannelBuilder {
	b.userTag = true
	return b
}

// AddIsConnected adds the per channel connection state array. It is on
// unless ExcludeIsConnected was called.
func (b *ScalarMultiChannelBuilder) AddIsConnected() *ScalarMultiChannelBuilder {
	b.isConnected = true
	return b
}

// ExcludeIsConnected drops the isConnected member, which is on by default.
func (b *ScalarMultiChannelBuilder) ExcludeIsConnected() *ScalarMultiChannelBuilder {
	b.isConnected = false
	return b
}

// Add appends an extra member after the standard ones.
//
// Panics if f is nil.
func (b *ScalarMultiChannelBuilder) Add(name string, f pvdata.Field) *ScalarMultiChannelBuilder {
	b.extras.add(name, f)
	return b
}

// CreateStructure returns the structure and resets the builder, also when
// it panics on a repeated member name.
func (b *ScalarMultiChannelBuilder) CreateStructure() *pvdata.Structure {
	defer b.reset()
	fb := pvdata.NewFieldBuilder().SetID(ScalarMultiChannelURI).
		AddArray("value", b.valueType).
		AddArray("channelName", pvdata.String)
	if b.descriptor {
		fb.AddScalar("descriptor", pvdata.String)
	}
	if b.alarm {
		fb.Add("alarm", pvdata.Alarm())
	}
	if b.timeStamp {
		fb.Add("timeStamp", pvdata.TimeStamp())
	}
	if b.severity {
		fb.AddArray("severity", pvdata.Int)
	}
	if b.status {
		fb.AddArray("status", pvdata.Int)
	}
	if b.message {
		fb.AddArray("message", pvdata.String)
	}
	if b.secondsPastEpoch {
		fb.AddArray("secondsPastEpoch", pvdata.Long)
	}
	if b.nanoseconds {
		fb.AddArray("nanoseconds", pvdata.Int)
	}
	if b.userTag {
		fb.AddArray("userTag", pvdata.Int)
	}
	if b.isConnected {
		fb.AddArray("isConnected", pvdata.Boolean)
	}
	b.extras.appendTo(fb)
	return fb.CreateStructure()
}

// CreatePVStructure returns a zero valued instance and resets the builder.
func (b *ScalarMultiChannelBuilder) CreatePVStructure() *pvdata.PVStructure {
	return pvdata.NewPVStructure(b.CreateStructure())
}

// Create wraps a fresh instance and resets the builder.
func (b *ScalarMultiChannelBuilder) Create() *ScalarMultiChannel {
	return WrapScalarMultiChannelUnsafe(b.CreatePVStructure())
}

var scalarMultiChannelContract = &gont.Contract{
	ID: ScalarMultiChannelURI,
	Fields: []gont.FieldRule{
		gont.AnyScalarArray("value"),
		gont.ScalarArrayOf("channelName", pvdata.String),
		gont.ScalarArrayOf("severity", pvdata.Int).Optional(),
		gont.ScalarArrayOf("status", pvdata.Int).Optional(),
		gont.ScalarArrayOf("message", pvdata.String).Optional(),
		gont.ScalarArrayOf("secondsPastEpoch", pvdata.Long).Optional(),
		gont.ScalarArrayOf("nanoseconds", pvdata.Int).Optional(),
		gont.ScalarArrayOf("userTag", pvdata.Int).Optional(),
		gont.ScalarArrayOf("isConnected", pvdata.Boolean).Optional(),
		descriptorRule,
		alarmRule,
		timeStampRule,
	},
}

// ScalarMultiChannelContract returns the NTScalarMultiChannel contract.
// The returned value is shared and must not be modified.
func ScalarMultiChannelContract() *gont.Contract { return scalarMultiChannelContract }

// IsAScalarMultiChannel reports whether s carries ScalarMultiChannelURI.
func IsAScalarMultiChannel(s *pvdata.Structure) bool { return scalarMultiChannelContract.IsA(s) }

// IsCompatibleScalarMultiChannel reports whether s has the members of an
// NTScalarMultiChannel, whatever its identifier.
func IsCompatibleScalarMultiChannel(s *pvdata.Structure) bool {
	return scalarMultiChannelContract.Compatible(s)
}

// IsCompatibleScalarMultiChannelPV is IsCompatibleScalarMultiChannel for an
// instance.
func IsCompatibleScalarMultiChannelPV(pv *pvdata.PVStructure) bool {
	return scalarMultiChannelContract.CompatiblePV(pv)
}

// CheckScalarMultiChannel lists every way s departs from the contract.
func CheckScalarMultiChannel(s *pvdata.Structure, opts ...gont.CheckOpt) gont.Issues {
	return scalarMultiChannelContract.Check(s, opts...)
}

// ScalarMultiChannel is a view of an NTScalarMultiChannel instance.
// Optional members that are absent have nil handles.
type ScalarMultiChannel struct {
	pv *pvdata.PVStructure

	value            pvdata.PVScalarArray
	channelName      *pvdata.PVStringArray
	descriptor       *pvdata.PVString
	alarm            *pvdata.PVStructure
	timeStamp        *pvdata.PVStructure
	severity         *pvdata.PVIntArray
	status           *pvdata.PVIntArray
	message          *pvdata.PVStringArray
	secondsPastEpoch *pvdata.PVLongArray
	nanoseconds      *pvdata.PVIntArray
	userTag          *pvdata.PVIntArray
	isConnected      *pvdata.PVBooleanArray
}

// WrapScalarMultiChannel returns a view of pv, or nil if pv is not
// compatible.
func WrapScalarMultiChannel(pv *pvdata.PVStructure) *ScalarMultiChannel {
	if !IsCompatibleScalarMultiChannelPV(pv) {
		return nil
	}
	return WrapScalarMultiChannelUnsafe(pv)
}

// WrapScalarMultiChannelUnsafe returns a view of pv without checking it.
func WrapScalarMultiChannelUnsafe(pv *pvdata.PVStructure) *ScalarMultiChannel {
	return &ScalarMultiChannel{
		pv:               pv,
		value:            pvdata.SubField[pvdata.PVScalarArray](pv, "value"),
		channelName:      pvdata.SubField[*pvdata.PVStringArray](pv, "channelName"),
		descriptor:       pvdata.SubField[*pvdata.PVString](pv, "descriptor"),
		alarm:            pvdata.SubField[*pvdata.PVStructure](pv, "alarm"),
		timeStamp:        pvdata.SubField[*pvdata.PVStructure](pv, "timeStamp"),
		severity:         pvdata.SubField[*pvdata.PVIntArray](pv, "severity"),
		status:           pvdata.SubField[*pvdata.PVIntArray](pv, "status"),
		message:          pvdata.SubField[*pvdata.PVStringArray](pv, "message"),
		secondsPastEpoch: pvdata.SubField[*pvdata.PVLongArray](pv, "secondsPastEpoch"),
		nanoseconds:      pvdata.SubField[*pvdata.PVIntArray](pv, "nanoseconds"),
		userTag:          pvdata.SubField[*pvdata.PVIntArray](pv, "userTag"),
		isConnected:      pvdata.SubField[*pvdata.PVBooleanArray](pv, "isConnected"),
	}
}

// Member getters return nil for absent optional members.
func (m *ScalarMultiChannel) PVStructure() *pvdata.PVStructure      { return m.pv }
func (m *ScalarMultiChannel) Value() pvdata.PVScalarArray           { return m.value }
func (m *ScalarMultiChannel) ChannelName() *pvdata.PVStringArray    { return m.channelName }
func (m *ScalarMultiChannel) Descriptor() *pvdata.PVString          { return m.descriptor }
func (m *ScalarMultiChannel) Alarm() *pvdata.PVStructure            { return m.alarm }
func (m *ScalarMultiChannel) TimeStamp() *pvdata.PVStructure        { return m.timeStamp }
func (m *ScalarMultiChannel) Severity() *pvdata.PVIntArray          { return m.severity }
func (m *ScalarMultiChannel) Status() *pvdata.PVIntArray            { return m.status }
func (m *ScalarMultiChannel) Message() *pvdata.PVStringArray        { return m.message }
func (m *ScalarMultiChannel) SecondsPastEpoch() *pvdata.PVLongArray { return m.secondsPastEpoch }
func (m *ScalarMultiChannel) Nanoseconds() *pvdata.PVIntArray       { return m.nanoseconds }
func (m *ScalarMultiChannel) UserTag() *pvdata.PVIntArray           { return m.userTag }
func (m *ScalarMultiChannel) IsConnected() *pvdata.PVBooleanArray   { return m.isConnected }

// ScalarMultiChannelValue returns the value array of m as T, or the zero T
// when the element type differs.
func ScalarMultiChannelValue[T pvdata.PVScalarArray](m *ScalarMultiChannel) T {
	v, _ := m.value.(T)
	return v
}

// AttachTimeStamp binds p to the timeStamp member. It returns false when the
// member is absent.
func (m *ScalarMultiChannel) AttachTimeStamp(p *pvdata.PVTimeStamp) bool {
	return attachTimeStamp(m.timeStamp, p)
}

// AttachAlarm binds p to the alarm member. It returns false when the member
// is absent.
func (m *ScalarMultiChannel) AttachAlarm(p *pvdata.PVAlarm) bool {
	return attachAlarm(m.alarm, p)
}

// PresentOptional reports the optional members found in the wrapped
// structure.
func (m *ScalarMultiChannel) PresentOptional() gont.PresenceMap {
	return scalarMultiChannelContract.Presence(structureOf(m.pv))
}
