package pvdata

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotAttached is returned by property helpers used before Attach.
var ErrNotAttached = errors.New("pvdata: property not attached")

// AlarmSeverity is the severity carried by an alarm_t structure.
type AlarmSeverity int32

const (
	NoAlarm AlarmSeverity = iota
	MinorAlarm
	MajorAlarm
	InvalidAlarm
	UndefinedAlarm
)

var alarmSeverityNames = [...]string{"NONE", "MINOR", "MAJOR", "INVALID", "UNDEFINED"}

func (s AlarmSeverity) String() string {
	if s < NoAlarm || s > UndefinedAlarm {
		return fmt.Sprintf("AlarmSeverity(%d)", int32(s))
	}
	return alarmSeverityNames[s]
}

// AlarmStatus is the status carried by an alarm_t structure.
type AlarmStatus int32

const (
	NoStatus AlarmStatus = iota
	DeviceStatus
	DriverStatus
	RecordStatus
	DBStatus
	ConfStatus
	UndefinedStatus
	ClientStatus
)

// AlarmValue is the plain content of an alarm_t structure.
type AlarmValue struct {
	Severity AlarmSeverity
	Status   AlarmStatus
	Message  string
}

// PVAlarm gives typed access to an alarm_t value.
type PVAlarm struct {
	severity *PVInt
	status   *PVInt
	message  *PVString
}

// Attach binds p to f. It returns false and leaves p detached when f does
// not have the alarm_t shape.
func (p *PVAlarm) Attach(f PVField) bool {
	s, ok := f.(*PVStructure)
	if !ok || s == nil || !IsAlarm(s.structure) {
		p.Detach()
		return false
	}
	p.severity = SubField[*PVInt](s, "severity")
	p.status = SubField[*PVInt](s, "status")
	p.message = SubField[*PVString](s, "message")
	return true
}

// Detach unbinds p.
func (p *PVAlarm) Detach() { *p = PVAlarm{} }

// IsAttached reports whether p is bound to a value.
func (p *PVAlarm) IsAttached() bool { return p.severity != nil }

// Get reads the attached alarm.
func (p *PVAlarm) Get() (AlarmValue, error) {
	if !p.IsAttached() {
		return AlarmValue{}, ErrNotAttached
	}
	return AlarmValue{
		Severity: AlarmSeverity(p.severity.Get()),
		Status:   AlarmStatus(p.status.Get()),
		Message:  p.message.Get(),
	}, nil
}

// Set writes the attached alarm.
func (p *PVAlarm) Set(a AlarmValue) error {
	if !p.IsAttached() {
		return ErrNotAttached
	}
	p.severity.Put(int32(a.Severity))
	p.status.Put(int32(a.Status))
	p.message.Put(a.Message)
	return nil
}

// TimeStampValue is the plain content of a time_t structure.
type TimeStampValue struct {
	SecondsPastEpoch int64
	Nanoseconds      int32
	UserTag          int32
}

// TimeStampFrom converts t, keeping the user tag at zero.
func TimeStampFrom(t time.Time) TimeStampValue {
	return TimeStampValue{SecondsPastEpoch: t.Unix(), Nanoseconds: int32(t.Nanosecond())}
}

// Time converts ts to a time.Time.
func (ts TimeStampValue) Time() time.Time {
	return time.Unix(ts.SecondsPastEpoch, int64(ts.Nanoseconds))
}

// PVTimeStamp gives typed access to a time_t value.
type PVTimeStamp struct {
	seconds     *PVLong
	nanoseconds *PVInt
	userTag     *PVInt
}

// Attach binds p to f. It returns false and leaves p detached when f does
// not have the time_t shape.
func (p *PVTimeStamp) Attach(f PVField) bool {
	s, ok := f.(*PVStructure)
	if !ok || s == nil || !IsTimeStamp(s.structure) {
		p.Detach()
		return false
	}
	p.seconds = SubField[*PVLong](s, "secondsPastEpoch")
	p.nanoseconds = SubField[*PVInt](s, "nanoseconds")
	p.userTag = SubField[*PVInt](s, "userTag")
	return true
}

// Detach unbinds p.
func (p *PVTimeStamp) Detach() { *p = PVTimeStamp{} }

// IsAttached reports whether p is bound to a value.
func (p *PVTimeStamp) IsAttached() bool { return p.seconds != nil }

// Get reads the attached time stamp.
func (p *PVTimeStamp) Get() (TimeStampValue, error) {
	if !p.IsAttached() {
		return TimeStampValue{}, ErrNotAttached
	}
	return TimeStampValue{
		SecondsPastEpoch: p.seconds.Get(),
		Nanoseconds:      p.nanoseconds.Get(),
		UserTag:          p.userTag.Get(),
	}, nil
}

// Set writes the attached time stamp.
func (p *PVTimeStamp) Set(ts TimeStampValue) error {
	if !p.IsAttached() {
		return ErrNotAttached
	}
	p.seconds.Put(ts.SecondsPastEpoch)
	p.nanoseconds.Put(ts.Nanoseconds)
	p.userTag.Put(ts.UserTag)
	return nil
}
