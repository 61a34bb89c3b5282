package pvdata

// Identifiers of the standard sub-structures.
const (
	AlarmID      = "alarm_t"
	TimeStampID  = "time_t"
	DisplayID    = "display_t"
	ControlID    = "control_t"
	EnumeratedID = "enum_t"
)

var (
	standardAlarm = NewFieldBuilder().SetID(AlarmID).
			AddScalar("severity", Int).
			AddScalar("status", Int).
			AddScalar("message", String).
			CreateStructure()

	standardTimeStamp = NewFieldBuilder().SetID(TimeStampID).
				AddScalar("secondsPastEpoch", Long).
				AddScalar("nanoseconds", Int).
				AddScalar("userTag", Int).
				CreateStructure()

	standardDisplay = NewFieldBuilder().SetID(DisplayID).
			AddScalar("limitLow", Double).
			AddScalar("limitHigh", Double).
			AddScalar("description", String).
			AddScalar("format", String).
			AddScalar("units", String).
			CreateStructure()

	standardControl = NewFieldBuilder().SetID(ControlID).
			AddScalar("limitLow", Double).
			AddScalar("limitHigh", Double).
			AddScalar("minStep", Double).
			CreateStructure()

	standardEnumerated = NewFieldBuilder().SetID(EnumeratedID).
				AddScalar("index", Int).
				AddArray("choices", String).
				CreateStructure()
)

// Alarm returns the shared alarm_t structure: severity, status, message.
func Alarm() *Structure { return standardAlarm }

// TimeStamp returns the shared time_t structure: secondsPastEpoch,
// nanoseconds, userTag.
func TimeStamp() *Structure { return standardTimeStamp }

// Display returns the shared display_t structure.
func Display() *Structure { return standardDisplay }

// Control returns the shared control_t structure.
func Control() *Structure { return standardControl }

// Enumerated returns the shared enum_t structure: index, choices.
func Enumerated() *Structure { return standardEnumerated }

// StandardByID returns the standard structure with the given identifier.
func StandardByID(id string) (*Structure, bool) {
	switch id {
	case AlarmID:
		return standardAlarm, true
	case TimeStampID:
		return standardTimeStamp, true
	case DisplayID:
		return standardDisplay, true
	case ControlID:
		return standardControl, true
	case EnumeratedID:
		return standardEnumerated, true
	}
	return nil, false
}

// The predicates below are structural: member names, order and types must
// match the standard shape, the identifier is not compared.

// IsAlarm reports whether f has the alarm_t shape.
func IsAlarm(f Field) bool { return hasLayout(f, standardAlarm) }

// IsTimeStamp reports whether f has the time_t shape.
func IsTimeStamp(f Field) bool { return hasLayout(f, standardTimeStamp) }

// IsDisplay reports whether f has the display_t shape.
func IsDisplay(f Field) bool { return hasLayout(f, standardDisplay) }

// IsControl reports whether f has the control_t shape.
func IsControl(f Field) bool { return hasLayout(f, standardControl) }

// IsEnumerated reports whether f has the enum_t shape.
func IsEnumerated(f Field) bool { return hasLayout(f, standardEnumerated) }

func hasLayout(f Field, want *Structure) bool {
	s, ok := f.(*Structure)
	if !ok || s == nil {
		return false
	}
	return SameLayout(s, want)
}
