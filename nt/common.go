package nt

import (
	"fmt"

	"github.com/reoring/gont"
	"github.com/reoring/gont/pvdata"
)

// extras is the ordered list of caller supplied members of a builder.
// Names are not deduplicated; a repeated name makes pvdata.NewStructure
// panic when the builder creates its structure.
type extras struct {
	names  []string
	fields []pvdata.Field
}

func (e *extras) add(name string, f pvdata.Field) {
	if f == nil {
		panic(fmt.Sprintf("nt: extra field %q: nil field", name))
	}
	e.names = append(e.names, name)
	e.fields = append(e.fields, f)
}

func (e *extras) appendTo(fb *pvdata.FieldBuilder) {
	for i, n := range e.names {
		fb.Add(n, e.fields[i])
	}
}

func attachTimeStamp(ts *pvdata.PVStructure, p *pvdata.PVTimeStamp) bool {
	if ts == nil || p == nil {
		return false
	}
	return p.Attach(ts)
}

func attachAlarm(al *pvdata.PVStructure, p *pvdata.PVAlarm) bool {
	if al == nil || p == nil {
		return false
	}
	return p.Attach(al)
}

// Rules shared by several types.
var (
	descriptorRule = gont.ScalarOf("descriptor", pvdata.String).Optional()
	alarmRule      = gont.Shape("alarm", pvdata.AlarmID, pvdata.IsAlarm).Optional()
	timeStampRule  = gont.Shape("timeStamp", pvdata.TimeStampID, pvdata.IsTimeStamp).Optional()
	displayRule    = gont.Shape("display", pvdata.DisplayID, pvdata.IsDisplay).Optional()
)

func structureOf(pv *pvdata.PVStructure) *pvdata.Structure {
	if pv == nil {
		return nil
	}
	return pv.Structure()
}
