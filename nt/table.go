package nt

import (
	"fmt"
	"slices"

	"github.com/reoring/gont"
	"github.com/reoring/gont/pvdata"
)

// TableURI identifies NTTable structures.
const TableURI = "epics:nt/NTTable:1.0"

// TableBuilder assembles NTTable structures.
type TableBuilder struct {
	columns []string
	types   []pvdata.ScalarType

	descriptor bool
	alarm      bool
	timeStamp  bool

	extras extras
}

// NewTableBuilder returns a builder with no columns.
func NewTableBuilder() *TableBuilder { return &TableBuilder{} }

// AddColumn appends a column of element type t.
//
// Panics on an empty or repeated name and on an invalid type.
func (b *TableBuilder) AddColumn(name string, t pvdata.ScalarType) *TableBuilder {
	if name == "" {
		panic("nt: empty column name")
	}
	if slices.Contains(b.columns, name) {
		panic(fmt.Sprintf("nt: duplicate column %q", name))
	}
	if !t.Valid() {
		panic(fmt.Sprintf("nt: column %q: invalid element type %d", name, int(t)))
	}
	b.columns = append(b.columns, name)
	b.types = append(b.types, t)
	return b
}

// AddDescriptor adds the descriptor string.
func (b *TableBuilder) AddDescriptor() *TableBuilder {
	b.descriptor = true
	return b
}

// AddAlarm adds the alarm_t member.
func (b *TableBuilder) AddAlarm() *TableBuilder {
	b.alarm = true
	return b
}

// AddTimeStamp adds the time_t member.
func (b *TableBuilder) AddTimeStamp() *TableBuilder {
	b.timeStamp = true
	return b
}

// Add appends an extra member after the standard ones.
//
// Panics if f is nil.
func (b *TableBuilder) Add(name string, f pvdata.Field) *TableBuilder {
	b.extras.add(name, f)
	return b
}

// CreateStructure returns the structure and resets the builder, also when
// it panics on a repeated member name.
func (b *TableBuilder) CreateStructure() *pvdata.Structure {
	defer func() { *b = TableBuilder{} }()
	fb := pvdata.NewFieldBuilder().SetID(TableURI).
		AddArray("labels", pvdata.String)
	cols := fb.AddNestedStructure("value")
	for i, c := range b.columns {
		cols.AddArray(c, b.types[i])
	}
	cols.EndNested()
	if b.descriptor {
		fb.AddScalar("descriptor", pvdata.String)
	}
	if b.alarm {
		fb.Add("alarm", pvdata.Alarm())
	}
	if b.timeStamp {
		fb.Add("timeStamp", pvdata.TimeStamp())
	}
	b.extras.appendTo(fb)
	return fb.CreateStructure()
}

// CreatePVStructure returns an instance whose labels hold the column names
// and resets the builder.
func (b *TableBuilder) CreatePVStructure() *pvdata.PVStructure {
	labels := slices.Clone(b.columns)
	pv := pvdata.NewPVStructure(b.CreateStructure())
	pvdata.SubField[*pvdata.PVStringArray](pv, "labels").Put(labels)
	return pv
}

// Create wraps a fresh instance and resets the builder.
func (b *TableBuilder) Create() *Table {
	return WrapTableUnsafe(b.CreatePVStructure())
}

func isColumnSet(f pvdata.Field) bool {
	s, ok := f.(*pvdata.Structure)
	if !ok {
		return false
	}
	for _, c := range s.Fields() {
		if c.Kind() != pvdata.KindScalarArray {
			return false
		}
	}
	return true
}

var tableContract = &gont.Contract{
	ID: TableURI,
	Fields: []gont.FieldRule{
		gont.ScalarArrayOf("labels", pvdata.String),
		gont.Shape("value", "structure of scalar arrays", isColumnSet),
		descriptorRule,
		alarmRule,
		timeStampRule,
	},
}

// TableContract returns the NTTable contract. The returned value is shared
// and must not be modified.
func TableContract() *gont.Contract { return tableContract }

// IsATable reports whether s carries TableURI.
func IsATable(s *pvdata.Structure) bool { return tableContract.IsA(s) }

// IsCompatibleTable reports whether s has the members of an NTTable,
// whatever its identifier.
func IsCompatibleTable(s *pvdata.Structure) bool { return tableContract.Compatible(s) }

// IsCompatibleTablePV is IsCompatibleTable for an instance.
func IsCompatibleTablePV(pv *pvdata.PVStructure) bool { return tableContract.CompatiblePV(pv) }

// CheckTable lists every way s departs from the contract.
func CheckTable(s *pvdata.Structure, opts ...gont.CheckOpt) gont.Issues {
	return tableContract.Check(s, opts...)
}

// Table is a view of an NTTable instance.
type Table struct {
	pv         *pvdata.PVStructure
	labels     *pvdata.PVStringArray
	value      *pvdata.PVStructure
	descriptor *pvdata.PVString
	alarm      *pvdata.PVStructure
	timeStamp  *pvdata.PVStructure
	columns    []string
}

// WrapTable returns a view of pv, or nil if pv is not compatible.
func WrapTable(pv *pvdata.PVStructure) *Table {
	if !IsCompatibleTablePV(pv) {
		return nil
	}
	return WrapTableUnsafe(pv)
}

// WrapTableUnsafe returns a view of pv without checking it.
func WrapTableUnsafe(pv *pvdata.PVStructure) *Table {
	t := &Table{
		pv:         pv,
		labels:     pvdata.SubField[*pvdata.PVStringArray](pv, "labels"),
		value:      pvdata.SubField[*pvdata.PVStructure](pv, "value"),
		descriptor: pvdata.SubField[*pvdata.PVString](pv, "descriptor"),
		alarm:      pvdata.SubField[*pvdata.PVStructure](pv, "alarm"),
		timeStamp:  pvdata.SubField[*pvdata.PVStructure](pv, "timeStamp"),
	}
	if t.value != nil {
		t.columns = t.value.Structure().FieldNames()
	}
	return t
}

// Member getters return nil for absent optional members.
func (t *Table) PVStructure() *pvdata.PVStructure { return t.pv }
func (t *Table) Labels() *pvdata.PVStringArray    { return t.labels }
func (t *Table) Value() *pvdata.PVStructure       { return t.value }
func (t *Table) Descriptor() *pvdata.PVString     { return t.descriptor }
func (t *Table) Alarm() *pvdata.PVStructure       { return t.alarm }
func (t *Table) TimeStamp() *pvdata.PVStructure   { return t.timeStamp }

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string { return slices.Clone(t.columns) }

// Column returns the named column, nil if there is none.
func (t *Table) Column(name string) pvdata.PVField {
	if t.value == nil {
		return nil
	}
	return t.value.SubField(name)
}

// TableColumn returns the named column of t as T, or the zero T when the
// column is absent or of another type.
func TableColumn[T pvdata.PVField](t *Table, name string) T {
	return pvdata.SubField[T](t.value, name)
}

// IsValid reports whether there is one label per column and every column
// has the same length.
func (t *Table) IsValid() bool {
	if t.labels == nil || t.value == nil {
		return false
	}
	if t.labels.Len() != len(t.columns) {
		return false
	}
	n := -1
	for _, f := range t.value.PVFields() {
		a, ok := f.(pvdata.PVScalarArray)
		if !ok {
			return false
		}
		if n >= 0 && a.Len() != n {
			return false
		}
		n = a.Len()
	}
	return true
}

// AttachTimeStamp binds p to the timeStamp member. It returns false when
// the member is absent.
func (t *Table) AttachTimeStamp(p *pvdata.PVTimeStamp) bool {
	return attachTimeStamp(t.timeStamp, p)
}

// AttachAlarm binds p to the alarm member. It returns false when the
// member is absent.
func (t *Table) AttachAlarm(p *pvdata.PVAlarm) bool {
	return attachAlarm(t.alarm, p)
}

// PresentOptional reports the optional members found in the wrapped
// structure.
func (t *Table) PresentOptional() gont.PresenceMap {
	return tableContract.Presence(structureOf(t.pv))
}
