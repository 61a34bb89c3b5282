package ntspec

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/reoring/gont"
	"github.com/reoring/gont/nt"
	"github.com/reoring/gont/pvdata"
)

type typeDef struct {
	// members are always present.
	members []string
	include []string
	exclude []string
	build   func(s *Spec, extras []extra) *pvdata.Structure
}

type extra struct {
	name  string
	field pvdata.Field
}

var typeDefs = map[string]typeDef{
	nt.ScalarMultiChannelURI: {
		members: []string{"value", "channelName"},
		include: []string{
			"descriptor", "alarm", "timeStamp", "severity", "status", "message",
			"secondsPastEpoch", "nanoseconds", "userTag", "isConnected",
		},
		exclude: []string{"isConnected"},
		build:   buildScalarMultiChannel,
	},
	nt.TableURI: {
		members: []string{"labels", "value"},
		include: []string{"descriptor", "alarm", "timeStamp"},
		build:   buildTable,
	},
	nt.NDArrayURI: {
		members: []string{
			"value", "codec", "compressedSize", "uncompressedSize", "dimension",
			"uniqueId", "dataTimeStamp", "attribute",
		},
		include: []string{"descriptor", "timeStamp", "alarm", "display"},
		build:   buildNDArray,
	},
}

// Validate lists the problems of s, located by JSON Pointer into the
// description ("/include/1", "/extra/0/type").
func (s *Spec) Validate() gont.Issues {
	if s == nil {
		return gont.Issues{gont.Root().Issue(gont.CodeNilInput, "description is nil")}
	}
	root := gont.Root()
	var iss gont.Issues
	if strings.TrimSpace(s.Type) == "" {
		return gont.Issues{root.Field("type").Issue(gont.CodeRequired, "set the normative type")}
	}
	t, ok := nt.Lookup(s.Type)
	if !ok {
		return gont.Issues{root.Field("type").Issue(gont.CodeUnknownType, "no normative type "+s.Type, "got", s.Type)}
	}
	def := typeDefs[t.URI]

	if s.Value != "" {
		p := root.Field("value")
		if t.URI != nt.ScalarMultiChannelURI {
			iss = append(iss, p.Issue(gont.CodeInvalidValue, t.Name+" has no value element type"))
		} else if _, err := pvdata.ParseScalarType(s.Value); err != nil {
			iss = append(iss, p.Issue(gont.CodeInvalidType, err.Error(), "expected", "scalar type", "got", s.Value))
		}
	}
	iss = append(iss, checkNames(root.Field("include"), s.Include, def.include, t.Name)...)
	iss = append(iss, checkNames(root.Field("exclude"), s.Exclude, def.exclude, t.Name)...)

	if len(s.Columns) > 0 && t.URI != nt.TableURI {
		iss = append(iss, root.Field("columns").Issue(gont.CodeInvalidValue, t.Name+" has no columns"))
	}
	seen := map[string]bool{}
	for i, c := range s.Columns {
		p := root.Field("columns").Field(strconv.Itoa(i))
		switch {
		case c.Name == "":
			iss = append(iss, p.Field("name").Issue(gont.CodeRequired, "name the column"))
		case seen[c.Name]:
			iss = append(iss, p.Field("name").Issue(gont.CodeInvalidValue, "duplicate column "+c.Name))
		}
		seen[c.Name] = true
		if _, err := pvdata.ParseScalarType(c.Type); err != nil {
			iss = append(iss, p.Field("type").Issue(gont.CodeInvalidType, err.Error(), "expected", "scalar type", "got", c.Type))
		}
	}

	taken := map[string]bool{}
	for _, n := range def.members {
		taken[n] = true
	}
	for _, n := range def.include {
		taken[n] = isIncluded(s, t.URI, n)
	}
	for i, m := range s.Extra {
		p := root.Field("extra").Field(strconv.Itoa(i))
		switch {
		case m.Name == "":
			iss = append(iss, p.Field("name").Issue(gont.CodeRequired, "name the member"))
		case taken[m.Name]:
			iss = append(iss, p.Field("name").Issue(gont.CodeInvalidValue, "duplicate member "+m.Name))
		}
		taken[m.Name] = true
		if _, err := resolveType(m.Type); err != nil {
			iss = append(iss, p.Field("type").Issue(gont.CodeInvalidType, err.Error(), "got", m.Type))
		}
	}
	return iss
}

// isIncluded reports whether the optional member name ends up in the
// structure of s.
func isIncluded(s *Spec, uri, name string) bool {
	if uri == nt.ScalarMultiChannelURI && name == "isConnected" {
		return !slices.Contains(s.Exclude, name)
	}
	return slices.Contains(s.Include, name)
}

func checkNames(at gont.PathRef, names, allowed []string, typeName string) gont.Issues {
	var iss gont.Issues
	for i, n := range names {
		if !slices.Contains(allowed, n) {
			iss = append(iss, at.Field(strconv.Itoa(i)).Issue(gont.CodeInvalidValue, typeName+" has no optional member "+n, "got", n))
		}
	}
	return iss
}

// Structure validates s and builds its structure. Validation failures are
// returned as gont.Issues.
func (s *Spec) Structure() (*pvdata.Structure, error) {
	if iss := s.Validate(); len(iss) > 0 {
		return nil, iss
	}
	t, _ := nt.Lookup(s.Type)
	extras := make([]extra, len(s.Extra))
	for i, m := range s.Extra {
		f, _ := resolveType(m.Type)
		extras[i] = extra{name: m.Name, field: f}
	}
	return typeDefs[t.URI].build(s, extras), nil
}

// PVStructure builds a zero valued instance of s. Table labels hold the
// column names.
func (s *Spec) PVStructure() (*pvdata.PVStructure, error) {
	st, err := s.Structure()
	if err != nil {
		return nil, err
	}
	pv := pvdata.NewPVStructure(st)
	if nt.IsATable(st) {
		labels := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			labels[i] = c.Name
		}
		pvdata.SubField[*pvdata.PVStringArray](pv, "labels").Put(labels)
	}
	return pv, nil
}

func buildScalarMultiChannel(s *Spec, extras []extra) *pvdata.Structure {
	b := nt.NewScalarMultiChannelBuilder()
	if s.Value != "" {
		t, _ := pvdata.ParseScalarType(s.Value)
		b.Value(t)
	}
	for _, n := range s.Include {
		switch n {
		case "descriptor":
			b.AddDescriptor()
		case "alarm":
			b.AddAlarm()
		case "timeStamp":
			b.AddTimeStamp()
		case "severity":
			b.AddSeverity()
		case "status":
			b.AddStatus()
		case "message":
			b.AddMessage()
		case "secondsPastEpoch":
			b.AddSecondsPastEpoch()
		case "nanoseconds":
			b.AddNanoseconds()
		case "userTag":
			b.AddUserTag()
		case "isConnected":
			b.AddIsConnected()
		}
	}
	if slices.Contains(s.Exclude, "isConnected") {
		b.ExcludeIsConnected()
	}
	for _, e := range extras {
		b.Add(e.name, e.field)
	}
	return b.CreateStructure()
}

func buildTable(s *Spec, extras []extra) *pvdata.Structure {
	b := nt.NewTableBuilder()
	for _, c := range s.Columns {
		t, _ := pvdata.ParseScalarType(c.Type)
		b.AddColumn(c.Name, t)
	}
	for _, n := range s.Include {
		switch n {
		case "descriptor":
			b.AddDescriptor()
		case "alarm":
			b.AddAlarm()
		case "timeStamp":
			b.AddTimeStamp()
		}
	}
	for _, e := range extras {
		b.Add(e.name, e.field)
	}
	return b.CreateStructure()
}

func buildNDArray(s *Spec, extras []extra) *pvdata.Structure {
	b := nt.NewNDArrayBuilder()
	for _, n := range s.Include {
		switch n {
		case "descriptor":
			b.AddDescriptor()
		case "timeStamp":
			b.AddTimeStamp()
		case "alarm":
			b.AddAlarm()
		case "display":
			b.AddDisplay()
		}
	}
	for _, e := range extras {
		b.Add(e.name, e.field)
	}
	return b.CreateStructure()
}

// resolveType resolves a Member type name.
func resolveType(name string) (pvdata.Field, error) {
	n := strings.TrimSpace(name)
	if f, err := pvdata.ParseFieldType(n); err == nil {
		return f, nil
	}
	base, isArray := strings.CutSuffix(n, "[]")
	s, ok := knownStructure(base)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	if isArray {
		return pvdata.NewStructureArray(s), nil
	}
	return s, nil
}

func knownStructure(id string) (*pvdata.Structure, bool) {
	if s, ok := pvdata.StandardByID(id); ok {
		return s, true
	}
	switch id {
	case nt.CodecID:
		return nt.Codec(), true
	case nt.DimensionID:
		return nt.Dimension(), true
	case nt.AttributeURI:
		return nt.Attribute(), true
	}
	return nil, false
}
