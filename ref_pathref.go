package gont

import (
	"fmt"
	"strings"

	"github.com/reoring/gont/i18n"
)

// PathRef builds JSON Pointer paths into a structure in a chain-safe way and
// creates Issues located at them.
type PathRef interface {
	Field(name string) PathRef
	Pointer() string
	// Issue creates an Issue with the localized message of code. kv is a
	// flat key/value list stored in Params.
	Issue(code, hint string, kv ...any) Issue
}

// Root returns the PathRef of the top level structure.
func Root() PathRef { return &pathRef{} }

// At parses a JSON Pointer ("/codec/name") into a PathRef.
func At(pointer string) PathRef {
	p := &pathRef{}
	for _, part := range strings.Split(pointer, "/") {
		if part == "" {
			continue
		}
		p.parts = append(p.parts, part)
	}
	return p
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, hint string, kv ...any) Issue {
	var (
		m    map[string]any
		data map[string]string
	)
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		data = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			k := fmt.Sprint(kv[i])
			m[k] = kv[i+1]
			data[k] = fmt.Sprint(kv[i+1])
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, data), Hint: hint, Params: m}
}

// Under returns a copy of iss with every path moved below p. Issues of a
// sub-structure checked on its own become issues of the enclosing one.
func (iss Issues) Under(p PathRef) Issues {
	base := p.Pointer()
	if base == "/" {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		switch {
		case it.Path == "" || it.Path == "/":
			it.Path = base
		case it.Path[0] == '/':
			it.Path = base + it.Path
		default:
			it.Path = base + "/" + it.Path
		}
		out = append(out, it)
	}
	return out
}
