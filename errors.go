package gont

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired     = "required"
	CodeInvalidType  = "invalid_type"
	CodeNilInput     = "nil_input"
	CodeIDMismatch   = "id_mismatch"
	CodeInvalidValue = "invalid_value"
	CodeParseError   = "parse_error"
	CodeUnknownType  = "unknown_type"
)

// Issue represents a single compatibility or validation finding.
type Issue struct {
	Path    string // JSON Pointer into the structure (for example: /codec/name).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected shape, remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"int[]",
	// "got":"double[]"}) for i18n and diagnostics.
	Params map[string]any
}

// Issues is a collection of findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /value
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the code of every issue in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// At returns the issues whose path is p.
func (iss Issues) At(p string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Path == p {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// OrNil returns iss as an error, or nil when it is empty.
func (iss Issues) OrNil() error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}
