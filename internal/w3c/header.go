package w3c

import (
	"fmt"
	"strings"
)

const (
	directivePrefix = "#Fields:"
	commentPrefix   = "#"
	absentValue     = "-"
)

// IsDirective reports whether line is a #Fields: directive.
func IsDirective(line string) bool {
	return strings.HasPrefix(line, directivePrefix)
}

// IsComment reports whether line is a directive or comment line.
func IsComment(line string) bool {
	return strings.HasPrefix(line, commentPrefix)
}

// Header is the column schema declared by a #Fields: directive.
type Header struct {
	columns []string
	fields  []Field
}

// ParseHeader parses a #Fields: directive line.
func ParseHeader(line string) (*Header, error) {
	if !IsDirective(line) {
		return nil, fmt.Errorf("not a #Fields: directive: %q", line)
	}
	rest := strings.TrimPrefix(line, directivePrefix)
	rest = strings.TrimPrefix(rest, " ")
	if rest == "" {
		return NewHeader(nil), nil
	}
	return NewHeader(strings.Split(rest, " ")), nil
}

// NewHeader builds a header from column names. Unknown names are kept
// positionally but ignored when building events.
func NewHeader(columns []string) *Header {
	h := &Header{
		columns: append([]string(nil), columns...),
		fields:  make([]Field, len(columns)),
	}
	for i, name := range columns {
		if f, ok := FieldByName(name); ok {
			h.fields[i] = f
		}
	}
	return h
}

// Columns returns the declared column names in order.
func (h *Header) Columns() []string {
	return append([]string(nil), h.columns...)
}

// Len returns the number of declared columns.
func (h *Header) Len() int {
	return len(h.columns)
}

// Has reports whether the header declares f.
func (h *Header) Has(f Field) bool {
	for _, hf := range h.fields {
		if hf == f {
			return true
		}
	}
	return false
}

// Unknown returns the declared column names the parser does not map.
func (h *Header) Unknown() []string {
	var out []string
	for i, f := range h.fields {
		if f == FieldUnknown {
			out = append(out, h.columns[i])
		}
	}
	return out
}

// Map splits a data line on single spaces and assigns tokens to columns by
// position. Tokens beyond the header width are ignored.
func (h *Header) Map(line string) (Row, error) {
	tokens := strings.Split(line, " ")
	if len(tokens) < len(h.columns) {
		return Row{}, fmt.Errorf("%w: got %d, want %d", ErrColumnMismatch, len(tokens), len(h.columns))
	}

	var row Row
	for i, f := range h.fields {
		if f == FieldUnknown || tokens[i] == absentValue {
			continue
		}
		row.set(f, tokens[i])
	}
	return row, nil
}
