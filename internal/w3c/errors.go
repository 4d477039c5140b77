package w3c

import (
	"errors"
	"fmt"
)

// Malformed line causes.
var (
	ErrColumnMismatch     = errors.New("fewer values than header columns")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrMalformedNumber    = errors.New("malformed numeric field")
	ErrNoHeader           = errors.New("data line before any #Fields: directive")
)

// LineError reports a malformed data line.
type LineError struct {
	// Line is the 1-based line number within the source, 0 when unknown.
	Line int
	Err  error
}

func (e *LineError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err describes a malformed line rather than an
// I/O or configuration failure.
func IsMalformed(err error) bool {
	var le *LineError
	return errors.As(err, &le)
}
