// Package ingestor provides the line sources the parsing engine reads from.
package ingestor

import (
	"bufio"
	"errors"
	"io"
)

// ErrFileNotFound is returned when a log file path does not exist.
var ErrFileNotFound = errors.New("log file not found")

// initialBufferSize is the starting scanner buffer; it grows up to the max line size.
const initialBufferSize = 64 * 1024

// LineSource yields one line at a time from an underlying stream.
// ReadLine returns io.EOF once the stream is exhausted.
// Implementations are not safe for concurrent use.
type LineSource interface {
	// ReadLine returns the next line without its terminator.
	ReadLine() (string, error)

	// Close releases the underlying stream.
	Close() error
}

// SourceOption configures a line source.
type SourceOption func(*scanSource)

// WithMaxLineSize bounds the length of a single line in bytes.
func WithMaxLineSize(n int) SourceOption {
	return func(s *scanSource) {
		if n > 0 {
			s.maxLineSize = n
		}
	}
}

// scanSource is the bufio.Scanner based reader shared by file and reader sources.
type scanSource struct {
	scanner     *bufio.Scanner
	maxLineSize int
}

func newScanSource(r io.Reader, opts ...SourceOption) *scanSource {
	s := &scanSource{maxLineSize: 1024 * 1024}
	for _, opt := range opts {
		opt(s)
	}

	s.scanner = bufio.NewScanner(r)
	initial := initialBufferSize
	if initial > s.maxLineSize {
		initial = s.maxLineSize
	}
	s.scanner.Buffer(make([]byte, initial), s.maxLineSize)
	return s
}

// ReadLine returns the next line. bufio.ScanLines already drops a trailing \r.
func (s *scanSource) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
