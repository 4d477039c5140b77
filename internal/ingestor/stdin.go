package ingestor

import (
	"io"
	"os"
)

// ReaderSource reads lines from an arbitrary reader such as standard input.
type ReaderSource struct {
	*scanSource
	reader io.Reader
	closed bool
}

// NewReaderSource creates a line source over r. If r is an io.Closer it is
// closed by Close.
func NewReaderSource(r io.Reader, opts ...SourceOption) *ReaderSource {
	return &ReaderSource{
		scanSource: newScanSource(r, opts...),
		reader:     r,
	}
}

// NewStdinSource creates a line source over os.Stdin. Closing it leaves
// os.Stdin open.
func NewStdinSource(opts ...SourceOption) *ReaderSource {
	return NewReaderSource(io.NopCloser(os.Stdin), opts...)
}

// Size is unknown for a reader and is reported as -1.
func (r *ReaderSource) Size() int64 {
	return -1
}

// Close closes the reader when it supports it.
func (r *ReaderSource) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if c, ok := r.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
