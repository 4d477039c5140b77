package ingestor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileSource reads lines from a log file on disk.
type FileSource struct {
	*scanSource
	path   string
	size   int64
	file   *os.File
	closed bool
}

// OpenFile opens path for reading. It fails before anything is opened when
// the path is missing, unreadable, or a directory.
func OpenFile(path string, opts ...SourceOption) (*FileSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	return &FileSource{
		scanSource: newScanSource(file, opts...),
		path:       path,
		size:       info.Size(),
		file:       file,
	}, nil
}

// Path returns the file path.
func (f *FileSource) Path() string {
	return f.path
}

// Size returns the file size in bytes at open time.
func (f *FileSource) Size() int64 {
	return f.size
}

// Close closes the file. Calling it more than once is a no-op.
func (f *FileSource) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.file.Close()
}
