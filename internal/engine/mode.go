package engine

// Mode is the reading strategy chosen for a source.
type Mode int

const (
	// ModeFullBuffer drains the whole source in a single batch.
	ModeFullBuffer Mode = iota
	// ModeBounded returns after a fixed number of records and resumes on the next call.
	ModeBounded
)

func (m Mode) String() string {
	switch m {
	case ModeFullBuffer:
		return "full-buffer"
	case ModeBounded:
		return "bounded"
	default:
		return "unknown"
	}
}

// SelectMode picks full-buffer mode for sources smaller than threshold
// bytes. A negative size means the size is unknown and selects bounded mode.
func SelectMode(size, threshold int64) Mode {
	if size >= 0 && size < threshold {
		return ModeFullBuffer
	}
	return ModeBounded
}
