package w3c

// Row holds the raw column values of one data line. A zero Row has every
// field absent.
type Row struct {
	values  [fieldCount]string
	present [fieldCount]bool
}

func (r *Row) set(f Field, v string) {
	r.values[f] = v
	r.present[f] = true
}

// Get returns the raw value for f and whether it was present.
func (r Row) Get(f Field) (string, bool) {
	if f <= FieldUnknown || f >= fieldCount {
		return "", false
	}
	return r.values[f], r.present[f]
}
