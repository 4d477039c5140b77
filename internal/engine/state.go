package engine

// State tracks where an Engine is in its batch protocol.
//
//	Idle --Next--> Active (more pending) --Next--> ... --> Exhausted
type State int

const (
	StateIdle State = iota
	StateActive
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
