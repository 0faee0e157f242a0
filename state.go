package sercap

// State describes where a capture run is in its lifecycle. The original
// bench script tracked this with a pair of mutable flags; a single enum
// keeps the exit conditions mutually exclusive.
type State int

const (
	// StateReading means the run is still forwarding device output.
	StateReading State = iota

	// StateCompleted means the sentinel byte was observed.
	StateCompleted

	// StateTimedOut means the capture budget elapsed without the
	// sentinel appearing.
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateCompleted:
		return "completed"
	case StateTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}
