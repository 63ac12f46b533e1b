package state

// RunState is what the sandbox is currently doing with the simulation
type RunState int

const (
	StateRunning RunState = iota
	StatePaused
	StateCleared
	StateReplayDone
)

// String returns the string representation of the run state
func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateCleared:
		return "Cleared"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// Ticking reports whether the simulation advances in this state.
// A cleared stage keeps running so the target can still move around.
func (s RunState) Ticking() bool {
	return s == StateRunning || s == StateCleared
}
