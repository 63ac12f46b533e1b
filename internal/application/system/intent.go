package system

// TargetIntent is what the player target wants to do this tick.
// MoveX and MoveY are in [-1, 1].
type TargetIntent struct {
	MoveX  float64
	MoveY  float64
	Strike bool
}
