package replay

// FrameInput records the target's keys for a single tick
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
	S bool `json:"s,omitempty"` // Strike
}

// Point is a world position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ReplayData contains all data needed to replay a session. The simulation
// has no randomness, so stage, profile, start point and inputs are enough.
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	Scout     string       `json:"scout"`
	TPS       int          `json:"tps"`
	Target    Point        `json:"target"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Version is written into every new recording
const Version = "1.0"
