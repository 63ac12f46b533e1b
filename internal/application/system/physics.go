package system

import (
	"math"

	"github.com/younwookim/scout/internal/domain/entity"
)

// PhysicsSystem integrates velocities with the Intent & Apply model:
// behaviour writes Vel, this system applies it once per tick
type PhysicsSystem struct {
	stage *entity.Stage
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{stage: stage}
}

// UpdateScout moves a simulated scout by its velocity
func (s *PhysicsSystem) UpdateScout(sc *entity.Scout, dt float64) {
	if !sc.Simulated {
		return
	}
	sc.Pos = sc.Pos.Add(sc.Vel.Scale(dt))
}

// UpdateTarget moves the target and keeps its footprint inside the stage
func (s *PhysicsSystem) UpdateTarget(t *entity.Target, dt float64) {
	t.Pos = t.Pos.Add(t.Vel.Scale(dt))
	if s.stage == nil || s.stage.Width <= 0 || s.stage.Height <= 0 {
		return
	}
	hw, hh := t.Body.Width/2, t.Body.Height/2
	t.Pos.X = clamp(t.Pos.X, hw, s.stage.Width-hw)
	t.Pos.Y = clamp(t.Pos.Y, hh, s.stage.Height-hh)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(v, hi))
}
