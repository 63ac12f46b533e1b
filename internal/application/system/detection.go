package system

import (
	"math"

	"github.com/younwookim/scout/internal/domain/entity"
)

// Unresolved is the distance reported when there is no target
const Unresolved = math.MaxFloat64

// DetectionOracle decides whether a scout perceives the target this tick.
// Hysteresis is the caller's job.
type DetectionOracle struct {
	physics PhysicsQuery
	tuning  *Tuning
}

// NewDetectionOracle creates an oracle
func NewDetectionOracle(physics PhysicsQuery, tuning *Tuning) *DetectionOracle {
	return &DetectionOracle{physics: physics, tuning: tuning}
}

// CanDetect checks, in order, target resolved, horizontal range, vertical
// tolerance, shared surface and line of sight. The horizontal distance is
// returned even when detection fails.
func (d *DetectionOracle) CanDetect(sc *entity.Scout, t *entity.Target) (bool, float64) {
	if t == nil {
		return false, Unresolved
	}

	cfg := d.tuning.Detection
	dist := math.Abs(t.Pos.X - sc.Pos.X)
	if dist > cfg.AggroDistance {
		return false, dist
	}
	if math.Abs(t.Pos.Y-sc.Pos.Y) > cfg.VerticalTolerance {
		return false, dist
	}
	if cfg.RequireSamePlatform && !sc.Surface.Same(t.Surface) {
		return false, dist
	}
	if cfg.UseLineOfSight && d.occluded(sc, t) {
		return false, dist
	}
	return true, dist
}

func (d *DetectionOracle) occluded(sc *entity.Scout, t *entity.Target) bool {
	// never let the target's own layer block the view of it
	mask := d.tuning.Masks.Occlusion &^ t.Layer
	ray := t.Pos.Sub(sc.Pos)
	_, hit := d.physics.Raycast(sc.Pos, ray, ray.Len(), mask)
	return hit
}
