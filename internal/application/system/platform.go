package system

import (
	"github.com/younwookim/scout/internal/domain/entity"
)

// PlatformSampler probes just below a footprint for the ground surface.
// It keeps no history: a seam between platforms reads as NoSurface for a tick.
type PlatformSampler struct {
	physics PhysicsQuery
	tuning  *Tuning
}

// NewPlatformSampler creates a sampler
func NewPlatformSampler(physics PhysicsQuery, tuning *Tuning) *PlatformSampler {
	return &PlatformSampler{physics: physics, tuning: tuning}
}

// Sample returns the ground surface under feet
func (p *PlatformSampler) Sample(feet entity.Vec2) entity.SurfaceID {
	probe := entity.Vec2{X: feet.X, Y: feet.Y + p.tuning.Ground.ProbeOffset}
	return p.physics.OverlapCircle(probe, p.tuning.Ground.ProbeRadius, p.tuning.Masks.Ground)
}

// SampleScout refreshes the scout's cached surface
func (p *PlatformSampler) SampleScout(sc *entity.Scout) {
	sc.Surface = p.Sample(sc.Feet())
}

// SampleTarget returns the surface under the target without touching it
func (p *PlatformSampler) SampleTarget(t *entity.Target) entity.SurfaceID {
	return p.Sample(t.Feet())
}
