package system

import (
	"fmt"

	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/infrastructure/config"
)

// PhysicsQuery is the geometry service the behaviour relies on
type PhysicsQuery interface {
	// OverlapCircle returns the surface on mask overlapping the circle, or NoSurface
	OverlapCircle(center entity.Vec2, radius float64, mask entity.LayerMask) entity.SurfaceID
	// Raycast returns the first surface on mask along the ray
	Raycast(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) (entity.SurfaceID, bool)
	// Separation returns the signed minimum distance between two footprints (<=0 penetrating)
	Separation(a, b entity.Rect) float64
}

// TargetLocator resolves the player target. It may report false until the
// target spawns; callers retry on a later tick.
type TargetLocator interface {
	Locate() (*entity.Target, bool)
}

// LocatorFunc adapts a function to TargetLocator
type LocatorFunc func() (*entity.Target, bool)

// Locate calls f
func (f LocatorFunc) Locate() (*entity.Target, bool) { return f() }

// Tuning is a scout config with its layer masks parsed once
type Tuning struct {
	config.ScoutConfig
	Masks config.Masks
}

// NewTuning validates cfg and parses its masks
func NewTuning(cfg config.ScoutConfig) (*Tuning, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scout tuning: %w", err)
	}
	masks, err := cfg.Masks()
	if err != nil {
		return nil, fmt.Errorf("invalid scout tuning: %w", err)
	}
	return &Tuning{ScoutConfig: cfg, Masks: masks}, nil
}

// NewHitbox returns a disabled hitbox built from the tuning
func (t *Tuning) NewHitbox() entity.AttackHitbox {
	return t.Hitbox(t.Masks.Target)
}
