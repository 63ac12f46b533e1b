package system

import (
	"math"

	"github.com/younwookim/scout/internal/domain/entity"
)

// Contact classifies how close a scout is to the target
type Contact int

const (
	ContactFar Contact = iota
	ContactNear
	ContactTouching
)

func (c Contact) String() string {
	switch c {
	case ContactFar:
		return "far"
	case ContactNear:
		return "near"
	case ContactTouching:
		return "touching"
	default:
		return "unknown"
	}
}

// ContactResolver measures footprint separation and classifies it
type ContactResolver struct {
	physics PhysicsQuery
	tuning  *Tuning
}

// NewContactResolver creates a resolver
func NewContactResolver(physics PhysicsQuery, tuning *Tuning) *ContactResolver {
	return &ContactResolver{physics: physics, tuning: tuning}
}

// Separation returns the footprint gap, or the centre-to-centre horizontal
// distance when either footprint is unknown
func (c *ContactResolver) Separation(sc *entity.Scout, t *entity.Target) float64 {
	tr, ok := t.Rect()
	if !ok || !sc.Body.Valid() {
		return math.Abs(t.Pos.X - sc.Pos.X)
	}
	return c.physics.Separation(sc.Rect(), tr)
}

// Classify maps a separation to far, near or touching. Both bounds are inclusive.
func (c *ContactResolver) Classify(sep float64) Contact {
	switch {
	case sep <= c.tuning.Chase.TouchEpsilon:
		return ContactTouching
	case sep <= c.tuning.Chase.PreferredStopDistance:
		return ContactNear
	default:
		return ContactFar
	}
}

// Resolve returns the separation and its classification
func (c *ContactResolver) Resolve(sc *entity.Scout, t *entity.Target) (float64, Contact) {
	sep := c.Separation(sc, t)
	return sep, c.Classify(sep)
}
