package entity

import (
	"fmt"
	"math"
	"strings"
)

// EntityID is a unique identifier for an entity
type EntityID uint32

// Vec2 is a point or offset in world units. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v*s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Len returns the euclidean length of v
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle in world coordinates (top-left origin)
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns a w*h rect centred on c
func RectAround(c Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Center returns the centre point of the rect
func (r Rect) Center() Vec2 { return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Contains reports whether p lies inside r (edges inclusive)
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Overlaps reports whether the rects share area. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Gap returns the minimum separation between two rects.
// Zero means touching, negative values are the shallowest penetration depth.
func (r Rect) Gap(o Rect) float64 {
	dx := math.Max(o.X-(r.X+r.W), r.X-(o.X+o.W))
	dy := math.Max(o.Y-(r.Y+r.H), r.Y-(o.Y+o.H))
	switch {
	case dx > 0 && dy > 0:
		return math.Hypot(dx, dy)
	case dx > 0:
		return dx
	case dy > 0:
		return dy
	default:
		// penetrating on both axes: the shallower axis resolves the overlap
		return math.Max(dx, dy)
	}
}

// Box is a collision footprint size, centred on its owner's position
type Box struct {
	Width  float64
	Height float64
}

// Valid reports whether the footprint can be used for separation queries
func (b Box) Valid() bool { return b.Width > 0 && b.Height > 0 }

// At returns the footprint placed around a centre position
func (b Box) At(center Vec2) Rect { return RectAround(center, b.Width, b.Height) }

// Facing is the horizontal direction an entity looks toward
type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// Sign returns -1 or +1
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

func (f Facing) String() string {
	if f == FacingLeft {
		return "Left"
	}
	return "Right"
}

// FacingFrom derives a facing from a horizontal signal.
// A zero signal keeps the current facing.
func FacingFrom(signal float64, current Facing) Facing {
	switch {
	case signal > 0:
		return FacingRight
	case signal < 0:
		return FacingLeft
	default:
		return current
	}
}

// SurfaceID identifies the platform collider an entity rests on.
// It is only meaningful for equality.
type SurfaceID uint64

// NoSurface means airborne or standing past an edge
const NoSurface SurfaceID = 0

// Same reports whether both ids name the same existing surface
func (s SurfaceID) Same(other SurfaceID) bool {
	return s != NoSurface && other != NoSurface && s == other
}

// LayerMask is a bit set of collision layers
type LayerMask uint32

const (
	LayerGround LayerMask = 1 << iota
	LayerWall
	LayerPlayer
	LayerEnemy
	LayerHazard
	LayerWater
)

// LayerNone is the empty mask
const LayerNone LayerMask = 0

var layerNames = map[string]LayerMask{
	"ground": LayerGround,
	"wall":   LayerWall,
	"player": LayerPlayer,
	"enemy":  LayerEnemy,
	"hazard": LayerHazard,
	"water":  LayerWater,
}

// Has reports whether any bit of l is set in m
func (m LayerMask) Has(l LayerMask) bool { return m&l != 0 }

// ParseLayerMask builds a mask from layer names such as "ground" or "player"
func ParseLayerMask(names []string) (LayerMask, error) {
	var mask LayerMask
	for _, name := range names {
		l, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return LayerNone, fmt.Errorf("unknown layer %q", name)
		}
		mask |= l
	}
	return mask, nil
}
