// Package physics answers the geometric queries the scout behaviour needs
// using a chipmunk space of static surfaces.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/scout/internal/domain/entity"
)

// Space holds the static surfaces of a stage
type Space struct {
	space    *cp.Space
	surfaces map[*cp.Shape]entity.SurfaceID
	nextID   entity.SurfaceID
}

// NewSpace creates an empty space
func NewSpace() *Space {
	return &Space{
		space:    cp.NewSpace(),
		surfaces: make(map[*cp.Shape]entity.SurfaceID),
	}
}

// FromStage creates a space holding every platform of the stage
func FromStage(stage *entity.Stage) *Space {
	s := NewSpace()
	for _, p := range stage.Platforms {
		s.AddSurface(p.ID, p.Rect, p.Layer)
	}
	return s
}

// AddSurface adds a static box on layer. A zero id is replaced by a fresh one.
func (s *Space) AddSurface(id entity.SurfaceID, r entity.Rect, layer entity.LayerMask) entity.SurfaceID {
	if id == entity.NoSurface {
		s.nextID++
		id = s.nextID
	}
	if id > s.nextID {
		s.nextID = id
	}

	shape := cp.NewBox2(s.space.StaticBody, toBB(r), 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	shape.UserData = id
	s.space.AddShape(shape)
	s.surfaces[shape] = id
	return id
}

// Len returns the number of surfaces
func (s *Space) Len() int { return len(s.surfaces) }

// OverlapCircle returns the surface nearest to center within radius on mask
func (s *Space) OverlapCircle(center entity.Vec2, radius float64, mask entity.LayerMask) entity.SurfaceID {
	if mask == entity.LayerNone {
		return entity.NoSurface
	}
	info := s.space.PointQueryNearest(toVec(center), radius, queryFilter(mask))
	if info == nil || info.Shape == nil {
		return entity.NoSurface
	}
	return s.surfaces[info.Shape]
}

// Raycast returns the first surface on mask hit by a ray of length maxDist.
// A zero direction hits nothing.
func (s *Space) Raycast(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) (entity.SurfaceID, bool) {
	l := dir.Len()
	if l == 0 || maxDist <= 0 || mask == entity.LayerNone {
		return entity.NoSurface, false
	}
	end := origin.Add(dir.Scale(maxDist / l))
	info := s.space.SegmentQueryFirst(toVec(origin), toVec(end), 0, queryFilter(mask))
	if info.Shape == nil {
		return entity.NoSurface, false
	}
	return s.surfaces[info.Shape], true
}

// Separation returns the minimum distance between two footprints.
// Penetrating footprints give the negative penetration depth.
func (s *Space) Separation(a, b entity.Rect) float64 {
	return a.Gap(b)
}

func queryFilter(mask entity.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

// toBB maps a y-down rect onto a chipmunk box. B is the smaller y.
func toBB(r entity.Rect) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}

func toVec(v entity.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
