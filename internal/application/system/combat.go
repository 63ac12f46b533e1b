package system

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/infrastructure/config"
)

// CombatSystem handles everything between the target and the stage that is
// not scout behaviour: the target's strike, water zones and kill zones
type CombatSystem struct {
	config     *config.TargetConfig
	stage      *entity.Stage
	strikeMask entity.LayerMask
	logger     *zap.Logger

	nextStrikeAt float64
	// water tracks the modifier each entity holds per water zone index
	water map[entity.EntityID]map[int]entity.ModifierHandle
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.TargetConfig, stage *entity.Stage, logger *zap.Logger) (*CombatSystem, error) {
	mask, err := entity.ParseLayerMask(cfg.Strike.TargetLayers)
	if err != nil {
		return nil, fmt.Errorf("strike.targetLayers: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombatSystem{
		config:     cfg,
		stage:      stage,
		strikeMask: mask,
		logger:     logger,
		water:      make(map[entity.EntityID]map[int]entity.ModifierHandle),
	}, nil
}

// StrikeArea returns the circle the target's strike covers. The offset is
// mirrored to the target's facing.
func (s *CombatSystem) StrikeArea(t *entity.Target) (entity.Vec2, float64) {
	off := s.config.Strike.Offset
	center := entity.Vec2{X: t.Pos.X + math.Abs(off.X)*t.Facing.Sign(), Y: t.Pos.Y + off.Y}
	return center, s.config.Strike.Range
}

// Strike returns the live scouts inside the strike area, or nil when the
// strike is still on cooldown
func (s *CombatSystem) Strike(t *entity.Target, scouts []*entity.Scout, now float64) []*entity.Scout {
	if !entity.Reached(now, s.nextStrikeAt) {
		return nil
	}
	s.nextStrikeAt = now + 1/s.config.Strike.PerSecond

	center, radius := s.StrikeArea(t)
	var hit []*entity.Scout
	for _, sc := range scouts {
		if !sc.Alive || !s.strikeMask.Has(sc.Layer) {
			continue
		}
		if circleOverlapsRect(center, radius, sc.Rect()) {
			hit = append(hit, sc)
		}
	}
	s.logger.Debug("target strike", zap.Int("hits", len(hit)), zap.Float64("t", now))
	return hit
}

// StrikeDamage is the damage one strike deals to each scout it hits
func (s *CombatSystem) StrikeDamage() int { return s.config.Strike.Damage }

// InKillZone reports whether point lies in a kill zone affecting layer
func (s *CombatSystem) InKillZone(point entity.Vec2, layer entity.LayerMask) bool {
	for _, z := range s.stage.KillZones {
		if z.Mask.Has(layer) && z.Rect.Contains(point) {
			return true
		}
	}
	return false
}

// UpdateWater pushes a zone's modifier when the footprint centre enters it
// and pops that same modifier when it leaves
func (s *CombatSystem) UpdateWater(id entity.EntityID, point entity.Vec2, layer entity.LayerMask, mods *entity.ModifierStack) {
	held := s.water[id]
	for i, z := range s.stage.WaterZones {
		inside := z.Mask.Has(layer) && z.Rect.Contains(point)
		h, holding := held[i]
		switch {
		case inside && !holding:
			if held == nil {
				held = make(map[int]entity.ModifierHandle)
				s.water[id] = held
			}
			held[i] = mods.Push(z.Modifier)
		case !inside && holding:
			mods.Pop(h)
			delete(held, i)
		}
	}
}

// Forget drops zone bookkeeping for a removed entity
func (s *CombatSystem) Forget(id entity.EntityID) {
	delete(s.water, id)
}

func circleOverlapsRect(c entity.Vec2, r float64, rect entity.Rect) bool {
	nx := math.Max(rect.X, math.Min(c.X, rect.X+rect.W))
	ny := math.Max(rect.Y, math.Min(c.Y, rect.Y+rect.H))
	dx, dy := c.X-nx, c.Y-ny
	return dx*dx+dy*dy <= r*r
}
