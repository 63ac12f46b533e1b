package system

import (
	"math"

	"github.com/younwookim/scout/internal/domain/entity"
)

// boundEpsilon treats a scout within this distance of a patrol bound as on it
const boundEpsilon = 1e-9

// LocomotionController produces the horizontal velocity command for patrol and chase
type LocomotionController struct {
	contact *ContactResolver
	tuning  *Tuning
}

// NewLocomotionController creates a controller
func NewLocomotionController(contact *ContactResolver, tuning *Tuning) *LocomotionController {
	return &LocomotionController{contact: contact, tuning: tuning}
}

// PatrolBounds returns the sweep range around the anchor
func (l *LocomotionController) PatrolBounds(sc *entity.Scout) (left, right float64) {
	d := l.tuning.Patrol.Distance
	return sc.StartX - d, sc.StartX + d
}

// Patrol sweeps between the bounds. Reaching a bound zeroes velocity for
// pauseAtEnds, after which the direction flips.
func (l *LocomotionController) Patrol(sc *entity.Scout, now, dt float64) {
	p := &sc.Patrol
	left, right := l.PatrolBounds(sc)

	if !p.Turning && l.atOuterBound(sc, left, right) {
		p.Turning = true
		p.TurnEndsAt = now + l.tuning.Patrol.PauseAtEnds
	}

	if p.Turning {
		sc.Vel.X = 0
		if !entity.Reached(now, p.TurnEndsAt) {
			return
		}
		p.Turning = false
		p.Dir = -p.Dir
	}

	dir := p.Dir.Sign()
	vx := dir * l.tuning.Patrol.Speed * sc.Modifiers.Speed()

	// land exactly on the bound instead of overshooting it
	if dt > 0 {
		next := sc.Pos.X + vx*dt
		if dir > 0 && next > right {
			vx = math.Max(0, (right-sc.Pos.X)/dt)
		} else if dir < 0 && next < left {
			vx = math.Min(0, (left-sc.Pos.X)/dt)
		}
	}

	sc.Vel.X = vx
	sc.Face(dir)
}

func (l *LocomotionController) atOuterBound(sc *entity.Scout, left, right float64) bool {
	if sc.Patrol.Dir == entity.FacingRight {
		return sc.Pos.X >= right-boundEpsilon
	}
	return sc.Pos.X <= left+boundEpsilon
}

// Chase faces the target and picks a velocity from the contact class.
// Movement is held at zero until the reaction delay has passed.
func (l *LocomotionController) Chase(sc *entity.Scout, t *entity.Target, now, dt float64) Contact {
	sc.Face(t.Pos.X - sc.Pos.X)
	sep, contact := l.contact.Resolve(sc, t)

	if !entity.Reached(now, sc.Detection.AggroReadyTime) {
		sc.Vel.X = 0
		return contact
	}

	cfg := l.tuning.Chase
	dir := sc.Facing.Sign()
	mod := sc.Modifiers.Speed()

	switch contact {
	case ContactTouching:
		sc.Vel.X = 0
	case ContactNear:
		sc.Vel.X = dir * l.capToGap(cfg.MicroStepSpeed*mod, sep, dt)
	default:
		want := dir * cfg.Speed * mod
		vx := approach(sc.Vel.X, want, cfg.Accel*dt)
		if vx*dir > 0 {
			vx = dir * l.capToGap(math.Abs(vx), sep, dt)
		}
		sc.Vel.X = vx
	}
	return contact
}

// capToGap limits speed so one tick closes the gap to half the touch
// epsilon at most, which leaves the footprints touching without overlap
func (l *LocomotionController) capToGap(speed, sep, dt float64) float64 {
	if dt <= 0 {
		return speed
	}
	limit := (sep - l.tuning.Chase.TouchEpsilon/2) / dt
	if limit < 0 {
		limit = 0
	}
	return math.Min(speed, limit)
}

// approach moves v toward want by at most step
func approach(v, want, step float64) float64 {
	if v < want {
		return math.Min(v+step, want)
	}
	return math.Max(v-step, want)
}
