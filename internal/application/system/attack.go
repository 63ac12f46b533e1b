package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/event"
	"github.com/younwookim/scout/internal/domain/entity"
)

// AttackSequencer runs windup, active and recovery for one attack.
// It is the only writer of the scout's hitbox.
type AttackSequencer struct {
	tuning *Tuning
	bus    *event.Bus
	logger *zap.Logger
}

// NewAttackSequencer creates a sequencer
func NewAttackSequencer(tuning *Tuning, bus *event.Bus, logger *zap.Logger) *AttackSequencer {
	return &AttackSequencer{tuning: tuning, bus: bus, logger: logger}
}

// Start begins an attack. It returns false, doing nothing, when one is already running.
func (a *AttackSequencer) Start(sc *entity.Scout, now float64) bool {
	if sc.Attacking() {
		return false
	}
	sc.Attack = &entity.AttackRun{
		Phase:          entity.PhaseWindup,
		PhaseStartedAt: now,
		StartedAt:      now,
	}
	sc.Hitbox = a.tuning.NewHitbox()
	sc.Vel.X = 0
	a.logger.Debug("attack windup",
		zap.Uint32("scout", uint32(sc.ID)),
		zap.Float64("t", now),
	)
	return true
}

// Update advances the running attack and reports true once it has finished.
// Phase deadlines chain from the nominal durations so tick size never
// stretches the active window.
func (a *AttackSequencer) Update(sc *entity.Scout, t *entity.Target, now float64) bool {
	run := sc.Attack
	if run == nil {
		return true
	}
	cfg := a.tuning.Attack
	sc.Vel.X = 0

	if run.Phase == entity.PhaseWindup {
		if !entity.Reached(now, run.PhaseStartedAt+cfg.Windup) {
			return false
		}
		run.Phase = entity.PhaseActive
		run.PhaseStartedAt += cfg.Windup
		sc.Hitbox.Place(sc.Facing)
		sc.Hitbox.Enabled = true
		sc.Hitbox.Overlapping = false
		a.logger.Debug("attack active",
			zap.Uint32("scout", uint32(sc.ID)),
			zap.Stringer("facing", sc.Facing),
			zap.Float64("t", now),
		)
	}

	if run.Phase == entity.PhaseActive {
		if !entity.Reached(now, run.PhaseStartedAt+cfg.ActiveTime) {
			a.resolveHit(sc, t, now)
			return false
		}
		run.Phase = entity.PhaseRecovery
		run.PhaseStartedAt += cfg.ActiveTime
		sc.Hitbox.Disable()
	}

	sc.Vel.X = 0
	sc.CooldownEndTime = now + cfg.Cooldown
	sc.Attack = nil
	a.logger.Debug("attack recovered",
		zap.Uint32("scout", uint32(sc.ID)),
		zap.Float64("cooldownEnd", sc.CooldownEndTime),
	)
	return true
}

// Cancel aborts any running attack and disables the hitbox
func (a *AttackSequencer) Cancel(sc *entity.Scout) {
	sc.Attack = nil
	sc.Hitbox.Disable()
	sc.Vel.X = 0
}

// resolveHit damages the target on the tick the hitbox starts overlapping it
func (a *AttackSequencer) resolveHit(sc *entity.Scout, t *entity.Target, now float64) {
	if t == nil || !sc.Hitbox.Enabled {
		return
	}
	tr, ok := t.Rect()
	if !ok {
		return
	}

	overlapping := sc.Hitbox.Accepts(t.Layer) && sc.Hitbox.WorldRect(sc.Pos).Overlaps(tr)
	entered := overlapping && !sc.Hitbox.Overlapping
	sc.Hitbox.Overlapping = overlapping
	if !entered {
		return
	}

	t.TakeDamage(sc.Hitbox.Damage)
	a.bus.TargetHit.Publish(event.TargetHit{
		Scout:  sc.ID,
		Target: t.ID,
		Damage: sc.Hitbox.Damage,
		At:     now,
	})
	a.logger.Debug("target hit",
		zap.Uint32("scout", uint32(sc.ID)),
		zap.Int("damage", sc.Hitbox.Damage),
	)
}
