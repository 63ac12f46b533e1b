package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/event"
	"github.com/younwookim/scout/internal/domain/entity"
)

// Lifecycle handles damage and death. Death can pre-empt any behaviour state.
type Lifecycle struct {
	tuning *Tuning
	attack *AttackSequencer
	bus    *event.Bus
	logger *zap.Logger
}

// NewLifecycle creates a lifecycle handler
func NewLifecycle(tuning *Tuning, attack *AttackSequencer, bus *event.Bus, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{tuning: tuning, attack: attack, bus: bus, logger: logger}
}

// Damage applies amount to the scout and kills it at zero health.
// Damage to a dead scout is ignored.
func (l *Lifecycle) Damage(sc *entity.Scout, amount int, now float64) {
	if !sc.Alive || amount <= 0 {
		return
	}
	sc.Health.TakeDamage(amount)
	l.bus.Damaged.Publish(event.ScoutDamaged{
		ID:        sc.ID,
		Amount:    amount,
		Remaining: sc.Health.Current,
		At:        now,
	})
	if !sc.Health.IsAlive() {
		l.Die(sc, entity.CauseDamage, now)
	}
}

// Die kills the scout once. Later calls return false and do nothing.
func (l *Lifecycle) Die(sc *entity.Scout, cause entity.DeathCause, now float64) bool {
	if !sc.Alive {
		return false
	}

	l.attack.Cancel(sc)
	sc.Alive = false
	sc.Vel = entity.Vec2{}
	sc.Simulated = false
	sc.Visible = false
	sc.RemoveAt = now + l.tuning.Lifecycle.DestroyDelay

	l.logger.Info("scout died",
		zap.Uint32("scout", uint32(sc.ID)),
		zap.Stringer("cause", cause),
		zap.Stringer("state", sc.State),
		zap.Float64("t", now),
	)
	l.bus.Died.Publish(event.ScoutDied{ID: sc.ID, Cause: cause, At: now})
	return true
}

// Expired reports whether a dead scout is due for removal
func (l *Lifecycle) Expired(sc *entity.Scout, now float64) bool {
	return !sc.Alive && entity.Reached(now, sc.RemoveAt)
}
