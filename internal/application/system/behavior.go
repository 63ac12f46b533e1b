package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/event"
	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/infrastructure/config"
)

// BehaviorSystem runs the Patrol / Chase / Attack / Cooldown machine for
// scouts sharing one tuning profile
type BehaviorSystem struct {
	tuning  *Tuning
	locator TargetLocator
	logger  *zap.Logger

	sampler    *PlatformSampler
	oracle     *DetectionOracle
	contact    *ContactResolver
	locomotion *LocomotionController
	attack     *AttackSequencer
	lifecycle  *Lifecycle
}

// NewBehaviorSystem wires the behaviour components around one tuning profile
func NewBehaviorSystem(cfg config.ScoutConfig, physics PhysicsQuery, locator TargetLocator, bus *event.Bus, logger *zap.Logger) (*BehaviorSystem, error) {
	tuning, err := NewTuning(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	logger = logger.With(zap.String("profile", cfg.ID))

	contact := NewContactResolver(physics, tuning)
	attack := NewAttackSequencer(tuning, bus, logger)
	return &BehaviorSystem{
		tuning:     tuning,
		locator:    locator,
		logger:     logger,
		sampler:    NewPlatformSampler(physics, tuning),
		oracle:     NewDetectionOracle(physics, tuning),
		contact:    contact,
		locomotion: NewLocomotionController(contact, tuning),
		attack:     attack,
		lifecycle:  NewLifecycle(tuning, attack, bus, logger),
	}, nil
}

// SetConfig swaps the tuning in place. Running scouts pick it up next tick.
func (b *BehaviorSystem) SetConfig(cfg config.ScoutConfig) error {
	tuning, err := NewTuning(cfg)
	if err != nil {
		return err
	}
	*b.tuning = *tuning
	b.logger.Info("scout tuning updated")
	return nil
}

// Tuning returns the active tuning
func (b *BehaviorSystem) Tuning() *Tuning { return b.tuning }

// Lifecycle returns the damage and death handler
func (b *BehaviorSystem) Lifecycle() *Lifecycle { return b.lifecycle }

// Attack returns the attack sequencer
func (b *BehaviorSystem) Attack() *AttackSequencer { return b.attack }

// Sampler returns the platform sampler
func (b *BehaviorSystem) Sampler() *PlatformSampler { return b.sampler }

// Prepare readies a freshly spawned scout for this profile
func (b *BehaviorSystem) Prepare(sc *entity.Scout) {
	sc.Body = b.tuning.BodyBox()
	sc.Hitbox = b.tuning.NewHitbox()
	sc.State = entity.StatePatrol
}

// Update runs one fixed tick for a scout. Velocity is set here and
// integrated by the caller.
func (b *BehaviorSystem) Update(sc *entity.Scout, now, dt float64) {
	if !sc.Alive || !sc.Simulated {
		return
	}

	target := b.resolveTarget(sc)

	// surfaces must be fresh before detection reads them
	b.sampler.SampleScout(sc)
	detected, dist := b.oracle.CanDetect(sc, target)
	if detected {
		sc.Detection.MarkSeen(now)
	}
	perceived := sc.Detection.Perceived(now, b.tuning.Detection.LoseSightLinger)

	switch sc.State {
	case entity.StatePatrol:
		b.updatePatrol(sc, target, perceived, dist, now, dt)
	case entity.StateChase:
		b.updateChase(sc, target, perceived, now, dt)
	case entity.StateAttack:
		b.updateAttack(sc, target, now)
	case entity.StateCooldown:
		b.updateCooldown(sc, perceived, now)
	}
}

func (b *BehaviorSystem) updatePatrol(sc *entity.Scout, target *entity.Target, perceived bool, dist, now, dt float64) {
	b.locomotion.Patrol(sc, now, dt)

	// a turn pause blocks aggro until it completes
	if sc.Patrol.Turning || !perceived || target == nil {
		return
	}

	sc.Face(target.Pos.X - sc.Pos.X)
	if dist <= b.tuning.Attack.Range {
		b.enterAttack(sc, target, now)
		return
	}
	sc.Detection.AggroReadyTime = now + b.tuning.Chase.ReactionDelay
	sc.Vel.X = 0
	b.enter(sc, entity.StateChase, now)
}

func (b *BehaviorSystem) updateChase(sc *entity.Scout, target *entity.Target, perceived bool, now, dt float64) {
	if !perceived {
		sc.Detection.Forget()
		sc.Vel.X = 0
		sc.Patrol = entity.PatrolState{Dir: sc.Facing}
		b.enter(sc, entity.StatePatrol, now)
		return
	}
	if target == nil {
		sc.Vel.X = 0
		return
	}

	if b.locomotion.Chase(sc, target, now, dt) == ContactTouching && !sc.Attacking() {
		b.enterAttack(sc, target, now)
	}
}

func (b *BehaviorSystem) updateAttack(sc *entity.Scout, target *entity.Target, now float64) {
	if !sc.Attacking() {
		b.attack.Start(sc, now)
	}
	if b.attack.Update(sc, target, now) {
		b.enter(sc, entity.StateCooldown, now)
	}
}

func (b *BehaviorSystem) updateCooldown(sc *entity.Scout, perceived bool, now float64) {
	sc.Vel.X = 0
	if !entity.Reached(now, sc.CooldownEndTime) {
		return
	}
	if perceived {
		b.enter(sc, entity.StateChase, now)
		return
	}
	sc.Detection.Forget()
	sc.Patrol = entity.PatrolState{Dir: sc.Facing}
	b.enter(sc, entity.StatePatrol, now)
}

func (b *BehaviorSystem) enterAttack(sc *entity.Scout, target *entity.Target, now float64) {
	b.enter(sc, entity.StateAttack, now)
	b.attack.Start(sc, now)
	// a zero windup goes active on the entry tick
	if b.attack.Update(sc, target, now) {
		b.enter(sc, entity.StateCooldown, now)
	}
}

func (b *BehaviorSystem) enter(sc *entity.Scout, next entity.BehaviorState, now float64) {
	if sc.State == next {
		return
	}
	b.logger.Debug("state transition",
		zap.Uint32("scout", uint32(sc.ID)),
		zap.Stringer("from", sc.State),
		zap.Stringer("to", next),
		zap.Float64("t", now),
	)
	sc.State = next
	sc.StateEnteredAt = now
}

// resolveTarget fills the scout's target cache, retrying the locator every
// tick until the target exists
func (b *BehaviorSystem) resolveTarget(sc *entity.Scout) *entity.Target {
	if sc.Target != nil {
		return sc.Target
	}
	if b.locator == nil {
		return nil
	}
	if t, ok := b.locator.Locate(); ok && t != nil {
		sc.Target = t
	}
	return sc.Target
}
