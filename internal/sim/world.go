// Package sim runs scouts and the player target on a fixed tick.
package sim

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/event"
	"github.com/younwookim/scout/internal/application/system"
	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/infrastructure/config"
)

// World holds every live entity of a stage and the clock that drives them.
// Entity IDs are never recycled; 0 means "none".
type World struct {
	nextID entity.EntityID
	tick   int
	dt     float64

	stage   *entity.Stage
	physics system.PhysicsQuery
	bus     *event.Bus
	logger  *zap.Logger

	// Scout behaviour per profile name
	behaviors      map[string]*system.BehaviorSystem
	defaultProfile string
	profileOf      map[entity.EntityID]string

	scouts map[entity.EntityID]*entity.Scout
	order  []entity.EntityID

	targetCfg *config.TargetConfig
	target    *entity.Target

	input     *system.InputSystem
	combat    *system.CombatSystem
	motion    *system.PhysicsSystem
	objective *Objective
}

// NewWorld creates an empty world for stage. cfg.Scout is the default
// profile; cfg.Profiles adds named ones.
func NewWorld(stage *entity.Stage, cfg *config.GameConfig, physics system.PhysicsQuery, logger *zap.Logger) (*World, error) {
	if cfg == nil || cfg.Scout == nil {
		return nil, fmt.Errorf("world needs a default scout profile")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	targetCfg := cfg.Target
	if targetCfg == nil {
		def := config.DefaultTarget()
		targetCfg = &def
	}

	bus := event.NewBus()
	w := &World{
		nextID:    1,
		dt:        1.0 / float64(ebiten.DefaultTPS),
		stage:     stage,
		physics:   physics,
		bus:       bus,
		logger:    logger,
		behaviors: make(map[string]*system.BehaviorSystem),
		profileOf: make(map[entity.EntityID]string),
		scouts:    make(map[entity.EntityID]*entity.Scout),
		targetCfg: targetCfg,
		input:     system.NewInputSystem(targetCfg),
		motion:    system.NewPhysicsSystem(stage),
		objective: NewObjective(bus),
	}

	combat, err := system.NewCombatSystem(targetCfg, stage, logger)
	if err != nil {
		return nil, err
	}
	w.combat = combat

	w.defaultProfile = cfg.Scout.ID
	if err := w.addProfile(cfg.Scout.ID, *cfg.Scout); err != nil {
		return nil, err
	}
	for name, p := range cfg.Profiles {
		if _, ok := w.behaviors[name]; ok {
			continue
		}
		if err := w.addProfile(name, *p); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *World) addProfile(name string, cfg config.ScoutConfig) error {
	b, err := system.NewBehaviorSystem(cfg, w.physics, system.LocatorFunc(w.Locate), w.bus, w.logger)
	if err != nil {
		return fmt.Errorf("profile %q: %w", name, err)
	}
	w.behaviors[name] = b
	return nil
}

// SetDT sets the fixed tick length. Must be called before the first Step.
func (w *World) SetDT(dt float64) {
	w.dt = dt
}

// DT returns the fixed tick length
func (w *World) DT() float64 { return w.dt }

// Now returns the simulation time of the next tick
func (w *World) Now() float64 { return float64(w.tick) * w.dt }

// Tick returns the number of completed ticks
func (w *World) Tick() int { return w.tick }

// Bus returns the world's event bus
func (w *World) Bus() *event.Bus { return w.bus }

// Objective returns the clear tracker
func (w *World) Objective() *Objective { return w.objective }

// Input returns the keyboard reader for the target
func (w *World) Input() *system.InputSystem { return w.input }

// Stage returns the stage the world runs on
func (w *World) Stage() *entity.Stage { return w.stage }

// Behavior returns the behaviour for a profile; "" is the default profile
func (w *World) Behavior(profile string) (*system.BehaviorSystem, bool) {
	if profile == "" {
		profile = w.defaultProfile
	}
	b, ok := w.behaviors[profile]
	return b, ok
}

// Reconfigure swaps a profile's tuning. Live scouts of that profile pick it
// up on their next tick.
func (w *World) Reconfigure(profile string, cfg config.ScoutConfig) error {
	b, ok := w.Behavior(profile)
	if !ok {
		return fmt.Errorf("unknown scout profile %q", profile)
	}
	return b.SetConfig(cfg)
}

func (w *World) newEntity() entity.EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// SpawnScout creates a scout of the given profile anchored at pos
func (w *World) SpawnScout(profile string, pos entity.Vec2, facingRight bool) (entity.EntityID, error) {
	b, ok := w.Behavior(profile)
	if !ok {
		return 0, fmt.Errorf("unknown scout profile %q", profile)
	}
	if profile == "" {
		profile = w.defaultProfile
	}

	tuning := b.Tuning()
	id := w.newEntity()
	sc := entity.NewScout(id, pos, tuning.BodyBox(), facingRight, tuning.Body.MaxHealth)
	b.Prepare(sc)

	w.scouts[id] = sc
	w.profileOf[id] = profile
	w.order = append(w.order, id)
	w.objective.Track(id)

	w.logger.Debug("scout spawned",
		zap.Uint32("scout", uint32(id)),
		zap.String("profile", profile),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
	return id, nil
}

// SpawnScouts places every scout of a stage file
func (w *World) SpawnScouts(spawns []config.ScoutSpawnConfig) error {
	for i, s := range spawns {
		if _, err := w.SpawnScout(s.Profile, entity.Vec2{X: s.X, Y: s.Y}, s.FacingRight); err != nil {
			return fmt.Errorf("scouts[%d]: %w", i, err)
		}
	}
	return nil
}

// SetTarget places the player target at pos, creating it on first use
func (w *World) SetTarget(pos entity.Vec2) *entity.Target {
	if w.target == nil {
		body := entity.Box{Width: w.targetCfg.Width, Height: w.targetCfg.Height}
		w.target = entity.NewTarget(w.newEntity(), pos, body, w.targetCfg.MaxHealth)
		w.logger.Debug("target spawned", zap.Uint32("target", uint32(w.target.ID)))
		return w.target
	}
	w.target.Pos = pos
	w.target.Vel = entity.Vec2{}
	return w.target
}

// Target returns the player target, or nil before SetTarget
func (w *World) Target() *entity.Target { return w.target }

// StrikeArea returns the circle the target's strike covers. ok is false
// before SetTarget.
func (w *World) StrikeArea() (center entity.Vec2, radius float64, ok bool) {
	if w.target == nil {
		return entity.Vec2{}, 0, false
	}
	center, radius = w.combat.StrikeArea(w.target)
	return center, radius, true
}

// Locate implements system.TargetLocator
func (w *World) Locate() (*entity.Target, bool) {
	return w.target, w.target != nil
}

// Scout returns a scout by ID
func (w *World) Scout(id entity.EntityID) (*entity.Scout, bool) {
	sc, ok := w.scouts[id]
	return sc, ok
}

// Scouts returns the scouts in spawn order
func (w *World) Scouts() []*entity.Scout {
	out := make([]*entity.Scout, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.scouts[id])
	}
	return out
}

// CountScouts returns the number of scouts not yet removed, dying ones included
func (w *World) CountScouts() int {
	return len(w.scouts)
}

// Kill kills a scout outright. It returns false when the scout is unknown or
// already dead.
func (w *World) Kill(id entity.EntityID, cause entity.DeathCause) bool {
	sc, ok := w.scouts[id]
	if !ok {
		return false
	}
	return w.behaviorOf(id).Lifecycle().Die(sc, cause, w.Now())
}

// Damage applies damage to a scout
func (w *World) Damage(id entity.EntityID, amount int) {
	if sc, ok := w.scouts[id]; ok {
		w.behaviorOf(id).Lifecycle().Damage(sc, amount, w.Now())
	}
}

func (w *World) behaviorOf(id entity.EntityID) *system.BehaviorSystem {
	return w.behaviors[w.profileOf[id]]
}

// Step advances the world by one tick
func (w *World) Step(intent system.TargetIntent) {
	now := w.Now()
	scouts := w.Scouts()

	if t := w.target; t != nil {
		w.input.UpdateTarget(t, intent)
		w.combat.UpdateWater(t.ID, t.Feet(), t.Layer, &t.Modifiers)
		if b, ok := w.Behavior(""); ok {
			t.Surface = b.Sampler().SampleTarget(t)
		}
	}

	for _, sc := range scouts {
		if sc.Alive {
			w.combat.UpdateWater(sc.ID, sc.Feet(), sc.Layer, &sc.Modifiers)
		}
		w.behaviorOf(sc.ID).Update(sc, now, w.dt)
	}

	for _, sc := range scouts {
		w.motion.UpdateScout(sc, w.dt)
	}
	if w.target != nil {
		w.motion.UpdateTarget(w.target, w.dt)
	}

	w.applyKillZones(scouts, now)
	if intent.Strike && w.target != nil {
		w.strike(scouts, now)
	}
	w.removeExpired(now)

	w.tick++
}

func (w *World) applyKillZones(scouts []*entity.Scout, now float64) {
	for _, sc := range scouts {
		if sc.Alive && w.combat.InKillZone(sc.Rect().Center(), sc.Layer) {
			w.behaviorOf(sc.ID).Lifecycle().Die(sc, entity.CauseKillZone, now)
		}
	}

	t := w.target
	if t == nil || w.stage == nil {
		return
	}
	if r, ok := t.Rect(); ok && w.combat.InKillZone(r.Center(), t.Layer) {
		w.logger.Info("target fell into a kill zone, respawning",
			zap.Float64("x", t.Pos.X),
			zap.Float64("y", t.Pos.Y),
		)
		w.SetTarget(entity.Vec2{X: w.stage.SpawnX, Y: w.stage.SpawnY})
	}
}

func (w *World) strike(scouts []*entity.Scout, now float64) {
	for _, sc := range w.combat.Strike(w.target, scouts, now) {
		w.behaviorOf(sc.ID).Lifecycle().Damage(sc, w.combat.StrikeDamage(), now)
	}
}

func (w *World) removeExpired(now float64) {
	kept := w.order[:0]
	for _, id := range w.order {
		sc := w.scouts[id]
		if !w.behaviorOf(id).Lifecycle().Expired(sc, now) {
			kept = append(kept, id)
			continue
		}
		delete(w.scouts, id)
		delete(w.profileOf, id)
		w.combat.Forget(id)
		w.logger.Debug("scout removed", zap.Uint32("scout", uint32(id)), zap.Float64("t", now))
	}
	w.order = kept
}
