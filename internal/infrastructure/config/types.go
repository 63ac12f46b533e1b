package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/scout/internal/domain/entity"
)

// ScoutConfig is the root config for scout tuning files
type ScoutConfig struct {
	ID        string          `json:"id" yaml:"id"`
	Body      BodyConfig      `json:"body" yaml:"body"`
	Patrol    PatrolConfig    `json:"patrol" yaml:"patrol"`
	Detection DetectionConfig `json:"detection" yaml:"detection"`
	Ground    GroundConfig    `json:"ground" yaml:"ground"`
	Chase     ChaseConfig     `json:"chase" yaml:"chase"`
	Attack    AttackConfig    `json:"attack" yaml:"attack"`
	Lifecycle LifecycleConfig `json:"lifecycle" yaml:"lifecycle"`
}

type BodyConfig struct {
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	MaxHealth int     `json:"maxHealth" yaml:"maxHealth"`
}

type PatrolConfig struct {
	Speed       float64 `json:"speed" yaml:"speed"`
	Distance    float64 `json:"distance" yaml:"distance"`
	PauseAtEnds float64 `json:"pauseAtEnds" yaml:"pauseAtEnds"`
}

type DetectionConfig struct {
	AggroDistance       float64  `json:"aggroDistance" yaml:"aggroDistance"`
	VerticalTolerance   float64  `json:"verticalTolerance" yaml:"verticalTolerance"`
	RequireSamePlatform bool     `json:"requireSamePlatform" yaml:"requireSamePlatform"`
	UseLineOfSight      bool     `json:"useLineOfSight" yaml:"useLineOfSight"`
	OcclusionLayers     []string `json:"occlusionLayers" yaml:"occlusionLayers"`
	LoseSightLinger     float64  `json:"loseSightLinger" yaml:"loseSightLinger"`
}

// GroundConfig controls the platform probe under the feet
type GroundConfig struct {
	ProbeOffset float64  `json:"probeOffset" yaml:"probeOffset"`
	ProbeRadius float64  `json:"probeRadius" yaml:"probeRadius"`
	Layers      []string `json:"layers" yaml:"layers"`
}

type ChaseConfig struct {
	Speed                 float64 `json:"speed" yaml:"speed"`
	Accel                 float64 `json:"accel" yaml:"accel"`
	PreferredStopDistance float64 `json:"preferredStopDistance" yaml:"preferredStopDistance"`
	TouchEpsilon          float64 `json:"touchEpsilon" yaml:"touchEpsilon"`
	MicroStepSpeed        float64 `json:"microStepSpeed" yaml:"microStepSpeed"`
	ReactionDelay         float64 `json:"reactionDelayOnAggro" yaml:"reactionDelayOnAggro"`
}

type AttackConfig struct {
	Range        float64      `json:"range" yaml:"range"`
	Windup       float64      `json:"windup" yaml:"windup"`
	ActiveTime   float64      `json:"activeTime" yaml:"activeTime"`
	Cooldown     float64      `json:"cooldown" yaml:"cooldown"`
	Damage       int          `json:"damage" yaml:"damage"`
	HitboxOffset OffsetConfig `json:"hitboxOffset" yaml:"hitboxOffset"`
	HitboxSize   SizeConfig   `json:"hitboxSize" yaml:"hitboxSize"`
	TargetLayers []string     `json:"targetLayers" yaml:"targetLayers"`
}

type LifecycleConfig struct {
	DestroyDelay float64 `json:"destroyDelay" yaml:"destroyDelay"`
}

type OffsetConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type SizeConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Masks holds the parsed layer masks of a ScoutConfig
type Masks struct {
	Ground    entity.LayerMask
	Occlusion entity.LayerMask
	Target    entity.LayerMask
}

// Masks parses the configured layer names
func (c *ScoutConfig) Masks() (Masks, error) {
	var m Masks
	var err error
	if m.Ground, err = entity.ParseLayerMask(c.Ground.Layers); err != nil {
		return Masks{}, fmt.Errorf("ground.layers: %w", err)
	}
	if m.Occlusion, err = entity.ParseLayerMask(c.Detection.OcclusionLayers); err != nil {
		return Masks{}, fmt.Errorf("detection.occlusionLayers: %w", err)
	}
	if m.Target, err = entity.ParseLayerMask(c.Attack.TargetLayers); err != nil {
		return Masks{}, fmt.Errorf("attack.targetLayers: %w", err)
	}
	return m, nil
}

// Validate reports every problem with the config at once
func (c *ScoutConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", name, v))
		}
	}

	positive("body.width", c.Body.Width)
	positive("body.height", c.Body.Height)
	if c.Body.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("body.maxHealth must be > 0, got %d", c.Body.MaxHealth))
	}

	positive("patrol.speed", c.Patrol.Speed)
	nonNegative("patrol.distance", c.Patrol.Distance)
	nonNegative("patrol.pauseAtEnds", c.Patrol.PauseAtEnds)

	nonNegative("detection.aggroDistance", c.Detection.AggroDistance)
	nonNegative("detection.verticalTolerance", c.Detection.VerticalTolerance)
	nonNegative("detection.loseSightLinger", c.Detection.LoseSightLinger)

	nonNegative("ground.probeOffset", c.Ground.ProbeOffset)
	positive("ground.probeRadius", c.Ground.ProbeRadius)

	positive("chase.speed", c.Chase.Speed)
	positive("chase.accel", c.Chase.Accel)
	positive("chase.microStepSpeed", c.Chase.MicroStepSpeed)
	nonNegative("chase.touchEpsilon", c.Chase.TouchEpsilon)
	nonNegative("chase.reactionDelayOnAggro", c.Chase.ReactionDelay)
	if c.Chase.TouchEpsilon >= c.Chase.PreferredStopDistance {
		errs = append(errs, fmt.Errorf("chase.touchEpsilon (%v) must be < chase.preferredStopDistance (%v)",
			c.Chase.TouchEpsilon, c.Chase.PreferredStopDistance))
	}

	nonNegative("attack.range", c.Attack.Range)
	nonNegative("attack.windup", c.Attack.Windup)
	positive("attack.activeTime", c.Attack.ActiveTime)
	nonNegative("attack.cooldown", c.Attack.Cooldown)
	nonNegative("attack.damage", float64(c.Attack.Damage))
	positive("attack.hitboxSize.width", c.Attack.HitboxSize.Width)
	positive("attack.hitboxSize.height", c.Attack.HitboxSize.Height)
	if len(c.Attack.TargetLayers) == 0 {
		errs = append(errs, errors.New("attack.targetLayers must name at least one layer"))
	}

	nonNegative("lifecycle.destroyDelay", c.Lifecycle.DestroyDelay)

	if _, err := c.Masks(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Hitbox builds the attack hitbox described by the config
func (c *ScoutConfig) Hitbox(targetMask entity.LayerMask) entity.AttackHitbox {
	return entity.AttackHitbox{
		LocalOffset: entity.Vec2{X: c.Attack.HitboxOffset.X, Y: c.Attack.HitboxOffset.Y},
		Size:        entity.Box{Width: c.Attack.HitboxSize.Width, Height: c.Attack.HitboxSize.Height},
		Damage:      c.Attack.Damage,
		TargetMask:  targetMask,
	}
}

// BodyBox returns the scout footprint
func (c *ScoutConfig) BodyBox() entity.Box {
	return entity.Box{Width: c.Body.Width, Height: c.Body.Height}
}
