package config

// Scout tuning defaults. Distances are world units, times are seconds.
const (
	DefaultBodyWidth  = 0.8
	DefaultBodyHeight = 1.0
	DefaultMaxHealth  = 3

	DefaultSpeed          = 2.0
	DefaultPatrolDistance = 2.0
	DefaultPauseAtEnds    = 0.15

	DefaultAggroDistance       = 7.0
	DefaultVerticalTolerance   = 1.0
	DefaultRequireSamePlatform = true
	DefaultUseLineOfSight      = true
	DefaultLoseSightLinger     = 0.75

	DefaultProbeOffset = 0.05
	DefaultProbeRadius = 0.1

	DefaultChaseSpeed            = 3.5
	DefaultAccel                 = 20.0
	DefaultPreferredStopDistance = 0.6
	DefaultTouchEpsilon          = 0.05
	DefaultMicroStepSpeed        = 0.8
	DefaultReactionDelayOnAggro  = 0.25

	DefaultAttackRange      = 0.9
	DefaultAttackWindup     = 0.35
	DefaultAttackActiveTime = 0.15
	DefaultAttackCooldown   = 0.6
	DefaultAttackDamage     = 1
	DefaultHitboxOffsetX    = 0.6
	DefaultHitboxOffsetY    = 0.0
	DefaultHitboxWidth      = 0.6
	DefaultHitboxHeight     = 0.6

	DefaultDestroyDelay = 0.25
)

// Target defaults
const (
	DefaultTargetWidth       = 0.8
	DefaultTargetHeight      = 1.6
	DefaultTargetMaxHealth   = 5
	DefaultTargetSpeed       = 4.0
	DefaultStrikesPerSecond  = 3.0
	DefaultStrikeRange       = 0.6
	DefaultStrikeOffsetX     = 0.7
	DefaultStrikeDamage      = 1
	DefaultStrikeTargetLayer = "enemy"
)

// Default layer sets
var (
	DefaultGroundLayers    = []string{"ground"}
	DefaultOcclusionLayers = []string{"ground", "wall"}
	DefaultTargetLayers    = []string{"player"}
)

// DefaultScout returns a scout config filled with the default tuning
func DefaultScout() ScoutConfig {
	return ScoutConfig{
		ID: "scout",
		Body: BodyConfig{
			Width:     DefaultBodyWidth,
			Height:    DefaultBodyHeight,
			MaxHealth: DefaultMaxHealth,
		},
		Patrol: PatrolConfig{
			Speed:       DefaultSpeed,
			Distance:    DefaultPatrolDistance,
			PauseAtEnds: DefaultPauseAtEnds,
		},
		Detection: DetectionConfig{
			AggroDistance:       DefaultAggroDistance,
			VerticalTolerance:   DefaultVerticalTolerance,
			RequireSamePlatform: DefaultRequireSamePlatform,
			UseLineOfSight:      DefaultUseLineOfSight,
			OcclusionLayers:     append([]string(nil), DefaultOcclusionLayers...),
			LoseSightLinger:     DefaultLoseSightLinger,
		},
		Ground: GroundConfig{
			ProbeOffset: DefaultProbeOffset,
			ProbeRadius: DefaultProbeRadius,
			Layers:      append([]string(nil), DefaultGroundLayers...),
		},
		Chase: ChaseConfig{
			Speed:                 DefaultChaseSpeed,
			Accel:                 DefaultAccel,
			PreferredStopDistance: DefaultPreferredStopDistance,
			TouchEpsilon:          DefaultTouchEpsilon,
			MicroStepSpeed:        DefaultMicroStepSpeed,
			ReactionDelay:         DefaultReactionDelayOnAggro,
		},
		Attack: AttackConfig{
			Range:        DefaultAttackRange,
			Windup:       DefaultAttackWindup,
			ActiveTime:   DefaultAttackActiveTime,
			Cooldown:     DefaultAttackCooldown,
			Damage:       DefaultAttackDamage,
			HitboxOffset: OffsetConfig{X: DefaultHitboxOffsetX, Y: DefaultHitboxOffsetY},
			HitboxSize:   SizeConfig{Width: DefaultHitboxWidth, Height: DefaultHitboxHeight},
			TargetLayers: append([]string(nil), DefaultTargetLayers...),
		},
		Lifecycle: LifecycleConfig{
			DestroyDelay: DefaultDestroyDelay,
		},
	}
}

// DefaultTarget returns the default player target config
func DefaultTarget() TargetConfig {
	return TargetConfig{
		Width:     DefaultTargetWidth,
		Height:    DefaultTargetHeight,
		MaxHealth: DefaultTargetMaxHealth,
		Speed:     DefaultTargetSpeed,
		Strike: StrikeConfig{
			PerSecond:    DefaultStrikesPerSecond,
			Range:        DefaultStrikeRange,
			Offset:       OffsetConfig{X: DefaultStrikeOffsetX},
			Damage:       DefaultStrikeDamage,
			TargetLayers: []string{DefaultStrikeTargetLayer},
		},
	}
}
