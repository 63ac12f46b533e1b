package entity

// BehaviorState is the top-level state of a scout's behaviour machine
type BehaviorState int

const (
	StatePatrol BehaviorState = iota
	StateChase
	StateAttack
	StateCooldown
)

// String returns the string representation of the behaviour state
func (s BehaviorState) String() string {
	switch s {
	case StatePatrol:
		return "Patrol"
	case StateChase:
		return "Chase"
	case StateAttack:
		return "Attack"
	case StateCooldown:
		return "Cooldown"
	default:
		return "Unknown"
	}
}

// AttackPhase is a step of a running melee attack
type AttackPhase int

const (
	PhaseWindup AttackPhase = iota
	PhaseActive
	PhaseRecovery
)

func (p AttackPhase) String() string {
	switch p {
	case PhaseWindup:
		return "Windup"
	case PhaseActive:
		return "Active"
	case PhaseRecovery:
		return "Recovery"
	default:
		return "Unknown"
	}
}

// DeathCause records why a scout died
type DeathCause int

const (
	CauseDamage DeathCause = iota
	CauseKillZone
	CauseScripted
)

func (c DeathCause) String() string {
	switch c {
	case CauseDamage:
		return "damage"
	case CauseKillZone:
		return "kill_zone"
	case CauseScripted:
		return "scripted"
	default:
		return "unknown"
	}
}
