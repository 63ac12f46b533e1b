package entity

// PatrolState holds the patrol sweep of a scout between ticks
type PatrolState struct {
	Dir        Facing
	Turning    bool
	TurnEndsAt float64
}

// DetectionState is the persisted part of target perception
type DetectionState struct {
	HasSeen        bool
	LastSeenTime   float64
	AggroReadyTime float64
}

// MarkSeen records a successful detection. LastSeenTime never moves backward.
func (d *DetectionState) MarkSeen(now float64) {
	if !d.HasSeen || now > d.LastSeenTime {
		d.LastSeenTime = now
	}
	d.HasSeen = true
}

// Perceived reports whether the target still counts as detected at now,
// which holds for linger seconds after the last real detection.
func (d DetectionState) Perceived(now, linger float64) bool {
	return d.HasSeen && now-d.LastSeenTime <= linger+timeEpsilon
}

// Forget clears perception, used when the scout gives up the chase
func (d *DetectionState) Forget() {
	d.HasSeen = false
	d.AggroReadyTime = 0
}

// AttackRun is the progress of an in-flight attack. It only exists while attacking.
type AttackRun struct {
	Phase          AttackPhase
	PhaseStartedAt float64
	StartedAt      float64
}

// Scout is a patrolling melee enemy
type Scout struct {
	ID      EntityID
	Pos     Vec2
	Vel     Vec2
	Facing  Facing
	Body    Box
	Surface SurfaceID
	Layer   LayerMask

	// Lifecycle
	Alive     bool
	Simulated bool
	Visible   bool
	RemoveAt  float64
	Health    Health

	// Behaviour
	StartX         float64
	State          BehaviorState
	StateEnteredAt float64
	Patrol         PatrolState
	Detection      DetectionState

	// Combat
	Attack          *AttackRun
	CooldownEndTime float64
	Hitbox          AttackHitbox

	Modifiers ModifierStack

	// Target is a non-owning cache filled by the target locator
	Target *Target
}

// NewScout creates a scout at pos. The patrol anchor is captured here and never changes.
func NewScout(id EntityID, pos Vec2, body Box, facingRight bool, maxHealth int) *Scout {
	facing := FacingLeft
	if facingRight {
		facing = FacingRight
	}
	return &Scout{
		ID:        id,
		Pos:       pos,
		Facing:    facing,
		Body:      body,
		Layer:     LayerEnemy,
		Alive:     true,
		Simulated: true,
		Visible:   true,
		Health:    NewHealth(maxHealth),
		StartX:    pos.X,
		State:     StatePatrol,
		Patrol:    PatrolState{Dir: facing},
	}
}

// Face updates facing from a horizontal signal. Zero keeps the current facing.
func (s *Scout) Face(signal float64) {
	s.Facing = FacingFrom(signal, s.Facing)
}

// Rect returns the collision footprint in world space
func (s *Scout) Rect() Rect { return s.Body.At(s.Pos) }

// Feet returns the bottom-centre point of the footprint
func (s *Scout) Feet() Vec2 { return Vec2{X: s.Pos.X, Y: s.Pos.Y + s.Body.Height/2} }

// IsDead is the read-only death flag exposed to collaborators
func (s *Scout) IsDead() bool { return !s.Alive }

// Attacking reports whether an attack sequence is in flight
func (s *Scout) Attacking() bool { return s.Attack != nil }

// timeEpsilon absorbs float drift when comparing tick timestamps
const timeEpsilon = 1e-9

// Reached reports whether now has reached deadline, tolerating float drift
func Reached(now, deadline float64) bool {
	return now+timeEpsilon >= deadline
}
