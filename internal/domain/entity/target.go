package entity

// DamageSink accepts damage without exposing how health is stored
type DamageSink interface {
	TakeDamage(amount int)
}

// Health tracks hit points
type Health struct {
	Current int
	Max     int
}

// NewHealth returns full health
func NewHealth(maxHP int) Health {
	return Health{Current: maxHP, Max: maxHP}
}

// TakeDamage subtracts amount, never dropping below zero
func (h *Health) TakeDamage(amount int) {
	if amount <= 0 || h.Current <= 0 {
		return
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

// IsAlive returns true while any hit points remain
func (h Health) IsAlive() bool { return h.Current > 0 }

// Target is the player as seen by the scouts. The simulation owns it;
// scouts only borrow it through a locator.
type Target struct {
	ID      EntityID
	Pos     Vec2
	Vel     Vec2
	Facing  Facing
	Body    Box
	Layer   LayerMask
	Surface SurfaceID
	Health  Health

	Modifiers ModifierStack

	// Sink receives melee damage. Nil routes damage to Health.
	Sink DamageSink
}

// NewTarget creates a player target on the player layer
func NewTarget(id EntityID, pos Vec2, body Box, maxHealth int) *Target {
	return &Target{
		ID:     id,
		Pos:    pos,
		Facing: FacingRight,
		Body:   body,
		Layer:  LayerPlayer,
		Health: NewHealth(maxHealth),
	}
}

// Rect returns the footprint, or false when the footprint is unknown
func (t *Target) Rect() (Rect, bool) {
	if !t.Body.Valid() {
		return Rect{}, false
	}
	return t.Body.At(t.Pos), true
}

// Feet returns the bottom-centre point of the footprint
func (t *Target) Feet() Vec2 { return Vec2{X: t.Pos.X, Y: t.Pos.Y + t.Body.Height/2} }

// TakeDamage forwards to the configured sink
func (t *Target) TakeDamage(amount int) {
	if t.Sink != nil {
		t.Sink.TakeDamage(amount)
		return
	}
	t.Health.TakeDamage(amount)
}
