package entity

import "math"

// AttackHitbox is the melee damage area of a scout.
// Only the attack sequencer toggles Enabled and Offset.
type AttackHitbox struct {
	LocalOffset Vec2
	Size        Box
	Damage      int
	TargetMask  LayerMask

	Enabled bool
	Offset  Vec2

	// Overlapping is true while the hitbox is inside a target, so damage
	// lands on the entry edge only.
	Overlapping bool
}

// Place mirrors the local offset to face f. The magnitude is kept.
func (h *AttackHitbox) Place(f Facing) {
	h.Offset = Vec2{X: math.Abs(h.LocalOffset.X) * f.Sign(), Y: h.LocalOffset.Y}
}

// WorldRect returns the hitbox area around its owner's position
func (h *AttackHitbox) WorldRect(owner Vec2) Rect {
	return h.Size.At(owner.Add(h.Offset))
}

// Accepts reports whether a target on layer may be hit. An empty mask accepts nothing.
func (h *AttackHitbox) Accepts(layer LayerMask) bool {
	return h.TargetMask.Has(layer)
}

// Disable turns the hitbox off and forgets any overlap
func (h *AttackHitbox) Disable() {
	h.Enabled = false
	h.Overlapping = false
}
