package entity

// Modifier scales movement while it is on a stack
type Modifier struct {
	Speed float64
	Jump  float64
}

// ModifierHandle identifies one pushed modifier
type ModifierHandle uint64

type modifierEntry struct {
	handle ModifierHandle
	mod    Modifier
}

// ModifierStack is a set of multiplicative movement modifiers owned by
// the entity that moves. Zones push on enter and pop their own handle on exit.
type ModifierStack struct {
	next    ModifierHandle
	entries []modifierEntry
}

// Push adds a modifier and returns the handle needed to remove it
func (s *ModifierStack) Push(m Modifier) ModifierHandle {
	s.next++
	s.entries = append(s.entries, modifierEntry{handle: s.next, mod: m})
	return s.next
}

// Pop removes the modifier with handle h. Unknown handles return false.
func (s *ModifierStack) Pop(h ModifierHandle) bool {
	for i, e := range s.entries {
		if e.handle == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Speed returns the product of all speed multipliers (1 when empty)
func (s *ModifierStack) Speed() float64 {
	v := 1.0
	for _, e := range s.entries {
		v *= e.mod.Speed
	}
	return v
}

// Jump returns the product of all jump multipliers (1 when empty)
func (s *ModifierStack) Jump() float64 {
	v := 1.0
	for _, e := range s.entries {
		v *= e.mod.Jump
	}
	return v
}

// Len returns the number of active modifiers
func (s *ModifierStack) Len() int { return len(s.entries) }
