package event

import (
	"github.com/younwookim/scout/internal/domain/entity"
)

// ScoutDied is published once when a scout dies
type ScoutDied struct {
	ID    entity.EntityID
	Cause entity.DeathCause
	At    float64
}

// ScoutDamaged is published when a scout loses health
type ScoutDamaged struct {
	ID        entity.EntityID
	Amount    int
	Remaining int
	At        float64
}

// TargetHit is published when a scout's hitbox lands on the target
type TargetHit struct {
	Scout  entity.EntityID
	Target entity.EntityID
	Damage int
	At     float64
}

// Topic is a synchronous, single-threaded publish/subscribe channel for one event type
type Topic[T any] struct {
	nextID   int
	handlers []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, subscription[T]{id: id, fn: fn})
	return func() {
		for i, h := range t.handlers {
			if h.id == id {
				t.handlers = append(t.handlers[:i:i], t.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every current subscriber in subscription order
func (t *Topic[T]) Publish(ev T) {
	// snapshot so handlers may unsubscribe while being called
	handlers := t.handlers
	for _, h := range handlers {
		h.fn(ev)
	}
}

// Len returns the number of subscribers
func (t *Topic[T]) Len() int { return len(t.handlers) }

// Bus groups the topics a simulation exposes. Each World owns its own Bus.
type Bus struct {
	Died      Topic[ScoutDied]
	Damaged   Topic[ScoutDamaged]
	TargetHit Topic[TargetHit]
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}
