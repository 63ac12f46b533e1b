package sim

import (
	"github.com/younwookim/scout/internal/application/event"
	"github.com/younwookim/scout/internal/domain/entity"
)

// Objective counts tracked scouts down as they die and reports the stage
// cleared once none remain
type Objective struct {
	remaining map[entity.EntityID]struct{}
	tracked   int
	cleared   bool
	onCleared []func()
}

// NewObjective creates a tracker listening on bus
func NewObjective(bus *event.Bus) *Objective {
	o := &Objective{remaining: make(map[entity.EntityID]struct{})}
	bus.Died.Subscribe(o.handleDied)
	return o
}

// Track adds a scout that must die for the objective to clear
func (o *Objective) Track(id entity.EntityID) {
	if o.cleared {
		return
	}
	o.remaining[id] = struct{}{}
	o.tracked++
}

// OnCleared registers fn to run when the last tracked scout dies
func (o *Objective) OnCleared(fn func()) {
	o.onCleared = append(o.onCleared, fn)
}

// Remaining returns the number of tracked scouts still alive
func (o *Objective) Remaining() int { return len(o.remaining) }

// Cleared reports whether every tracked scout has died
func (o *Objective) Cleared() bool { return o.cleared }

func (o *Objective) handleDied(ev event.ScoutDied) {
	if _, ok := o.remaining[ev.ID]; !ok {
		return
	}
	delete(o.remaining, ev.ID)
	if o.cleared || o.tracked == 0 || len(o.remaining) > 0 {
		return
	}
	o.cleared = true
	for _, fn := range o.onCleared {
		fn()
	}
}
