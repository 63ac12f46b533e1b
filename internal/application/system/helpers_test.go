package system

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/event"
	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/infrastructure/config"
)

// fakePhysics reports one ground surface everywhere unless surfaceAt is set
type fakePhysics struct {
	ground    entity.SurfaceID
	surfaceAt func(p entity.Vec2) entity.SurfaceID
	blocked   bool

	lastProbe   entity.Vec2
	lastRadius  float64
	lastRayMask entity.LayerMask
	lastRayLen  float64
	rays        int
}

func (f *fakePhysics) OverlapCircle(center entity.Vec2, radius float64, mask entity.LayerMask) entity.SurfaceID {
	f.lastProbe = center
	f.lastRadius = radius
	if mask == entity.LayerNone {
		return entity.NoSurface
	}
	if f.surfaceAt != nil {
		return f.surfaceAt(center)
	}
	return f.ground
}

func (f *fakePhysics) Raycast(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) (entity.SurfaceID, bool) {
	f.rays++
	f.lastRayMask = mask
	f.lastRayLen = maxDist
	if f.blocked {
		return 99, true
	}
	return entity.NoSurface, false
}

func (f *fakePhysics) Separation(a, b entity.Rect) float64 {
	return a.Gap(b)
}

type fakeLocator struct {
	target   *entity.Target
	failures int
	calls    int
}

func (l *fakeLocator) Locate() (*entity.Target, bool) {
	l.calls++
	if l.calls <= l.failures || l.target == nil {
		return nil, false
	}
	return l.target, true
}

type recordingSink struct {
	hits []int
}

func (r *recordingSink) TakeDamage(amount int) { r.hits = append(r.hits, amount) }

func createTestScoutConfig() config.ScoutConfig {
	return config.DefaultScout()
}

func createTestTuning(t *testing.T) *Tuning {
	t.Helper()
	tuning, err := NewTuning(createTestScoutConfig())
	require.NoError(t, err)
	return tuning
}

func createTestScout() *entity.Scout {
	return entity.NewScout(1, entity.Vec2{X: 0, Y: 4.5}, entity.Box{Width: 0.8, Height: 1}, true, 3)
}

func createTestTarget(x float64) *entity.Target {
	t := entity.NewTarget(100, entity.Vec2{X: x, Y: 4.5}, entity.Box{Width: 0.8, Height: 1}, 5)
	t.Surface = 1
	return t
}

// harness ticks one scout against one target with a fixed dt
type harness struct {
	t       *testing.T
	sys     *BehaviorSystem
	scout   *entity.Scout
	target  *entity.Target
	physics *fakePhysics
	locator *fakeLocator
	bus     *event.Bus
	sink    *recordingSink
	dt      float64
	tick    int
}

func newHarness(t *testing.T, cfg config.ScoutConfig, targetX float64) *harness {
	t.Helper()
	physics := &fakePhysics{ground: 1}
	target := createTestTarget(targetX)
	sink := &recordingSink{}
	target.Sink = sink
	locator := &fakeLocator{target: target}
	bus := event.NewBus()

	sys, err := NewBehaviorSystem(cfg, physics, locator, bus, zap.NewNop())
	require.NoError(t, err)

	scout := createTestScout()
	sys.Prepare(scout)

	return &harness{
		t:       t,
		sys:     sys,
		scout:   scout,
		target:  target,
		physics: physics,
		locator: locator,
		bus:     bus,
		sink:    sink,
		dt:      0.05,
	}
}

func (h *harness) now() float64 { return float64(h.tick) * h.dt }

// step runs one tick and integrates the scout's velocity
func (h *harness) step() {
	now := h.now()
	h.sys.Update(h.scout, now, h.dt)
	if h.scout.Simulated {
		h.scout.Pos = h.scout.Pos.Add(h.scout.Vel.Scale(h.dt))
	}
	h.tick++
}

func (h *harness) stepUntil(cond func() bool, max int) bool {
	for i := 0; i < max; i++ {
		h.step()
		if cond() {
			return true
		}
	}
	return false
}
