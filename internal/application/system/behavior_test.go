package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/event"
	"github.com/younwookim/scout/internal/domain/entity"
)

func TestNewBehaviorSystem(t *testing.T) {
	cfg := createTestScoutConfig()

	sys, err := NewBehaviorSystem(cfg, &fakePhysics{}, nil, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, sys)
	assert.NotNil(t, sys.Lifecycle())
	assert.NotNil(t, sys.Attack())
	assert.NotNil(t, sys.Sampler())
	assert.Equal(t, entity.LayerPlayer, sys.Tuning().Masks.Target)

	cfg.Ground.Layers = []string{"lava"}
	_, err = NewBehaviorSystem(cfg, &fakePhysics{}, nil, nil, nil)
	assert.Error(t, err)
}

func TestBehavior_PatrolToChase(t *testing.T) {
	h := newHarness(t, createTestScoutConfig(), 3)
	tuning := h.sys.Tuning()

	h.step()
	assert.Equal(t, entity.StateChase, h.scout.State)
	assert.Equal(t, 0.0, h.scout.StateEnteredAt)
	assert.InDelta(t, tuning.Chase.ReactionDelay, h.scout.Detection.AggroReadyTime, 1e-9)
	assert.Equal(t, 0.0, h.scout.Vel.X)
}

func TestBehavior_PatrolToAttackWhenInRange(t *testing.T) {
	h := newHarness(t, createTestScoutConfig(), -0.85)

	h.step()
	assert.Equal(t, entity.StateAttack, h.scout.State)
	assert.True(t, h.scout.Attacking())
	assert.Equal(t, entity.FacingLeft, h.scout.Facing, "turns to the target before swinging")
}

func TestBehavior_NoTargetKeepsPatrolling(t *testing.T) {
	h := newHarness(t, createTestScoutConfig(), 3)
	h.locator.target = nil

	for i := 0; i < 100; i++ {
		h.step()
		require.Equal(t, entity.StatePatrol, h.scout.State)
	}
	assert.Nil(t, h.scout.Target)
}

func TestBehavior_LateTargetIsResolved(t *testing.T) {
	h := newHarness(t, createTestScoutConfig(), 3)
	h.locator.failures = 3

	for i := 0; i < 3; i++ {
		h.step()
		assert.Equal(t, entity.StatePatrol, h.scout.State)
	}
	h.step()
	assert.Equal(t, entity.StateChase, h.scout.State)
	assert.Same(t, h.target, h.scout.Target)

	h.step()
	assert.Equal(t, 4, h.locator.calls, "resolved target is cached")
}

func TestBehavior_TurnPauseDefersAggro(t *testing.T) {
	h := newHarness(t, createTestScoutConfig(), 5)
	tuning := h.sys.Tuning()
	h.scout.Pos.X = 2 // right bound

	h.step()
	require.True(t, h.scout.Patrol.Turning)
	assert.Equal(t, entity.StatePatrol, h.scout.State)
	assert.True(t, h.scout.Detection.HasSeen, "detection still runs during the pause")

	pauseTicks := int(tuning.Patrol.PauseAtEnds/h.dt + 0.5)
	for i := 1; i < pauseTicks; i++ {
		h.step()
		assert.Equal(t, entity.StatePatrol, h.scout.State)
		assert.Equal(t, 0.0, h.scout.Vel.X)
	}

	h.step()
	assert.False(t, h.scout.Patrol.Turning)
	assert.Equal(t, entity.StateChase, h.scout.State)
	assert.Equal(t, entity.FacingRight, h.scout.Facing)
}

func TestBehavior_ChaseHysteresis(t *testing.T) {
	cfg := createTestScoutConfig()
	cfg.Chase.ReactionDelay = 100 // hold position so the gap never closes
	h := newHarness(t, cfg, 5)
	tuning := h.sys.Tuning()

	h.step()
	require.Equal(t, entity.StateChase, h.scout.State)

	// flickering line of sight never drops the chase
	for i := 0; i < 20; i++ {
		h.physics.blocked = i%2 == 0
		h.step()
		require.Equal(t, entity.StateChase, h.scout.State)
	}

	h.physics.blocked = true
	lastSeen := h.scout.Detection.LastSeenTime
	for h.now()-lastSeen <= tuning.Detection.LoseSightLinger+1e-9 {
		h.step()
		require.Equal(t, entity.StateChase, h.scout.State, "still perceived at t=%v", h.now())
	}

	h.step()
	assert.Equal(t, entity.StatePatrol, h.scout.State)
	assert.Equal(t, 0.0, h.scout.Vel.X)
	assert.Equal(t, lastSeen, h.scout.Detection.LastSeenTime, "last seen never rewinds")
}

func TestBehavior_EndToEnd(t *testing.T) {
	h := newHarness(t, createTestScoutConfig(), 3)
	tuning := h.sys.Tuning()

	// aggro at t=0
	h.step()
	require.Equal(t, entity.StateChase, h.scout.State)

	// held still through the reaction delay
	for h.now()+1e-9 < tuning.Chase.ReactionDelay {
		h.step()
		require.Equal(t, 0.0, h.scout.Vel.X, "moved before the reaction delay at t=%v", h.now())
	}
	h.step()
	assert.Greater(t, h.scout.Vel.X, 0.0, "pursuit starts once the delay has passed")

	// pursue until touching; attack starts in the same tick
	ok := h.stepUntil(func() bool { return h.scout.State == entity.StateAttack }, 200)
	require.True(t, ok)
	attackTick := h.tick - 1
	attackStart := float64(attackTick) * h.dt
	assert.InDelta(t, attackStart, h.scout.Attack.StartedAt, 1e-9)
	sep := h.target.Pos.X - 0.4 - (h.scout.Pos.X + 0.4)
	assert.LessOrEqual(t, sep, tuning.Chase.TouchEpsilon)
	assert.GreaterOrEqual(t, sep, 0.0, "scout never shoves into the target")

	ok = h.stepUntil(func() bool { return h.scout.State == entity.StateCooldown }, 200)
	require.True(t, ok)
	assert.InDelta(t, tuning.Attack.Windup+tuning.Attack.ActiveTime, h.scout.StateEnteredAt-attackStart, 1e-9)
	assert.Equal(t, []int{tuning.Attack.Damage}, h.sink.hits)

	// still there after cooldown: straight back to chase
	ok = h.stepUntil(func() bool { return h.scout.State != entity.StateCooldown }, 200)
	require.True(t, ok)
	assert.Equal(t, entity.StateChase, h.scout.State)
	assert.InDelta(t, tuning.Attack.Cooldown, h.scout.StateEnteredAt-(attackStart+tuning.Attack.Windup+tuning.Attack.ActiveTime), 1e-9)
}

func TestBehavior_CooldownToPatrolWhenLost(t *testing.T) {
	cfg := createTestScoutConfig()
	cfg.Detection.LoseSightLinger = 0.3
	h := newHarness(t, cfg, 0.85)

	h.step()
	require.Equal(t, entity.StateAttack, h.scout.State)

	ok := h.stepUntil(func() bool { return h.scout.State == entity.StateCooldown }, 100)
	require.True(t, ok)

	// target vanishes behind a wall
	h.physics.blocked = true
	for !entity.Reached(h.now(), h.scout.CooldownEndTime) {
		h.step()
		require.Equal(t, entity.StateCooldown, h.scout.State)
		require.Equal(t, 0.0, h.scout.Vel.X)
	}
	h.step()

	// cooldown outlasts the linger window, so the target is forgotten
	assert.Equal(t, entity.StatePatrol, h.scout.State)
	assert.False(t, h.scout.Detection.HasSeen)
	assert.Equal(t, entity.FacingRight, h.scout.Patrol.Dir, "patrol resumes the way the scout faces")
}

func TestBehavior_DeathPreemptsAnyState(t *testing.T) {
	states := []entity.BehaviorState{entity.StatePatrol, entity.StateChase, entity.StateAttack, entity.StateCooldown}

	for _, st := range states {
		t.Run(st.String(), func(t *testing.T) {
			h := newHarness(t, createTestScoutConfig(), 0.85)
			deaths := 0
			h.bus.Died.Subscribe(func(event.ScoutDied) { deaths++ })

			if h.scout.State != st {
				h.stepUntil(func() bool { return h.scout.State == st }, 100)
			}
			require.Equal(t, st, h.scout.State)

			h.sys.Lifecycle().Die(h.scout, entity.CauseScripted, h.now())
			h.sys.Lifecycle().Die(h.scout, entity.CauseScripted, h.now())
			pos := h.scout.Pos

			for i := 0; i < 10; i++ {
				h.step()
			}
			assert.Equal(t, 1, deaths)
			assert.False(t, h.scout.Hitbox.Enabled)
			assert.Nil(t, h.scout.Attack)
			assert.Equal(t, pos, h.scout.Pos, "dead scouts no longer move")
		})
	}
}

func TestBehavior_SetConfig(t *testing.T) {
	h := newHarness(t, createTestScoutConfig(), 3)
	h.locator.target = nil

	h.step()
	assert.InDelta(t, 2.0, h.scout.Vel.X, 1e-9)

	cfg := createTestScoutConfig()
	cfg.Patrol.Speed = 1
	require.NoError(t, h.sys.SetConfig(cfg))
	h.step()
	assert.InDelta(t, 1.0, h.scout.Vel.X, 1e-9)

	bad := createTestScoutConfig()
	bad.Attack.TargetLayers = []string{"ghosts"}
	assert.Error(t, h.sys.SetConfig(bad))
	assert.Equal(t, 1.0, h.sys.Tuning().Patrol.Speed, "rejected config leaves tuning alone")
}

func TestBehavior_LocatorFunc(t *testing.T) {
	sys, err := NewBehaviorSystem(createTestScoutConfig(), &fakePhysics{ground: 1}, LocatorFunc(func() (*entity.Target, bool) {
		return createTestTarget(3), true
	}), event.NewBus(), zap.NewNop())
	require.NoError(t, err)

	scout := createTestScout()
	sys.Prepare(scout)
	assert.NotPanics(t, func() { sys.Update(scout, 0, 0.05) })
	assert.Equal(t, entity.StateChase, scout.State)
}
