package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/event"
	"github.com/younwookim/scout/internal/domain/entity"
)

func createTestLifecycle(t *testing.T) (*Lifecycle, *AttackSequencer, *Tuning, *event.Bus) {
	t.Helper()
	tuning := createTestTuning(t)
	bus := event.NewBus()
	attack := NewAttackSequencer(tuning, bus, zap.NewNop())
	return NewLifecycle(tuning, attack, bus, zap.NewNop()), attack, tuning, bus
}

func TestLifecycle_DieIsIdempotent(t *testing.T) {
	life, _, tuning, bus := createTestLifecycle(t)
	scout := createTestScout()

	var died []event.ScoutDied
	bus.Died.Subscribe(func(ev event.ScoutDied) { died = append(died, ev) })

	assert.True(t, life.Die(scout, entity.CauseScripted, 2))
	assert.False(t, life.Die(scout, entity.CauseDamage, 2.1))

	require.Len(t, died, 1)
	assert.Equal(t, scout.ID, died[0].ID)
	assert.Equal(t, entity.CauseScripted, died[0].Cause)
	assert.True(t, scout.IsDead())
	assert.False(t, scout.Simulated)
	assert.False(t, scout.Visible)
	assert.InDelta(t, 2+tuning.Lifecycle.DestroyDelay, scout.RemoveAt, 1e-9, "second call does not reschedule")
}

func TestLifecycle_DieCancelsAttack(t *testing.T) {
	life, attack, tuning, _ := createTestLifecycle(t)
	scout := createTestScout()
	scout.State = entity.StateAttack

	attack.Start(scout, 0)
	attack.Update(scout, nil, tuning.Attack.Windup)
	require.True(t, scout.Hitbox.Enabled)
	scout.Vel = entity.Vec2{X: 1, Y: 2}

	life.Die(scout, entity.CauseKillZone, 1)
	assert.Nil(t, scout.Attack)
	assert.False(t, scout.Hitbox.Enabled)
	assert.Equal(t, entity.Vec2{}, scout.Vel)
}

func TestLifecycle_Damage(t *testing.T) {
	life, _, _, bus := createTestLifecycle(t)
	scout := createTestScout()

	var damaged []event.ScoutDamaged
	bus.Damaged.Subscribe(func(ev event.ScoutDamaged) { damaged = append(damaged, ev) })
	deaths := 0
	bus.Died.Subscribe(func(event.ScoutDied) { deaths++ })

	life.Damage(scout, 1, 0)
	life.Damage(scout, 1, 0.1)
	assert.True(t, scout.Alive)
	assert.Equal(t, 1, scout.Health.Current)

	life.Damage(scout, 5, 0.2)
	assert.False(t, scout.Alive)
	assert.Equal(t, 1, deaths)

	life.Damage(scout, 1, 0.3)
	assert.Len(t, damaged, 3, "damage after death is ignored")
	assert.Equal(t, 0, damaged[2].Remaining)
}

func TestLifecycle_Expired(t *testing.T) {
	life, _, tuning, _ := createTestLifecycle(t)
	scout := createTestScout()

	assert.False(t, life.Expired(scout, 100), "live scouts never expire")

	life.Die(scout, entity.CauseScripted, 1)
	assert.False(t, life.Expired(scout, 1))
	assert.True(t, life.Expired(scout, 1+tuning.Lifecycle.DestroyDelay))
}
