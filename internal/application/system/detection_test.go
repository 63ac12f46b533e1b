package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/scout/internal/domain/entity"
)

func TestPlatformSampler_SampleScout(t *testing.T) {
	tuning := createTestTuning(t)
	physics := &fakePhysics{ground: 7}
	sampler := NewPlatformSampler(physics, tuning)

	scout := createTestScout()
	sampler.SampleScout(scout)

	assert.Equal(t, entity.SurfaceID(7), scout.Surface)
	// probe sits just under the footprint
	assert.InDelta(t, scout.Pos.Y+0.5+tuning.Ground.ProbeOffset, physics.lastProbe.Y, 1e-9)
	assert.Equal(t, scout.Pos.X, physics.lastProbe.X)
	assert.Equal(t, tuning.Ground.ProbeRadius, physics.lastRadius)
}

func TestPlatformSampler_SeamReadsAsNoSurface(t *testing.T) {
	tuning := createTestTuning(t)
	physics := &fakePhysics{surfaceAt: func(p entity.Vec2) entity.SurfaceID {
		switch {
		case p.X < 5:
			return 1
		case p.X > 5.5:
			return 2
		default:
			return entity.NoSurface
		}
	}}
	sampler := NewPlatformSampler(physics, tuning)
	scout := createTestScout()

	var seen []entity.SurfaceID
	for _, x := range []float64{4, 5.2, 6} {
		scout.Pos.X = x
		sampler.SampleScout(scout)
		seen = append(seen, scout.Surface)
	}
	assert.Equal(t, []entity.SurfaceID{1, entity.NoSurface, 2}, seen)

	target := createTestTarget(6)
	target.Surface = entity.NoSurface
	assert.Equal(t, entity.SurfaceID(2), sampler.SampleTarget(target))
	assert.Equal(t, entity.NoSurface, target.Surface, "sampling never writes to the target")
}

func TestDetectionOracle_CanDetect(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(sc *entity.Scout, tg *entity.Target, p *fakePhysics)
		nilTarg  bool
		want     bool
		wantDist float64
	}{
		{
			name:     "unresolved target",
			nilTarg:  true,
			want:     false,
			wantDist: math.MaxFloat64,
		},
		{
			name:     "in range on same surface",
			setup:    func(sc *entity.Scout, tg *entity.Target, p *fakePhysics) {},
			want:     true,
			wantDist: 3,
		},
		{
			name:     "at aggro distance",
			setup:    func(sc *entity.Scout, tg *entity.Target, p *fakePhysics) { tg.Pos.X = 7 },
			want:     true,
			wantDist: 7,
		},
		{
			name:     "beyond aggro distance",
			setup:    func(sc *entity.Scout, tg *entity.Target, p *fakePhysics) { tg.Pos.X = -7.5 },
			want:     false,
			wantDist: 7.5,
		},
		{
			name:     "too far below",
			setup:    func(sc *entity.Scout, tg *entity.Target, p *fakePhysics) { tg.Pos.Y += 1.5 },
			want:     false,
			wantDist: 3,
		},
		{
			name: "different surface",
			setup: func(sc *entity.Scout, tg *entity.Target, p *fakePhysics) {
				sc.Surface = 1
				tg.Surface = 2
			},
			want:     false,
			wantDist: 3,
		},
		{
			name: "both airborne",
			setup: func(sc *entity.Scout, tg *entity.Target, p *fakePhysics) {
				sc.Surface = entity.NoSurface
				tg.Surface = entity.NoSurface
			},
			want:     false,
			wantDist: 3,
		},
		{
			name:     "line of sight blocked",
			setup:    func(sc *entity.Scout, tg *entity.Target, p *fakePhysics) { p.blocked = true },
			want:     false,
			wantDist: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := createTestTuning(t)
			physics := &fakePhysics{ground: 1}
			oracle := NewDetectionOracle(physics, tuning)

			scout := createTestScout()
			scout.Surface = 1
			var target *entity.Target
			if !tt.nilTarg {
				target = createTestTarget(3)
				tt.setup(scout, target, physics)
			}

			got, dist := oracle.CanDetect(scout, target)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDist, dist)
		})
	}
}

func TestDetectionOracle_OptionalChecks(t *testing.T) {
	tuning := createTestTuning(t)
	tuning.Detection.RequireSamePlatform = false
	tuning.Detection.UseLineOfSight = false
	physics := &fakePhysics{blocked: true}
	oracle := NewDetectionOracle(physics, tuning)

	scout := createTestScout()
	target := createTestTarget(3)
	target.Surface = 5

	ok, _ := oracle.CanDetect(scout, target)
	assert.True(t, ok)
	assert.Equal(t, 0, physics.rays, "no ray when line of sight is off")
}

func TestDetectionOracle_RayExcludesTargetLayer(t *testing.T) {
	tuning := createTestTuning(t)
	tuning.Masks.Occlusion |= entity.LayerPlayer
	physics := &fakePhysics{ground: 1}
	oracle := NewDetectionOracle(physics, tuning)

	scout := createTestScout()
	scout.Surface = 1
	target := createTestTarget(3)
	target.Pos.Y += 0.5

	ok, _ := oracle.CanDetect(scout, target)
	require.True(t, ok)
	assert.Equal(t, 1, physics.rays)
	assert.False(t, physics.lastRayMask.Has(entity.LayerPlayer))
	assert.True(t, physics.lastRayMask.Has(entity.LayerWall))
	assert.InDelta(t, math.Hypot(3, 0.5), physics.lastRayLen, 1e-9, "ray length is the actual distance")
}

func TestContactResolver_Classify(t *testing.T) {
	tuning := createTestTuning(t)
	resolver := NewContactResolver(&fakePhysics{}, tuning)
	eps := tuning.Chase.TouchEpsilon
	stop := tuning.Chase.PreferredStopDistance

	tests := []struct {
		name string
		sep  float64
		want Contact
	}{
		{"penetrating", -0.1, ContactTouching},
		{"exactly touch epsilon", eps, ContactTouching},
		{"just past touch epsilon", eps + 1e-6, ContactNear},
		{"exactly preferred stop", stop, ContactNear},
		{"just past preferred stop", stop + 1e-6, ContactFar},
		{"far away", 5, ContactFar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Classify(tt.sep))
		})
	}
}

func TestContactResolver_Separation(t *testing.T) {
	tuning := createTestTuning(t)
	resolver := NewContactResolver(&fakePhysics{}, tuning)
	scout := createTestScout()

	target := createTestTarget(2)
	assert.InDelta(t, 1.2, resolver.Separation(scout, target), 1e-9, "footprint gap, not centre distance")

	target.Body = entity.Box{}
	assert.InDelta(t, 2.0, resolver.Separation(scout, target), 1e-9, "falls back to centre distance")

	sep, c := resolver.Resolve(scout, createTestTarget(0.82))
	assert.InDelta(t, 0.02, sep, 1e-9)
	assert.Equal(t, ContactTouching, c)
}
