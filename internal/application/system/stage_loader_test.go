package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/infrastructure/config"
)

func createTestStageConfig(rows ...string) *config.StageConfig {
	return &config.StageConfig{
		ID:          "test",
		TileSize:    1,
		PlayerSpawn: config.PositionConfig{X: 2, Y: 1},
		Layers:      config.LayersConfig{Collision: rows},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Layer: "ground", Solid: true},
			"|": {Layer: "wall", Solid: true},
			"^": {Layer: "hazard"},
			".": {Layer: "ground"},
		},
	}
}

func TestLoadStage(t *testing.T) {
	t.Run("loads basic stage", func(t *testing.T) {
		cfg := createTestStageConfig(
			"......",
			"......",
			"######",
		)
		cfg.TileSize = 2

		stage, err := LoadStage(cfg)
		require.NoError(t, err)
		assert.Equal(t, 12.0, stage.Width)
		assert.Equal(t, 6.0, stage.Height)
		assert.Equal(t, 2.0, stage.TileSize)
		assert.Equal(t, 2.0, stage.SpawnX)
		assert.Equal(t, 1.0, stage.SpawnY)

		require.Len(t, stage.Platforms, 1)
		assert.Equal(t, entity.Rect{X: 0, Y: 4, W: 12, H: 2}, stage.Platforms[0].Rect)
		assert.Equal(t, entity.LayerGround, stage.Platforms[0].Layer)
	})

	t.Run("gaps split surfaces", func(t *testing.T) {
		stage, err := LoadStage(createTestStageConfig(
			"|....|",
			"##..##",
		))
		require.NoError(t, err)

		require.Len(t, stage.Platforms, 4)
		ids := map[entity.SurfaceID]bool{}
		for _, p := range stage.Platforms {
			assert.NotEqual(t, entity.NoSurface, p.ID)
			ids[p.ID] = true
		}
		assert.Len(t, ids, 4, "every run gets its own surface id")

		left, ok := platformAt(stage, entity.Vec2{X: 0.5, Y: 1.5})
		require.True(t, ok)
		right, ok := platformAt(stage, entity.Vec2{X: 5.5, Y: 1.5})
		require.True(t, ok)
		assert.NotEqual(t, left.ID, right.ID)

		wall, ok := platformAt(stage, entity.Vec2{X: 0.5, Y: 0.5})
		require.True(t, ok)
		assert.Equal(t, entity.LayerWall, wall.Layer)
	})

	t.Run("hazard runs become kill zones", func(t *testing.T) {
		stage, err := LoadStage(createTestStageConfig(
			"......",
			"##^^##",
		))
		require.NoError(t, err)

		require.Len(t, stage.KillZones, 1)
		assert.Equal(t, entity.Rect{X: 2, Y: 1, W: 2, H: 1}, stage.KillZones[0].Rect)
		assert.True(t, stage.KillZones[0].Mask.Has(entity.LayerEnemy))
		assert.True(t, stage.KillZones[0].Mask.Has(entity.LayerPlayer))
	})

	t.Run("water and explicit kill zones", func(t *testing.T) {
		cfg := createTestStageConfig("######")
		cfg.Water = []config.WaterZoneConfig{{
			Rect:            config.RectConfig{X: 1, Y: 0, W: 2, H: 1},
			SpeedMultiplier: 0.5,
			JumpMultiplier:  0.7,
		}}
		cfg.KillZones = []config.KillZoneConfig{
			{Rect: config.RectConfig{X: 0, Y: 5, W: 6, H: 1}},
			{Rect: config.RectConfig{X: 0, Y: 6, W: 6, H: 1}, Layers: []string{"enemy"}},
		}

		stage, err := LoadStage(cfg)
		require.NoError(t, err)

		require.Len(t, stage.WaterZones, 1)
		assert.Equal(t, entity.Modifier{Speed: 0.5, Jump: 0.7}, stage.WaterZones[0].Modifier)
		assert.Equal(t, entity.Rect{X: 1, Y: 0, W: 2, H: 1}, stage.WaterZones[0].Rect)

		require.Len(t, stage.KillZones, 2)
		assert.Equal(t, entity.LayerEnemy|entity.LayerPlayer, stage.KillZones[0].Mask)
		assert.Equal(t, entity.LayerEnemy, stage.KillZones[1].Mask)
	})

	t.Run("unknown layer is an error", func(t *testing.T) {
		cfg := createTestStageConfig("##")
		cfg.TileMapping["~"] = config.TileMappingConfig{Layer: "lava"}
		_, err := LoadStage(cfg)
		assert.Error(t, err)

		cfg = createTestStageConfig("##")
		cfg.KillZones = []config.KillZoneConfig{{Layers: []string{"lava"}}}
		_, err = LoadStage(cfg)
		assert.Error(t, err)
	})
}

func platformAt(stage *entity.Stage, p entity.Vec2) (entity.Platform, bool) {
	for _, pl := range stage.Platforms {
		if pl.Rect.Contains(p) {
			return pl, true
		}
	}
	return entity.Platform{}, false
}
