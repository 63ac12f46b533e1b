package system

import (
	"fmt"

	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity. Each horizontal run
// of solid glyphs becomes its own platform, so a gap in a row is a seam
// between two surfaces. Runs mapped to the hazard layer become kill zones.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	ts := cfg.TileSize
	stage := &entity.Stage{
		TileSize: ts,
		Height:   float64(len(cfg.Layers.Collision)) * ts,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}

	layers := make(map[rune]entity.LayerMask, len(cfg.TileMapping))
	solid := make(map[rune]bool, len(cfg.TileMapping))
	for glyph, mapping := range cfg.TileMapping {
		mask, err := entity.ParseLayerMask([]string{mapping.Layer})
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", glyph, err)
		}
		r := []rune(glyph)[0]
		layers[r] = mask
		solid[r] = mapping.Solid
	}

	var nextID entity.SurfaceID
	for y, row := range cfg.Layers.Collision {
		cells := []rune(row)
		if w := float64(len(cells)) * ts; w > stage.Width {
			stage.Width = w
		}
		for x := 0; x < len(cells); {
			glyph := cells[x]
			layer, known := layers[glyph]
			end := x + 1
			for end < len(cells) && cells[end] == glyph {
				end++
			}
			if known {
				rect := entity.Rect{X: float64(x) * ts, Y: float64(y) * ts, W: float64(end-x) * ts, H: ts}
				switch {
				case solid[glyph]:
					nextID++
					stage.Platforms = append(stage.Platforms, entity.Platform{ID: nextID, Rect: rect, Layer: layer})
				case layer == entity.LayerHazard:
					stage.KillZones = append(stage.KillZones, entity.Zone{Rect: rect, Mask: entity.LayerEnemy | entity.LayerPlayer})
				}
			}
			x = end
		}
	}

	for _, w := range cfg.Water {
		stage.WaterZones = append(stage.WaterZones, entity.Zone{
			Rect:     rectFromConfig(w.Rect),
			Mask:     entity.LayerEnemy | entity.LayerPlayer,
			Modifier: entity.Modifier{Speed: w.SpeedMultiplier, Jump: w.JumpMultiplier},
		})
	}

	for i, k := range cfg.KillZones {
		mask := entity.LayerEnemy | entity.LayerPlayer
		if len(k.Layers) > 0 {
			var err error
			if mask, err = entity.ParseLayerMask(k.Layers); err != nil {
				return nil, fmt.Errorf("killZones[%d]: %w", i, err)
			}
		}
		stage.KillZones = append(stage.KillZones, entity.Zone{Rect: rectFromConfig(k.Rect), Mask: mask})
	}

	return stage, nil
}

func rectFromConfig(r config.RectConfig) entity.Rect {
	return entity.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
