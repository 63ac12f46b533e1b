package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/younwookim/scout/internal/domain/entity"
)

// StageConfig is the root config for stage files
type StageConfig struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	TileSize    float64                      `json:"tileSize" yaml:"tileSize"`
	PlayerSpawn PositionConfig               `json:"playerSpawn" yaml:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers" yaml:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping" yaml:"tileMapping"`
	Scouts      []ScoutSpawnConfig           `json:"scouts" yaml:"scouts"`
	Water       []WaterZoneConfig            `json:"water" yaml:"water"`
	KillZones   []KillZoneConfig             `json:"killZones" yaml:"killZones"`
}

type PositionConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision" yaml:"collision"`
}

// TileMappingConfig maps one glyph of the collision rows to a layer
type TileMappingConfig struct {
	Layer string `json:"layer" yaml:"layer"`
	Solid bool   `json:"solid" yaml:"solid"`
}

// ScoutSpawnConfig places one scout. Profile names a scouts/<profile> file;
// empty uses the stage's default profile.
type ScoutSpawnConfig struct {
	Profile     string  `json:"profile" yaml:"profile"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	FacingRight bool    `json:"facingRight" yaml:"facingRight"`
}

type RectConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

type WaterZoneConfig struct {
	Rect            RectConfig `json:"rect" yaml:"rect"`
	SpeedMultiplier float64    `json:"speedMultiplier" yaml:"speedMultiplier"`
	JumpMultiplier  float64    `json:"jumpMultiplier" yaml:"jumpMultiplier"`
}

type KillZoneConfig struct {
	Rect   RectConfig `json:"rect" yaml:"rect"`
	Layers []string   `json:"layers" yaml:"layers"`
}

// Validate checks the stage geometry is usable
func (c *StageConfig) Validate() error {
	var errs []error
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tileSize must be > 0, got %v", c.TileSize))
	}
	if len(c.Layers.Collision) == 0 {
		errs = append(errs, errors.New("layers.collision is empty"))
	}
	glyphs := make([]string, 0, len(c.TileMapping))
	for glyph := range c.TileMapping {
		glyphs = append(glyphs, glyph)
	}
	sort.Strings(glyphs)
	for _, glyph := range glyphs {
		if len([]rune(glyph)) != 1 {
			errs = append(errs, fmt.Errorf("tileMapping key %q must be a single character", glyph))
		}
		if _, err := entity.ParseLayerMask([]string{c.TileMapping[glyph].Layer}); err != nil {
			errs = append(errs, fmt.Errorf("tileMapping %q: %w", glyph, err))
		}
	}
	for i, k := range c.KillZones {
		if _, err := entity.ParseLayerMask(k.Layers); err != nil {
			errs = append(errs, fmt.Errorf("killZones[%d]: %w", i, err))
		}
	}
	for i, w := range c.Water {
		if w.SpeedMultiplier <= 0 || w.JumpMultiplier <= 0 {
			errs = append(errs, fmt.Errorf("water[%d] multipliers must be > 0", i))
		}
	}
	return errors.Join(errs...)
}
