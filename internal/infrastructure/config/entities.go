package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/scout/internal/domain/entity"
)

// TargetConfig describes the player target driven by the sandbox or a replay
type TargetConfig struct {
	Width     float64      `json:"width" yaml:"width"`
	Height    float64      `json:"height" yaml:"height"`
	MaxHealth int          `json:"maxHealth" yaml:"maxHealth"`
	Speed     float64      `json:"speed" yaml:"speed"`
	Strike    StrikeConfig `json:"strike" yaml:"strike"`
}

// StrikeConfig is the player's melee attack against scouts
type StrikeConfig struct {
	PerSecond    float64      `json:"perSecond" yaml:"perSecond"`
	Range        float64      `json:"range" yaml:"range"`
	Offset       OffsetConfig `json:"offset" yaml:"offset"`
	Damage       int          `json:"damage" yaml:"damage"`
	TargetLayers []string     `json:"targetLayers" yaml:"targetLayers"`
}

// Validate reports every problem with the target config at once
func (c *TargetConfig) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("target size must be positive, got %vx%v", c.Width, c.Height))
	}
	if c.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("target maxHealth must be > 0, got %d", c.MaxHealth))
	}
	if c.Speed <= 0 {
		errs = append(errs, fmt.Errorf("target speed must be > 0, got %v", c.Speed))
	}
	if c.Strike.PerSecond <= 0 {
		errs = append(errs, fmt.Errorf("strike.perSecond must be > 0, got %v", c.Strike.PerSecond))
	}
	if c.Strike.Range <= 0 {
		errs = append(errs, fmt.Errorf("strike.range must be > 0, got %v", c.Strike.Range))
	}
	if len(c.Strike.TargetLayers) == 0 {
		errs = append(errs, errors.New("strike.targetLayers must name at least one layer"))
	} else if _, err := entity.ParseLayerMask(c.Strike.TargetLayers); err != nil {
		errs = append(errs, fmt.Errorf("strike.targetLayers: %w", err))
	}
	return errors.Join(errs...)
}
