package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings configures the sandbox process itself, not the simulation
type Settings struct {
	Window  WindowSettings  `mapstructure:"window"`
	Sim     SimSettings     `mapstructure:"sim"`
	Content ContentSettings `mapstructure:"content"`
	Log     LogSettings     `mapstructure:"log"`
}

type WindowSettings struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Scale  float64 `mapstructure:"scale"` // pixels per world unit
	Title  string  `mapstructure:"title"`
}

type SimSettings struct {
	TPS    int    `mapstructure:"tps"`
	Record string `mapstructure:"record"` // replay output path, empty disables
	Replay string `mapstructure:"replay"` // replay input path, empty uses the keyboard
}

type ContentSettings struct {
	Dir       string `mapstructure:"dir"` // empty uses the embedded configs
	Scout     string `mapstructure:"scout"`
	Stage     string `mapstructure:"stage"`
	HotReload bool   `mapstructure:"hot_reload"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
	Dev   bool   `mapstructure:"dev"`
}

// SetSettingsDefaults registers the sandbox defaults on v
func SetSettingsDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 640)
	v.SetDefault("window.height", 360)
	v.SetDefault("window.scale", 32.0)
	v.SetDefault("window.title", "Scout Sandbox")
	v.SetDefault("sim.tps", 60)
	v.SetDefault("sim.record", "")
	v.SetDefault("sim.replay", "")
	v.SetDefault("content.dir", "")
	v.SetDefault("content.scout", "scout")
	v.SetDefault("content.stage", "arena")
	v.SetDefault("content.hot_reload", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dev", true)
}

// LoadSettings reads sandbox settings from a YAML file. An empty path uses
// defaults and SCOUT_* environment variables only.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetSettingsDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.Sim.TPS <= 0 {
		return nil, fmt.Errorf("sim.tps must be > 0, got %d", s.Sim.TPS)
	}
	if s.Window.Scale <= 0 {
		return nil, fmt.Errorf("window.scale must be > 0, got %v", s.Window.Scale)
	}
	return s, nil
}
