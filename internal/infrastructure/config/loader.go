package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no file exists for a requested name
var ErrNotFound = errors.New("config not found")

// extensions are tried in order when resolving a config name
var extensions = []string{".yaml", ".yml", ".json"}

// GameConfig holds all loaded configurations for one run
type GameConfig struct {
	Scout    *ScoutConfig
	Profiles map[string]*ScoutConfig
	Target   *TargetConfig
	Stage    *StageConfig
}

// Loader loads configuration files (YAML or JSON) using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for
func (l *Loader) BasePath() string { return l.basePath }

// LoadScout loads scouts/<name>.yaml|.yml|.json on top of the defaults
func (l *Loader) LoadScout(name string) (*ScoutConfig, error) {
	cfg := DefaultScout()
	if err := l.decode(path.Join("scouts", name), &cfg); err != nil {
		return nil, fmt.Errorf("failed to load scout %s: %w", name, err)
	}
	if cfg.ID == "" || cfg.ID == "scout" {
		cfg.ID = name
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scout %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadTarget loads target.yaml|.yml|.json. A missing file yields the defaults.
func (l *Loader) LoadTarget() (*TargetConfig, error) {
	cfg := DefaultTarget()
	if err := l.decode("target", &cfg); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to load target: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	return &cfg, nil
}

// LoadStage loads a stage file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	cfg := StageConfig{TileSize: 1}
	if err := l.decode(path.Join("stages", name), &cfg); err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stage %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadAll loads the default scout profile, the target, a stage and every
// profile the stage's spawns refer to
func (l *Loader) LoadAll(scout, stage string) (*GameConfig, error) {
	scoutCfg, err := l.LoadScout(scout)
	if err != nil {
		return nil, err
	}

	target, err := l.LoadTarget()
	if err != nil {
		return nil, err
	}

	stageCfg, err := l.LoadStage(stage)
	if err != nil {
		return nil, err
	}

	profiles := map[string]*ScoutConfig{scout: scoutCfg}
	for _, spawn := range stageCfg.Scouts {
		if spawn.Profile == "" {
			continue
		}
		if _, ok := profiles[spawn.Profile]; ok {
			continue
		}
		p, err := l.LoadScout(spawn.Profile)
		if err != nil {
			return nil, err
		}
		profiles[spawn.Profile] = p
	}

	return &GameConfig{
		Scout:    scoutCfg,
		Profiles: profiles,
		Target:   target,
		Stage:    stageCfg,
	}, nil
}

// decode reads the first existing <base><ext> and decodes it into out
func (l *Loader) decode(base string, out any) error {
	for _, ext := range extensions {
		name := base + ext
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if ext == ".json" {
			err = json.Unmarshal(data, out)
		} else {
			err = yaml.Unmarshal(data, out)
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("%s: %w", base, ErrNotFound)
}

// Kind classifies a changed file path as a scout, stage or target config
type Kind int

const (
	KindUnknown Kind = iota
	KindScout
	KindStage
	KindTarget
)

// Classify maps a file path to its config kind and name,
// e.g. configs/scouts/brute.yaml -> (KindScout, "brute")
func Classify(p string) (Kind, string) {
	ext := strings.ToLower(filepath.Ext(p))
	if !isConfigExt(ext) {
		return KindUnknown, ""
	}
	name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	switch filepath.Base(filepath.Dir(p)) {
	case "scouts":
		return KindScout, name
	case "stages":
		return KindStage, name
	}
	if name == "target" {
		return KindTarget, name
	}
	return KindUnknown, ""
}

func isConfigExt(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
