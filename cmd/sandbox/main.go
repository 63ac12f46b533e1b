// Command sandbox runs scouts against a keyboard-driven target on a stage
// built from config files.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/game"
	"github.com/younwookim/scout/internal/application/replay"
	"github.com/younwookim/scout/internal/application/scene/sandbox"
	"github.com/younwookim/scout/internal/application/system"
	"github.com/younwookim/scout/internal/infrastructure/config"
	"github.com/younwookim/scout/internal/infrastructure/physics"
	"github.com/younwookim/scout/internal/sim"
)

func main() {
	settingsPath := flag.String("settings", "", "Sandbox settings file (YAML)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded session")
	stageFlag := flag.String("stage", "", "Stage name, overrides settings")
	scoutFlag := flag.String("scout", "", "Default scout profile, overrides settings")
	dirFlag := flag.String("configs", "", "Config directory, overrides the built-in configs")
	flag.Parse()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	override(&settings.Sim.Record, *recordFlag)
	override(&settings.Sim.Replay, *replayFlag)
	override(&settings.Content.Stage, *stageFlag)
	override(&settings.Content.Scout, *scoutFlag)
	override(&settings.Content.Dir, *dirFlag)

	logger, err := newLogger(settings.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(settings, logger); err != nil {
		logger.Fatal("sandbox failed", zap.Error(err))
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func newLogger(s config.LogSettings) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if s.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(s.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	zc.Level = level
	return zc.Build()
}

func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// buildWorld creates a world for cfg with its stage's scouts spawned
func buildWorld(cfg *config.GameConfig, tps int, logger *zap.Logger) (*sim.World, error) {
	stage, err := system.LoadStage(cfg.Stage)
	if err != nil {
		return nil, err
	}
	w, err := sim.NewWorld(stage, cfg, physics.FromStage(stage), logger)
	if err != nil {
		return nil, err
	}
	w.SetDT(1.0 / float64(tps))
	if err := w.SpawnScouts(cfg.Stage.Scouts); err != nil {
		return nil, err
	}
	return w, nil
}

// worldBuilder returns a constructor reading cfg at call time, so restarts
// pick up reloaded files
func worldBuilder(cfg *config.GameConfig, tps int, logger *zap.Logger) func() (*sim.World, error) {
	return func() (*sim.World, error) {
		return buildWorld(cfg, tps, logger)
	}
}

func run(settings *config.Settings, logger *zap.Logger) error {
	var data *replay.ReplayData
	if settings.Sim.Replay != "" {
		var err error
		if data, err = replay.LoadReplay(settings.Sim.Replay); err != nil {
			return err
		}
		// a replay only reproduces on the content it was recorded with
		override(&settings.Content.Stage, data.Stage)
		override(&settings.Content.Scout, data.Scout)
		if data.TPS > 0 {
			settings.Sim.TPS = data.TPS
		}
		logger.Info("replaying", zap.String("file", settings.Sim.Replay), zap.Int("frames", len(data.Frames)))
	}

	loader, err := newLoader(settings.Content.Dir)
	if err != nil {
		return err
	}
	cfg, err := loader.LoadAll(settings.Content.Scout, settings.Content.Stage)
	if err != nil {
		return err
	}

	scene, err := sandbox.New(sandbox.Options{
		Build:      worldBuilder(cfg, settings.Sim.TPS, logger),
		Replay:     data,
		RecordPath: settings.Sim.Record,
		StageName:  settings.Content.Stage,
		ScoutName:  settings.Content.Scout,
		TPS:        settings.Sim.TPS,
		Scale:      settings.Window.Scale,
		ScreenW:    settings.Window.Width,
		ScreenH:    settings.Window.Height,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	g := game.New(scene, settings.Window.Width, settings.Window.Height, settings.Sim.TPS)
	defer g.Close()

	if settings.Content.HotReload && settings.Content.Dir != "" {
		dir := settings.Content.Dir
		watcher, err := config.NewWatcher(dir, filepath.Join(dir, "scouts"), filepath.Join(dir, "stages"))
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		defer func() { _ = watcher.Close() }()

		r := &reloader{loader: loader, cfg: cfg, stage: settings.Content.Stage, tps: settings.Sim.TPS, scene: scene, logger: logger}
		g.AddHook(r.hook(watcher))
		logger.Info("hot reload enabled", zap.String("dir", dir))
	}

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetTPS(settings.Sim.TPS)

	return ebiten.RunGame(g)
}
