package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/game"
	"github.com/younwookim/scout/internal/infrastructure/config"
	"github.com/younwookim/scout/internal/sim"
)

// world is the part of the sandbox scene a reload touches
type world interface {
	World() *sim.World
	Restart() error
}

// reloader applies edited config files to the running sandbox. Scout edits
// retune live scouts; stage and target edits restart the world.
// A file that fails to load, or yields a config no world can be built
// from, is logged and the old config kept.
type reloader struct {
	loader *config.Loader
	cfg    *config.GameConfig
	stage  string
	tps    int
	scene  world
	logger *zap.Logger
}

// apply handles one changed file
func (r *reloader) apply(p string) error {
	kind, name := config.Classify(p)
	switch kind {
	case config.KindScout:
		r.reloadScout(name)
	case config.KindStage:
		if name != r.stage {
			return nil
		}
		next, err := r.withStage(name)
		if err != nil {
			r.logger.Warn("stage reload rejected", zap.String("stage", name), zap.Error(err))
			return nil
		}
		r.commit(next, "stage reloaded", zap.String("stage", name))
	case config.KindTarget:
		target, err := r.loader.LoadTarget()
		if err != nil {
			r.logger.Warn("target reload rejected", zap.Error(err))
			return nil
		}
		next := *r.cfg
		next.Target = target
		r.commit(&next, "target reloaded")
	}
	return nil
}

// withStage returns a copy of the running config using the named stage,
// with any profile its spawns need and the running config lacks
func (r *reloader) withStage(name string) (*config.GameConfig, error) {
	stageCfg, err := r.loader.LoadStage(name)
	if err != nil {
		return nil, err
	}
	next := *r.cfg
	next.Stage = stageCfg
	next.Profiles = make(map[string]*config.ScoutConfig, len(r.cfg.Profiles))
	for k, v := range r.cfg.Profiles {
		next.Profiles[k] = v
	}
	for i, spawn := range stageCfg.Scouts {
		if spawn.Profile == "" {
			continue
		}
		if _, ok := next.Profiles[spawn.Profile]; ok {
			continue
		}
		p, err := r.loader.LoadScout(spawn.Profile)
		if err != nil {
			return nil, fmt.Errorf("scouts[%d]: %w", i, err)
		}
		next.Profiles[spawn.Profile] = p
	}
	return &next, nil
}

// commit swaps in next once a world builds from it. On failure the running
// config and world stay.
func (r *reloader) commit(next *config.GameConfig, msg string, fields ...zap.Field) {
	if _, err := buildWorld(next, r.tps, zap.NewNop()); err != nil {
		r.logger.Warn("reload rejected", append(fields, zap.Error(err))...)
		return
	}

	prev := *r.cfg
	*r.cfg = *next
	if err := r.scene.Restart(); err != nil {
		*r.cfg = prev
		r.logger.Warn("reload rejected", append(fields, zap.Error(err))...)
		return
	}
	r.logger.Info(msg, fields...)
}

func (r *reloader) reloadScout(name string) {
	if _, ok := r.cfg.Profiles[name]; !ok {
		r.logger.Debug("ignoring unused scout profile", zap.String("profile", name))
		return
	}
	p, err := r.loader.LoadScout(name)
	if err != nil {
		r.logger.Warn("scout reload rejected", zap.String("profile", name), zap.Error(err))
		return
	}
	if err := r.scene.World().Reconfigure(name, *p); err != nil {
		r.logger.Warn("scout reload rejected", zap.String("profile", name), zap.Error(err))
		return
	}
	r.cfg.Profiles[name] = p
	if r.cfg.Scout.ID == name {
		r.cfg.Scout = p
	}
	r.logger.Info("scout profile reloaded", zap.String("profile", name))
}

// hook drains pending watcher events without blocking the tick
func (r *reloader) hook(w *config.Watcher) game.Hook {
	return func() error {
		for {
			select {
			case p, ok := <-w.Events:
				if !ok {
					return nil
				}
				if err := r.apply(p); err != nil {
					return err
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				r.logger.Warn("config watcher error", zap.Error(err))
			default:
				return nil
			}
		}
	}
}
