// Package game adapts a Scene to ebiten's game loop.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/scout/internal/application/scene"
)

// Hook runs on the game goroutine before the scene updates. Work that must
// not race the simulation, like applying a reloaded config, goes here.
type Hook func() error

// Game implements ebiten.Game and manages Scene transitions
type Game struct {
	current scene.Scene
	hooks   []Hook
	screenW int
	screenH int
	dt      float64
}

// New creates a Game running at tps ticks per second and enters initialScene
func New(initialScene scene.Scene, screenW, screenH, tps int) *Game {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(tps),
	}
	g.current.OnEnter()
	return g
}

// AddHook registers h to run at the start of every tick
func (g *Game) AddHook(h Hook) {
	g.hooks = append(g.hooks, h)
}

// Update runs the hooks, then the current scene, and switches scenes when
// the scene asks to
func (g *Game) Update() error {
	for _, h := range g.hooks {
		if err := h(); err != nil {
			return err
		}
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size
func (g *Game) Layout(_, _ int) (int, int) {
	return g.screenW, g.screenH
}

// Current returns the active scene
func (g *Game) Current() scene.Scene { return g.current }

// Close exits the current scene
func (g *Game) Close() {
	g.current.OnExit()
}

// DT returns the tick length passed to scenes
func (g *Game) DT() float64 { return g.dt }
