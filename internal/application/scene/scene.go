// Package scene defines the Scene interface the sandbox game loop drives.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the sandbox.
//
// Update is called once per fixed tick with the tick length in seconds and
// returns the scene to switch to, or nil to stay. A non-nil error stops the
// game loop.
type Scene interface {
	Update(dt float64) (next Scene, err error)
	Draw(screen *ebiten.Image)

	// OnEnter and OnExit bracket the time a scene is current
	OnEnter()
	OnExit()
}
