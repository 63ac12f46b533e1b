package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/infrastructure/config"
)

// InputSystem turns keyboard state into target movement
type InputSystem struct {
	config *config.TargetConfig
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg *config.TargetConfig) *InputSystem {
	return &InputSystem{config: cfg}
}

// InputState holds the current input state
type InputState struct {
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Strike bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:   ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Strike: inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
}

// Intent converts raw keys into a movement intent. Opposite keys cancel.
func (in InputState) Intent() TargetIntent {
	var i TargetIntent
	if in.Left {
		i.MoveX--
	}
	if in.Right {
		i.MoveX++
	}
	if in.Up {
		i.MoveY--
	}
	if in.Down {
		i.MoveY++
	}
	i.Strike = in.Strike
	return i
}

// UpdateTarget sets the target's velocity from an intent. Facing only
// changes on a nonzero horizontal intent.
func (s *InputSystem) UpdateTarget(t *entity.Target, intent TargetIntent) {
	// vertical travel is the target's jump, so it takes the jump multiplier
	t.Vel = entity.Vec2{
		X: intent.MoveX * s.config.Speed * t.Modifiers.Speed(),
		Y: intent.MoveY * s.config.Speed * t.Modifiers.Jump(),
	}
	t.Facing = entity.FacingFrom(intent.MoveX, t.Facing)
}
