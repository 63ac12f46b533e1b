// Package sandbox provides the debug scene: the stage drawn as rectangles,
// the target under keyboard or replay control, and scouts hunting it.
package sandbox

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/younwookim/scout/internal/application/replay"
	"github.com/younwookim/scout/internal/application/scene"
	"github.com/younwookim/scout/internal/application/state"
	"github.com/younwookim/scout/internal/application/system"
	"github.com/younwookim/scout/internal/domain/entity"
	"github.com/younwookim/scout/internal/sim"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorGround   = color.RGBA{80, 80, 100, 255}
	colorWall     = color.RGBA{110, 90, 70, 255}
	colorWater    = color.RGBA{40, 90, 200, 90}
	colorKillZone = color.RGBA{200, 50, 50, 160}
	colorTarget   = color.RGBA{100, 200, 100, 255}
	colorSurface  = color.RGBA{240, 240, 120, 255}
	colorStrike   = color.RGBA{100, 200, 100, 120}
	colorHitbox   = color.RGBA{255, 60, 60, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 150}
)

var stateColors = map[entity.BehaviorState]color.RGBA{
	entity.StatePatrol:   {160, 160, 160, 255},
	entity.StateChase:    {230, 180, 60, 255},
	entity.StateAttack:   {230, 80, 80, 255},
	entity.StateCooldown: {120, 120, 220, 255},
}

// Options configures a sandbox scene
type Options struct {
	// Build creates a fresh world; it is called again on restart
	Build func() (*sim.World, error)
	// Replay, when set, drives the target instead of the keyboard
	Replay *replay.ReplayData
	// RecordPath, when set, saves keyboard input to this file on exit.
	// Sessions after a restart get a numbered suffix.
	RecordPath string

	StageName string
	ScoutName string
	TPS       int
	// Scale is screen pixels per world unit
	Scale   float64
	ScreenW int
	ScreenH int
	Logger  *zap.Logger
}

// Sandbox is the debug scene
type Sandbox struct {
	opts     Options
	world    *sim.World
	state    state.RunState
	recorder *replay.Recorder
	replayer *replay.Replayer
	logger   *zap.Logger

	// session counts restarts whose recording was saved
	session  int
	striking bool
}

// New creates the scene and its first world
func New(opts Options) (*Sandbox, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Scale <= 0 {
		opts.Scale = 32
	}
	s := &Sandbox{opts: opts, logger: opts.Logger}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart rebuilds the world and resets replay or recording. A recording
// in progress is saved first when a record path is set.
func (s *Sandbox) Restart() error {
	if s.opts.RecordPath != "" && s.saveRecording(s.recordPath()) {
		s.session++
	}

	w, err := s.opts.Build()
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	s.world = w
	s.state = state.StateRunning

	stage := w.Stage()
	start := entity.Vec2{X: stage.SpawnX, Y: stage.SpawnY}
	if s.opts.Replay != nil {
		s.replayer = replay.NewReplayer(*s.opts.Replay)
		start = entity.Vec2{X: s.opts.Replay.Target.X, Y: s.opts.Replay.Target.Y}
	}
	w.SetTarget(start)

	w.Objective().OnCleared(func() {
		s.logger.Info("stage cleared", zap.Float64("t", w.Now()))
	})

	if s.opts.Replay == nil {
		s.recorder = replay.NewRecorder(s.opts.StageName, s.opts.ScoutName, s.opts.TPS, replay.Point{X: start.X, Y: start.Y})
		if s.opts.RecordPath != "" {
			s.logger.Info("recording enabled", zap.String("path", s.recordPath()))
		}
	}
	return nil
}

// World returns the running world
func (s *Sandbox) World() *sim.World { return s.world }

// State returns the run state
func (s *Sandbox) State() state.RunState { return s.state }

// TogglePause pauses or resumes a running simulation
func (s *Sandbox) TogglePause() {
	switch s.state {
	case state.StatePaused:
		s.state = state.StateRunning
		if s.world.Objective().Cleared() {
			s.state = state.StateCleared
		}
	case state.StateRunning, state.StateCleared:
		s.state = state.StatePaused
	}
}

// Update advances the sandbox by one tick (implements scene.Scene)
func (s *Sandbox) Update(_ float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		s.saveRecording(s.recordPath())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := s.Restart(); err != nil {
			return nil, err
		}
	}

	if !s.state.Ticking() {
		return nil, nil
	}
	input, ok := s.nextInput()
	if !ok {
		s.state = state.StateReplayDone
		s.logger.Info("replay finished", zap.Int("frames", s.replayer.TotalFrames()))
		return nil, nil
	}
	s.Step(input)
	return nil, nil
}

// Step feeds one input to the world
func (s *Sandbox) Step(input system.InputState) {
	s.striking = input.Strike
	s.world.Step(input.Intent())
	if s.state == state.StateRunning && s.world.Objective().Cleared() {
		s.state = state.StateCleared
	}
}

func (s *Sandbox) nextInput() (system.InputState, bool) {
	if s.replayer != nil {
		return s.replayer.Next()
	}
	input := s.world.Input().GetInput()
	if s.recorder != nil && s.recorder.IsRecording() {
		s.recorder.RecordFrame(input)
	}
	return input, true
}

// OnEnter implements scene.Scene
func (s *Sandbox) OnEnter() {
	s.logger.Info("sandbox started",
		zap.String("stage", s.opts.StageName),
		zap.Int("scouts", s.world.CountScouts()),
		zap.Bool("replay", s.replayer != nil),
	)
}

// OnExit implements scene.Scene. The recording is saved when a record
// path is set and stops either way.
func (s *Sandbox) OnExit() {
	if s.recorder == nil {
		return
	}
	if s.opts.RecordPath != "" {
		s.saveRecording(s.recordPath())
	}
	s.recorder.Stop()
}

// recordPath is where the current session saves. Without a configured
// path F5 falls back to a timestamped file.
func (s *Sandbox) recordPath() string {
	if s.opts.RecordPath == "" {
		return replay.GenerateFilename()
	}
	if s.session == 0 {
		return s.opts.RecordPath
	}
	ext := filepath.Ext(s.opts.RecordPath)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(s.opts.RecordPath, ext), s.session, ext)
}

func (s *Sandbox) saveRecording(path string) bool {
	if s.recorder == nil || s.recorder.FrameCount() == 0 {
		return false
	}
	if err := s.recorder.Save(path); err != nil {
		s.logger.Warn("failed to save recording", zap.Error(err))
		return false
	}
	s.logger.Info("recording saved",
		zap.String("path", path),
		zap.Int("frames", s.recorder.FrameCount()),
	)
	return true
}

// Camera returns the top-left corner of the view in screen pixels,
// centred on the target and clamped to the stage
func (s *Sandbox) Camera() (float64, float64) {
	sc := s.opts.Scale
	stage := s.world.Stage()
	var cx, cy float64
	if t := s.world.Target(); t != nil {
		cx = t.Pos.X*sc - float64(s.opts.ScreenW)/2
		cy = t.Pos.Y*sc - float64(s.opts.ScreenH)/2
	}
	cx = clampView(cx, stage.Width*sc-float64(s.opts.ScreenW))
	cy = clampView(cy, stage.Height*sc-float64(s.opts.ScreenH))
	return cx, cy
}

func clampView(v, maxV float64) float64 {
	if maxV <= 0 {
		return 0
	}
	return math.Max(0, math.Min(v, maxV))
}

// Draw renders the scene
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	camX, camY := s.Camera()

	s.drawStage(screen, camX, camY)
	s.drawScouts(screen, camX, camY)
	s.drawTarget(screen, camX, camY)
	s.drawUI(screen)

	switch s.state {
	case state.StatePaused:
		s.drawOverlay(screen, "PAUSED\n\nESC to resume")
	case state.StateReplayDone:
		s.drawOverlay(screen, "REPLAY FINISHED\n\nR to restart")
	}
}

func (s *Sandbox) fillRect(screen *ebiten.Image, r entity.Rect, camX, camY float64, c color.Color) {
	sc := s.opts.Scale
	vector.FillRect(screen, float32(r.X*sc-camX), float32(r.Y*sc-camY), float32(r.W*sc), float32(r.H*sc), c, false)
}

func (s *Sandbox) strokeRect(screen *ebiten.Image, r entity.Rect, camX, camY float64, c color.Color) {
	sc := s.opts.Scale
	vector.StrokeRect(screen, float32(r.X*sc-camX), float32(r.Y*sc-camY), float32(r.W*sc), float32(r.H*sc), 1, c, false)
}

func (s *Sandbox) drawStage(screen *ebiten.Image, camX, camY float64) {
	stage := s.world.Stage()
	for _, p := range stage.Platforms {
		c := colorGround
		if p.Layer.Has(entity.LayerWall) {
			c = colorWall
		}
		s.fillRect(screen, p.Rect, camX, camY, c)
	}
	for _, z := range stage.WaterZones {
		s.fillRect(screen, z.Rect, camX, camY, colorWater)
	}
	for _, z := range stage.KillZones {
		s.fillRect(screen, z.Rect, camX, camY, colorKillZone)
	}
}

func (s *Sandbox) drawScouts(screen *ebiten.Image, camX, camY float64) {
	for _, sc := range s.world.Scouts() {
		if !sc.Visible {
			continue
		}
		s.fillRect(screen, sc.Rect(), camX, camY, stateColors[sc.State])

		// facing tick on the leading edge
		r := sc.Rect()
		edge := r.X
		if sc.Facing == entity.FacingRight {
			edge = r.X + r.W
		}
		x := float32(edge*s.opts.Scale - camX)
		y := float32(r.Y*s.opts.Scale - camY)
		vector.StrokeLine(screen, x, y, x, y+float32(r.H*s.opts.Scale)/3, 2, color.White, false)

		if sc.Hitbox.Enabled {
			s.strokeRect(screen, sc.Hitbox.WorldRect(sc.Pos), camX, camY, colorHitbox)
		}
		s.drawHealth(screen, sc, camX, camY)
	}
}

func (s *Sandbox) drawHealth(screen *ebiten.Image, sc *entity.Scout, camX, camY float64) {
	if sc.Health.Max <= 0 {
		return
	}
	r := sc.Rect()
	bar := entity.Rect{X: r.X, Y: r.Y - 0.2, W: r.W, H: 0.08}
	s.fillRect(screen, bar, camX, camY, color.RGBA{60, 60, 60, 255})
	bar.W *= float64(sc.Health.Current) / float64(sc.Health.Max)
	s.fillRect(screen, bar, camX, camY, colorTarget)
}

func (s *Sandbox) drawTarget(screen *ebiten.Image, camX, camY float64) {
	t := s.world.Target()
	if t == nil {
		return
	}
	if p, ok := s.world.Stage().Surface(t.Surface); ok {
		s.strokeRect(screen, p.Rect, camX, camY, colorSurface)
	}
	if r, ok := t.Rect(); ok {
		s.fillRect(screen, r, camX, camY, colorTarget)
	}
	if center, radius, ok := s.world.StrikeArea(); ok && s.striking {
		sc := s.opts.Scale
		vector.StrokeCircle(screen, float32(center.X*sc-camX), float32(center.Y*sc-camY), float32(radius*sc), 1, colorStrike, true)
	}
}

func (s *Sandbox) drawUI(screen *ebiten.Image) {
	w := s.world
	msg := fmt.Sprintf("t=%.2f  tick=%d  %s\nscouts=%d  remaining=%d",
		w.Now(), w.Tick(), s.state, w.CountScouts(), w.Objective().Remaining())
	if t := w.Target(); t != nil {
		msg += fmt.Sprintf("\ntarget hp=%d/%d", t.Health.Current, t.Health.Max)
	}
	if s.replayer != nil {
		msg += fmt.Sprintf("\nreplay %d/%d", s.replayer.CurrentFrame(), s.replayer.TotalFrames())
	}
	if s.recorder != nil && s.recorder.IsRecording() {
		msg += fmt.Sprintf("\nrec %d  F5 save", s.recorder.FrameCount())
	}
	if s.state == state.StateCleared {
		msg += "\nSTAGE CLEAR"
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (s *Sandbox) drawOverlay(screen *ebiten.Image, text string) {
	vector.FillRect(screen, 0, 0, float32(s.opts.ScreenW), float32(s.opts.ScreenH), colorOverlay, false)
	ebitenutil.DebugPrintAt(screen, text, s.opts.ScreenW/2-50, s.opts.ScreenH/2-20)
}
