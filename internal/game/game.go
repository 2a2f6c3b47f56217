// Package game implements the interactive viewer: it owns the window, drives
// one locomotion controller from mouse and keyboard input and draws the result.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/octoped/internal/config"
	"github.com/Faultbox/octoped/internal/engine/audio"
	"github.com/Faultbox/octoped/internal/engine/camera"
	"github.com/Faultbox/octoped/internal/engine/debug"
	"github.com/Faultbox/octoped/internal/engine/input"
	"github.com/Faultbox/octoped/internal/engine/lighting"
	"github.com/Faultbox/octoped/internal/engine/locomotion"
	"github.com/Faultbox/octoped/internal/engine/renderer"
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/internal/engine/window"
	"github.com/Faultbox/octoped/internal/logger"
	"github.com/Faultbox/octoped/pkg/math"
)

const (
	title         = "Octoped"
	maxFrameDelta = 0.1 // longer frames are clamped to keep the integrator stable
	pickDistance  = 400
	fovY          = math.Pi / 4
	nearPlane     = 0.1
	farPlane      = 1000
)

// Game is the viewer instance.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool
	paused  bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FollowCamera
	audio    *audio.Manager

	ctrl   *locomotion.Controller
	shared *locomotion.SharedSnapshot
	source terrain.Oracle
	oracle terrain.Oracle
	kind   terrain.Kind

	trail *debug.Trail
	shots *debug.Screenshotter
	shape debug.BodyShape
	lines []terrain.LineVertex

	target    math.Vec3
	hasTarget bool
	viewProj  math.Mat4
	width     int
	height    int
}

// New creates the window, GL renderer, audio and the character.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		log:    logger.Named("game"),
		input:  input.New(),
		camera: camera.NewFollowCamera(),
		shared: &locomotion.SharedSnapshot{},
		source: terrain.Procedural{},
		kind:   cfg.Terrain.Kind,
		trail:  debug.NewTrail(96, 4),
		shots:  debug.NewScreenshotter(config.ConfigDir(), "octoped"),
		shape:  debug.ShapeFor(cfg.Character),
		lines:  make([]terrain.LineVertex, 0, 8192),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}

	g.log.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Stringer("terrain", cfg.Terrain.Kind),
	)

	var err error
	g.window, err = window.New(window.FromSettings(title, cfg.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, since the GL context must exist
	g.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.width, g.height = g.window.GetSize()
	g.renderer.Resize(g.width, g.height)

	g.audio = audio.New()
	if err := g.audio.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
	}
	g.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	g.audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	g.audio.SetMuted(cfg.Audio.Muted)

	g.rebuildOracle(math.Vec3{})
	g.ctrl = locomotion.New(math.Vec3{}, locomotion.Options{
		Tuning: cfg.Character,
		Oracle: g.oracle,
		Kind:   g.kind,
		Logger: logger.Named("locomotion"),
		Shared: g.shared,
		OnMoveStateChange: func(moving bool) {
			g.log.Debug("move state changed", zap.Bool("moving", moving))
		},
	})
	g.target = g.shared.Load().Position
	g.camera.Follow(g.shared.Load(), 0)

	g.log.Info("viewer initialized")
	return g, nil
}

// Run drives the frame loop until the window is closed or Escape is pressed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if g.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.cfg.Window.FPSLimit)
	}

	g.log.Info("starting viewer loop")

	for g.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Update simulation
		if !g.paused {
			g.update(dt)
		}

		// 3. Render and present
		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.cfg.Window.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s - %d fps - %s", title, frameCount, g.kind))
			}
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// Close releases audio, GL and window resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.width, g.height = event.Width, event.Height
			g.renderer.Resize(event.Width, event.Height)

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				if p, ok := g.pick(event.MouseX, event.MouseY); ok {
					g.target = p
					g.hasTarget = true
					g.ctrl.SetTarget(p)
				}
			}

		case input.EventMouseMove:
			if g.input.IsButtonDown(sdl.BUTTON_RIGHT) {
				g.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
			if p, ok := g.pick(event.MouseX, event.MouseY); ok {
				g.ctrl.SetPointer(p)
			}

		case input.EventMouseWheel:
			g.camera.HandleZoom(event.WheelY)

		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			g.handleKey(event.Key)

		case input.EventKeyUp:
			if event.Key == sdl.SCANCODE_SPACE {
				g.ctrl.ReleaseJump()
			}
		}
	}
}

func (g *Game) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		g.running = false
	case sdl.SCANCODE_SPACE:
		g.ctrl.BeginJumpCharge()
	case sdl.SCANCODE_T:
		g.cycleTerrain()
	case sdl.SCANCODE_P:
		g.paused = !g.paused
		g.log.Info("pause toggled", zap.Bool("paused", g.paused))
	case sdl.SCANCODE_M:
		g.cfg.Audio.Muted = !g.cfg.Audio.Muted
		g.audio.SetMuted(g.cfg.Audio.Muted)
	case sdl.SCANCODE_F5:
		g.saveSettings()
	case sdl.SCANCODE_F12:
		g.screenshot()
	}
}

func (g *Game) cycleTerrain() {
	g.kind = (g.kind + 1) % (terrain.KindFlat + 1)
	g.rebuildOracle(g.shared.Load().Position)
	g.ctrl.SetOracle(g.oracle)
	g.ctrl.SetTerrain(g.kind)
	g.log.Info("terrain changed", zap.Stringer("kind", g.kind))
}

// rebuildOracle refreshes the heightmap cache around center when caching
// is enabled.
func (g *Game) rebuildOracle(center math.Vec3) {
	tc := g.cfg.Terrain
	g.oracle = terrain.Cached(g.source, g.kind, center.X, center.Z, tc.CacheCells, tc.CacheStep)
}

func (g *Game) pick(x, y int) (math.Vec3, bool) {
	return pickGround(x, y, g.width, g.height, g.viewProj, g.oracle, g.kind)
}

// saveSettings writes the live terrain, tuning and mute state to the user
// config file.
func (g *Game) saveSettings() {
	g.cfg.Terrain.Kind = g.kind
	g.cfg.Character = g.ctrl.Tuning()
	if err := g.cfg.Save(); err != nil {
		g.log.Warn("saving settings failed", zap.Error(err))
		return
	}
	g.log.Info("settings saved", zap.String("dir", config.ConfigDir()))
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.shots.Capture(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) update(dt float32) {
	g.ctrl.Update(dt)
	frame := g.ctrl.Frame()

	g.trail.Update(dt)
	g.trail.Add(frame.Footsteps)

	g.camera.Follow(g.shared.Load(), dt)
	if !g.audio.IsInitialized() {
		return
	}
	listener := g.camera.Position()
	for _, fs := range frame.Footsteps {
		if err := g.audio.Footstep(float64(listener.Distance(fs.Position))); err != nil {
			g.log.Debug("footstep sound dropped", zap.Error(err))
		}
	}
}

func (g *Game) render() {
	view := g.camera.ViewMatrix()
	proj := math.Perspective(fovY, g.renderer.Aspect(), nearPlane, farPlane)
	g.viewProj = proj.Mul(view)

	g.renderer.Begin()
	g.lines = composeScene(g.lines[:0], sceneInput{
		Frame:      g.ctrl.Frame(),
		Oracle:     g.oracle,
		Kind:       g.kind,
		Focus:      g.camera.Focus(),
		GridRadius: g.cfg.Terrain.GridRadius,
		GridStep:   g.cfg.Terrain.GridStep,
		Target:     g.target,
		HasTarget:  g.hasTarget,
		Shape:      g.shape,
		Trail:      g.trail,
		Sun:        lighting.DefaultSun,
	})
	g.renderer.Lines(g.lines)
	g.renderer.End(g.viewProj)
}
