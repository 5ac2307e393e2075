// Package viewer implements the interactive sun viewer: window, input, the
// frame loop and drawing of the scene.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/realsun/internal/config"
	"github.com/Faultbox/realsun/internal/controls"
	"github.com/Faultbox/realsun/internal/cycle"
	"github.com/Faultbox/realsun/internal/engine/camera"
	"github.com/Faultbox/realsun/internal/engine/input"
	"github.com/Faultbox/realsun/internal/engine/lighting"
	"github.com/Faultbox/realsun/internal/engine/mesh"
	"github.com/Faultbox/realsun/internal/engine/renderer"
	"github.com/Faultbox/realsun/internal/engine/screenshot"
	"github.com/Faultbox/realsun/internal/engine/shadow"
	"github.com/Faultbox/realsun/internal/engine/window"
	"github.com/Faultbox/realsun/internal/logger"
	"github.com/Faultbox/realsun/pkg/ecs"
	"github.com/Faultbox/realsun/pkg/sun"
)

// maxFrameTime caps dt so a stalled frame does not spin the sun around.
const maxFrameTime = 0.25

// Viewer is the main viewer instance.
type Viewer struct {
	log     *zap.Logger
	running bool

	app      *ecs.App
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scene    *Scene
	meshes   map[Shape]*renderer.Mesh
	bounds   map[Shape]mesh.Bounds

	shots      *screenshot.Capture
	wantShot   bool
	showBounds bool
}

// New creates the window, the renderer and the world described by cfg.
func New(cfg *config.Config) (*Viewer, error) {
	env, err := cfg.Environment.Build()
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	v := &Viewer{
		log:    logger.Named("viewer"),
		app:    ecs.New(ecs.WithLogger(logger.Named("ecs"))),
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		meshes: make(map[Shape]*renderer.Mesh),
		bounds: make(map[Shape]mesh.Bounds),
		shots:  screenshot.New(config.ScreenshotDir(), "sun"),
	}
	v.log.Info("initializing viewer",
		zap.Stringer("environment", env),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.FromGraphics("Real Sun", cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	v.app.OnClose(v.window.Close)

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:            width,
		Height:           height,
		Shadows:          cfg.Graphics.Shadows,
		ShadowResolution: int32(cfg.Graphics.ShadowResolution),
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.app.OnClose(v.renderer.Close)

	if err := v.uploadMeshes(); err != nil {
		v.Close()
		return nil, err
	}

	v.scene = Populate(v.app.World())

	plugins := []ecs.Plugin{
		sun.Plugin{Environment: &env},
		cycle.Plugin{Clock: cycle.New(cfg.Cycle)},
		controls.Plugin{Speeds: cfg.Controls},
	}
	for _, p := range plugins {
		if err := v.app.AddPlugin(p); err != nil {
			v.Close()
			return nil, err
		}
	}
	v.app.AddSystem(ecs.StageRender, "draw", v.draw)

	v.log.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) uploadMeshes() error {
	shapes := map[Shape]*mesh.Mesh{
		ShapeGround: mesh.Plane(GroundSize, 8),
		ShapeBox:    mesh.Box(1, 1, 1),
	}
	for shape, m := range shapes {
		g, err := v.renderer.Upload(m)
		if err != nil {
			return fmt.Errorf("uploading shape %d: %w", shape, err)
		}
		v.meshes[shape] = g
		v.bounds[shape] = m.Bounds
	}
	v.app.OnClose(func() error {
		for _, g := range v.meshes {
			v.renderer.Free(g)
		}
		return nil
	})
	return nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	if err := v.app.Startup(); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	lastTitle := ""

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.handleHeldKeys(dt)

		if err := v.app.Tick(dt); err != nil {
			return fmt.Errorf("frame %d: %w", v.app.Ticks(), err)
		}

		v.window.SwapBuffers()

		if title := v.title(); title != lastTitle {
			v.window.SetTitle(title)
			lastTitle = title
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventMouseDrag:
			v.camera.HandleDrag(event.DX, event.DY)
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.DY)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_SPACE:
				if clock, ok := ecs.Resource[cycle.Clock](v.app.World()); ok {
					v.log.Info("day cycle toggled", zap.Bool("paused", clock.Toggle()))
				}
			case sdl.SCANCODE_F11:
				v.log.Info("fullscreen toggled", zap.Bool("fullscreen", v.window.ToggleFullscreen()))
			case sdl.SCANCODE_F2:
				v.log.Info("log level changed", zap.Stringer("level", logger.ToggleDebug()))
			case sdl.SCANCODE_F3:
				v.showBounds = !v.showBounds
			case sdl.SCANCODE_F12:
				v.wantShot = true
			}
		}
	}
}

// handleHeldKeys writes the controls State for this frame and turns the camera.
func (v *Viewer) handleHeldKeys(dt float64) {
	in := v.input
	if s, ok := ecs.Resource[controls.State](v.app.World()); ok {
		*s = controls.State{
			TimeOfDay:  in.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_A),
			TimeOfYear: in.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
			Latitude:   in.Axis(sdl.SCANCODE_E, sdl.SCANCODE_D),
			AxialTilt:  in.Axis(sdl.SCANCODE_R, sdl.SCANCODE_F),
			Pace:       controls.PaceFor(in.Shift(), in.Ctrl()),
		}
	}
	v.camera.HandleTurn(
		float32(in.Axis(sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT)),
		float32(in.Axis(sdl.SCANCODE_UP, sdl.SCANCODE_DOWN)),
		float32(dt),
	)
}

// draw renders the world. It runs in the render stage, after the sun system
// has oriented the light.
func (v *Viewer) draw(w *ecs.World, _ float64) error {
	env, ok := ecs.Resource[sun.Environment](w)
	if !ok {
		return nil
	}
	forward, ok := v.scene.LightForward(w)
	if !ok {
		forward = env.LightDirection()
	}
	daylight := lighting.ForLight(forward)

	v.renderer.Begin(daylight.Sky)
	v.renderer.SetCamera(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.renderer.Aspect()))
	v.renderer.SetLight(forward, daylight)

	instances := make([]renderer.Instance, 0, len(v.scene.Props))
	for _, p := range v.scene.Props {
		t, ok := w.Transform(p.Entity)
		if !ok {
			continue
		}
		instances = append(instances, renderer.Instance{
			Mesh:  v.meshes[p.Shape],
			Model: t.Matrix(),
			Color: p.Color,
		})
	}

	bounds := v.scene.Bounds(w, v.bounds)
	if v.scene.CastsShadows(w) {
		v.renderer.DrawShadows(shadow.LightMatrix(forward, bounds), instances)
	} else {
		v.renderer.DisableShadows()
	}
	v.renderer.Draw(instances)

	lines := Overlay(*env)
	if v.showBounds {
		lines = append(lines, mesh.Outline(bounds, colorBounds)...)
	}
	v.renderer.DrawLines(lines)

	if v.wantShot {
		v.wantShot = false
		v.saveScreenshot()
	}
	return v.renderer.End()
}

func (v *Viewer) saveScreenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) title() string {
	env, ok := ecs.Resource[sun.Environment](v.app.World())
	if !ok {
		return "Real Sun"
	}
	clock, _ := ecs.Resource[cycle.Clock](v.app.World())
	return Title(*env, clock)
}

// Close releases everything the viewer created, newest first.
func (v *Viewer) Close() error {
	v.log.Info("closing viewer")
	return v.app.Close()
}
