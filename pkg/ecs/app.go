package ecs

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Stage orders systems within a tick.
type Stage int

const (
	// StageStartup systems run once, before the first tick.
	StageStartup Stage = iota
	// StagePreUpdate is for input handling.
	StagePreUpdate
	// StageUpdate is for game logic, including changes to shared resources.
	StageUpdate
	// StagePostUpdate runs after game logic and before rendering. Systems that
	// derive component state from resources belong here.
	StagePostUpdate
	// StageRender reads the final state of the tick.
	StageRender

	stageCount
)

var stageNames = [stageCount]string{"startup", "pre-update", "update", "post-update", "render"}

// String implements fmt.Stringer.
func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// System is a function run once per tick (or once at startup).
// dt is the time since the previous tick in seconds.
type System func(w *World, dt float64) error

// Plugin bundles systems and resources.
type Plugin interface {
	Build(app *App) error
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(app *App) error

// Build implements Plugin.
func (f PluginFunc) Build(app *App) error { return f(app) }

type namedSystem struct {
	name string
	fn   System
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used by the App and handed to plugins.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithWorld makes the App run on an existing world.
func WithWorld(w *World) Option {
	return func(a *App) {
		if w != nil {
			a.world = w
		}
	}
}

// App owns a World and runs its systems stage by stage.
type App struct {
	world   *World
	log     *zap.Logger
	systems [stageCount][]namedSystem
	closers []func() error
	started bool
	ticks   uint64
}

// New creates an App with an empty world.
func New(opts ...Option) *App {
	a := &App{
		world: NewWorld(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// World returns the App's world.
func (a *App) World() *World {
	return a.world
}

// Logger returns the App's logger.
func (a *App) Logger() *zap.Logger {
	return a.log
}

// Ticks returns how many ticks have completed.
func (a *App) Ticks() uint64 {
	return a.ticks
}

// AddSystem appends a system to stage. Systems in a stage run in insertion order.
func (a *App) AddSystem(stage Stage, name string, fn System) *App {
	if stage < 0 || stage >= stageCount {
		panic(fmt.Sprintf("ecs: invalid stage %d for system %q", int(stage), name))
	}
	a.systems[stage] = append(a.systems[stage], namedSystem{name: name, fn: fn})
	a.log.Debug("system added", zap.Stringer("stage", stage), zap.String("system", name))
	return a
}

// AddPlugin builds p into the App.
func (a *App) AddPlugin(p Plugin) error {
	if err := p.Build(a); err != nil {
		return fmt.Errorf("building plugin %T: %w", p, err)
	}
	a.log.Debug("plugin added", zap.String("plugin", fmt.Sprintf("%T", p)))
	return nil
}

// OnClose registers fn to run when the App closes. Closers run in reverse order.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Startup runs the startup systems. It is called by the first Tick if needed
// and does nothing on later calls.
func (a *App) Startup() error {
	if a.started {
		return nil
	}
	a.started = true
	return a.runStage(StageStartup, 0)
}

// Tick runs every stage once.
func (a *App) Tick(dt float64) error {
	if err := a.Startup(); err != nil {
		return err
	}
	for stage := StagePreUpdate; stage < stageCount; stage++ {
		if err := a.runStage(stage, dt); err != nil {
			return err
		}
	}
	a.ticks++
	return nil
}

func (a *App) runStage(stage Stage, dt float64) error {
	for _, s := range a.systems[stage] {
		if err := s.fn(a.world, dt); err != nil {
			return fmt.Errorf("%s system %q: %w", stage, s.name, err)
		}
	}
	return nil
}

// Close runs the registered closers and returns their combined errors.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}
