// Package controls turns held keys into changes of the sun environment.
package controls

import (
	"github.com/soniakeys/unit"

	"github.com/Faultbox/realsun/internal/config"
	"github.com/Faultbox/realsun/pkg/ecs"
	"github.com/Faultbox/realsun/pkg/sun"
)

// Pace selects how fast held keys change the environment.
type Pace int

const (
	PaceNormal Pace = iota
	PaceSlow
	PaceFast
)

// PaceFor picks the pace from the modifier keys. Slow wins when both are held.
func PaceFor(fast, slow bool) Pace {
	switch {
	case slow:
		return PaceSlow
	case fast:
		return PaceFast
	default:
		return PaceNormal
	}
}

// State is the input of one frame. Each axis is -1, 0 or 1.
type State struct {
	TimeOfDay  float64
	TimeOfYear float64
	Latitude   float64
	AxialTilt  float64
	Pace       Pace
}

// Idle reports whether no axis is held.
func (s State) Idle() bool {
	return s.TimeOfDay == 0 && s.TimeOfYear == 0 && s.Latitude == 0 && s.AxialTilt == 0
}

// Controller applies input to an Environment.
type Controller struct {
	Speeds config.ControlsConfig
}

// Speed returns radians per second for a pace.
func (c Controller) Speed(p Pace) float64 {
	switch p {
	case PaceSlow:
		return c.Speeds.SlowSpeed
	case PaceFast:
		return c.Speeds.FastSpeed
	default:
		return c.Speeds.NormalSpeed
	}
}

// Apply changes env by s over dt seconds. Times wrap around, latitude and tilt
// stop at ±90°.
func (c Controller) Apply(env *sun.Environment, s State, dt float64) {
	if env == nil || s.Idle() {
		return
	}
	step := c.Speed(s.Pace) * dt
	env.TimeOfDay += unit.Angle(s.TimeOfDay * step)
	env.TimeOfYear += unit.Angle(s.TimeOfYear * step)
	env.Latitude += unit.Angle(s.Latitude * step)
	env.AxialTilt += unit.Angle(s.AxialTilt * step)
	*env = env.Wrapped()
}

// System applies the world's State to its Environment.
func System(w *ecs.World, dt float64) error {
	c, ok := ecs.Resource[Controller](w)
	if !ok {
		return nil
	}
	s, ok := ecs.Resource[State](w)
	if !ok {
		return nil
	}
	env, ok := ecs.Resource[sun.Environment](w)
	if !ok {
		return nil
	}
	c.Apply(env, *s, dt)
	return nil
}

// Plugin installs a Controller and an empty State, and applies the State during
// the update stage. The program writes the State from its input each frame.
type Plugin struct {
	Speeds config.ControlsConfig
}

// Build implements ecs.Plugin.
func (p Plugin) Build(app *ecs.App) error {
	ecs.InsertResource(app.World(), &Controller{Speeds: p.Speeds})
	ecs.InitResource(app.World(), &State{})
	app.AddSystem(ecs.StageUpdate, "controls", System)
	return nil
}
