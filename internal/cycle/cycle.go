// Package cycle moves simulated time forward so the sun crosses the sky on its own.
package cycle

import (
	"math"
	"time"

	"github.com/soniakeys/unit"
	"go.uber.org/zap"

	"github.com/Faultbox/realsun/internal/config"
	"github.com/Faultbox/realsun/pkg/ecs"
	"github.com/Faultbox/realsun/pkg/sun"
)

// Clock advances the time angles of a sun.Environment.
type Clock struct {
	// DayLength is the real time one full turn of TimeOfDay takes. 0 stops the clock.
	DayLength time.Duration
	// YearLength is the real time one full orbit takes. 0 freezes the seasons.
	YearLength time.Duration
	// Speed scales both rates. 1 is real time, negative runs backwards.
	Speed  float64
	Paused bool

	// Days counts midnights crossed going forward, minus those crossed going back.
	Days int
}

// New creates a Clock from configuration.
func New(cfg config.CycleConfig) *Clock {
	return &Clock{
		DayLength:  cfg.DayLength,
		YearLength: cfg.YearLength,
		Speed:      1,
		Paused:     cfg.Paused,
	}
}

// rate returns radians per second for a period.
func rate(period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	return 2 * math.Pi / period.Seconds()
}

// Advance moves env forward by dt seconds of real time.
func (c *Clock) Advance(env *sun.Environment, dt float64) {
	if c.Paused || env == nil || dt <= 0 {
		return
	}

	tod := sun.WrapAngle(env.TimeOfDay).Rad() + rate(c.DayLength)*c.Speed*dt
	c.Days += int(math.Floor((tod + math.Pi) / (2 * math.Pi)))
	env.TimeOfDay = sun.WrapAngle(unit.Angle(tod))

	if r := rate(c.YearLength); r != 0 {
		env.TimeOfYear = sun.WrapAngle(env.TimeOfYear + unit.Angle(r*c.Speed*dt))
	}
}

// Toggle pauses or resumes the clock and reports whether it is now paused.
func (c *Clock) Toggle() bool {
	c.Paused = !c.Paused
	return c.Paused
}

// System advances the world's Environment using the world's Clock.
func System(w *ecs.World, dt float64) error {
	c, ok := ecs.Resource[Clock](w)
	if !ok {
		return nil
	}
	env, ok := ecs.Resource[sun.Environment](w)
	if !ok {
		return nil
	}
	c.Advance(env, dt)
	return nil
}

// Plugin installs a Clock resource and runs System during the update stage, so
// the sun system sees the new time in the same tick.
type Plugin struct {
	Clock *Clock
}

// Build implements ecs.Plugin.
func (p Plugin) Build(app *ecs.App) error {
	c := p.Clock
	if c == nil {
		c = &Clock{Speed: 1}
	}
	c = ecs.InitResource(app.World(), c)
	app.AddSystem(ecs.StageUpdate, "cycle", System)

	app.Logger().Info("day cycle ready",
		zap.Duration("day", c.DayLength),
		zap.Duration("year", c.YearLength),
		zap.Bool("paused", c.Paused))
	return nil
}
