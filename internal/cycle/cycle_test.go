package cycle

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Faultbox/realsun/internal/config"
	"github.com/Faultbox/realsun/pkg/ecs"
	"github.com/Faultbox/realsun/pkg/sun"
)

func TestNew(t *testing.T) {
	c := New(config.CycleConfig{DayLength: time.Minute, YearLength: time.Hour, Paused: true})
	if c.DayLength != time.Minute || c.YearLength != time.Hour || !c.Paused || c.Speed != 1 {
		t.Errorf("New = %+v", c)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name     string
		clock    Clock
		start    sun.Environment
		dt       float64
		wantDay  float64
		wantYear float64
		wantDays int
	}{
		{
			name:    "quarter day",
			clock:   Clock{DayLength: 24 * time.Second, Speed: 1},
			dt:      6,
			wantDay: math.Pi / 2,
		},
		{
			name:     "past midnight",
			clock:    Clock{DayLength: 24 * time.Second, Speed: 1},
			start:    sun.Environment{TimeOfDay: 3 * math.Pi / 4},
			dt:       6,
			wantDay:  -3 * math.Pi / 4,
			wantDays: 1,
		},
		{
			name:     "backwards past midnight",
			clock:    Clock{DayLength: 24 * time.Second, Speed: -1},
			start:    sun.Environment{TimeOfDay: -3 * math.Pi / 4},
			dt:       6,
			wantDay:  3 * math.Pi / 4,
			wantDays: -1,
		},
		{
			name:     "speed multiplier",
			clock:    Clock{DayLength: 24 * time.Second, Speed: 2},
			dt:       3,
			wantDay:  math.Pi / 2,
			wantDays: 0,
		},
		{
			name:     "seasons advance",
			clock:    Clock{DayLength: time.Second, YearLength: 4 * time.Second, Speed: 1},
			dt:       1,
			wantDay:  0,
			wantYear: math.Pi / 2,
			wantDays: 1,
		},
		{
			name:  "stopped clock",
			clock: Clock{Speed: 1},
			start: sun.Environment{TimeOfDay: 1, TimeOfYear: 2},
			dt:    10, wantDay: 1, wantYear: 2,
		},
		{
			name:  "paused",
			clock: Clock{DayLength: time.Second, Speed: 1, Paused: true},
			start: sun.Environment{TimeOfDay: 1},
			dt:    0.25, wantDay: 1,
		},
		{
			name:  "zero delta",
			clock: Clock{DayLength: time.Second, Speed: 1},
			start: sun.Environment{TimeOfDay: 1},
			dt:    0, wantDay: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, env := tt.clock, tt.start
			c.Advance(&env, tt.dt)

			if !scalar.EqualWithinAbs(math.Abs(sun.WrapAngle(env.TimeOfDay-unit.Angle(tt.wantDay)).Rad()), 0, 1e-9) {
				t.Errorf("TimeOfDay = %v, want %v", env.TimeOfDay.Rad(), tt.wantDay)
			}
			if !scalar.EqualWithinAbs(env.TimeOfYear.Rad(), tt.wantYear, 1e-9) {
				t.Errorf("TimeOfYear = %v, want %v", env.TimeOfYear.Rad(), tt.wantYear)
			}
			if c.Days != tt.wantDays {
				t.Errorf("Days = %d, want %d", c.Days, tt.wantDays)
			}
			if env.TimeOfDay < -math.Pi || env.TimeOfDay >= math.Pi {
				t.Errorf("TimeOfDay %v not wrapped", env.TimeOfDay)
			}
		})
	}
}

func TestAdvanceManySteps(t *testing.T) {
	c := Clock{DayLength: 10 * time.Second, Speed: 1}
	var env sun.Environment
	for range 34 * 60 {
		c.Advance(&env, 1.0/60)
	}
	if c.Days != 3 {
		t.Errorf("Days = %d after 34s of 10s days, want 3", c.Days)
	}
	// 3.4 days after noon is 21:36.
	if !scalar.EqualWithinAbs(env.TimeOfDay.Rad(), 0.8*math.Pi, 1e-6) {
		t.Errorf("TimeOfDay = %v, want 0.8π", env.TimeOfDay.Rad())
	}
}

func TestToggle(t *testing.T) {
	var c Clock
	if !c.Toggle() || !c.Paused {
		t.Error("first Toggle should pause")
	}
	if c.Toggle() || c.Paused {
		t.Error("second Toggle should resume")
	}
}

func TestPluginDrivesSun(t *testing.T) {
	app := ecs.New()
	env := sun.Environment{AxialTilt: sun.AxialTiltEarth, Latitude: sun.LatitudeNewJersey}
	if err := app.AddPlugin(sun.Plugin{Environment: &env}); err != nil {
		t.Fatal(err)
	}
	if err := app.AddPlugin(Plugin{Clock: &Clock{DayLength: 24 * time.Second, Speed: 1}}); err != nil {
		t.Fatal(err)
	}
	light := sun.SpawnLight(app.World(), ecs.DefaultDirectionalLight())

	// Two hours of simulated time.
	if err := app.Tick(2); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := env.Clock(); got != "14:00" {
		t.Errorf("Clock = %s, want 14:00", got)
	}
	tr, _ := app.World().Transform(light)
	if d := tr.Forward().Sub(env.LightDirection()).Length(); d > 1e-4 {
		t.Errorf("light forward %v lags environment %v", tr.Forward(), env.LightDirection())
	}
}

func TestSystemWithoutResources(t *testing.T) {
	w := ecs.NewWorld()
	if err := System(w, 1); err != nil {
		t.Fatal(err)
	}
	ecs.InsertResource(w, &Clock{DayLength: time.Second, Speed: 1})
	if err := System(w, 1); err != nil {
		t.Fatal(err)
	}
}

func TestPluginDefaultClock(t *testing.T) {
	app := ecs.New()
	if err := app.AddPlugin(Plugin{}); err != nil {
		t.Fatal(err)
	}
	c, ok := ecs.Resource[Clock](app.World())
	if !ok || c.Speed != 1 || c.DayLength != 0 {
		t.Errorf("default clock = %+v, %v", c, ok)
	}
}
