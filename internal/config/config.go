// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/unit"
	"go.uber.org/multierr"

	"github.com/Faultbox/realsun/pkg/sun"
)

// Config holds all settings.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Cycle       CycleConfig       `yaml:"cycle"`
	Controls    ControlsConfig    `yaml:"controls"`
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Logging     LoggingConfig     `yaml:"logging"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// EnvironmentConfig describes the starting sun environment in human units.
type EnvironmentConfig struct {
	LatitudeDeg    float64 `yaml:"latitude_deg"`
	AxialTiltDeg   float64 `yaml:"axial_tilt_deg"`
	HoursSinceNoon float64 `yaml:"hours_since_noon"`
	Season         string  `yaml:"season"` // summer, spring, autumn or winter; overrides TimeOfYearDeg
	TimeOfYearDeg  float64 `yaml:"time_of_year_deg"`
}

// CycleConfig controls how fast simulated time passes.
type CycleConfig struct {
	DayLength  time.Duration `yaml:"day_length"`  // 0 stops the clock
	YearLength time.Duration `yaml:"year_length"` // 0 freezes the seasons
	Paused     bool          `yaml:"paused"`
}

// ControlsConfig holds keyboard adjustment speeds in radians per second.
type ControlsConfig struct {
	NormalSpeed float64 `yaml:"normal_speed"`
	SlowSpeed   float64 `yaml:"slow_speed"`
	FastSpeed   float64 `yaml:"fast_speed"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Samples    int  `yaml:"samples"` // MSAA samples, 0 disables
	Shadows    bool `yaml:"shadows"`
	// ShadowResolution is the shadow map size in texels per side.
	ShadowResolution int `yaml:"shadow_resolution"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Environment: EnvironmentConfig{
			LatitudeDeg:    sun.LatitudeNewJersey.Deg(),
			AxialTiltDeg:   sun.AxialTiltEarth.Deg(),
			HoursSinceNoon: -2,
		},
		Cycle: CycleConfig{
			DayLength: 20 * time.Second,
		},
		Controls: ControlsConfig{
			NormalSpeed: 0.4,
			SlowSpeed:   0.05,
			FastSpeed:   2.0,
		},
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			Samples:          4,
			Shadows:          true,
			ShadowResolution: 2048,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

var seasons = map[string]unit.Angle{
	"summer": sun.DateSummer,
	"spring": sun.DateSpring,
	"autumn": sun.DateAutumn,
	"fall":   sun.DateAutumn,
	"winter": sun.DateWinter,
}

// Build converts the configuration into a sun.Environment.
func (c EnvironmentConfig) Build() (sun.Environment, error) {
	if math.IsNaN(c.LatitudeDeg) || math.Abs(c.LatitudeDeg) > 90 {
		return sun.Environment{}, fmt.Errorf("latitude %v out of range [-90, 90]", c.LatitudeDeg)
	}
	if math.IsNaN(c.AxialTiltDeg) || math.Abs(c.AxialTiltDeg) > 90 {
		return sun.Environment{}, fmt.Errorf("axial tilt %v out of range [-90, 90]", c.AxialTiltDeg)
	}

	env := sun.Environment{}.
		WithLatitudeDeg(c.LatitudeDeg).
		WithAxialTiltDeg(c.AxialTiltDeg).
		WithHoursSinceNoon(c.HoursSinceNoon).
		WithTimeOfYear(unit.AngleFromDeg(c.TimeOfYearDeg))

	if c.Season != "" {
		date, ok := seasons[strings.ToLower(c.Season)]
		if !ok {
			return sun.Environment{}, fmt.Errorf("unknown season %q", c.Season)
		}
		env = env.WithDate(date)
	}
	return env.Wrapped(), nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Environment.Build(); err != nil {
		errs = append(errs, fmt.Errorf("environment: %w", err))
	}
	if c.Cycle.DayLength < 0 {
		errs = append(errs, fmt.Errorf("cycle: negative day_length %v", c.Cycle.DayLength))
	}
	if c.Cycle.YearLength < 0 {
		errs = append(errs, fmt.Errorf("cycle: negative year_length %v", c.Cycle.YearLength))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.Samples < 0 || c.Graphics.Samples > 16 {
		errs = append(errs, fmt.Errorf("graphics: samples %d outside 0..16", c.Graphics.Samples))
	}
	if c.Graphics.Shadows && c.Graphics.ShadowResolution < 0 {
		errs = append(errs, fmt.Errorf("graphics: negative shadow_resolution %d", c.Graphics.ShadowResolution))
	}
	return multierr.Combine(errs...)
}
