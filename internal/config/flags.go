package config

import (
	"flag"
	"strconv"
)

// optionalFloat is a float flag that remembers whether it was given,
// so that 0 can be passed explicitly.
type optionalFloat struct {
	value float64
	set   bool
}

func (f *optionalFloat) String() string {
	if !f.set {
		return ""
	}
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLatitude   optionalFloat
	flagTilt       optionalFloat
	flagHour       optionalFloat
	flagSeason     = flag.String("season", "", "Season: summer, spring, autumn or winter")
	flagDayLength  = flag.Duration("day-length", 0, "Real time for one simulated day")
	flagPaused     = flag.Bool("paused", false, "Start with the clock stopped")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

func init() {
	flag.Var(&flagLatitude, "latitude", "Observer latitude in degrees")
	flag.Var(&flagTilt, "tilt", "Axial tilt in degrees")
	flag.Var(&flagHour, "hour", "Solar time in hours since noon (-2 is 10:00)")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagLatitude.set {
		cfg.Environment.LatitudeDeg = flagLatitude.value
	}
	if flagTilt.set {
		cfg.Environment.AxialTiltDeg = flagTilt.value
	}
	if flagHour.set {
		cfg.Environment.HoursSinceNoon = flagHour.value
	}
	if *flagSeason != "" {
		cfg.Environment.Season = *flagSeason
	}
	if *flagDayLength > 0 {
		cfg.Cycle.DayLength = *flagDayLength
	}
	if *flagPaused {
		cfg.Cycle.Paused = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
