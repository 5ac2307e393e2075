package sun

import (
	"math"

	"github.com/soniakeys/unit"

	vmath "github.com/Faultbox/realsun/pkg/math"
)

// Sample is one point of the sun's arc across the sky.
type Sample struct {
	TimeOfDay  unit.Angle
	TimeOfYear unit.Angle
	Altitude   unit.Angle
	Azimuth    unit.Angle
	Direction  vmath.Vec3
}

// AboveHorizon reports whether the sun is up at this sample.
func (s Sample) AboveHorizon() bool {
	return s.Altitude > 0
}

// sample evaluates the environment as is.
func sample(e Environment) Sample {
	alt, az := e.Horizontal()
	return Sample{
		TimeOfDay:  e.TimeOfDay,
		TimeOfYear: e.TimeOfYear,
		Altitude:   alt,
		Azimuth:    az,
		Direction:  e.Direction(),
	}
}

// Noon returns the sample at local solar noon of the environment's day.
func Noon(e Environment) Sample {
	return sample(e.WithTimeOfDay(TimeNoon))
}

// Path samples the arc of the environment's day from midnight to midnight.
// TimeOfDay of e is ignored. samples below 2 are raised to 2.
func Path(e Environment, samples int) []Sample {
	if samples < 2 {
		samples = 2
	}
	out := make([]Sample, samples)
	step := 2 * math.Pi / float64(samples-1)
	for i := range out {
		t := unit.Angle(-math.Pi + step*float64(i))
		out[i] = sample(e.WithTimeOfDay(t))
	}
	return out
}

// YearPaths samples days evenly spaced arcs from the summer solstice through the
// winter solstice and back, each with the given number of samples.
func YearPaths(e Environment, days, samples int) [][]Sample {
	if days < 1 {
		days = 1
	}
	out := make([][]Sample, days)
	step := 2 * math.Pi / float64(days)
	for i := range out {
		out[i] = Path(e.WithTimeOfYear(WrapAngle(unit.Angle(step*float64(i)))), samples)
	}
	return out
}

// DaylightHours returns how long the sun stays above the horizon on the
// environment's day. It is 0 during polar night and 24 under the midnight sun.
func DaylightHours(e Environment) float64 {
	δ := e.Declination()
	cosH0 := -e.Latitude.Tan() * δ.Tan()
	switch {
	case math.IsNaN(cosH0):
		// non-finite input
		return 12
	case cosH0 <= -1:
		return 24
	case cosH0 >= 1:
		return 0
	}
	return 2 * unit.HourAngle(math.Acos(cosH0)).Hour()
}
