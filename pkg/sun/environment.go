// Package sun drives directional "sun" lights from abstract astronomical parameters.
//
// An Environment holds four angles: the planet's axial tilt, the observer's latitude,
// the time of day and the time of year. Direction maps them to a unit vector pointing
// from the scene toward the sun, and Update writes the matching orientation into every
// light tagged with Tag once per tick.
//
// The model is deliberately simple. It is not an ephemeris and it does not keep time;
// it only turns the angles it is given into a direction.
package sun

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"
)

// Environment holds the values that control the sun direction.
//
// All fields are angles in radians. Builders ending in Deg or Hours convert from
// the more common units. The zero value is the equator at noon on the summer solstice
// of a planet with no tilt.
type Environment struct {
	// AxialTilt of the simulated planet.
	AxialTilt unit.Angle `yaml:"axial_tilt"`

	// Latitude of the observer. The equator is 0, the north pole π/2 and the south
	// pole -π/2. In the southern hemisphere TimeOfYear reads inverted: 0 is the
	// lowest arc of the year there.
	Latitude unit.Angle `yaml:"latitude"`

	// TimeOfDay is the rotation away from local solar noon. Noon is 0 and midnight
	// is ±π. Larger values are later. Values outside [-π, π] wrap around.
	TimeOfDay unit.Angle `yaml:"time_of_day"`

	// TimeOfYear is the orbital phase. The summer solstice is 0 and the winter
	// solstice is ±π. Values outside [-π, π] wrap around.
	TimeOfYear unit.Angle `yaml:"time_of_year"`
}

// Presets.
const (
	// AxialTiltEarth is Earth's axial tilt (23.439281°).
	AxialTiltEarth unit.Angle = 23.439281 * math.Pi / 180

	TimeMidnight unit.Angle = -math.Pi
	TimeNoon     unit.Angle = 0

	// LatitudeNewJersey is a location in New Jersey (40.82706° N).
	LatitudeNewJersey unit.Angle = 40.82706 * math.Pi / 180
	LatitudeEquator   unit.Angle = 0
	LatitudeNorthPole unit.Angle = math.Pi / 2
	LatitudeSouthPole unit.Angle = -math.Pi / 2

	// DateWinter is the winter solstice, when the sun is lowest in the sky.
	DateWinter unit.Angle = -math.Pi
	// DateSpring is halfway between the winter and summer solstices.
	DateSpring unit.Angle = -math.Pi / 2
	// DateSummer is the summer solstice, when the sun is highest in the sky.
	DateSummer unit.Angle = 0
	// DateAutumn is halfway between the summer and winter solstices.
	DateAutumn unit.Angle = math.Pi / 2
)

// WithAxialTilt sets the axial tilt in radians.
func (e Environment) WithAxialTilt(tilt unit.Angle) Environment {
	e.AxialTilt = tilt
	return e
}

// WithAxialTiltDeg sets the axial tilt in degrees.
// Do not pass the presets here, they are already in radians.
func (e Environment) WithAxialTiltDeg(deg float64) Environment {
	return e.WithAxialTilt(unit.AngleFromDeg(deg))
}

// WithLatitude sets the latitude in radians.
func (e Environment) WithLatitude(lat unit.Angle) Environment {
	e.Latitude = lat
	return e
}

// WithLatitudeDeg sets the latitude in degrees.
func (e Environment) WithLatitudeDeg(deg float64) Environment {
	return e.WithLatitude(unit.AngleFromDeg(deg))
}

// WithTimeOfDay sets the solar time of day in radians (0 is noon, ±π midnight).
func (e Environment) WithTimeOfDay(t unit.Angle) Environment {
	e.TimeOfDay = t
	return e
}

// WithHoursSinceNoon sets the solar time of day in hours relative to noon.
// -2 is 10 AM, 3.5 is half past three in the afternoon.
func (e Environment) WithHoursSinceNoon(hours float64) Environment {
	return e.WithTimeOfDay(unit.HourAngleFromHour(hours).Angle())
}

// WithTimeOfYear sets the time of year in radians (0 is the summer solstice).
func (e Environment) WithTimeOfYear(t unit.Angle) Environment {
	e.TimeOfYear = t
	return e
}

// WithDate is WithTimeOfYear, named for use with the Date presets.
func (e Environment) WithDate(date unit.Angle) Environment {
	return e.WithTimeOfYear(date)
}

// Wrapped returns a copy with both time angles wrapped into [-π, π) and
// latitude and tilt clamped to [-π/2, π/2].
func (e Environment) Wrapped() Environment {
	e.TimeOfDay = WrapAngle(e.TimeOfDay)
	e.TimeOfYear = WrapAngle(e.TimeOfYear)
	e.Latitude = clampAngle(e.Latitude, -math.Pi/2, math.Pi/2)
	e.AxialTilt = clampAngle(e.AxialTilt, -math.Pi/2, math.Pi/2)
	return e
}

// SolarClock returns the local solar time as a 24h clock, noon being 12:00.
func (e Environment) SolarClock() (hour, minute int) {
	hours := unit.HourAngle(WrapAngle(e.TimeOfDay)).Hour() + 12
	total := int(math.Round(hours*60)) % (24 * 60)
	return total / 60, total % 60
}

// Clock formats SolarClock as HH:MM.
func (e Environment) Clock() string {
	h, m := e.SolarClock()
	return fmt.Sprintf("%02d:%02d", h, m)
}

// String implements fmt.Stringer.
func (e Environment) String() string {
	return fmt.Sprintf("tilt=%.2f° lat=%.2f° day=%s year=%.3frad",
		e.AxialTilt.Deg(), e.Latitude.Deg(), e.Clock(), e.TimeOfYear.Rad())
}

// WrapAngle wraps a into [-π, π).
func WrapAngle(a unit.Angle) unit.Angle {
	return unit.Angle(unit.PMod(a.Rad()+math.Pi, 2*math.Pi) - math.Pi)
}

func clampAngle(a unit.Angle, lo, hi float64) unit.Angle {
	return unit.Angle(math.Max(lo, math.Min(hi, a.Rad())))
}
