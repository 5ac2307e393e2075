package sun

import (
	"math"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/realsun/pkg/math"
)

// World axes used by Direction: +Y is up, +X is east and -Z is north.
var (
	Up    = vmath.Vec3{Y: 1}
	East  = vmath.Vec3{X: 1}
	North = vmath.Vec3{Z: -1}
)

// Declination returns the elevation of the sun's daily circle above the
// celestial equator. It peaks at +tilt when timeOfYear is 0 and bottoms out at
// -tilt at ±π.
func Declination(tilt, timeOfYear unit.Angle) unit.Angle {
	return unit.Angle(tilt.Rad() * timeOfYear.Cos())
}

// local returns the sun position as a unit vector in the observer's frame:
// X east, Y north, Z up.
func local(tilt, latitude, timeOfDay, timeOfYear unit.Angle) r3.Vec {
	sδ, cδ := Declination(tilt, timeOfYear).Sincos()
	sφ, cφ := latitude.Sincos()
	sH, cH := timeOfDay.Sincos()

	return r3.Vec{
		X: -cδ * sH,
		Y: sδ*cφ - cδ*sφ*cH,
		Z: sφ*sδ + cφ*cδ*cH,
	}
}

// Horizontal returns the sun's altitude above the horizon and its azimuth,
// measured from north toward east.
//
// At the poles the azimuth is still defined: atan2 returns 0 (north) when
// both horizontal components vanish.
func Horizontal(tilt, latitude, timeOfDay, timeOfYear unit.Angle) (altitude, azimuth unit.Angle) {
	enu := local(tilt, latitude, timeOfDay, timeOfYear)
	altitude = unit.Angle(math.Asin(math.Max(-1, math.Min(1, enu.Z))))
	azimuth = unit.Angle(math.Atan2(enu.X, enu.Y))
	return altitude, azimuth
}

// Direction returns the unit vector pointing from the scene toward the sun.
// It is total: every finite input produces a finite unit vector.
func Direction(tilt, latitude, timeOfDay, timeOfYear unit.Angle) vmath.Vec3 {
	enu := local(tilt, latitude, timeOfDay, timeOfYear)
	world := r3.Vec{X: enu.X, Y: enu.Z, Z: -enu.Y}

	if n := r3.Norm(world); n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Up
	}
	world = r3.Unit(world)

	return vmath.Vec3{X: float32(world.X), Y: float32(world.Y), Z: float32(world.Z)}
}

// Direction returns the unit vector from the scene toward the sun.
func (e Environment) Direction() vmath.Vec3 {
	return Direction(e.AxialTilt, e.Latitude, e.TimeOfDay, e.TimeOfYear)
}

// LightDirection returns the direction the light travels, from the sun toward
// the scene. Directional lights point along this vector.
func (e Environment) LightDirection() vmath.Vec3 {
	return e.Direction().Neg()
}

// Horizontal returns the sun's altitude and azimuth for the environment.
func (e Environment) Horizontal() (altitude, azimuth unit.Angle) {
	return Horizontal(e.AxialTilt, e.Latitude, e.TimeOfDay, e.TimeOfYear)
}

// Declination returns the sun's declination for the environment.
func (e Environment) Declination() unit.Angle {
	return Declination(e.AxialTilt, e.TimeOfYear)
}
