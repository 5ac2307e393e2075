// Package lighting derives scene lighting from the sun's position.
package lighting

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/soniakeys/unit"

	vmath "github.com/Faultbox/realsun/pkg/math"
)

// Daylight is the lighting of an outdoor scene for one sun position.
type Daylight struct {
	Sky          [3]float32 // clear color
	SunColor     [3]float32 // RGB color (0-1 range)
	SunIntensity float32    // 0 once the sun has set, 1 with the sun high
	Ambient      float32
}

var (
	skyNight    = [3]float32{0.01, 0.015, 0.04}
	skyTwilight = [3]float32{0.85, 0.45, 0.3}
	skyDay      = [3]float32{0.35, 0.6, 0.95}

	sunLow  = [3]float32{1.0, 0.45, 0.2}
	sunHigh = [3]float32{1.0, 0.97, 0.92}
)

// ForAltitude returns the lighting for a sun at the given altitude above the horizon.
func ForAltitude(altitude unit.Angle) Daylight {
	s := altitude.Sin()
	if math.IsNaN(s) {
		s = -1
	}

	day := smoothstep(0, 0.3, s)
	sky := blend(skyNight, skyTwilight, smoothstep(-0.2, 0, s))
	sky = blend(sky, skyDay, day)

	return Daylight{
		Sky:          sky,
		SunColor:     blend(sunLow, sunHigh, smoothstep(0, 0.5, s)),
		SunIntensity: float32(smoothstep(-0.02, 0.1, s)),
		Ambient:      float32(0.04 + 0.26*smoothstep(-0.2, 0.5, s)),
	}
}

// ForLight returns the lighting for a directional light shining along forward.
func ForLight(forward vmath.Vec3) Daylight {
	y := math.Max(-1, math.Min(1, float64(-forward.Normalize().Y)))
	return ForAltitude(unit.Angle(math.Asin(y)))
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := math.Max(0, math.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}

// blend mixes two colors in Lab space. The ends are returned unchanged.
func blend(a, b [3]float32, t float64) [3]float32 {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	c := rgb(a).BlendLab(rgb(b), t).Clamped()
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func rgb(c [3]float32) colorful.Color {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}
}
