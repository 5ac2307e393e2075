package sun

import (
	"math"
	"testing"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats/scalar"

	vmath "github.com/Faultbox/realsun/pkg/math"
)

const tol = 1e-5

// A mid-latitude planet where the noon sun never reaches the zenith.
const (
	testTilt unit.Angle = 0.41
	testLat  unit.Angle = 0.52
)

func length(v vmath.Vec3) float64 {
	return math.Sqrt(float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y) + float64(v.Z)*float64(v.Z))
}

func vecNear(a, b vmath.Vec3) bool {
	return scalar.EqualWithinAbs(float64(a.X), float64(b.X), tol) &&
		scalar.EqualWithinAbs(float64(a.Y), float64(b.Y), tol) &&
		scalar.EqualWithinAbs(float64(a.Z), float64(b.Z), tol)
}

func grid(n int) []unit.Angle {
	out := make([]unit.Angle, n+1)
	for i := range out {
		out[i] = unit.Angle(-math.Pi + 2*math.Pi*float64(i)/float64(n))
	}
	return out
}

func TestDirectionUnitLength(t *testing.T) {
	tilts := []unit.Angle{0, testTilt, AxialTiltEarth, math.Pi / 2}
	lats := []unit.Angle{LatitudeSouthPole, -1, 0, testLat, LatitudeNewJersey, LatitudeNorthPole}
	for _, tilt := range tilts {
		for _, lat := range lats {
			for _, tod := range grid(24) {
				for _, toy := range grid(12) {
					d := Direction(tilt, lat, tod, toy)
					if !d.IsFinite() {
						t.Fatalf("Direction(%v, %v, %v, %v) not finite: %v", tilt, lat, tod, toy, d)
					}
					if l := length(d); !scalar.EqualWithinAbs(l, 1, tol) {
						t.Fatalf("Direction(%v, %v, %v, %v) length = %v", tilt, lat, tod, toy, l)
					}
				}
			}
		}
	}
}

func TestDirectionHighestAtNoonOfSummer(t *testing.T) {
	peak := Direction(testTilt, testLat, TimeNoon, DateSummer)
	for _, tod := range grid(48) {
		for _, toy := range grid(48) {
			d := Direction(testTilt, testLat, tod, toy)
			if d.Y > peak.Y+tol {
				t.Fatalf("tod=%v toy=%v: Y = %v above noon of summer %v", tod, toy, d.Y, peak.Y)
			}
		}
	}

	// Altitude at the peak is 90° - (latitude - declination).
	alt, _ := Horizontal(testTilt, testLat, TimeNoon, DateSummer)
	want := math.Pi/2 - (testLat - testTilt).Rad()
	if !scalar.EqualWithinAbs(alt.Rad(), want, tol) {
		t.Errorf("noon altitude = %v, want %v", alt.Rad(), want)
	}
}

func TestDirectionMorningAfternoonMirror(t *testing.T) {
	for _, tod := range grid(24) {
		for _, toy := range grid(8) {
			am := Direction(testTilt, testLat, -tod, toy)
			pm := Direction(testTilt, testLat, tod, toy)
			want := vmath.Vec3{X: -pm.X, Y: pm.Y, Z: pm.Z}
			if !vecNear(am, want) {
				t.Fatalf("tod=%v toy=%v: Direction(-tod) = %v, want %v", tod, toy, am, want)
			}
		}
	}
}

func TestDirectionYearSymmetry(t *testing.T) {
	for _, tod := range grid(12) {
		for _, toy := range grid(24) {
			a := Direction(testTilt, testLat, tod, toy)
			b := Direction(testTilt, testLat, tod, -toy)
			if !vecNear(a, b) {
				t.Fatalf("tod=%v: Direction(toy=%v) = %v, Direction(-toy) = %v", tod, toy, a, b)
			}
		}
	}
}

func TestNoonAltitudeFallsTowardWinter(t *testing.T) {
	prev := math.Inf(1)
	for i := 0; i <= 32; i++ {
		toy := unit.Angle(math.Pi * float64(i) / 32)
		alt, _ := Horizontal(testTilt, testLat, TimeNoon, toy)
		if alt.Rad() >= prev {
			t.Fatalf("toy=%v: noon altitude %v did not drop below %v", toy, alt.Rad(), prev)
		}
		prev = alt.Rad()
	}
}

func TestDirectionNearPoles(t *testing.T) {
	lats := []unit.Angle{
		LatitudeNorthPole,
		LatitudeSouthPole,
		LatitudeNorthPole - 1e-9,
		LatitudeSouthPole + 1e-9,
		LatitudeNorthPole + 1e-9,
	}
	for _, lat := range lats {
		for _, tod := range grid(12) {
			d := Direction(AxialTiltEarth, lat, tod, DateSpring)
			if !d.IsFinite() || !scalar.EqualWithinAbs(length(d), 1, tol) {
				t.Errorf("lat=%v tod=%v: got %v", lat, tod, d)
			}
		}
	}

	// At the north pole the summer sun circles at a height equal to the tilt.
	for _, tod := range grid(12) {
		alt, _ := Horizontal(AxialTiltEarth, LatitudeNorthPole, tod, DateSummer)
		if !scalar.EqualWithinAbs(alt.Rad(), AxialTiltEarth.Rad(), tol) {
			t.Errorf("pole tod=%v: altitude %v, want %v", tod, alt.Rad(), AxialTiltEarth.Rad())
		}
	}
}

func TestDirectionNonFiniteFallsBackToUp(t *testing.T) {
	d := Direction(unit.Angle(math.NaN()), testLat, 0, 0)
	if d != Up {
		t.Errorf("NaN tilt: got %v, want %v", d, Up)
	}
	d = Direction(testTilt, testLat, unit.Angle(math.Inf(1)), 0)
	if d != Up {
		t.Errorf("infinite time of day: got %v, want %v", d, Up)
	}
}

func TestDirectionWrapsTime(t *testing.T) {
	a := Direction(testTilt, testLat, 1, 2)
	b := Direction(testTilt, testLat, 1+2*math.Pi, 2-4*math.Pi)
	if !vecNear(a, b) {
		t.Errorf("got %v and %v for equivalent angles", a, b)
	}
}

func TestDirectionZenith(t *testing.T) {
	// No tilt, on the equator, at noon: straight overhead.
	d := Direction(0, LatitudeEquator, TimeNoon, DateSpring)
	if !vecNear(d, Up) {
		t.Errorf("got %v, want %v", d, Up)
	}
}

func TestDirectionCompass(t *testing.T) {
	e := Environment{AxialTilt: testTilt, Latitude: testLat}

	// Northern mid-latitude noon sun stands due south (+Z).
	noon := e.Direction()
	if !scalar.EqualWithinAbs(float64(noon.X), 0, tol) || noon.Z <= 0 {
		t.Errorf("noon direction %v, want in the south (+Z) half-plane", noon)
	}

	// Mornings are in the east, afternoons in the west.
	if d := e.WithHoursSinceNoon(-3).Direction(); d.X <= 0 {
		t.Errorf("morning direction %v, want east (+X)", d)
	}
	if d := e.WithHoursSinceNoon(3).Direction(); d.X >= 0 {
		t.Errorf("afternoon direction %v, want west (-X)", d)
	}

	// Southern hemisphere noon sun stands due north (-Z).
	south := e.WithLatitude(-testLat).Direction()
	if south.Z >= 0 {
		t.Errorf("southern noon direction %v, want in the north (-Z) half-plane", south)
	}
}

func TestHorizontalAzimuth(t *testing.T) {
	e := Environment{AxialTilt: testTilt, Latitude: testLat}

	_, az := e.Horizontal()
	if !scalar.EqualWithinAbs(math.Abs(az.Rad()), math.Pi, tol) {
		t.Errorf("noon azimuth = %v, want ±π (south)", az.Rad())
	}

	_, az = e.WithHoursSinceNoon(-4).Horizontal()
	if az <= 0 || az >= math.Pi {
		t.Errorf("morning azimuth = %v, want in (0, π)", az.Rad())
	}
}

func TestTenInTheMorning(t *testing.T) {
	e := Environment{}.
		WithAxialTilt(AxialTiltEarth).
		WithLatitude(LatitudeNewJersey).
		WithTimeOfDay(-2 * math.Pi / 12).
		WithDate(DateSummer)

	alt, _ := e.Horizontal()
	noon, _ := e.WithTimeOfDay(TimeNoon).Horizontal()
	if alt <= 0 {
		t.Errorf("10:00 altitude = %v, want above the horizon", alt.Deg())
	}
	if alt >= noon {
		t.Errorf("10:00 altitude %v not below noon %v", alt.Deg(), noon.Deg())
	}
	if got := e.Clock(); got != "10:00" {
		t.Errorf("Clock() = %q, want 10:00", got)
	}
}

func TestLightDirectionOpposesDirection(t *testing.T) {
	e := Environment{}.WithAxialTilt(AxialTiltEarth).WithLatitudeDeg(52).WithHoursSinceNoon(1.5)
	d, l := e.Direction(), e.LightDirection()
	if !vecNear(d.Add(l), vmath.Vec3Zero) {
		t.Errorf("Direction %v and LightDirection %v do not cancel", d, l)
	}
}

func TestDeclination(t *testing.T) {
	tests := []struct {
		name string
		toy  unit.Angle
		want float64
	}{
		{"summer", DateSummer, AxialTiltEarth.Rad()},
		{"winter", DateWinter, -AxialTiltEarth.Rad()},
		{"spring", DateSpring, 0},
		{"autumn", DateAutumn, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Declination(AxialTiltEarth, tt.toy)
			if !scalar.EqualWithinAbs(got.Rad(), tt.want, tol) {
				t.Errorf("Declination = %v, want %v", got.Rad(), tt.want)
			}
		})
	}
}
