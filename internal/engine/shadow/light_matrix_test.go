package shadow

import (
	"testing"

	"github.com/Faultbox/realsun/internal/engine/mesh"
	"github.com/Faultbox/realsun/pkg/math"
	"github.com/Faultbox/realsun/pkg/sun"
)

func TestLightMatrixCoversBounds(t *testing.T) {
	bounds := mesh.Bounds{Min: [3]float32{-8, 0, -8}, Max: [3]float32{8, 3, 8}}

	env := sun.Environment{}.
		WithAxialTilt(sun.AxialTiltEarth).
		WithLatitude(sun.LatitudeNewJersey)

	tests := []struct {
		name    string
		forward math.Vec3
	}{
		{"morning", env.WithHoursSinceNoon(-4).LightDirection()},
		{"noon", env.LightDirection()},
		{"straight down", math.Vec3{Y: -1}},
		{"grazing", math.Vec3{X: 1, Y: -0.01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LightMatrix(tt.forward, bounds)

			c := m.TransformPoint(bounds.Center().Array())
			if abs32(c[0]) > 1e-4 || abs32(c[1]) > 1e-4 {
				t.Errorf("center maps to %v, want the middle of the map", c)
			}
			for _, corner := range bounds.Corners() {
				p := m.TransformPoint(corner)
				for i := range 3 {
					if p[i] < -1 || p[i] > 1 {
						t.Fatalf("corner %v maps to %v, outside the shadow map", corner, p)
					}
				}
			}
		})
	}
}

func TestLightMatrixDepthOrder(t *testing.T) {
	bounds := mesh.Bounds{Min: [3]float32{-1, 0, -1}, Max: [3]float32{1, 2, 1}}
	m := LightMatrix(math.Vec3{Y: -1}, bounds)

	top := m.TransformPoint([3]float32{0, 2, 0})
	bottom := m.TransformPoint([3]float32{0, 0, 0})
	if top[2] >= bottom[2] {
		t.Errorf("top depth %v not nearer than bottom %v", top[2], bottom[2])
	}
}
