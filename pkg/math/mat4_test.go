package math

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func near3(a, b [3]float32, tol float64) bool {
	for i := range 3 {
		if !scalar.EqualWithinAbs(float64(a[i]), float64(b[i]), tol) {
			return false
		}
	}
	return true
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   [3]float32
		want [3]float32
	}{
		{"identity", Identity(), [3]float32{1, 2, 3}, [3]float32{1, 2, 3}},
		{"translate", Translate(10, 20, 30), [3]float32{1, 2, 3}, [3]float32{11, 22, 33}},
		{"scale", Scale(2, 3, 4), [3]float32{1, 1, 1}, [3]float32{2, 3, 4}},
		{"scale then translate", Translate(1, 0, 0).Mul(Scale(2, 2, 2)), [3]float32{1, 1, 1}, [3]float32{3, 2, 2}},
		{"translate then scale", Scale(2, 2, 2).Mul(Translate(1, 0, 0)), [3]float32{1, 1, 1}, [3]float32{4, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.in); got != tt.want {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Scale(4, 5, 6))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M = %v, want %v", got, m)
	}
}

func TestTRS(t *testing.T) {
	q := QuatFromAxisAngle(Vec3Y, float32(math.Pi/3))
	pos := Vec3{X: 1, Y: -2, Z: 5}
	size := Vec3{X: 2, Y: 0.5, Z: 3}

	want := Translate(pos.X, pos.Y, pos.Z).Mul(q.ToMat4()).Mul(Scale(size.X, size.Y, size.Z))
	got := TRS(pos, q, size)
	for i := range got {
		if !scalar.EqualWithinAbs(float64(got[i]), float64(want[i]), 1e-6) {
			t.Fatalf("TRS element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTransformDirIgnoresTranslation(t *testing.T) {
	m := Translate(100, 100, 100).Mul(Scale(2, 1, 1))
	if got := m.TransformDir(Vec3{X: 1, Y: 1}); got != (Vec3{X: 2, Y: 1}) {
		t.Errorf("TransformDir = %v, want (2, 1, 0)", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/2), 2, 1, 10)

	tests := []struct {
		name string
		in   [3]float32
		want [3]float32
	}{
		{"near center", [3]float32{0, 0, -1}, [3]float32{0, 0, -1}},
		{"far center", [3]float32{0, 0, -10}, [3]float32{0, 0, 1}},
		// 90° vertical fov: at distance d the top edge is y = d; aspect 2 doubles x.
		{"top right near", [3]float32{2, 1, -1}, [3]float32{1, 1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.TransformPoint(tt.in); !near3(got, tt.want, 1e-5) {
				t.Errorf("Perspective * %v = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(-2, 2, -1, 1, 1, 11)

	tests := []struct {
		in, want [3]float32
	}{
		{[3]float32{2, 1, -1}, [3]float32{1, 1, -1}},
		{[3]float32{-2, -1, -11}, [3]float32{-1, -1, 1}},
		{[3]float32{0, 0, -6}, [3]float32{0, 0, 0}},
	}
	for _, tt := range tests {
		if got := m.TransformPoint(tt.in); !near3(got, tt.want, 1e-6) {
			t.Errorf("Ortho * %v = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLookAt(t *testing.T) {
	tests := []struct {
		name        string
		eye, center Vec3
		up          Vec3
	}{
		{"from south", Vec3{Z: 5}, Vec3{}, Vec3Y},
		{"from above east", Vec3{X: 4, Y: 3}, Vec3{}, Vec3Y},
		{"straight down", Vec3{Y: 6}, Vec3{}, Vec3{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LookAt(tt.eye, tt.center, tt.up)
			dist := tt.center.Sub(tt.eye).Length()

			// The target lands straight ahead on view-space -Z.
			got := m.TransformPoint(tt.center.Array())
			if !near3(got, [3]float32{0, 0, -dist}, 1e-5) {
				t.Errorf("center in view space = %v, want (0, 0, %v)", got, -dist)
			}
			if eye := m.TransformPoint(tt.eye.Array()); !near3(eye, [3]float32{}, 1e-5) {
				t.Errorf("eye in view space = %v, want origin", eye)
			}
		})
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3Y, float32(math.Pi/3)).Mul(QuatFromAxisAngle(Vec3X, 0.4))
	m := q.ToMat4()

	for _, v := range []Vec3{Vec3X, Vec3Y, Vec3Z, {X: 0.3, Y: -0.2, Z: 0.9}} {
		want := q.Rotate(v)
		if got := m.TransformDir(v); got.Sub(want).Length() > 0.001 {
			t.Errorf("ToMat4 * %v = %v, Rotate = %v", v, got, want)
		}
	}
}
