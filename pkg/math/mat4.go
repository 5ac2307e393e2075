package math

import "math"

// Mat4 is a 4x4 matrix stored column by column, the layout GL uniforms expect.
// Element (row r, column c) lives at index c*4+r.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Translate returns a matrix that moves points by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a matrix that scales each axis independently.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// TRS composes translation * rotation * scale without intermediate products.
func TRS(translation Vec3, rotation Quat, scale Vec3) Mat4 {
	m := rotation.ToMat4()
	for i, s := range [3]float32{scale.X, scale.Y, scale.Z} {
		m[i*4] *= s
		m[i*4+1] *= s
		m[i*4+2] *= s
	}
	m[12], m[13], m[14] = translation.X, translation.Y, translation.Z
	return m
}

// Perspective returns a right-handed projection with a vertical field of view
// fovY in radians, mapping depth [near, far] to [-1, 1].
func Perspective(fovY, aspect, near, far float32) Mat4 {
	focal := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far

	var m Mat4
	m[0] = focal / aspect
	m[5] = focal
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// Ortho returns an orthographic projection of the box bounded by the six
// planes. The camera looks down -Z, so near and far are distances.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	width, height, depth := right-left, top-bottom, far-near

	m := Identity()
	m[0] = 2 / width
	m[5] = 2 / height
	m[10] = -2 / depth
	m[12] = -(right + left) / width
	m[13] = -(top + bottom) / height
	m[14] = -(far + near) / depth
	return m
}

// LookAt returns a view matrix for an eye at eye facing center.
func LookAt(eye, center, up Vec3) Mat4 {
	back := eye.Sub(center).Normalize()
	right := up.Cross(back).Normalize()
	trueUp := back.Cross(right)

	return Mat4{
		right.X, trueUp.X, back.X, 0,
		right.Y, trueUp.Y, back.Y, 0,
		right.Z, trueUp.Z, back.Z, 0,
		-right.Dot(eye), -trueUp.Dot(eye), -back.Dot(eye), 1,
	}
}

// Mul returns m * other, so other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := range 4 {
		for r := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+r] * other[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// TransformPoint applies m to p with w = 1, dividing by the resulting w when it
// is not 1.
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	var out [4]float32
	for r := range 4 {
		out[r] = m[r]*p[0] + m[4+r]*p[1] + m[8+r]*p[2] + m[12+r]
	}
	if w := out[3]; w != 0 && w != 1 {
		return [3]float32{out[0] / w, out[1] / w, out[2] / w}
	}
	return [3]float32{out[0], out[1], out[2]}
}

// TransformDir applies m to d with w = 0, ignoring translation.
func (m Mat4) TransformDir(d Vec3) Vec3 {
	return Vec3{
		X: m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		Y: m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		Z: m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Ptr returns a pointer to the first element for gl.UniformMatrix4fv.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
