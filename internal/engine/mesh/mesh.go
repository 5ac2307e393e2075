// Package mesh builds the geometry of the sun viewer scene: lit boxes and
// planes, plus colored line lists for the sky overlays.
package mesh

import vmath "github.com/Faultbox/realsun/pkg/math"

// Vertex is a lit mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// VertexStride is the size of an interleaved Vertex in bytes.
const VertexStride = 6 * 4

// Mesh holds triangle geometry ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Floats returns the vertices interleaved as position then normal.
func (m *Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*6)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
	}
	return out
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// quad appends a face from four corners wound counter-clockwise seen from the
// side the normal points to.
func (m *Mesh) quad(corners [4][3]float32, normal [3]float32) {
	base := uint32(len(m.Vertices))
	for _, c := range corners {
		m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: normal})
		m.Bounds.extend(c)
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Center returns the center point of the box.
func (b Bounds) Center() vmath.Vec3 {
	return vmath.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns the distance from the center to a corner.
func (b Bounds) Radius() float32 {
	return vmath.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]}.Sub(b.Center()).Length()
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() [8][3]float32 {
	var out [8][3]float32
	for i := range out {
		for axis := range 3 {
			if i&(1<<axis) != 0 {
				out[i][axis] = b.Max[axis]
			} else {
				out[i][axis] = b.Min[axis]
			}
		}
	}
	return out
}

// Union returns the smallest box holding both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], o.Min[i])
		b.Max[i] = max(b.Max[i], o.Max[i])
	}
	return b
}

// Transform returns the box holding b's corners transformed by m.
func (b Bounds) Transform(m vmath.Mat4) Bounds {
	out := emptyBounds()
	for _, c := range b.Corners() {
		out.extend(m.TransformPoint(c))
	}
	return out
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func (b *Bounds) extend(p [3]float32) {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Box builds an axis-aligned box centered on the origin with flat shaded faces.
func Box(sx, sy, sz float32) *Mesh {
	x, y, z := sx/2, sy/2, sz/2
	m := &Mesh{Bounds: emptyBounds()}

	// +X, -X
	m.quad([4][3]float32{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}}, [3]float32{1, 0, 0})
	m.quad([4][3]float32{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}}, [3]float32{-1, 0, 0})
	// +Y, -Y
	m.quad([4][3]float32{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}}, [3]float32{0, 1, 0})
	m.quad([4][3]float32{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}, [3]float32{0, -1, 0})
	// +Z, -Z
	m.quad([4][3]float32{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}, [3]float32{0, 0, 1})
	m.quad([4][3]float32{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}, [3]float32{0, 0, -1})

	return m
}

// Plane builds a square in the XZ plane facing +Y, split into divisions tiles
// per side. divisions below 1 are raised to 1.
func Plane(size float32, divisions int) *Mesh {
	divisions = max(divisions, 1)
	m := &Mesh{Bounds: emptyBounds()}
	tile := size / float32(divisions)
	origin := -size / 2
	up := [3]float32{0, 1, 0}

	for row := range divisions {
		for col := range divisions {
			x0 := origin + float32(col)*tile
			z0 := origin + float32(row)*tile
			x1, z1 := x0+tile, z0+tile
			m.quad([4][3]float32{{x0, 0, z1}, {x1, 0, z1}, {x1, 0, z0}, {x0, 0, z0}}, up)
		}
	}
	return m
}
