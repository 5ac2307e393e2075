package mesh

import (
	vmath "github.com/Faultbox/realsun/pkg/math"
	"github.com/Faultbox/realsun/pkg/sun"
)

// LineVertex is a vertex of a colored line list.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}

// LineStride is the size of an interleaved LineVertex in bytes.
const LineStride = 6 * 4

// Lines is a GL_LINES vertex list: every two vertices form a segment.
type Lines []LineVertex

// Segment appends one segment.
func (l Lines) Segment(a, b vmath.Vec3, color [3]float32) Lines {
	return append(l,
		LineVertex{Position: a.Array(), Color: color},
		LineVertex{Position: b.Array(), Color: color},
	)
}

// Floats returns the vertices interleaved as position then color.
func (l Lines) Floats() []float32 {
	out := make([]float32, 0, len(l)*6)
	for _, v := range l {
		out = append(out, v.Position[:]...)
		out = append(out, v.Color[:]...)
	}
	return out
}

// Segments returns the number of segments.
func (l Lines) Segments() int {
	return len(l) / 2
}

// Axis colors.
var (
	ColorEast  = [3]float32{0.9, 0.25, 0.2}
	ColorUp    = [3]float32{0.3, 0.85, 0.3}
	ColorNorth = [3]float32{0.25, 0.45, 0.95}
)

// Compass returns the east, up and north axes of the given length from the
// origin. North is drawn along -Z.
func Compass(length float32) Lines {
	var l Lines
	l = l.Segment(vmath.Vec3Zero, vmath.Vec3X.Scale(length), ColorEast)
	l = l.Segment(vmath.Vec3Zero, vmath.Vec3Y.Scale(length), ColorUp)
	l = l.Segment(vmath.Vec3Zero, sun.North.Scale(length), ColorNorth)
	return l
}

// Arc joins the samples' directions scaled by radius into a polyline. Segments
// whose ends are both above the horizon use day, the rest use night.
func Arc(samples []sun.Sample, radius float32, day, night [3]float32) Lines {
	if len(samples) < 2 {
		return nil
	}
	l := make(Lines, 0, 2*(len(samples)-1))
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		color := night
		if a.AboveHorizon() && b.AboveHorizon() {
			color = day
		}
		l = l.Segment(a.Direction.Scale(radius), b.Direction.Scale(radius), color)
	}
	return l
}

// Marker returns a small three-axis cross centered on p.
func Marker(p vmath.Vec3, size float32, color [3]float32) Lines {
	var l Lines
	for _, axis := range []vmath.Vec3{vmath.Vec3X, vmath.Vec3Y, vmath.Vec3Z} {
		d := axis.Scale(size / 2)
		l = l.Segment(p.Sub(d), p.Add(d), color)
	}
	return l
}

// Outline returns the twelve edges of a box.
func Outline(b Bounds, color [3]float32) Lines {
	c := b.Corners()
	var l Lines
	// Corner i has the max coordinate on axis k when bit k of i is set, so
	// corners one bit apart share an edge.
	for i := range c {
		for axis := range 3 {
			j := i | 1<<axis
			if j == i {
				continue
			}
			l = l.Segment(vmath.Vec3FromArray(c[i]), vmath.Vec3FromArray(c[j]), color)
		}
	}
	return l
}
