package shadow

import (
	"github.com/Faultbox/realsun/internal/engine/mesh"
	"github.com/Faultbox/realsun/pkg/math"
	"github.com/Faultbox/realsun/pkg/sun"
)

// LightMatrix computes the view-projection of a directional light shining
// along forward that covers the whole of bounds.
func LightMatrix(forward math.Vec3, bounds mesh.Bounds) math.Mat4 {
	center := bounds.Center()
	radius := max(bounds.Radius(), 0.5)
	dir := forward.Normalize()

	// Back the eye off against the light far enough to see the entire scene
	distance := radius * 2
	eye := center.Sub(dir.Scale(distance))

	up := sun.Up
	if abs32(dir.Y) > 0.99 {
		up = sun.North
	}
	view := math.LookAt(eye, center, up)

	// Padding avoids edge artifacts
	halfSize := radius * 1.1
	far := distance + halfSize
	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)

	return proj.Mul(view)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
