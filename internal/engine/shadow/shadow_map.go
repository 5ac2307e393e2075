// Package shadow renders the sun light's shadow map.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultResolution is the shadow map size used when none is configured.
const DefaultResolution = 2048

// Map is a square depth texture the scene is drawn into from the sun.
type Map struct {
	fbo        uint32
	depth      uint32
	resolution int32
}

// NewMap creates a shadow map. A resolution of 0 or less picks
// DefaultResolution.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	m := &Map{resolution: resolution}

	gl.GenTextures(1, &m.depth)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, resolution, resolution, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	params := [][2]int32{
		{gl.TEXTURE_MIN_FILTER, gl.LINEAR},
		{gl.TEXTURE_MAG_FILTER, gl.LINEAR},
		// Samples past the edge read the border and count as lit.
		{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER},
		{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER},
		// Depth comparison in hardware for sampler2DShadow.
		{gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE},
		{gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL},
	}
	for _, p := range params {
		gl.TexParameteri(gl.TEXTURE_2D, uint32(p[0]), p[1])
	}
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &m.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, m.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		m.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%04x", status)
	}
	return m, nil
}

// Resolution returns the side of the map in texels.
func (m *Map) Resolution() int32 {
	return m.resolution
}

// Render runs draw with the map as the target. The map is cleared first and
// front faces are culled so lit surfaces do not shadow themselves. The
// previous viewport and culling are restored afterwards.
func (m *Map) Render(draw func()) {
	var viewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &viewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.Viewport(0, 0, m.resolution, m.resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.CullFace(gl.FRONT)

	draw()

	gl.CullFace(gl.BACK)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(viewport[0], viewport[1], viewport[2], viewport[3])
}

// Bind makes the depth texture current on texture unit gl.TEXTURE0+unit.
func (m *Map) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
}

// Destroy releases the texture and framebuffer. It is safe to call twice.
func (m *Map) Destroy() {
	if m.fbo != 0 {
		gl.DeleteFramebuffers(1, &m.fbo)
		m.fbo = 0
	}
	if m.depth != 0 {
		gl.DeleteTextures(1, &m.depth)
		m.depth = 0
	}
}
