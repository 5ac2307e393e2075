// Package renderer draws the sun viewer scene with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/realsun/internal/engine/lighting"
	"github.com/Faultbox/realsun/internal/engine/mesh"
	"github.com/Faultbox/realsun/internal/engine/shader"
	"github.com/Faultbox/realsun/internal/engine/shadow"
	"github.com/Faultbox/realsun/internal/logger"
	"github.com/Faultbox/realsun/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// Shadows enables the sun's shadow map of ShadowResolution texels per side.
	Shadows          bool
	ShadowResolution int32
}

// Instance is one placed, colored copy of a mesh.
type Instance struct {
	Mesh  *Mesh
	Model math.Mat4
	Color [3]float32
}

// shadowUnit is the texture unit the lit shader samples the shadow map from.
const shadowUnit = 1

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	lit   *shader.Program
	lines *shader.Program
	depth *shader.Program

	shadowMap     *shadow.Map
	shadowsActive bool
	lightViewProj math.Mat4

	// Line list buffer, refilled by every DrawLines call
	lineVAO uint32
	lineVBO uint32
	lineCap int

	view       math.Mat4
	projection math.Mat4
}

// Mesh is a mesh uploaded to the GPU.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:        cfg,
		log:           logger.Named("renderer"),
		view:          math.Identity(),
		projection:    math.Identity(),
		lightViewProj: math.Identity(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.lit, err = shader.Compile("lit", litVertexShader, litFragmentShader); err != nil {
		return nil, err
	}
	if r.lines, err = shader.Compile("line", lineVertexShader, lineFragmentShader); err != nil {
		r.lit.Delete()
		return nil, err
	}
	r.createLineBuffer()

	if cfg.Shadows {
		if err := r.createShadows(cfg.ShadowResolution); err != nil {
			// The scene still renders unshadowed.
			r.log.Warn("shadows disabled", zap.Error(err))
		}
	}

	r.log.Debug("renderer ready",
		zap.Uint32("lit", r.lit.ID),
		zap.Uint32("lines", r.lines.ID),
		zap.Bool("shadows", r.shadowMap != nil),
	)
	if r.shadowMap != nil {
		r.log.Info("shadow map ready", zap.Int32("resolution", r.shadowMap.Resolution()))
	}
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() error {
	r.log.Info("closing renderer")
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.depth != nil {
		r.depth.Delete()
	}
	r.lit.Delete()
	r.lines.Delete()
	return glError("close")
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame cleared to sky.
func (r *Renderer) Begin(sky [3]float32) {
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the frame and reports any OpenGL error raised during it.
func (r *Renderer) End() error {
	return glError("frame")
}

// SetCamera sets the view and projection used by later draws.
func (r *Renderer) SetCamera(view, projection math.Mat4) {
	r.view = view
	r.projection = projection
}

// SetLight sets the directional light of the lit shader. forward is the
// direction the light travels.
func (r *Renderer) SetLight(forward math.Vec3, d lighting.Daylight) {
	color := d.SunColor
	for i := range color {
		color[i] *= d.SunIntensity
	}
	r.lit.Use()
	r.lit.SetVec3("uLightDir", forward.Array())
	r.lit.SetVec3("uLightColor", color)
	r.lit.SetFloat("uAmbient", d.Ambient)
}

// Upload copies m to the GPU.
func (r *Renderer) Upload(m *mesh.Mesh) (*Mesh, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil, fmt.Errorf("upload: empty mesh")
	}
	vertices := m.Floats()
	g := &Mesh{count: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position (location = 0), normal (location = 1)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, mesh.VertexStride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, mesh.VertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	if err := glError("upload"); err != nil {
		r.Free(g)
		return nil, err
	}
	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.Triangles()),
	)
	return g, nil
}

// Free releases an uploaded mesh.
func (r *Renderer) Free(g *Mesh) {
	if g == nil {
		return
	}
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	*g = Mesh{}
}

// ShadowsAvailable reports whether the shadow map exists.
func (r *Renderer) ShadowsAvailable() bool {
	return r.shadowMap != nil
}

// DrawShadows renders instances into the shadow map from the light and makes
// later draws sample it. Without a shadow map it only disables shadowing.
func (r *Renderer) DrawShadows(lightViewProj math.Mat4, instances []Instance) {
	if r.shadowMap == nil {
		r.shadowsActive = false
		return
	}
	r.lightViewProj = lightViewProj
	r.shadowsActive = true

	r.shadowMap.Render(func() {
		r.depth.Use()
		r.depth.SetMat4("uLightViewProj", lightViewProj)
		for _, in := range instances {
			r.depth.SetMat4("uModel", in.Model)
			gl.BindVertexArray(in.Mesh.vao)
			gl.DrawElements(gl.TRIANGLES, in.Mesh.count, gl.UNSIGNED_INT, nil)
		}
		gl.BindVertexArray(0)
	})
}

// DisableShadows makes later draws fully lit, as when the sun is down.
func (r *Renderer) DisableShadows() {
	r.shadowsActive = false
}

// Draw draws instances with the lit shader.
func (r *Renderer) Draw(instances []Instance) {
	r.lit.Use()
	r.lit.SetMat4("uView", r.view)
	r.lit.SetMat4("uProjection", r.projection)
	r.lit.SetMat4("uLightViewProj", r.lightViewProj)
	r.lit.SetInt("uShadowMap", shadowUnit)
	if r.shadowsActive {
		r.shadowMap.Bind(shadowUnit)
		r.lit.SetInt("uShadowsEnabled", 1)
	} else {
		r.lit.SetInt("uShadowsEnabled", 0)
	}

	for _, in := range instances {
		r.lit.SetMat4("uModel", in.Model)
		r.lit.SetVec3("uColor", in.Color)
		gl.BindVertexArray(in.Mesh.vao)
		gl.DrawElements(gl.TRIANGLES, in.Mesh.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// DrawLines draws a line list, unlit.
func (r *Renderer) DrawLines(l mesh.Lines) {
	if len(l) < 2 {
		return
	}
	data := l.Floats()

	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(data) > r.lineCap {
		r.lineCap = len(data)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.lines.Use()
	r.lines.SetMat4("uView", r.view)
	r.lines.SetMat4("uProjection", r.projection)

	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(l)))
	gl.BindVertexArray(0)
}

// ReadPixels reads the frame drawn so far as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	if width <= 0 || height <= 0 {
		return nil, 0, 0
	}
	pixels = make([]byte, width*height*4)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

func (r *Renderer) createShadows(resolution int32) error {
	depth, err := shader.Compile("depth", depthVertexShader, depthFragmentShader)
	if err != nil {
		return err
	}
	sm, err := shadow.NewMap(resolution)
	if err != nil {
		depth.Delete()
		return err
	}
	r.depth, r.shadowMap = depth, sm
	return nil
}

func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	// Position (location = 0), color (location = 1)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, mesh.LineStride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, mesh.LineStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// glError drains the OpenGL error queue into one error.
func glError(op string) error {
	var err error
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		err = multierr.Append(err, fmt.Errorf("%s: OpenGL error 0x%04x", op, code))
	}
	return err
}
