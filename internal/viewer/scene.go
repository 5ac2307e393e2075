package viewer

import (
	"fmt"

	"github.com/Faultbox/realsun/internal/cycle"
	"github.com/Faultbox/realsun/internal/engine/mesh"
	"github.com/Faultbox/realsun/pkg/ecs"
	vmath "github.com/Faultbox/realsun/pkg/math"
	"github.com/Faultbox/realsun/pkg/sun"
)

// PropTag marks the lit objects of the scene.
const PropTag ecs.Tag = "prop"

// Shape selects the mesh a prop is drawn with.
type Shape int

const (
	ShapeGround Shape = iota
	ShapeBox
)

// Prop is a lit object of the scene.
type Prop struct {
	Entity ecs.Entity
	Shape  Shape
	Color  [3]float32
}

// Scene is the content of the viewer's world.
type Scene struct {
	Light ecs.Entity
	Props []Prop
}

// Scene layout.
const (
	GroundSize = 16
	ArcRadius  = 7
	ArcSamples = 97
)

var (
	colorGround = [3]float32{0.45, 0.5, 0.38}
	colorArcDay = [3]float32{1.0, 0.85, 0.3}
	colorArcOff = [3]float32{0.35, 0.35, 0.45}
	colorSun    = [3]float32{1.0, 0.95, 0.6}
	colorBounds = [3]float32{0.9, 0.2, 0.9}
)

// Populate spawns the sun light, the ground and three boxes into w.
func Populate(w *ecs.World) *Scene {
	light := ecs.DefaultDirectionalLight()
	light.ShadowsEnabled = true
	s := &Scene{Light: sun.SpawnLight(w, light)}

	s.add(w, ShapeGround, vmath.Vec3{}, vmath.Vec3{X: 1, Y: 1, Z: 1}, colorGround)

	boxes := []struct {
		pos, size vmath.Vec3
		color     [3]float32
	}{
		// Tall tower at the center casts the clearest shading changes.
		{vmath.Vec3{Y: 1.5}, vmath.Vec3{X: 1, Y: 3, Z: 1}, [3]float32{0.85, 0.82, 0.78}},
		{vmath.Vec3{X: 2.5, Y: 0.5, Z: 1.5}, vmath.Vec3{X: 1, Y: 1, Z: 1}, [3]float32{0.8, 0.3, 0.25}},
		{vmath.Vec3{X: -2, Y: 0.75, Z: -2}, vmath.Vec3{X: 2, Y: 1.5, Z: 1}, [3]float32{0.25, 0.4, 0.8}},
	}
	for _, b := range boxes {
		s.add(w, ShapeBox, b.pos, b.size, b.color)
	}
	return s
}

func (s *Scene) add(w *ecs.World, shape Shape, pos, scale vmath.Vec3, color [3]float32) {
	e := w.Spawn()
	t := ecs.NewTransform()
	t.Translation = pos
	t.Scale = scale
	w.SetTransform(e, t)
	w.AddTag(e, PropTag)
	s.Props = append(s.Props, Prop{Entity: e, Shape: shape, Color: color})
}

// LightForward returns the forward axis of the scene's sun light.
func (s *Scene) LightForward(w *ecs.World) (vmath.Vec3, bool) {
	t, ok := w.Transform(s.Light)
	if !ok {
		return vmath.Vec3{}, false
	}
	return t.Forward(), true
}

// CastsShadows reports whether the sun light wants shadows and is above the
// horizon.
func (s *Scene) CastsShadows(w *ecs.World) bool {
	light, ok := w.DirectionalLight(s.Light)
	if !ok || !light.ShadowsEnabled {
		return false
	}
	fwd, ok := s.LightForward(w)
	return ok && fwd.Y < 0
}

// Bounds returns the box holding every prop, given each shape's mesh bounds.
func (s *Scene) Bounds(w *ecs.World, shapes map[Shape]mesh.Bounds) mesh.Bounds {
	var out mesh.Bounds
	first := true
	for _, p := range s.Props {
		t, ok := w.Transform(p.Entity)
		if !ok {
			continue
		}
		b := shapes[p.Shape].Transform(t.Matrix())
		if first {
			out, first = b, false
			continue
		}
		out = out.Union(b)
	}
	return out
}

// Overlay returns the line geometry drawn over the scene for env: the compass,
// the day's arc and a marker where the sun is.
func Overlay(env sun.Environment) mesh.Lines {
	l := mesh.Compass(2)
	l = append(l, mesh.Arc(sun.Path(env, ArcSamples), ArcRadius, colorArcDay, colorArcOff)...)
	l = append(l, mesh.Marker(env.Direction().Scale(ArcRadius), 0.6, colorSun)...)
	return l
}

// Title formats the window title for env and the clock.
func Title(env sun.Environment, clock *cycle.Clock) string {
	alt, _ := env.Horizontal()
	title := fmt.Sprintf("Real Sun | %s | lat %.1f° | tilt %.1f° | alt %.1f°",
		env.Clock(), env.Latitude.Deg(), env.AxialTilt.Deg(), alt.Deg())
	if clock != nil && clock.Paused {
		title += " | paused"
	}
	return title
}
