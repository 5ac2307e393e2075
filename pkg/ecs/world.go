// Package ecs is a minimal entity store and frame scheduler.
//
// It stands in for a host engine: entities are plain IDs, transforms and lights
// are stored in explicit per-component maps, tags are sets of entities, and
// resources are shared values keyed by type. Nothing here is safe for
// concurrent use; a World belongs to the goroutine running the frame loop.
package ecs

import (
	"maps"
	"slices"

	"github.com/Faultbox/realsun/pkg/math"
)

// Entity identifies an entity in a World. Zero is never issued.
type Entity uint32

// Tag marks entities with no data of its own.
type Tag string

// Transform is an entity's placement in world space.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// LookTo rotates the transform so its forward axis (local -Z) points along dir.
func (t *Transform) LookTo(dir, up math.Vec3) {
	t.Rotation = math.QuatLookRotation(dir, up)
}

// Forward returns the direction the transform faces.
func (t Transform) Forward() math.Vec3 {
	return t.Rotation.Forward()
}

// Matrix returns the model matrix (translation * rotation * scale).
func (t Transform) Matrix() math.Mat4 {
	return math.TRS(t.Translation, t.Rotation, t.Scale)
}

// DirectionalLight is a light infinitely far away, shining along its
// transform's forward axis.
type DirectionalLight struct {
	Color          [3]float32 // RGB color (0-1 range)
	Illuminance    float32    // Lux
	ShadowsEnabled bool
}

// DefaultDirectionalLight returns a white light at full daylight illuminance.
func DefaultDirectionalLight() DirectionalLight {
	return DirectionalLight{
		Color:       [3]float32{1, 1, 1},
		Illuminance: 100000,
	}
}

// World stores entities, their components, tags and resources.
type World struct {
	next       Entity
	alive      map[Entity]struct{}
	transforms map[Entity]*Transform
	lights     map[Entity]*DirectionalLight
	tags       map[Tag]map[Entity]struct{}
	resources  map[resourceKey]any
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		alive:      make(map[Entity]struct{}),
		transforms: make(map[Entity]*Transform),
		lights:     make(map[Entity]*DirectionalLight),
		tags:       make(map[Tag]map[Entity]struct{}),
		resources:  make(map[resourceKey]any),
	}
}

// Spawn creates a new entity with no components.
func (w *World) Spawn() Entity {
	w.next++
	w.alive[w.next] = struct{}{}
	return w.next
}

// Despawn removes an entity with all its components and tags.
// Despawning an unknown entity does nothing.
func (w *World) Despawn(e Entity) {
	delete(w.alive, e)
	delete(w.transforms, e)
	delete(w.lights, e)
	for _, set := range w.tags {
		delete(set, e)
	}
}

// Alive reports whether e exists.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.alive)
}

// SetTransform sets or replaces the transform of e. It is ignored for dead entities.
func (w *World) SetTransform(e Entity, t Transform) {
	if !w.Alive(e) {
		return
	}
	w.transforms[e] = &t
}

// Transform returns the transform of e for in-place modification.
func (w *World) Transform(e Entity) (*Transform, bool) {
	t, ok := w.transforms[e]
	return t, ok
}

// SetDirectionalLight sets or replaces the light of e. It is ignored for dead entities.
func (w *World) SetDirectionalLight(e Entity, l DirectionalLight) {
	if !w.Alive(e) {
		return
	}
	w.lights[e] = &l
}

// DirectionalLight returns the light attached to e.
func (w *World) DirectionalLight(e Entity) (*DirectionalLight, bool) {
	l, ok := w.lights[e]
	return l, ok
}

// AddTag marks e with tag. It is ignored for dead entities.
func (w *World) AddTag(e Entity, tag Tag) {
	if !w.Alive(e) {
		return
	}
	set, ok := w.tags[tag]
	if !ok {
		set = make(map[Entity]struct{})
		w.tags[tag] = set
	}
	set[e] = struct{}{}
}

// RemoveTag clears tag from e.
func (w *World) RemoveTag(e Entity, tag Tag) {
	delete(w.tags[tag], e)
}

// HasTag reports whether e carries tag.
func (w *World) HasTag(e Entity, tag Tag) bool {
	_, ok := w.tags[tag][e]
	return ok
}

// Tagged returns the entities carrying tag in ascending order.
func (w *World) Tagged(tag Tag) []Entity {
	return slices.Sorted(maps.Keys(w.tags[tag]))
}

// EachTaggedTransform calls fn for every entity carrying both tag and a
// transform, in ascending entity order. It returns how many entities were visited.
func (w *World) EachTaggedTransform(tag Tag, fn func(Entity, *Transform)) int {
	n := 0
	for _, e := range w.Tagged(tag) {
		t, ok := w.transforms[e]
		if !ok {
			continue
		}
		fn(e, t)
		n++
	}
	return n
}

// DirectionalLights returns the entities that have a light and a transform,
// in ascending order.
func (w *World) DirectionalLights() []Entity {
	out := make([]Entity, 0, len(w.lights))
	for _, e := range slices.Sorted(maps.Keys(w.lights)) {
		if _, ok := w.transforms[e]; ok {
			out = append(out, e)
		}
	}
	return out
}
