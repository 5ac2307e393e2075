package sun

import (
	"go.uber.org/zap"

	"github.com/Faultbox/realsun/pkg/ecs"
	vmath "github.com/Faultbox/realsun/pkg/math"
)

// Tag marks the lights driven by the Environment. Any entity with a transform
// works, but it is meant for directional lights.
const Tag ecs.Tag = "sun"

// verticalLimit is how close to straight up or down the light may get before the
// preferred up axis switches from +Y to north.
const verticalLimit = 0.99

// Orientation returns the rotation that points a light's forward axis along
// the environment's light direction.
func Orientation(e Environment) vmath.Quat {
	dir := e.LightDirection()
	up := Up
	if dir.Y > verticalLimit || dir.Y < -verticalLimit {
		up = North
	}
	return vmath.QuatLookRotation(dir, up)
}

// Update points every sun-tagged transform in w along env's light direction.
// It returns the number of transforms written. A nil env or a world without
// tagged transforms is a no-op.
func Update(w *ecs.World, env *Environment) int {
	if w == nil || env == nil {
		return 0
	}
	rot := Orientation(*env)
	return w.EachTaggedTransform(Tag, func(_ ecs.Entity, t *ecs.Transform) {
		t.Rotation = rot
	})
}

// System is Update in scheduler form: it reads the *Environment resource of w.
func System(w *ecs.World, _ float64) error {
	env, ok := ecs.Resource[Environment](w)
	if !ok {
		return nil
	}
	Update(w, env)
	return nil
}

// Attach tags e as a sun, giving it an identity transform if it has none.
func Attach(w *ecs.World, e ecs.Entity) {
	if _, ok := w.Transform(e); !ok {
		w.SetTransform(e, ecs.NewTransform())
	}
	w.AddTag(e, Tag)
}

// SpawnLight spawns a directional light tagged as a sun.
func SpawnLight(w *ecs.World, light ecs.DirectionalLight) ecs.Entity {
	e := w.Spawn()
	w.SetTransform(e, ecs.NewTransform())
	w.SetDirectionalLight(e, light)
	w.AddTag(e, Tag)
	return e
}

// Plugin registers System in the post-update stage, after game logic has had a
// chance to change the Environment and before rendering.
//
// If the world has no Environment yet, Plugin inserts Environment (or the zero
// value when it is nil). An Environment inserted later replaces it.
type Plugin struct {
	Environment *Environment
}

// Build implements ecs.Plugin.
func (p Plugin) Build(app *ecs.App) error {
	env := p.Environment
	if env == nil {
		env = &Environment{}
	}
	env = ecs.InitResource(app.World(), env)
	app.AddSystem(ecs.StagePostUpdate, "sun", System)

	d := env.Direction()
	app.Logger().Info("sun plugin ready",
		zap.Stringer("environment", env),
		zap.Float32s("direction", []float32{d.X, d.Y, d.Z}))
	return nil
}
