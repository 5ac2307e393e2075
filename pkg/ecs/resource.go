package ecs

import "reflect"

type resourceKey = reflect.Type

// InsertResource stores r as the World's single shared value of type T,
// replacing any previous one.
func InsertResource[T any](w *World, r *T) {
	w.resources[reflect.TypeFor[T]()] = r
}

// InitResource stores r unless a resource of type T is already present.
// It returns the resource that ends up in the world.
func InitResource[T any](w *World, r *T) *T {
	if existing, ok := Resource[T](w); ok {
		return existing
	}
	InsertResource(w, r)
	return r
}

// Resource returns the World's value of type T.
func Resource[T any](w *World) (*T, bool) {
	r, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// RemoveResource deletes the World's value of type T.
func RemoveResource[T any](w *World) {
	delete(w.resources, reflect.TypeFor[T]())
}
