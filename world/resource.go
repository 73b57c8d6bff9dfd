package world

import "reflect"

// Resource gives systems access to a single world-wide value that is not
// tied to any bill, such as a store or configuration.
type Resource[T any] struct {
	world *World
	ptr   *T
}

// NewResource returns an accessor for T, adding it to w first if it is not
// there yet. The initializer is used for the new value; otherwise the zero
// value is added.
func NewResource[T any](w *World, initializer ...T) *Resource[T] {
	if _, ok := ReadResource[T](w); !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		AddResource(w, &value)
	}
	r := &Resource[T]{}
	r.Init(w)
	return r
}

// AddResource stores value as the world's T, replacing any previous one.
func AddResource[T any](w *World, value *T) {
	w.resources[resourceType[T]()] = value
}

// ReadResource returns the world's T.
func ReadResource[T any](w *World) (*T, bool) {
	v, ok := w.resources[resourceType[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

func resourceType[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Init binds the accessor to w. The scheduler calls it for Resource fields of
// registered systems.
func (r *Resource[T]) Init(w *World) {
	r.world = w
	r.ptr = nil
	r.updateCache()
}

// Get returns the resource, or nil if it has not been added.
func (r *Resource[T]) Get() *T {
	if r.ptr == nil {
		r.updateCache()
	}
	return r.ptr
}

// Exists reports whether the resource has been added.
func (r *Resource[T]) Exists() bool {
	return r.Get() != nil
}

func (r *Resource[T]) updateCache() {
	if r.world == nil {
		return
	}
	if v, ok := ReadResource[T](r.world); ok {
		r.ptr = v
	}
}
