package ecs

import "github.com/phanxgames/gamelib/handle"

// Lifetimes tracks live objects by handle so they can be referenced weakly.
type Lifetimes struct {
	objs *handle.SlotMap[any]
}

// NewLifetimes creates an empty registry.
func NewLifetimes() *Lifetimes {
	return &Lifetimes{objs: handle.New[any]()}
}

// Track registers v and returns its lifetime handle.
func (l *Lifetimes) Track(v any) handle.Handle {
	return l.objs.Insert(v)
}

// Untrack ends the lifetime of h. References to it stop resolving.
func (l *Lifetimes) Untrack(h handle.Handle) {
	l.objs.Destroy(h)
}

// Lookup returns the object for h.
func (l *Lifetimes) Lookup(h handle.Handle) (any, bool) {
	v := l.objs.Get(h)
	if v == nil {
		return nil, false
	}
	return *v, true
}

// Len returns the number of tracked objects.
func (l *Lifetimes) Len() int {
	return l.objs.Len()
}

// Ref is a weak reference to a tracked object of type T. The zero Ref never
// resolves.
type Ref[T any] struct {
	lt *Lifetimes
	h  handle.Handle
}

// NewRef builds a reference from a registry and lifetime handle.
func NewRef[T any](lt *Lifetimes, h handle.Handle) Ref[T] {
	return Ref[T]{lt: lt, h: h}
}

// RefOf returns a weak reference to an attached component. The reference is
// null if c is not attached to an entity.
func RefOf[T any](c Component) Ref[T] {
	if c == nil {
		return Ref[T]{}
	}
	b := c.base()
	if b.mgr == nil {
		return Ref[T]{}
	}
	return Ref[T]{lt: b.mgr.lifetimes, h: b.life}
}

// Get resolves the reference. ok is false once the target is gone or is not
// a T.
func (r Ref[T]) Get() (v T, ok bool) {
	if r.lt == nil {
		return v, false
	}
	obj, found := r.lt.Lookup(r.h)
	if !found {
		return v, false
	}
	v, ok = obj.(T)
	return v, ok
}

// IsValid reports whether Get would succeed.
func (r Ref[T]) IsValid() bool {
	_, ok := r.Get()
	return ok
}

// Handle returns the lifetime handle the reference points at.
func (r Ref[T]) Handle() handle.Handle {
	return r.h
}

// IsNull reports whether the reference was never set.
func (r Ref[T]) IsNull() bool {
	return r.lt == nil || r.h.IsNull()
}
