package ecs

import (
	"github.com/phanxgames/gamelib/handle"
	"go.uber.org/zap"
)

// Entity is a named bag of components sharing one GroupTransform.
type Entity struct {
	Name string

	handle     handle.Handle
	mgr        *Manager
	transform  *GroupTransform
	components []Component
}

// Handle returns the entity's handle in its Manager.
func (e *Entity) Handle() handle.Handle { return e.handle }

// Transform returns the entity transform. Moving it moves every attached
// transformable component.
func (e *Entity) Transform() *GroupTransform { return e.transform }

// Components returns the attached components in attachment order.
func (e *Entity) Components() []Component { return e.components }

// Add attaches c. It fails if c is already attached somewhere or its Init
// rejects the entity.
func (e *Entity) Add(c Component) bool {
	b := c.base()
	if b.mgr != nil {
		e.mgr.log.Error("component already attached",
			zap.String("component", c.Name()),
			zap.String("entity", e.Name))
		return false
	}
	b.mgr = e.mgr
	b.entity = e.handle
	b.life = e.mgr.lifetimes.Track(c)

	if !c.Init(e) {
		e.mgr.lifetimes.Untrack(b.life)
		*b = Base{}
		e.mgr.log.Warn("component init failed",
			zap.String("component", c.Name()),
			zap.String("entity", e.Name))
		return false
	}

	e.components = append(e.components, c)
	if t := c.Transform(); t != nil {
		e.transform.Add(t)
	}
	e.refresh()
	return true
}

// Remove detaches c. Returns false if c is not attached to e.
func (e *Entity) Remove(c Component) bool {
	for i, o := range e.components {
		if o != c {
			continue
		}
		e.detach(c)
		e.components = append(e.components[:i], e.components[i+1:]...)
		e.refresh()
		return true
	}
	return false
}

func (e *Entity) detach(c Component) {
	c.Quit()
	if t := c.Transform(); t != nil {
		e.transform.Remove(t)
	}
	b := c.base()
	e.mgr.lifetimes.Untrack(b.life)
	*b = Base{}
}

// FindByName returns the first component with the given name.
func (e *Entity) FindByName(name string) Component {
	for _, c := range e.components {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Find returns the first component of e that is a T.
func Find[T any](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func (e *Entity) refresh() {
	for _, c := range e.components {
		if r, ok := c.(Refresher); ok {
			r.Refresh()
		}
	}
}

func (e *Entity) destroy() {
	for i := len(e.components) - 1; i >= 0; i-- {
		e.detach(e.components[i])
	}
	e.components = nil
}
