package ecs

import "github.com/phanxgames/gamelib/handle"

// Component is a unit of behavior attached to an Entity. Concrete components
// embed Base, which supplies the back-references and no-op defaults.
type Component interface {
	// Name identifies the component kind, e.g. "QPhysics".
	Name() string
	// Transform returns the component's transform, or nil if it has none.
	Transform() Transformable
	// Init runs once the component is attached. Returning false aborts the
	// attachment.
	Init(e *Entity) bool
	// Quit runs right before the component is detached.
	Quit()

	base() *Base
}

// Updater is implemented by components that step every frame.
type Updater interface {
	Update(dt float64)
}

// Refresher is implemented by components that cache references to sibling
// components. Refresh runs whenever the owning entity's component set changes.
type Refresher interface {
	Refresh()
}

// Base holds a component's weak back-reference to its entity and its own
// lifetime handle.
type Base struct {
	mgr    *Manager
	entity handle.Handle
	life   handle.Handle
}

func (b *Base) base() *Base { return b }

// Entity returns the owning entity, or nil if the component is detached or
// the entity was destroyed.
func (b *Base) Entity() *Entity {
	if b.mgr == nil {
		return nil
	}
	return b.mgr.Get(b.entity)
}

// EntityHandle returns the owning entity's handle.
func (b *Base) EntityHandle() handle.Handle { return b.entity }

// Lifetime returns the component's lifetime handle; null while detached.
func (b *Base) Lifetime() handle.Handle { return b.life }

// Attached reports whether the component currently belongs to an entity.
func (b *Base) Attached() bool { return b.mgr != nil }

// Manager returns the manager of the owning entity, or nil while detached.
func (b *Base) Manager() *Manager { return b.mgr }

func (b *Base) Transform() Transformable { return nil }
func (b *Base) Init(*Entity) bool        { return true }
func (b *Base) Quit()                    {}
