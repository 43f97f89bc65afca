package ecs

import (
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/handle"
	"go.uber.org/zap"
)

// Manager owns every entity.
type Manager struct {
	entities  *handle.SlotMap[*Entity]
	lifetimes *Lifetimes
	events    EventStore
	log       *zap.Logger
}

// NewManager creates an empty Manager. A nil logger disables logging.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		entities:  handle.New[*Entity](),
		lifetimes: NewLifetimes(),
		events:    nopEvents{},
		log:       log.Named("ecs"),
	}
}

// Lifetimes returns the component lifetime registry.
func (m *Manager) Lifetimes() *Lifetimes { return m.lifetimes }

// SetEvents installs the store engine events are emitted to.
func (m *Manager) SetEvents(s EventStore) {
	if s == nil {
		s = nopEvents{}
	}
	m.events = s
}

// Events returns the installed event store.
func (m *Manager) Events() EventStore { return m.events }

// Add creates an entity.
func (m *Manager) Add(name string) *Entity {
	e := &Entity{Name: name, mgr: m, transform: NewGroupTransform(geom.Vec2{})}
	e.handle = m.entities.Insert(e)
	m.log.Debug("entity created", zap.String("name", name), zap.Stringer("handle", e.handle))
	return e
}

// Get returns the entity for h, or nil if h is stale.
func (m *Manager) Get(h handle.Handle) *Entity {
	p := m.entities.Get(h)
	if p == nil {
		return nil
	}
	return *p
}

// Destroy detaches every component of the entity and removes it.
func (m *Manager) Destroy(h handle.Handle) bool {
	e := m.Get(h)
	if e == nil {
		m.log.Warn("trying to destroy invalid entity", zap.Stringer("handle", h))
		return false
	}
	e.destroy()
	m.entities.Destroy(h)
	return true
}

// Find returns the first entity with the given name.
func (m *Manager) Find(name string) *Entity {
	var found *Entity
	m.entities.Each(func(_ handle.Handle, e **Entity) bool {
		if (*e).Name == name {
			found = *e
			return false
		}
		return true
	})
	return found
}

// Each calls fn for every entity until fn returns false.
func (m *Manager) Each(fn func(*Entity) bool) {
	m.entities.Each(func(_ handle.Handle, e **Entity) bool {
		return fn(*e)
	})
}

// Len returns the number of entities.
func (m *Manager) Len() int { return m.entities.Len() }

// Clear destroys every entity.
func (m *Manager) Clear() {
	for _, h := range m.entities.Handles() {
		m.Destroy(h)
	}
}

// Update steps every Updater component of every entity.
func (m *Manager) Update(dt float64) {
	for _, h := range m.entities.Handles() {
		e := m.Get(h)
		if e == nil {
			continue
		}
		for _, c := range e.components {
			if u, ok := c.(Updater); ok {
				u.Update(dt)
			}
		}
	}
}
