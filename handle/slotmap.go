package handle

import "fmt"

// Handle is an opaque reference into a SlotMap. The zero value is the null
// handle and is never valid.
type Handle struct {
	Index   uint32
	Version uint32
}

// Null is the handle that refers to nothing.
var Null Handle

// IsNull reports whether h is the zero handle.
func (h Handle) IsNull() bool {
	return h.Version == 0
}

// String returns "index:version".
func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.Index, h.Version)
}

type slot[T any] struct {
	value   T
	version uint32
	alive   bool
}

// SlotMap stores values of type T addressed by Handle. Slots are recycled
// through a free list; every reuse bumps the slot version.
type SlotMap[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// New creates an empty SlotMap.
func New[T any]() *SlotMap[T] {
	return &SlotMap[T]{}
}

// Acquire reserves a slot holding the zero value of T and returns its handle.
func (m *SlotMap[T]) Acquire() Handle {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot[T]{})
	}
	s := &m.slots[idx]
	s.version++
	if s.version == 0 {
		// Wrapped; version 0 is reserved for the null handle.
		s.version = 1
	}
	s.alive = true
	m.count++
	return Handle{Index: idx, Version: s.version}
}

// Insert stores v and returns its handle.
func (m *SlotMap[T]) Insert(v T) Handle {
	h := m.Acquire()
	m.slots[h.Index].value = v
	return h
}

// IsValid reports whether h refers to a live value.
func (m *SlotMap[T]) IsValid(h Handle) bool {
	if h.Version == 0 || int(h.Index) >= len(m.slots) {
		return false
	}
	s := &m.slots[h.Index]
	return s.alive && s.version == h.Version
}

// Get returns a pointer to the value for h, or nil if h is stale. The pointer
// is only valid until the next Acquire or Insert.
func (m *SlotMap[T]) Get(h Handle) *T {
	if !m.IsValid(h) {
		return nil
	}
	return &m.slots[h.Index].value
}

// Destroy releases the slot for h. Returns false if h was not valid.
func (m *SlotMap[T]) Destroy(h Handle) bool {
	if !m.IsValid(h) {
		return false
	}
	s := &m.slots[h.Index]
	var zero T
	s.value = zero
	s.alive = false
	m.free = append(m.free, h.Index)
	m.count--
	return true
}

// Len returns the number of live values.
func (m *SlotMap[T]) Len() int {
	return m.count
}

// Clear destroys every live value. Outstanding handles become invalid.
func (m *SlotMap[T]) Clear() {
	var zero T
	m.free = m.free[:0]
	for i := len(m.slots) - 1; i >= 0; i-- {
		s := &m.slots[i]
		s.value = zero
		s.alive = false
		m.free = append(m.free, uint32(i))
	}
	m.count = 0
}

// Each calls fn for every live value in slot order. Iteration stops when fn
// returns false. fn must not insert into or destroy from the map.
func (m *SlotMap[T]) Each(fn func(Handle, *T) bool) {
	for i := range m.slots {
		s := &m.slots[i]
		if !s.alive {
			continue
		}
		if !fn(Handle{Index: uint32(i), Version: s.version}, &s.value) {
			return
		}
	}
}

// Handles returns the handles of all live values in slot order.
func (m *SlotMap[T]) Handles() []Handle {
	out := make([]Handle, 0, m.count)
	m.Each(func(h Handle, _ *T) bool {
		out = append(out, h)
		return true
	})
	return out
}
