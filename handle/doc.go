// Package handle provides generation-checked references into pooled storage.
//
// A Handle is an (index, version) pair. A SlotMap hands out handles for the
// values it stores and rejects any handle whose version no longer matches its
// slot, so a destroyed value is never silently aliased by a later insert that
// reuses the same slot.
package handle
