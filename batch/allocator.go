// Package batch implements an arena of records handed out in contiguous,
// variable-sized blocks. The render system keeps every node's vertices in a
// single Allocator so meshes can be rewritten in place without per-node
// allocations.
package batch

import "sort"

// Handle addresses a block inside an Allocator. The zero Handle (Size 0) is
// the empty block.
type Handle struct {
	Index int
	Size  int
}

// IsEmpty reports whether h covers no records.
func (h Handle) IsEmpty() bool {
	return h.Size == 0
}

type block struct {
	index, size int
}

// Allocator is a growable arena of T. Freed blocks are reused first-fit and
// adjacent free blocks are merged.
type Allocator[T any] struct {
	data  []T
	free  []block // sorted by index, never adjacent
	used  map[int]int
	inUse int
}

// New creates an Allocator with room for capacity records before growing.
func New[T any](capacity int) *Allocator[T] {
	return &Allocator[T]{
		data: make([]T, 0, capacity),
		used: make(map[int]int),
	}
}

// Allocate reserves size contiguous records and returns their handle. The
// records are zeroed. Allocate(0) returns the empty handle.
func (a *Allocator[T]) Allocate(size int) Handle {
	if size <= 0 {
		return Handle{}
	}
	for i, b := range a.free {
		if b.size < size {
			continue
		}
		h := Handle{Index: b.index, Size: size}
		if b.size == size {
			a.free = append(a.free[:i], a.free[i+1:]...)
		} else {
			a.free[i] = block{index: b.index + size, size: b.size - size}
		}
		a.markUsed(h)
		return h
	}

	// No free block fits; grow the tail. A trailing free block is absorbed.
	start := len(a.data)
	if n := len(a.free); n > 0 {
		last := a.free[n-1]
		if last.index+last.size == start {
			start = last.index
			a.free = a.free[:n-1]
		}
	}
	need := start + size
	var zero T
	for len(a.data) < need {
		a.data = append(a.data, zero)
	}
	h := Handle{Index: start, Size: size}
	a.markUsed(h)
	return h
}

func (a *Allocator[T]) markUsed(h Handle) {
	var zero T
	for i := h.Index; i < h.Index+h.Size; i++ {
		a.data[i] = zero
	}
	a.used[h.Index] = h.Size
	a.inUse += h.Size
}

// Free releases the block for h. Returns false if h was not handed out by
// Allocate or was already freed.
func (a *Allocator[T]) Free(h Handle) bool {
	if h.Size == 0 {
		return false
	}
	size, ok := a.used[h.Index]
	if !ok || size != h.Size {
		return false
	}
	delete(a.used, h.Index)
	a.inUse -= size

	var zero T
	for i := h.Index; i < h.Index+size; i++ {
		a.data[i] = zero
	}

	pos := sort.Search(len(a.free), func(i int) bool { return a.free[i].index > h.Index })
	a.free = append(a.free, block{})
	copy(a.free[pos+1:], a.free[pos:])
	a.free[pos] = block{index: h.Index, size: size}

	// Merge with the following block, then with the preceding one.
	if pos+1 < len(a.free) && a.free[pos].index+a.free[pos].size == a.free[pos+1].index {
		a.free[pos].size += a.free[pos+1].size
		a.free = append(a.free[:pos+1], a.free[pos+2:]...)
	}
	if pos > 0 && a.free[pos-1].index+a.free[pos-1].size == a.free[pos].index {
		a.free[pos-1].size += a.free[pos].size
		a.free = append(a.free[:pos], a.free[pos+1:]...)
		pos--
	}

	// Give a free tail back to the arena.
	if last := a.free[len(a.free)-1]; last.index+last.size == len(a.data) {
		a.data = a.data[:last.index]
		a.free = a.free[:len(a.free)-1]
	}
	return true
}

// Get returns a pointer to the record at absolute index i, or nil if i is out
// of range.
func (a *Allocator[T]) Get(i int) *T {
	if i < 0 || i >= len(a.data) {
		return nil
	}
	return &a.data[i]
}

// Slice returns the records covered by h. The slice aliases the arena and is
// invalidated by the next Allocate.
func (a *Allocator[T]) Slice(h Handle) []T {
	if h.Size == 0 || h.Index < 0 || h.Index+h.Size > len(a.data) {
		return nil
	}
	return a.data[h.Index : h.Index+h.Size : h.Index+h.Size]
}

// Len returns the number of records currently allocated.
func (a *Allocator[T]) Len() int {
	return a.inUse
}

// Extent returns the arena length including free gaps.
func (a *Allocator[T]) Extent() int {
	return len(a.data)
}

// Clear frees every block.
func (a *Allocator[T]) Clear() {
	a.data = a.data[:0]
	a.free = a.free[:0]
	a.inUse = 0
	for k := range a.used {
		delete(a.used, k)
	}
}
