// Package lazy provides a memoized derived value guarded by a dirty flag.
//
// A Memo caches the result of a computation. Mutators of the computation's
// inputs call Invalidate; readers call Get, which recomputes only when the
// cached value is stale. The mesh vertex stream and the camera view matrix
// are both built on it.
package lazy

// Memo is a cached value of type T plus the flag saying it is stale.
// The zero value is not usable; create one with New.
//
// Memo is not safe for concurrent use.
type Memo[T any] struct {
	compute func() T
	value   T
	dirty   bool

	hits     int
	computes int
}

// New returns a Memo that starts dirty, so the first Get computes.
func New[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		compute: compute,
		dirty:   true,
	}
}

// Get returns the cached value, recomputing it first if it is stale.
//
// The cached value and the dirty flag are only replaced after compute
// returns. If compute panics, the previous value stays cached and the memo
// stays dirty.
func (m *Memo[T]) Get() T {
	if !m.dirty {
		m.hits++
		return m.value
	}
	v := m.compute()
	m.value = v
	m.dirty = false
	m.computes++
	return m.value
}

// Peek returns the cached value without recomputing, and whether it is
// current.
func (m *Memo[T]) Peek() (T, bool) {
	return m.value, !m.dirty
}

// Invalidate marks the cached value stale.
func (m *Memo[T]) Invalidate() {
	m.dirty = true
}

// Dirty reports whether the next Get will recompute.
func (m *Memo[T]) Dirty() bool {
	return m.dirty
}

// Hits returns how many Get calls were served from the cache.
func (m *Memo[T]) Hits() int {
	return m.hits
}

// Computes returns how many times the value has been recomputed.
func (m *Memo[T]) Computes() int {
	return m.computes
}
