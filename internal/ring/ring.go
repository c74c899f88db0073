// Package ring provides a fixed-capacity FIFO ring buffer.
// Pushing beyond capacity evicts the oldest element in O(1).
package ring

// Ring is a bounded FIFO ring buffer.
// The zero value is not usable; create one with New.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// New creates a Ring with the given capacity. Capacity must be positive.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends an item to the tail. If the ring is full, the head is evicted.
func (r *Ring[T]) Push(item T) {
	if r.size == len(r.items) {
		r.items[r.head] = item
		r.head = (r.head + 1) % len(r.items)
		return
	}

	r.items[(r.head+r.size)%len(r.items)] = item
	r.size++
}

// At returns the i-th oldest item (0-based) and true, or the zero value and
// false if i is out of range.
func (r *Ring[T]) At(i int) (T, bool) {
	if i < 0 || i >= r.size {
		var zero T
		return zero, false
	}
	return r.items[(r.head+i)%len(r.items)], true
}

// Items returns the buffered items in oldest-to-newest order.
// The returned slice is a copy; mutating it does not affect the ring.
func (r *Ring[T]) Items() []T {
	items := make([]T, r.size)
	for i := range items {
		items[i] = r.items[(r.head+i)%len(r.items)]
	}
	return items
}

// Reset resets the ring to an empty state, releasing the buffered items.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.head = 0
	r.size = 0
}

// IsEmpty returns true if the ring is empty, false otherwise.
func (r *Ring[T]) IsEmpty() bool {
	return r.size == 0
}

// Len returns the number of buffered items.
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}
