package store

// Record is implemented by every entity the store can hold.
type Record[T any] interface {
	EntityID() string
	Clone() T
}

// Collection is an insertion-ordered list of entities of one kind. Reads hand
// out clones so callers never alias stored state.
type Collection[T Record[T]] struct {
	items []T
}

func newCollection[T Record[T]]() *Collection[T] {
	return &Collection[T]{items: []T{}}
}

// Index returns the position of the entity with the given id, or -1.
func (c *Collection[T]) Index(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

// Contains reports whether an entity with the given id is stored.
func (c *Collection[T]) Contains(id string) bool {
	return c.Index(id) >= 0
}

// At returns a copy of the entity at position i.
func (c *Collection[T]) At(i int) T {
	return c.items[i].Clone()
}

// Find returns a copy of the entity with the given id.
func (c *Collection[T]) Find(id string) (T, bool) {
	i := c.Index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.At(i), true
}

// Append stores a copy of item at the end of the collection.
func (c *Collection[T]) Append(item T) {
	c.items = append(c.items, item.Clone())
}

// Replace overwrites the entity at position i with a copy of item.
func (c *Collection[T]) Replace(i int, item T) {
	c.items[i] = item.Clone()
}

// RemoveAt deletes the entity at position i, keeping the order of the rest.
func (c *Collection[T]) RemoveAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// Remove deletes the entity with the given id and reports whether it existed.
func (c *Collection[T]) Remove(id string) bool {
	i := c.Index(id)
	if i < 0 {
		return false
	}
	c.RemoveAt(i)
	return true
}

// All returns copies of every stored entity in insertion order.
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.Clone())
	}
	return out
}

// Mutate calls fn with a pointer to every stored entity in place and returns
// the ids of entities for which fn reported a change.
func (c *Collection[T]) Mutate(fn func(*T) bool) []string {
	var changed []string
	for i := range c.items {
		if fn(&c.items[i]) {
			changed = append(changed, c.items[i].EntityID())
		}
	}
	return changed
}

func (c *Collection[T]) clone() *Collection[T] {
	return &Collection[T]{items: c.All()}
}
