package edit

import (
	"fmt"
	"slices"
)

type (
	// Collection is the ordered-container capability the insert/remove
	// commands mutate through.
	Collection[T any] interface {
		Len() int
		At(index int) T
		Insert(index int, item T)
		Remove(index int) T
	}

	// InsertCommand adds items at a fixed index. Undo removes the same
	// items again.
	InsertCommand[T any] struct {
		desc  string
		c     Collection[T]
		index int
		items []T
	}

	// RemoveCommand removes the items at the given indices. The items are
	// captured on Execute; Undo re-inserts them at their original indices,
	// in their original order, also when the indices are not contiguous.
	RemoveCommand[T any] struct {
		desc    string
		c       Collection[T]
		indices []int // sorted ascending
		items   []T   // captured by Execute, parallel to indices
	}

	// Slice adapts a pointer to a slice into a Collection, so the domain
	// types can stay plain slices.
	Slice[T any] struct {
		s *[]T
	}
)

// NewInsert makes a command that inserts the items at index on Execute.
// Pass index == c.Len() to append.
func NewInsert[T any](desc string, c Collection[T], index int, items ...T) *InsertCommand[T] {
	return &InsertCommand[T]{desc: desc, c: c, index: index, items: items}
}

func (c *InsertCommand[T]) Description() string { return c.desc }

func (c *InsertCommand[T]) Execute() error {
	if c.index < 0 || c.index > c.c.Len() {
		return fmt.Errorf("insert index %d out of range [0,%d]", c.index, c.c.Len())
	}
	for i, item := range c.items {
		c.c.Insert(c.index+i, item)
	}
	return nil
}

func (c *InsertCommand[T]) Undo() error {
	for range c.items {
		c.c.Remove(c.index)
	}
	return nil
}

// NewRemove makes a command that removes the items at the given indices on
// Execute. Duplicate indices are dropped; order does not matter.
func NewRemove[T any](desc string, c Collection[T], indices ...int) *RemoveCommand[T] {
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return &RemoveCommand[T]{desc: desc, c: c, indices: sorted}
}

func (c *RemoveCommand[T]) Description() string { return c.desc }

func (c *RemoveCommand[T]) Execute() error {
	if len(c.indices) > 0 {
		if last := c.indices[len(c.indices)-1]; last >= c.c.Len() || c.indices[0] < 0 {
			return fmt.Errorf("remove index %d out of range [0,%d)", last, c.c.Len())
		}
	}
	c.items = make([]T, len(c.indices))
	// removing from the back keeps the remaining indices valid
	for i := len(c.indices) - 1; i >= 0; i-- {
		c.items[i] = c.c.Remove(c.indices[i])
	}
	return nil
}

func (c *RemoveCommand[T]) Undo() error {
	// re-inserting front to back restores the original positions
	for i, index := range c.indices {
		c.c.Insert(index, c.items[i])
	}
	return nil
}

// NewSlice wraps a pointer to a slice as a Collection.
func NewSlice[T any](s *[]T) Slice[T] { return Slice[T]{s: s} }

func (s Slice[T]) Len() int       { return len(*s.s) }
func (s Slice[T]) At(index int) T { return (*s.s)[index] }

func (s Slice[T]) Insert(index int, item T) {
	*s.s = slices.Insert(*s.s, index, item)
}

func (s Slice[T]) Remove(index int) T {
	item := (*s.s)[index]
	*s.s = slices.Delete(*s.s, index, index+1)
	return item
}
