// Package carousel provides cyclic "show one of N" navigation over a fixed,
// ordered list of items.
package carousel

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrEmpty is returned when a controller is constructed without items.
	ErrEmpty = errors.New("carousel requires at least one item")

	// ErrOutOfRange matches any *OutOfRangeError via errors.Is.
	ErrOutOfRange = errors.New("carousel index out of range")
)

// OutOfRangeError reports a JumpTo index outside [0, Len-1].
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("carousel index %d out of range [0, %d]", e.Index, e.Len-1)
}

// Is reports whether target is ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Controller tracks the active index within a fixed list of items.
// The item list is copied at construction and never mutated afterwards.
//
// A Controller is owned by a single view and is not safe for concurrent use.
type Controller[T any] struct {
	items []T
	index int
}

// New creates a controller positioned at the first item.
func New[T any](items []T) (*Controller[T], error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}

	owned := make([]T, len(items))
	copy(owned, items)

	return &Controller[T]{items: owned}, nil
}

// Next advances to the following item, wrapping from the last to the first.
func (c *Controller[T]) Next() {
	c.index = (c.index + 1) % len(c.items)
}

// Previous moves to the preceding item, wrapping from the first to the last.
func (c *Controller[T]) Previous() {
	n := len(c.items)
	c.index = (c.index - 1 + n) % n
}

// JumpTo sets the active index directly.
// Indices outside [0, Len-1] are rejected and leave the index unchanged.
func (c *Controller[T]) JumpTo(index int) error {
	if index < 0 || index >= len(c.items) {
		return &OutOfRangeError{Index: index, Len: len(c.items)}
	}
	c.index = index
	return nil
}

// Current returns the item at the active index.
func (c *Controller[T]) Current() T {
	return c.items[c.index]
}

// Index returns the active index.
func (c *Controller[T]) Index() int {
	return c.index
}

// Len returns the number of items.
func (c *Controller[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the item list in its original order.
func (c *Controller[T]) Items() []T {
	result := make([]T, len(c.items))
	copy(result, c.items)
	return result
}
