// Package selection provides a cyclic single-selection container used for
// the artist, album, and rated-albums lists.
package selection

import "errors"

// ErrEmptyList is returned when the current selection is requested from a
// list with no items.
var ErrEmptyList = errors.New("selection list is empty")

// List is an ordered sequence of items with one selected element.
// Navigation wraps around at both ends. The zero value is an empty list.
type List[T any] struct {
	items    []T
	selected int
}

// NewList creates a selection list over items with the first item selected.
// The items slice is used as-is; insertion order is significant.
func NewList[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns the underlying item slice in insertion order.
func (l *List[T]) Items() []T {
	return l.items
}

// Selected returns the index of the selected item. Meaningless when the
// list is empty.
func (l *List[T]) Selected() int {
	return l.selected
}

// Next moves the selection to the following item, wrapping from the last
// item back to the first. No-op on an empty list.
func (l *List[T]) Next() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected + 1) % len(l.items)
}

// Prev moves the selection to the preceding item, wrapping from the first
// item to the last. No-op on an empty list.
func (l *List[T]) Prev() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected + len(l.items) - 1) % len(l.items)
}

// Current returns the selected item, or ErrEmptyList if there is nothing
// to select.
func (l *List[T]) Current() (T, error) {
	var zero T
	if len(l.items) == 0 {
		return zero, ErrEmptyList
	}
	return l.items[l.selected], nil
}
