package task

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIndexOutOfRange is wrapped by IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an invalid 0-based list position.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// List is an ordered, index-addressed collection of tasks.
// The zero value is an empty list ready to use.
type List struct {
	items []Task
}

// NewList returns a list seeded with tasks, in order.
func NewList(tasks ...Task) *List {
	return &List{items: slices.Clone(tasks)}
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.items)
}

// IsEmpty reports whether the list has no tasks.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}

// Add appends t.
func (l *List) Add(t Task) {
	l.items = append(l.items, t)
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.items) {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	return nil
}

// Get returns the task at 0-based index i.
func (l *List) Get(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	return l.items[i], nil
}

// Set replaces the task at 0-based index i.
func (l *List) Set(i int, t Task) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.items[i] = t
	return nil
}

// RemoveAt removes and returns the task at 0-based index i.
// Later tasks shift one position earlier.
func (l *List) RemoveAt(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	removed := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return removed, nil
}

// All returns a copy of the tasks in order.
func (l *List) All() []Task {
	return slices.Clone(l.items)
}
