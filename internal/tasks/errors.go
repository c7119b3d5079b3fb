package tasks

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is returned when a position is outside the collection's bounds.
var ErrInvalidIndex = errors.New("invalid task index")

// ErrTaskNotFound is returned when a task ID is no longer in the collection.
var ErrTaskNotFound = errors.New("task not found")

// IndexError records an out-of-range position and the length it was checked against.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

// Unwrap returns ErrInvalidIndex so callers can match with errors.Is.
func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}

// CheckIndex returns an *IndexError if index is not in [0, length).
func CheckIndex(op string, index, length int) error {
	if index < 0 || index >= length {
		return &IndexError{Op: op, Index: index, Len: length}
	}
	return nil
}
