package table

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmptyResult is returned by Build when there is no quantity to tabulate.
var ErrEmptyResult = errors.New("table: result set has no quantities")

// ErrUnitCount reports a sub-list whose unit count is neither 1 nor the
// number of values.
var ErrUnitCount = errors.New("unit count matches neither 1 nor the value count")

// SubListError tags a problem with one sub-list of one quantity. Quantity is
// -1 for the uncertainty list.
type SubListError struct {
	Quantity int
	Name     string
	List     int
	Column   int
	Err      error
}

func (e *SubListError) Error() string {
	if e.Quantity < 0 {
		return fmt.Sprintf("table: uncertainty (column %d): %v", e.Column, e.Err)
	}
	return fmt.Sprintf("table: quantity %d %q list %d (column %d): %v",
		e.Quantity, e.Name, e.List, e.Column, e.Err)
}

// Cause returns the underlying error for errors.Cause.
func (e *SubListError) Cause() error { return e.Err }

// Unwrap returns the underlying error for errors.Is.
func (e *SubListError) Unwrap() error { return e.Err }
