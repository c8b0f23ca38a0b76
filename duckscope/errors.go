package duckscope

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/criteria-go/filter"
)

// ErrNoTable is returned when a Table is created without a table name.
var ErrNoTable = errors.New("duckscope: table name is required")

// UnsupportedPredicateError is returned for predicate nodes the encoder
// does not know.
type UnsupportedPredicateError struct {
	Predicate filter.Predicate
}

func (e *UnsupportedPredicateError) Error() string {
	return fmt.Sprintf("duckscope: unsupported predicate %T", e.Predicate)
}
