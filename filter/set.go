package filter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// State is the lifecycle position of a FilterSet.
type State int

const (
	StateUnvalidated State = iota
	StateValidated
	StateInvalid
	StateCompiled
	StateApplied
)

func (s State) String() string {
	switch s {
	case StateUnvalidated:
		return "unvalidated"
	case StateValidated:
		return "validated"
	case StateInvalid:
		return "invalid"
	case StateCompiled:
		return "compiled"
	case StateApplied:
		return "applied"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option configures a FilterSet.
type Option func(*FilterSet)

// WithLogger sets the logger used for compile and rejection events.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(fs *FilterSet) {
		if logger != nil {
			fs.logger = logger
		}
	}
}

// FilterSet folds an ordered list of filters into one predicate.
// It is request-scoped and not safe for concurrent use.
type FilterSet struct {
	filters []*Filter
	logger  *slog.Logger

	state  State
	err    *ValidationError
	leaves []Predicate
	pred   Predicate
}

// NewFilterSet creates a set over filters, kept in the given order.
func NewFilterSet(filters []*Filter, opts ...Option) *FilterSet {
	fs := &FilterSet{
		filters: make([]*Filter, len(filters)),
		logger:  slog.Default(),
	}
	copy(fs.filters, filters)
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// BuildFilterSet constructs a filter for every spec and returns the set.
// It fails with the first *UnsupportedColumnTypeError.
func BuildFilterSet(specs []FilterSpec, opts ...Option) (*FilterSet, error) {
	filters := make([]*Filter, 0, len(specs))
	for i, spec := range specs {
		f, err := NewFilter(spec)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		filters = append(filters, f)
	}
	return NewFilterSet(filters, opts...), nil
}

// Len returns the number of filters in the set.
func (fs *FilterSet) Len() int { return len(fs.filters) }

// State returns the current lifecycle state.
func (fs *FilterSet) State() State { return fs.state }

// Validate runs every filter's rules once. If any filter is invalid it
// returns a *ValidationError carrying all messages, de-duplicated across
// the set, and nothing can be compiled afterwards.
func (fs *FilterSet) Validate() error {
	switch fs.state {
	case StateUnvalidated:
	case StateInvalid:
		return fs.err
	default:
		return nil
	}

	var messages []string
	seen := make(map[string]bool)
	for _, f := range fs.filters {
		msg := f.Message()
		if msg == "" || seen[msg] {
			continue
		}
		seen[msg] = true
		messages = append(messages, msg)
	}

	if len(messages) > 0 {
		fs.state = StateInvalid
		fs.err = newValidationError(messages)
		fs.logger.Debug("filter set rejected",
			"filters", len(fs.filters),
			"errors", len(messages),
		)
		return fs.err
	}

	fs.state = StateValidated
	return nil
}

// Predicate validates the set if needed and returns the folded predicate:
// starting from AllRows, each filter is AND'ed or OR'ed onto the
// accumulator in input order.
func (fs *FilterSet) Predicate() (Predicate, error) {
	if err := fs.compile(); err != nil {
		return nil, err
	}
	return fs.pred, nil
}

// Apply folds the compiled filters into scope in input order, calling
// Where for AND filters and Or for OR filters, and returns the final scope.
// A set can be applied once.
func (fs *FilterSet) Apply(scope Scope) (Scope, error) {
	if scope == nil {
		return nil, errors.New("filter: nil scope")
	}
	if fs.state == StateApplied {
		return nil, fmt.Errorf("%w: cannot apply a set that is %s", ErrInvalidState, fs.state)
	}
	if err := fs.compile(); err != nil {
		return nil, err
	}

	scope = fs.fold(scope)
	fs.state = StateApplied
	return scope, nil
}

// fold applies the compiled leaves to scope left to right.
func (fs *FilterSet) fold(scope Scope) Scope {
	for i, f := range fs.filters {
		if f.IsOr() {
			scope = scope.Or(fs.leaves[i])
		} else {
			scope = scope.Where(fs.leaves[i])
		}
	}
	return scope
}

// compile moves the set to StateCompiled, validating first if needed.
func (fs *FilterSet) compile() error {
	if err := fs.Validate(); err != nil {
		return err
	}
	if fs.state != StateValidated {
		// Already compiled or applied.
		return nil
	}

	fs.leaves = make([]Predicate, len(fs.filters))
	for i, f := range fs.filters {
		fs.leaves[i] = compile(f)
	}
	fs.pred = fs.fold(NewPredicateScope()).(*PredicateScope).Predicate()
	fs.state = StateCompiled

	if fs.logger.Enabled(context.Background(), slog.LevelDebug) {
		fs.logger.Debug("filter set compiled",
			"filters", len(fs.filters),
			"predicate", Format(fs.pred),
		)
	}
	return nil
}
