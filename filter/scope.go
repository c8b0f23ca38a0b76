package filter

// Scope is the query-builder contract of a data layer. Implementations start
// from an "all rows" scope; Where narrows it with AND, Or widens it with OR.
// Each call returns the resulting scope and must not modify the receiver.
type Scope interface {
	Where(p Predicate) Scope
	Or(p Predicate) Scope
}

// PredicateScope is a Scope that only accumulates the predicate tree.
type PredicateScope struct {
	pred Predicate
}

// NewPredicateScope returns a scope over all rows.
func NewPredicateScope() *PredicateScope {
	return &PredicateScope{pred: AllRows}
}

// Where returns the scope narrowed by p.
func (s *PredicateScope) Where(p Predicate) Scope {
	return &PredicateScope{pred: And(s.pred, p)}
}

// Or returns the scope widened by p.
func (s *PredicateScope) Or(p Predicate) Scope {
	return &PredicateScope{pred: Or(s.pred, p)}
}

// Predicate returns the accumulated predicate.
func (s *PredicateScope) Predicate() Predicate {
	return s.pred
}
