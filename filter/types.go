package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PredicateKind identifies the category of a predicate node.
type PredicateKind string

const (
	KindAllRows     PredicateKind = "ALL_ROWS"
	KindComparison  PredicateKind = "COMPARISON"
	KindMatch       PredicateKind = "MATCH"
	KindIn          PredicateKind = "IN"
	KindConjunction PredicateKind = "CONJUNCTION"
)

// Comparator is the operator of a ComparisonPredicate.
type Comparator string

const (
	CompareEqual       Comparator = "="
	CompareNotEqual    Comparator = "<>"
	CompareGreaterThan Comparator = ">"
	CompareLessThan    Comparator = "<"
)

// ConjunctionType is the combinator of a ConjunctionPredicate.
type ConjunctionType string

const (
	ConjunctionAnd ConjunctionType = "AND"
	ConjunctionOr  ConjunctionType = "OR"
)

// Predicate is the interface implemented by all predicate node types.
// Use a type switch to access node data.
type Predicate interface {
	// Kind returns the node category.
	Kind() PredicateKind

	// predicateMarker prevents implementations outside this package.
	predicateMarker()
}

// Operand is the right-hand side of a comparison: a Literal or a ColumnRef.
type Operand interface {
	operandMarker()
}

// AllRowsPredicate matches every row. It is the base of every fold.
type AllRowsPredicate struct{}

// AllRows is the shared "all rows" predicate.
var AllRows Predicate = &AllRowsPredicate{}

// ComparisonPredicate compares a column with a literal or another column.
type ComparisonPredicate struct {
	Column     Column
	Comparator Comparator
	Right      Operand
}

// MatchPredicate is a LIKE pattern match, or NOT LIKE when Negated.
// Pattern uses SQL wildcards: % for any run, _ for one character.
type MatchPredicate struct {
	Column  Column
	Pattern string
	Negated bool
}

// InPredicate tests list membership. An empty list matches no rows.
type InPredicate struct {
	Column Column
	Values []Literal
}

// ConjunctionPredicate combines exactly two predicates.
type ConjunctionPredicate struct {
	Type  ConjunctionType
	Left  Predicate
	Right Predicate
}

func (*AllRowsPredicate) Kind() PredicateKind     { return KindAllRows }
func (*ComparisonPredicate) Kind() PredicateKind  { return KindComparison }
func (*MatchPredicate) Kind() PredicateKind       { return KindMatch }
func (*InPredicate) Kind() PredicateKind          { return KindIn }
func (*ConjunctionPredicate) Kind() PredicateKind { return KindConjunction }

func (*AllRowsPredicate) predicateMarker()     {}
func (*ComparisonPredicate) predicateMarker()  {}
func (*MatchPredicate) predicateMarker()       {}
func (*InPredicate) predicateMarker()          {}
func (*ConjunctionPredicate) predicateMarker() {}

// And returns left AND right.
func And(left, right Predicate) Predicate {
	return &ConjunctionPredicate{Type: ConjunctionAnd, Left: left, Right: right}
}

// Or returns left OR right.
func Or(left, right Predicate) Predicate {
	return &ConjunctionPredicate{Type: ConjunctionOr, Left: left, Right: right}
}

// Literal is a client-supplied value tagged with the semantic type of the
// column it is compared against. Text is kept as supplied; the typed
// accessors parse it.
type Literal struct {
	Type SemanticType
	Text string
}

// ColumnRef refers to another column of the same relation.
type ColumnRef struct {
	Column Column
}

func (Literal) operandMarker()   {}
func (ColumnRef) operandMarker() {}

// Float parses a numeric literal.
func (l Literal) Float() (float64, error) {
	f, err := strconv.ParseFloat(l.Text, 64)
	if err != nil {
		return 0, fmt.Errorf("literal %q is not numeric: %w", l.Text, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("literal %q is not a finite number", l.Text)
	}
	return f, nil
}

// Time parses an ISO 8601 date or date-time literal.
func (l Literal) Time() (time.Time, error) {
	t, ok := parseISO8601(l.Text)
	if !ok {
		return time.Time{}, fmt.Errorf("literal %q is not an ISO 8601 date", l.Text)
	}
	return t, nil
}

// Bool parses a boolean token: t, true, f or false in any case.
func (l Literal) Bool() (bool, error) {
	switch strings.ToLower(l.Text) {
	case "t", "true":
		return true, nil
	case "f", "false":
		return false, nil
	}
	return false, fmt.Errorf("literal %q is not a boolean token", l.Text)
}

// UUID parses a UUID literal.
func (l Literal) UUID() (uuid.UUID, error) {
	if !isUUID(l.Text) {
		return uuid.UUID{}, fmt.Errorf("literal %q is not a UUID", l.Text)
	}
	return uuid.Parse(l.Text)
}

// Format renders p as readable text, for logs and tests:
//
//	(allRows AND age > 18) OR name LIKE '%Al%'
//
// Nested conjunctions are parenthesized; the outermost one is not.
func Format(p Predicate) string {
	var sb strings.Builder
	writePredicate(&sb, p, false)
	return sb.String()
}

func writePredicate(sb *strings.Builder, p Predicate, nested bool) {
	switch pr := p.(type) {
	case *AllRowsPredicate:
		sb.WriteString("allRows")
	case *ComparisonPredicate:
		sb.WriteString(pr.Column.Name)
		sb.WriteString(" ")
		sb.WriteString(string(pr.Comparator))
		sb.WriteString(" ")
		writeOperand(sb, pr.Right)
	case *MatchPredicate:
		sb.WriteString(pr.Column.Name)
		if pr.Negated {
			sb.WriteString(" NOT LIKE ")
		} else {
			sb.WriteString(" LIKE ")
		}
		sb.WriteString(quoteText(pr.Pattern))
	case *InPredicate:
		sb.WriteString(pr.Column.Name)
		sb.WriteString(" IN (")
		for i, v := range pr.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeOperand(sb, v)
		}
		sb.WriteString(")")
	case *ConjunctionPredicate:
		if nested {
			sb.WriteString("(")
		}
		writePredicate(sb, pr.Left, true)
		sb.WriteString(" ")
		sb.WriteString(string(pr.Type))
		sb.WriteString(" ")
		writePredicate(sb, pr.Right, true)
		if nested {
			sb.WriteString(")")
		}
	default:
		sb.WriteString("<nil>")
	}
}

func writeOperand(sb *strings.Builder, o Operand) {
	switch op := o.(type) {
	case Literal:
		switch op.Type {
		case TypeNumeric:
			sb.WriteString(op.Text)
		case TypeBoolean:
			sb.WriteString(strings.ToLower(op.Text))
		default:
			sb.WriteString(quoteText(op.Text))
		}
	case ColumnRef:
		sb.WriteString(op.Column.Name)
	}
}

func quoteText(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
