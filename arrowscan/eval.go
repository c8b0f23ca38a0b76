package arrowscan

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/google/uuid"

	"github.com/hugr-lab/criteria-go/filter"
)

// Evaluate computes p for every row of batch. A leaf over a null value is
// false, so NOT LIKE does not match nulls either.
func Evaluate(p filter.Predicate, batch arrow.RecordBatch) ([]bool, error) {
	e := &evaluator{batch: batch, rows: int(batch.NumRows())}
	return e.eval(p)
}

type evaluator struct {
	batch arrow.RecordBatch
	rows  int
}

// accessor returns the value of row i, or false when it is null.
type accessor func(i int) (any, bool)

func (e *evaluator) eval(p filter.Predicate) ([]bool, error) {
	switch pr := p.(type) {
	case *filter.AllRowsPredicate:
		out := make([]bool, e.rows)
		for i := range out {
			out[i] = true
		}
		return out, nil
	case *filter.ComparisonPredicate:
		return e.evalComparison(pr)
	case *filter.MatchPredicate:
		return e.evalMatch(pr)
	case *filter.InPredicate:
		return e.evalIn(pr)
	case *filter.ConjunctionPredicate:
		left, err := e.eval(pr.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(pr.Right)
		if err != nil {
			return nil, err
		}
		for i := range left {
			if pr.Type == filter.ConjunctionOr {
				left[i] = left[i] || right[i]
			} else {
				left[i] = left[i] && right[i]
			}
		}
		return left, nil
	default:
		return nil, fmt.Errorf("arrowscan: unsupported predicate %T", p)
	}
}

func (e *evaluator) evalComparison(c *filter.ComparisonPredicate) ([]bool, error) {
	left, err := e.column(c.Column.Name)
	if err != nil {
		return nil, err
	}

	var right accessor
	switch r := c.Right.(type) {
	case filter.ColumnRef:
		right, err = e.column(r.Column.Name)
		if err != nil {
			return nil, err
		}
	case filter.Literal:
		v, err := literalValue(r)
		if err != nil {
			return nil, err
		}
		right = func(int) (any, bool) { return v, true }
	default:
		return nil, fmt.Errorf("arrowscan: unsupported operand %T", c.Right)
	}

	out := make([]bool, e.rows)
	for i := range out {
		a, ok := left(i)
		if !ok {
			continue
		}
		b, ok := right(i)
		if !ok {
			continue
		}
		cmp, err := compareValues(a, b)
		if err != nil {
			return nil, fmt.Errorf("arrowscan: column %q: %w", c.Column.Name, err)
		}
		switch c.Comparator {
		case filter.CompareEqual:
			out[i] = cmp == 0
		case filter.CompareNotEqual:
			out[i] = cmp != 0
		case filter.CompareGreaterThan:
			out[i] = cmp > 0
		case filter.CompareLessThan:
			out[i] = cmp < 0
		}
	}
	return out, nil
}

func (e *evaluator) evalMatch(m *filter.MatchPredicate) ([]bool, error) {
	get, err := e.column(m.Column.Name)
	if err != nil {
		return nil, err
	}
	re, err := likeRegexp(m.Pattern)
	if err != nil {
		return nil, err
	}

	out := make([]bool, e.rows)
	for i := range out {
		v, ok := get(i)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("arrowscan: column %q is not a string column", m.Column.Name)
		}
		out[i] = re.MatchString(s) != m.Negated
	}
	return out, nil
}

func (e *evaluator) evalIn(in *filter.InPredicate) ([]bool, error) {
	out := make([]bool, e.rows)
	if len(in.Values) == 0 {
		return out, nil
	}

	get, err := e.column(in.Column.Name)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(in.Values))
	for i, l := range in.Values {
		if values[i], err = literalValue(l); err != nil {
			return nil, err
		}
	}

	for i := range out {
		v, ok := get(i)
		if !ok {
			continue
		}
		for _, want := range values {
			cmp, err := compareValues(v, want)
			if err != nil {
				return nil, fmt.Errorf("arrowscan: column %q: %w", in.Column.Name, err)
			}
			if cmp == 0 {
				out[i] = true
				break
			}
		}
	}
	return out, nil
}

// column returns an accessor for the named column of the batch.
func (e *evaluator) column(name string) (accessor, error) {
	idx, err := fieldIndex(e.batch.Schema(), name)
	if err != nil {
		return nil, err
	}
	return columnAccessor(e.batch.Column(idx))
}

// columnAccessor converts Arrow values to the comparable Go forms used by
// the evaluator: float64, string, bool, time.Time, and canonical UUID strings.
func columnAccessor(arr arrow.Array) (accessor, error) {
	var value func(i int) any
	switch a := arr.(type) {
	case *array.Boolean:
		value = func(i int) any { return a.Value(i) }
	case *array.Int8:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Int16:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Int32:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Int64:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Uint8:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Uint16:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Uint32:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Uint64:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Float32:
		value = func(i int) any { return float64(a.Value(i)) }
	case *array.Float64:
		value = func(i int) any { return a.Value(i) }
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		value = func(i int) any { return a.Value(i).ToFloat64(scale) }
	case *array.String:
		value = func(i int) any { return a.Value(i) }
	case *array.LargeString:
		value = func(i int) any { return a.Value(i) }
	case *array.Date32:
		value = func(i int) any { return a.Value(i).ToTime() }
	case *array.Date64:
		value = func(i int) any { return a.Value(i).ToTime() }
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		value = func(i int) any { return a.Value(i).ToTime(unit) }
	case *array.FixedSizeBinary:
		value = func(i int) any {
			u, err := uuid.FromBytes(a.Value(i))
			if err != nil {
				return nil
			}
			return u.String()
		}
	default:
		return nil, fmt.Errorf("arrowscan: unsupported column type %s", arr.DataType())
	}

	return func(i int) (any, bool) {
		if arr.IsNull(i) {
			return nil, false
		}
		v := value(i)
		return v, v != nil
	}, nil
}

// literalValue parses l into the Go form its column type compares as.
func literalValue(l filter.Literal) (any, error) {
	switch l.Type {
	case filter.TypeNumeric:
		return l.Float()
	case filter.TypeDate, filter.TypeDatetime:
		return l.Time()
	case filter.TypeBoolean:
		return l.Bool()
	case filter.TypeUUID:
		u, err := l.UUID()
		if err != nil {
			return nil, err
		}
		return u.String(), nil
	default:
		return l.Text, nil
	}
}

// compareValues returns -1, 0 or 1. Booleans order false before true.
func compareValues(a, b any) (int, error) {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1, nil
			case av > bv:
				return 1, nil
			}
			return 0, nil
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), nil
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0, nil
			case bv:
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

// likeRegexp translates a LIKE pattern: % matches any run of characters,
// _ matches exactly one. Matching is case-sensitive.
func likeRegexp(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString(`(?s)^`)
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}
