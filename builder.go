package criteria

import (
	"encoding/json"
	"strconv"

	"github.com/hugr-lab/criteria-go/filter"
)

// Builder assembles criteria in code using a fluent API.
// Methods without an Or prefix AND the criterion onto the preceding ones.
// Not thread-safe.
//
// Example:
//
//	crit := criteria.NewBuilder().
//	    Where("age", filter.GreaterThan, "18").
//	    Or("name", filter.Like, "%Al%").
//	    Criteria()
type Builder struct {
	criteria []filter.Criterion
}

// NewBuilder creates an empty criteria builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Where adds "field op value", AND'ed onto the preceding criteria.
func (b *Builder) Where(field string, op filter.Operation, value string) *Builder {
	return b.add(field, op, false, &value)
}

// Or adds "field op value", OR'ed onto the preceding criteria.
func (b *Builder) Or(field string, op filter.Operation, value string) *Builder {
	return b.add(field, op, true, &value)
}

// In adds "field IN (values...)". No values is an empty list, which
// matches nothing.
func (b *Builder) In(field string, values ...string) *Builder {
	return b.in(field, false, values)
}

// OrIn is like In but OR'ed onto the preceding criteria.
func (b *Builder) OrIn(field string, values ...string) *Builder {
	return b.in(field, true, values)
}

// WhereColumn compares field with another column of the same relation.
func (b *Builder) WhereColumn(field string, op filter.Operation, column string) *Builder {
	b.criteria = append(b.criteria, filter.Criterion{
		Field:       field,
		Operation:   string(op),
		ColumnValue: &column,
	})
	return b
}

// With adds a WITH criterion for a boolean column.
func (b *Builder) With(field string, value bool) *Builder {
	v := strconv.FormatBool(value)
	return b.add(field, filter.With, false, &v)
}

// Criteria returns a copy of the assembled criteria.
func (b *Builder) Criteria() []filter.Criterion {
	out := make([]filter.Criterion, len(b.criteria))
	copy(out, b.criteria)
	return out
}

// JSON returns the criteria as a JSON array, as accepted by
// filter.ParseCriteria.
func (b *Builder) JSON() ([]byte, error) {
	return json.Marshal(b.criteria)
}

// Token returns the criteria as an opaque token, as accepted by
// filter.DecodeToken.
func (b *Builder) Token() (string, error) {
	return filter.EncodeToken(b.criteria)
}

func (b *Builder) add(field string, op filter.Operation, isOr bool, value *string) *Builder {
	b.criteria = append(b.criteria, filter.Criterion{
		Field:     field,
		Operation: string(op),
		IsOr:      isOr,
		Value:     value,
	})
	return b
}

func (b *Builder) in(field string, isOr bool, values []string) *Builder {
	b.criteria = append(b.criteria, filter.Criterion{
		Field:       field,
		Operation:   string(filter.In),
		IsOr:        isOr,
		ArrayValues: append([]string{}, values...),
	})
	return b
}
