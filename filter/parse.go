package filter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hugr-lab/criteria-go/internal/msgpack"
)

// Criterion is the raw, untyped filter criterion as received from a client.
// Absent optional fields decode to nil.
type Criterion struct {
	Field       string   `json:"field" msgpack:"field"`
	Operation   string   `json:"operation" msgpack:"operation"`
	IsOr        bool     `json:"isOr,omitempty" msgpack:"isOr,omitempty"`
	Value       *string  `json:"value,omitempty" msgpack:"value,omitempty"`
	ArrayValues []string `json:"arrayValues" msgpack:"arrayValues"`
	ColumnValue *string  `json:"columnValue,omitempty" msgpack:"columnValue,omitempty"`
}

// ColumnResolver provides column metadata for field names.
type ColumnResolver interface {
	Column(name string) (Column, bool)
}

// Columns is a ColumnResolver backed by a map of column name to type.
type Columns map[string]SemanticType

// Column implements ColumnResolver. Types are normalized, so physical
// names such as "INTEGER" or "VARCHAR" may be used.
func (c Columns) Column(name string) (Column, bool) {
	t, ok := c[name]
	if !ok {
		return Column{}, false
	}
	return Column{Name: name, Type: t.Normalize()}, true
}

// ParseCriteria parses a JSON array of criteria.
// Empty input yields no criteria.
func ParseCriteria(data []byte) ([]Criterion, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var criteria []Criterion
	if err := json.Unmarshal(data, &criteria); err != nil {
		return nil, fmt.Errorf("filter: invalid criteria JSON: %w", err)
	}
	return criteria, nil
}

// DecodeCriteria parses a MessagePack array of criteria.
func DecodeCriteria(data []byte) ([]Criterion, error) {
	var criteria []Criterion
	if err := msgpack.Decode(data, &criteria); err != nil {
		return nil, fmt.Errorf("filter: invalid criteria: %w", err)
	}
	return criteria, nil
}

// EncodeCriteria serializes criteria as MessagePack.
func EncodeCriteria(criteria []Criterion) ([]byte, error) {
	return msgpack.Encode(criteria)
}

// ResolveCriteria binds criteria to columns, producing filter specs in the
// same order. Every unknown field or column value is reported, joined into
// one error of *UnknownColumnError values. Unknown operation names are
// kept and rejected later by validation.
func ResolveCriteria(criteria []Criterion, resolver ColumnResolver) ([]FilterSpec, error) {
	if resolver == nil {
		return nil, errors.New("filter: nil column resolver")
	}

	specs := make([]FilterSpec, 0, len(criteria))
	var errs []error
	for _, c := range criteria {
		field, ok := resolver.Column(c.Field)
		if !ok {
			errs = append(errs, &UnknownColumnError{Name: c.Field})
			continue
		}

		op, _ := ParseOperation(c.Operation)
		spec := FilterSpec{
			Field:       field,
			Operation:   op,
			IsOr:        c.IsOr,
			Value:       c.Value,
			ArrayValues: c.ArrayValues,
		}
		if c.ColumnValue != nil {
			other, ok := resolver.Column(*c.ColumnValue)
			if !ok {
				errs = append(errs, &UnknownColumnError{Name: *c.ColumnValue})
				continue
			}
			spec.ColumnValue = &other
		}
		specs = append(specs, spec)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return specs, nil
}
