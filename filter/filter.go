package filter

import "strings"

// FilterSpec is the raw criterion supplied by a caller for one column.
// Absent fields are nil; an empty, non-nil ArrayValues is present.
type FilterSpec struct {
	Field       Column
	Operation   Operation
	IsOr        bool
	Value       *string
	ArrayValues []string
	ColumnValue *Column
}

// Filter binds a FilterSpec to the variant of its column type.
// A Filter is immutable; validation only reports, it never changes it.
type Filter struct {
	spec    FilterSpec
	variant *Variant
}

// NewFilter constructs a filter for spec.
// Returns *UnsupportedColumnTypeError if the column type has no registered
// variant. Callers should check Supported first.
func NewFilter(spec FilterSpec) (*Filter, error) {
	v, ok := VariantFor(spec.Field.Type)
	if !ok {
		return nil, &UnsupportedColumnTypeError{Column: spec.Field}
	}
	if spec.ArrayValues != nil {
		values := make([]string, len(spec.ArrayValues))
		copy(values, spec.ArrayValues)
		spec.ArrayValues = values
	}
	return &Filter{spec: spec, variant: v}, nil
}

// MustNewFilter is like NewFilter but panics on an unsupported column type.
func MustNewFilter(spec FilterSpec) *Filter {
	f, err := NewFilter(spec)
	if err != nil {
		panic(err)
	}
	return f
}

// Column returns the filtered column.
func (f *Filter) Column() Column { return f.spec.Field }

// Operation returns the requested operation.
func (f *Filter) Operation() Operation { return f.spec.Operation }

// IsOr reports whether the filter is OR'ed onto the preceding filters.
func (f *Filter) IsOr() bool { return f.spec.IsOr }

// Variant returns the variant selected for the column type.
func (f *Filter) Variant() *Variant { return f.variant }

// Validate runs every rule of the filter's variant and returns all
// violations, with repeated reasons removed.
func (f *Filter) Validate() []Violation {
	all := f.variant.validate(f)
	out := all[:0]
	seen := make(map[string]bool, len(all))
	for _, v := range all {
		if seen[v.Reason] {
			continue
		}
		seen[v.Reason] = true
		out = append(out, v)
	}
	return out
}

// Message renders the violations of the filter as one line:
//
//	<column> (type: <type>, operation: <operation>, value: "<value>"): <reason>, ...
//
// It returns "" for a valid filter.
func (f *Filter) Message() string {
	violations := f.Validate()
	if len(violations) == 0 {
		return ""
	}
	reasons := make([]string, len(violations))
	for i, v := range violations {
		reasons[i] = v.Reason
	}

	var sb strings.Builder
	sb.WriteString(f.spec.Field.Name)
	sb.WriteString(" (type: ")
	sb.WriteString(string(f.spec.Field.Type))
	sb.WriteString(", operation: ")
	sb.WriteString(f.spec.Operation.DisplayName())
	sb.WriteString(`, value: "`)
	sb.WriteString(f.shownValue())
	sb.WriteString(`"): `)
	sb.WriteString(strings.Join(reasons, ", "))
	return sb.String()
}

// shownValue picks the value displayed in messages: the scalar value,
// then the array values, then the compared column.
func (f *Filter) shownValue() string {
	switch {
	case f.spec.Value != nil:
		return *f.spec.Value
	case f.spec.ArrayValues != nil:
		return "[" + strings.Join(f.spec.ArrayValues, ", ") + "]"
	case f.spec.ColumnValue != nil:
		return f.spec.ColumnValue.Name
	default:
		return ""
	}
}
