package filter

import "strings"

// compile maps a validated filter to its predicate leaf.
// It is total on filters that passed Validate; the FilterSet never calls it
// on anything else.
func compile(f *Filter) Predicate {
	s := f.spec
	col := s.Field

	switch s.Operation {
	case Equal:
		return &ComparisonPredicate{Column: col, Comparator: CompareEqual, Right: rightOperand(s)}
	case NotEqual:
		return &ComparisonPredicate{Column: col, Comparator: CompareNotEqual, Right: rightOperand(s)}
	case GreaterThan:
		return &ComparisonPredicate{Column: col, Comparator: CompareGreaterThan, Right: literal(col, *s.Value)}
	case LessThan:
		return &ComparisonPredicate{Column: col, Comparator: CompareLessThan, Right: literal(col, *s.Value)}
	case Like:
		return &MatchPredicate{Column: col, Pattern: *s.Value}
	case NotLike:
		return &MatchPredicate{Column: col, Pattern: *s.Value, Negated: true}
	case In:
		values := make([]Literal, len(s.ArrayValues))
		for i, v := range s.ArrayValues {
			values[i] = literal(col, v)
		}
		return &InPredicate{Column: col, Values: values}
	case With:
		return compileWith(col, *s.Value)
	}
	// Unreachable for validated filters.
	panic("filter: compile called with unsupported operation " + s.Operation.String())
}

// compileWith turns a boolean token into a boolean-column predicate.
// A false token yields "col = true OR col = false", which matches every
// non-null row. That is the established behavior and is kept until the
// intended "is false" semantics are confirmed.
func compileWith(col Column, token string) Predicate {
	isTrue := &ComparisonPredicate{
		Column:     col,
		Comparator: CompareEqual,
		Right:      Literal{Type: TypeBoolean, Text: "true"},
	}
	switch strings.ToLower(token) {
	case "t", "true":
		return isTrue
	default:
		isFalse := &ComparisonPredicate{
			Column:     col,
			Comparator: CompareEqual,
			Right:      Literal{Type: TypeBoolean, Text: "false"},
		}
		return Or(isTrue, isFalse)
	}
}

// rightOperand prefers the value and falls back to the compared column.
func rightOperand(s FilterSpec) Operand {
	if s.Value != nil {
		return literal(s.Field, *s.Value)
	}
	return ColumnRef{Column: *s.ColumnValue}
}

func literal(col Column, text string) Literal {
	return Literal{Type: col.Type, Text: text}
}
