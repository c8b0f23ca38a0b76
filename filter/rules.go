package filter

import "strings"

// ViolationKind classifies a failed validation rule.
type ViolationKind string

const (
	OperationNotSupported ViolationKind = "OperationNotSupported"
	BooleanTokenInvalid   ViolationKind = "BooleanTokenInvalid"
	ValueRequired         ViolationKind = "ValueRequired"
	ValuesRequired        ViolationKind = "ValuesRequired"
	ValueOrColumnRequired ViolationKind = "ValueOrColumnRequired"
	ValueFormatInvalid    ViolationKind = "ValueFormatInvalid"
)

// Violation is one failed rule for one filter.
type Violation struct {
	Kind   ViolationKind
	Reason string
}

// rule checks one property of a filter.
// Rules are independent; the runner never stops at the first failure.
type rule func(v *Variant, f *Filter) (Violation, bool)

// operationRule requires the operation to be in the variant's allowed set.
func operationRule(v *Variant, f *Filter) (Violation, bool) {
	if v.Allows(f.spec.Operation) {
		return Violation{}, false
	}
	return Violation{
		Kind:   OperationNotSupported,
		Reason: "operation must be one of: " + v.allowedNames(),
	}, true
}

// booleanTokens are accepted case-insensitively by WITH filters.
var booleanTokens = []string{"t", "f", "true", "false"}

// booleanTokenRule applies to WITH on every variant.
func booleanTokenRule(_ *Variant, f *Filter) (Violation, bool) {
	if f.spec.Operation != With {
		return Violation{}, false
	}
	if f.spec.Value != nil && isBooleanToken(*f.spec.Value) {
		return Violation{}, false
	}
	return Violation{
		Kind:   BooleanTokenInvalid,
		Reason: "value must be one of: " + strings.Join(booleanTokens, ", "),
	}, true
}

func isBooleanToken(s string) bool {
	for _, tok := range booleanTokens {
		if strings.EqualFold(s, tok) {
			return true
		}
	}
	return false
}

// presenceRule checks that the fields the operation reads are present.
func presenceRule(_ *Variant, f *Filter) (Violation, bool) {
	s := f.spec
	switch s.Operation {
	case In:
		if s.ArrayValues == nil {
			return Violation{Kind: ValuesRequired, Reason: "array values are required"}, true
		}
	case Equal, NotEqual:
		if s.Value == nil && s.ColumnValue == nil {
			return Violation{Kind: ValueOrColumnRequired, Reason: "value or column value is required"}, true
		}
	default:
		if s.Value == nil {
			return Violation{Kind: ValueRequired, Reason: "value is required"}, true
		}
	}
	return Violation{}, false
}

// valueFormatRule applies the variant's format check to the value.
// It does not apply to WITH or IN, to column comparisons, or to a missing
// value, which presenceRule reports.
func valueFormatRule(v *Variant, f *Filter) (Violation, bool) {
	s := f.spec
	if v.format == nil || s.Operation == With || s.Operation == In || s.ColumnValue != nil || s.Value == nil {
		return Violation{}, false
	}
	if v.format.valid(*s.Value) {
		return Violation{}, false
	}
	return Violation{Kind: ValueFormatInvalid, Reason: v.format.reason}, true
}
