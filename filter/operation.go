package filter

import "strings"

// Operation identifies the comparison a filter requests.
type Operation string

const (
	Equal       Operation = "EQUAL"
	NotEqual    Operation = "NOT_EQUAL"
	GreaterThan Operation = "GREATER_THAN"
	LessThan    Operation = "LESS_THAN"
	Like        Operation = "LIKE"
	NotLike     Operation = "NOT_LIKE"
	In          Operation = "IN"
	With        Operation = "WITH"
)

// operations lists every known operation in declaration order.
var operations = []Operation{Equal, NotEqual, GreaterThan, LessThan, Like, NotLike, In, With}

var displayNames = map[Operation]string{
	Equal:       "equal",
	NotEqual:    "not equal",
	GreaterThan: "greater than",
	LessThan:    "less than",
	Like:        "like",
	NotLike:     "not like",
	In:          "in",
	With:        "with",
}

// ParseOperation returns the operation with the given canonical name.
// Matching is case-insensitive and accepts spaces in place of underscores.
func ParseOperation(name string) (Operation, bool) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	for _, op := range operations {
		if string(op) == norm {
			return op, true
		}
	}
	return Operation(norm), false
}

// Known reports whether op is one of the eight defined operations.
func (op Operation) Known() bool {
	_, ok := displayNames[op]
	return ok
}

// DisplayName returns the name used in validation messages.
// Unknown operations are shown lower-cased.
func (op Operation) DisplayName() string {
	if name, ok := displayNames[op]; ok {
		return name
	}
	return strings.ToLower(strings.ReplaceAll(string(op), "_", " "))
}

func (op Operation) String() string { return string(op) }
