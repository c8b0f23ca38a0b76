package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Variant is the fixed validation-rule set and compilation behavior
// bound to one column semantic type.
type Variant struct {
	name    string
	allowed []Operation
	format  *formatRule
	rules   []rule
}

// formatRule checks the textual form of a filter value.
type formatRule struct {
	reason string
	valid  func(value string) bool
}

var (
	iso8601Format = &formatRule{reason: "value is not a valid ISO 8601 date", valid: isISO8601}
	numericFormat = &formatRule{reason: "value is not a valid number", valid: isNumeric}
	uuidFormat    = &formatRule{reason: "value is not a valid UUID", valid: isUUID}

	booleanVariant  = newVariant("boolean", nil, nil)
	dateVariant     = newVariant("date", []Operation{GreaterThan, LessThan}, iso8601Format)
	datetimeVariant = newVariant("datetime", []Operation{GreaterThan, LessThan}, iso8601Format)
	numericVariant  = newVariant("numeric", []Operation{GreaterThan, LessThan, Equal, NotEqual, In}, numericFormat)
	stringVariant   = newVariant("string", []Operation{Equal, NotEqual, Like, NotLike, In}, nil)
	uuidVariant     = newVariant("uuid", []Operation{Equal, NotEqual, In}, uuidFormat)
)

// registry maps each supported semantic type to its variant.
var registry = map[SemanticType]*Variant{
	TypeBoolean:  booleanVariant,
	TypeDate:     dateVariant,
	TypeDatetime: datetimeVariant,
	TypeNumeric:  numericVariant,
	TypeString:   stringVariant,
	TypeText:     stringVariant,
	TypeUUID:     uuidVariant,
}

// VariantFor returns the filter variant registered for t.
func VariantFor(t SemanticType) (*Variant, bool) {
	v, ok := registry[t]
	return v, ok
}

// Supported reports whether filters can be constructed for the column.
func Supported(c Column) bool {
	_, ok := registry[c.Type]
	return ok
}

// newVariant attaches the ordered rule list every variant runs.
// WITH is always appended to the allowed set.
func newVariant(name string, declared []Operation, format *formatRule) *Variant {
	allowed := make([]Operation, 0, len(declared)+1)
	for _, op := range declared {
		if op != With {
			allowed = append(allowed, op)
		}
	}
	allowed = append(allowed, With)

	v := &Variant{
		name:    name,
		allowed: allowed,
		format:  format,
		rules:   []rule{operationRule, booleanTokenRule, presenceRule},
	}
	if format != nil {
		v.rules = append(v.rules, valueFormatRule)
	}
	return v
}

// Name returns the variant name.
func (v *Variant) Name() string { return v.name }

// Allowed returns the operations the variant accepts, WITH included.
func (v *Variant) Allowed() []Operation {
	out := make([]Operation, len(v.allowed))
	copy(out, v.allowed)
	return out
}

// Allows reports whether op is accepted by the variant.
func (v *Variant) Allows(op Operation) bool {
	for _, a := range v.allowed {
		if a == op {
			return true
		}
	}
	return false
}

// validate runs every rule against f and collects all violations.
func (v *Variant) validate(f *Filter) []Violation {
	var out []Violation
	for _, r := range v.rules {
		if violation, failed := r(v, f); failed {
			out = append(out, violation)
		}
	}
	return out
}

func (v *Variant) allowedNames() string {
	names := make([]string, len(v.allowed))
	for i, op := range v.allowed {
		names[i] = op.DisplayName()
	}
	return strings.Join(names, ", ")
}

// Value formats.

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func isUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

func isNumeric(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// iso8601Layouts are tried in order by parseISO8601.
var iso8601Layouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"20060102",
}

func parseISO8601(s string) (time.Time, bool) {
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isISO8601(s string) bool {
	_, ok := parseISO8601(s)
	return ok
}
