package filter

import "strings"

// SemanticType is the domain classification of a column,
// independent of how the column is physically stored.
type SemanticType string

const (
	TypeBoolean  SemanticType = "boolean"
	TypeDate     SemanticType = "date"
	TypeDatetime SemanticType = "datetime"
	TypeNumeric  SemanticType = "numeric"
	TypeString   SemanticType = "string"
	TypeText     SemanticType = "text"
	TypeUUID     SemanticType = "uuid"
)

// typeMapping maps physical type names and common aliases to semantic types.
// Keys are lower-case.
var typeMapping = map[string]SemanticType{
	// Boolean
	"bool":    TypeBoolean,
	"boolean": TypeBoolean,
	// Date and time
	"date":                        TypeDate,
	"datetime":                    TypeDatetime,
	"timestamp":                   TypeDatetime,
	"timestamptz":                 TypeDatetime,
	"timestamp_tz":                TypeDatetime,
	"timestamp with time zone":    TypeDatetime,
	"timestamp without time zone": TypeDatetime,
	"timestamp_s":                 TypeDatetime,
	"timestamp_ms":                TypeDatetime,
	"timestamp_ns":                TypeDatetime,
	// Numeric
	"numeric":          TypeNumeric,
	"decimal":          TypeNumeric,
	"integer":          TypeNumeric,
	"int":              TypeNumeric,
	"int2":             TypeNumeric,
	"int4":             TypeNumeric,
	"int8":             TypeNumeric,
	"tinyint":          TypeNumeric,
	"smallint":         TypeNumeric,
	"bigint":           TypeNumeric,
	"hugeint":          TypeNumeric,
	"utinyint":         TypeNumeric,
	"usmallint":        TypeNumeric,
	"uinteger":         TypeNumeric,
	"ubigint":          TypeNumeric,
	"float":            TypeNumeric,
	"float4":           TypeNumeric,
	"float8":           TypeNumeric,
	"real":             TypeNumeric,
	"double":           TypeNumeric,
	"double precision": TypeNumeric,
	// Strings
	"string":            TypeString,
	"varchar":           TypeString,
	"character varying": TypeString,
	"char":              TypeString,
	"citext":            TypeString,
	"text":              TypeText,
	// UUID
	"uuid": TypeUUID,
}

// Normalize returns the semantic type for a physical type name or alias.
// Names are matched case-insensitively; a trailing precision such as
// "DECIMAL(18, 3)" or "VARCHAR(255)" is ignored. Unknown names are returned
// lower-cased and are not supported by the registry.
func (t SemanticType) Normalize() SemanticType {
	name := strings.ToLower(strings.TrimSpace(string(t)))
	if i := strings.IndexByte(name, '('); i > 0 {
		name = strings.TrimSpace(name[:i])
	}
	if mapped, ok := typeMapping[name]; ok {
		return mapped
	}
	return SemanticType(name)
}

// IsTemporal returns true for date and datetime.
func (t SemanticType) IsTemporal() bool {
	return t == TypeDate || t == TypeDatetime
}

// IsString returns true for string and text.
func (t SemanticType) IsString() bool {
	return t == TypeString || t == TypeText
}

func (t SemanticType) String() string { return string(t) }

// Column describes a column of the relation being filtered.
type Column struct {
	Name string
	Type SemanticType
}
