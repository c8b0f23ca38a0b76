package arrowscan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/criteria-go/filter"
)

// extensionNameKey is the field metadata key for Arrow extension types.
const extensionNameKey = "ARROW:extension:name"

// uuidExtension marks a FixedSizeBinary[16] field as a UUID.
const uuidExtension = "arrow.uuid"

// SemanticTypeKey is the field metadata key that overrides the type
// derived from the Arrow type, e.g. "text" for a long-form string column.
const SemanticTypeKey = "semantic_type"

// SemanticType returns the semantic type of an Arrow field.
// Returns false if the field's type cannot be filtered.
func SemanticType(field arrow.Field) (filter.SemanticType, bool) {
	if i := field.Metadata.FindKey(SemanticTypeKey); i >= 0 {
		t := filter.SemanticType(field.Metadata.Values()[i]).Normalize()
		return t, filter.Supported(filter.Column{Name: field.Name, Type: t})
	}

	switch dt := field.Type.(type) {
	case *arrow.BooleanType:
		return filter.TypeBoolean, true
	case *arrow.Date32Type, *arrow.Date64Type:
		return filter.TypeDate, true
	case *arrow.TimestampType:
		return filter.TypeDatetime, true
	case *arrow.Int8Type, *arrow.Int16Type, *arrow.Int32Type, *arrow.Int64Type,
		*arrow.Uint8Type, *arrow.Uint16Type, *arrow.Uint32Type, *arrow.Uint64Type,
		*arrow.Float32Type, *arrow.Float64Type, *arrow.Decimal128Type:
		return filter.TypeNumeric, true
	case *arrow.StringType, *arrow.LargeStringType:
		return filter.TypeString, true
	case *arrow.FixedSizeBinaryType:
		if dt.ByteWidth == 16 && isUUIDField(field) {
			return filter.TypeUUID, true
		}
	}
	return "", false
}

func isUUIDField(field arrow.Field) bool {
	i := field.Metadata.FindKey(extensionNameKey)
	return i >= 0 && field.Metadata.Values()[i] == uuidExtension
}

// SchemaColumns returns a column resolver for the filterable fields of schema.
// Fields of other types are left out, so criteria naming them are
// reported as unknown columns.
func SchemaColumns(schema *arrow.Schema) filter.Columns {
	cols := make(filter.Columns, schema.NumFields())
	for _, f := range schema.Fields() {
		if t, ok := SemanticType(f); ok {
			cols[f.Name] = t
		}
	}
	return cols
}

// fieldIndex returns the index of the named column in schema.
func fieldIndex(schema *arrow.Schema, name string) (int, error) {
	idx := schema.FieldIndices(name)
	if len(idx) == 0 {
		return 0, fmt.Errorf("arrowscan: column %q not in schema", name)
	}
	return idx[0], nil
}
