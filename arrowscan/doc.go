// Package arrowscan evaluates filter predicates over Arrow record batches.
//
// Column types are read from the Arrow schema: booleans, dates, timestamps,
// integers, floats, decimals and strings map to their semantic types, and
// FixedSizeBinary[16] fields tagged with the arrow.uuid extension are UUIDs.
//
//	tbl, _ := arrowscan.NewTable(schema, batch)
//	defer tbl.Release()
//
//	specs, err := filter.ResolveCriteria(criteria, tbl.Columns())
//	...
//	scope, err := set.Apply(tbl)
//	reader, err := scope.(*arrowscan.Table).Scan(ctx)
//	defer reader.Release()
//
// Leaves over null values evaluate to false. LIKE patterns are
// case-sensitive.
package arrowscan
