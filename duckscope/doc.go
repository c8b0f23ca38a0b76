// Package duckscope applies filter sets to DuckDB tables.
//
// Table implements filter.Scope, so a FilterSet folds directly into it:
//
//	db, _ := sql.Open("duckdb", "")
//	users, _ := duckscope.NewTable(db, "users")
//
//	scope, err := set.Apply(users)
//	if err != nil {
//	    return err
//	}
//	rows, err := scope.(*duckscope.Table).Query(ctx, "id", "name")
//
// Encoder renders a predicate as a parameterized condition. Literals are
// bound as typed values: numbers as DOUBLE, dates and date-times as
// TIMESTAMP, booleans as BOOLEAN. UUID columns are compared in their
// canonical text form. An empty IN list renders as FALSE.
package duckscope
