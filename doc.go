// Package criteria validates client-supplied filter criteria for a relation
// and compiles them into predicates a data layer can apply.
//
// The criteria package ties the pieces together:
//   - Resolving criteria field names to typed columns
//   - Validating every criterion against the rules of its column type
//   - Reporting all problems of a request in one error
//   - Folding valid criteria with AND/OR into one predicate or a caller's Scope
//   - Compiling many independent requests in parallel
//
// # Quick Start
//
//	engine, err := criteria.New(criteria.Config{
//	    Columns: filter.Columns{
//	        "age":    filter.TypeNumeric,
//	        "name":   filter.TypeString,
//	        "active": filter.TypeBoolean,
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pred, err := engine.CompileJSON([]byte(`[
//	    {"field": "age", "operation": "GREATER_THAN", "value": "18"},
//	    {"field": "name", "operation": "LIKE", "value": "%Al%", "isOr": true}
//	]`))
//	if err != nil {
//	    return err // *filter.ValidationError, *filter.UnknownColumnError, ...
//	}
//	fmt.Println(filter.Format(pred))
//	// (allRows AND age > 18) OR name LIKE '%Al%'
//
// # Applying to Data
//
// Engine.Apply folds criteria into any filter.Scope. Two scopes are provided:
//   - arrowscan.Table filters in-memory Arrow record batches
//   - duckscope.Table renders parameterized SQL for a DuckDB table
//
// # Building Criteria in Code
//
//	crit := criteria.NewBuilder().
//	    Where("age", filter.GreaterThan, "18").
//	    Or("name", filter.Like, "%Al%").
//	    With("active", true).
//	    Criteria()
//
// Builder.Token encodes criteria as an opaque URL-safe string for saved
// filters and cursors; Engine.CompileToken accepts it back.
//
// # Errors
//
// Validation failures are returned as *filter.ValidationError, whose
// GRPCStatus maps to codes.InvalidArgument. Unknown columns are
// *filter.UnknownColumnError values joined with errors.Join. A panic in a
// caller-supplied resolver or scope is recovered, logged, and returned as
// an error with codes.Internal.
package criteria
