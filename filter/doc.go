// Package filter validates client-supplied filter criteria against column
// semantic types and compiles them into a composable predicate tree.
//
// This package enables data-layer developers to:
//   - Check untyped criteria against per-type operation whitelists and value formats
//   - Report every problem of every filter in one aggregated error
//   - Fold valid filters left to right, with AND/OR, into one Predicate
//   - Apply the fold through their own query builder via the Scope interface
//
// # Basic Usage
//
// Parse criteria received from a client and resolve their columns:
//
//	criteria, err := filter.ParseCriteria(body)
//	if err != nil {
//	    return err // Malformed JSON
//	}
//
//	specs, err := filter.ResolveCriteria(criteria, filter.Columns{
//	    "age":  filter.TypeNumeric,
//	    "name": filter.TypeString,
//	})
//	if err != nil {
//	    return err // Unknown column
//	}
//
//	set, err := filter.BuildFilterSet(specs)
//	if err != nil {
//	    return err // Column type without a variant
//	}
//
//	pred, err := set.Predicate()
//	if err != nil {
//	    return err // *ValidationError listing every invalid filter
//	}
//
// # Variants
//
// Each semantic type selects a variant that fixes the accepted operations
// and the value format:
//   - boolean: WITH
//   - date, datetime: GREATER_THAN, LESS_THAN, WITH; ISO 8601 values
//   - numeric: GREATER_THAN, LESS_THAN, EQUAL, NOT_EQUAL, IN, WITH; numeric values
//   - string, text: EQUAL, NOT_EQUAL, LIKE, NOT_LIKE, IN, WITH
//   - uuid: EQUAL, NOT_EQUAL, IN, WITH; UUID values
//
// WITH is accepted by every variant and requires a boolean token
// (t, f, true, false in any case).
//
// # Validation Messages
//
// An invalid filter renders as:
//
//	age (type: numeric, operation: greater than, value: "abc"): value is not a valid number
//
// A set with several invalid filters joins their messages with ", ".
// ValidationError implements GRPCStatus and maps to codes.InvalidArgument.
//
// # Applying to a Data Layer
//
// Implement Scope to receive the fold directly:
//
//	type Scope interface {
//	    Where(p Predicate) Scope // AND
//	    Or(p Predicate) Scope    // OR
//	}
//
//	scope, err := set.Apply(myScope)
//
// The arrowscan and duckscope packages provide reference scopes.
package filter
