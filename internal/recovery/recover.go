// Package recovery converts panics in caller-supplied code, such as column
// resolvers and scopes, into errors. A misbehaving data layer must not
// crash the process that validates its filters.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// PanicError is returned in place of a recovered panic.
type PanicError struct {
	Operation string
	Value     any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Operation, e.Value)
}

// GRPCStatus reports a recovered panic as an internal error.
func (e *PanicError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, e.Error())
}

// Do calls fn and converts a panic into a *PanicError.
//
// Example:
//
//	err := recovery.Do(logger, "Apply", func() error {
//	    _, err := set.Apply(scope)
//	    return err
//	})
func Do(logger *slog.Logger, operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(logger, operation, r)
		}
	}()

	return fn()
}

// Value is like Do for functions that return a value.
// On panic the zero value is returned.
func Value[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = recovered(logger, operation, r)
		}
	}()

	return fn()
}

func recovered(logger *slog.Logger, operation string, r any) error {
	if logger != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()),
		)
	}
	return &PanicError{Operation: operation, Value: r}
}
