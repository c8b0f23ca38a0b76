package filter

import (
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrInvalidState is returned when a FilterSet operation is called
	// out of lifecycle order, e.g. applying a set twice.
	ErrInvalidState = errors.New("filter set is in the wrong state")
)

// UnsupportedColumnTypeError is returned when a filter is constructed for a
// column whose semantic type has no registered variant. It indicates a
// caller bug, not invalid client input.
type UnsupportedColumnTypeError struct {
	Column Column
}

func (e *UnsupportedColumnTypeError) Error() string {
	return "unsupported column type " + quote(string(e.Column.Type)) + " for column " + quote(e.Column.Name)
}

// UnknownColumnError is returned when criteria name a column the
// resolver does not know.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return "unknown column " + quote(e.Name)
}

// ValidationError is the single aggregated failure for a filter set.
// Error returns the per-filter messages joined with ", ".
type ValidationError struct {
	messages []string
}

func newValidationError(messages []string) *ValidationError {
	return &ValidationError{messages: messages}
}

// Kind identifies the error category for API layers.
func (e *ValidationError) Kind() string { return "FilterValidationError" }

// Messages returns the de-duplicated per-filter messages in input order.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

func (e *ValidationError) Error() string {
	return strings.Join(e.messages, ", ")
}

// GRPCStatus maps the failure to an InvalidArgument status so gRPC servers
// report it as a client error.
func (e *ValidationError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

func quote(s string) string {
	return `"` + s + `"`
}
