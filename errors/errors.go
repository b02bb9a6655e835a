// Package errors provides error handling for domgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Wrap with context
//	if err := loadSchema(path); err != nil {
//	    return errors.Wrapf(err, "failed to load schema %s", path)
//	}
//
//	// Fatal configuration errors carry a hint naming the offending input
//	return errors.NewPreconditionError("Document", "createElement", "expected 1 parameter, got %d", n)
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for the generator.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrPrecondition indicates a schema member does not have the fixed shape
	// a special-cased emission path requires. Always fatal.
	ErrPrecondition = New("structural precondition violated")

	// ErrDependencyCycle indicates the global flattening traversal re-entered
	// an interface that is still being flattened.
	ErrDependencyCycle = New("dependency cycle")

	// ErrUnknownFlavor indicates a flavor name that is not one of web, worker, all
	ErrUnknownFlavor = New("unknown flavor")

	// ErrNotFound indicates the requested interface or file does not exist
	ErrNotFound = New("not found")

	// ErrInvalidInput indicates a malformed schema, patch or lookup file
	ErrInvalidInput = New("invalid input")
)

// NewPreconditionError reports a special-cased method whose declared shape does
// not match the expected one. The hint names the offending method.
func NewPreconditionError(iface, method, format string, args ...interface{}) error {
	err := Wrapf(ErrPrecondition, "%s.%s: %s", iface, method, Newf(format, args...).Error())
	return WithHintf(err, "fix the schema declaration of %s.%s or override it in the patch file", iface, method)
}

// NewCycleError reports a cycle in the interface dependency graph.
// path lists the traversal from the root up to and including the re-entered interface.
func NewCycleError(path []string) error {
	err := Wrapf(ErrDependencyCycle, "%s", strings.Join(path, " -> "))
	return WithHint(err, "the dependency list of the global object must be acyclic")
}

// NewInvalidInputError creates an invalid-input error with a formatted message
func NewInvalidInputError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}

// IsPreconditionError checks if an error is or wraps ErrPrecondition
func IsPreconditionError(err error) bool {
	return err != nil && Is(err, ErrPrecondition)
}

// IsCycleError checks if an error is or wraps ErrDependencyCycle
func IsCycleError(err error) bool {
	return err != nil && Is(err, ErrDependencyCycle)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}
