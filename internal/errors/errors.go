// Package errors provides error handling for binastgen.
//
// This package re-exports the parts of github.com/cockroachdb/errors the
// generator uses and defines the sentinels for its error taxonomy:
//
//	// Resolution failure, with the offending reference in the message
//	return errors.Wrapf(errors.ErrUnresolved, "interface %s: attribute %s", iface, attr)
//
//	// Check for it further up
//	if errors.Is(err, errors.ErrUnresolved) { ... }
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
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
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// AssertionFailedf reports a broken internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// Sentinels for the generator's error taxonomy. Wrap them to add context;
// errors.Is still matches through the wrapping.
var (
	// ErrUnresolved indicates a referenced type name does not exist in the schema
	ErrUnresolved = New("unresolved type reference")

	// ErrInternal indicates a type variant outside the closed set reached dispatch
	ErrInternal = New("internal consistency error")

	// ErrInvalidSchema indicates the schema document itself is malformed
	ErrInvalidSchema = New("invalid schema")

	// ErrStale indicates generated artifacts on disk differ from a fresh run
	ErrStale = New("generated artifacts out of date")
)

// IsUnresolved checks if an error is or wraps ErrUnresolved.
func IsUnresolved(err error) bool {
	return err != nil && Is(err, ErrUnresolved)
}

// IsInvalidSchema checks if an error is or wraps ErrInvalidSchema.
func IsInvalidSchema(err error) bool {
	return err != nil && Is(err, ErrInvalidSchema)
}

// NewUnresolvedError creates a resolution error with a formatted message
func NewUnresolvedError(format string, args ...interface{}) error {
	return Wrapf(ErrUnresolved, format, args...)
}

// NewInvalidSchemaError creates a schema error with a formatted message
func NewInvalidSchemaError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidSchema, format, args...)
}
