// Package errors provides error handling for coinduct.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for the person driving a proof
//   - Marking, so wrapped errors still match their sentinel
//
// Usage:
//
//	// Create a sentinel
//	var ErrNotBinary = errors.New("binary relation expected")
//
//	// Wrap with context
//	return errors.Wrapf(ErrNotBinary, "arity %d", arity)
//
//	// Add hints
//	return errors.WithHint(err, "register a witness with Engine.Hint")
//
//	// Check errors
//	if errors.Is(err, companion.ErrNotBinary) {
//	    // handle
//	}
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

// Hints and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinels shared across packages. Domain packages declare their own
// sentinels next to the code that raises them.
var (
	// ErrIllFormed indicates a value was built from incomplete parts.
	ErrIllFormed = New("ill-formed input")

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = New("invalid configuration")
)

// IsIllFormed reports whether err is or wraps ErrIllFormed.
func IsIllFormed(err error) bool {
	return err != nil && Is(err, ErrIllFormed)
}
