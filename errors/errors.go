// Package errors provides error handling for the punched cards classifier.
//
// It re-exports github.com/cockroachdb/errors so that every package gets
// stack traces, wrapping and user hints from one import:
//
//	if topCount < 1 {
//	    return errors.Wrapf(errors.ErrInvalidConfig, "top count %d", topCount)
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
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
	GetAllHints = crdb.GetAllHints
)

// Error inspection
var (
	Is        = crdb.Is
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// CombineErrors joins two errors, either of which may be nil.
var CombineErrors = crdb.CombineErrors

// Sentinel errors. Wrap them with context; test with Is.
var (
	// ErrNoData indicates there is nothing to learn from or nothing was learned
	ErrNoData = New("no data")

	// ErrInvalidConfig indicates a parameter outside its valid range
	ErrInvalidConfig = New("invalid configuration")

	// ErrCorruptData indicates a dataset file failed a header or checksum check
	ErrCorruptData = New("corrupt data")
)

// IsNoData checks if an error is or wraps ErrNoData
func IsNoData(err error) bool {
	return err != nil && Is(err, ErrNoData)
}

// IsInvalidConfig checks if an error is or wraps ErrInvalidConfig
func IsInvalidConfig(err error) bool {
	return err != nil && Is(err, ErrInvalidConfig)
}
