// Package superaerr implements the single closed error-kind sum type
// used across the labeling pipeline in place of exceptions-for-flow.
package superaerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is one of the four fatal-to-the-event error categories.
type Kind int

const (
	// Config indicates a missing/invalid/duplicate configuration value.
	Config Kind = iota
	// Data indicates an invalid input (bad track IDs, mismatched
	// parent history, InvalidProcess label, NaN energy, ...).
	Data
	// Logic indicates an internal invariant was broken.
	Logic
	// NoData indicates a bounding-box derivation was requested with
	// neither a world envelope nor an active region available.
	NoData
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "ConfigError"
	case Data:
		return "DataError"
	case Logic:
		return "LogicError"
	case NoData:
		return "NoDataError"
	default:
		return "UnknownError"
	}
}

// Error wraps a Kind with a message and a stack trace (via
// github.com/pkg/errors) captured at construction time.
type Error struct {
	Kind Kind
	msg  string
	err  error // the pkg/errors-wrapped cause, carries the stack
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap lets errors.Is/errors.As see through to the stack-carrying cause.
func (e *Error) Unwrap() error { return e.err }

func newf(kind Kind, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, msg: msg, err: errors.New(msg)}
}

// Configf builds a ConfigError.
func Configf(format string, args ...any) *Error { return newf(Config, format, args...) }

// Dataf builds a DataError.
func Dataf(format string, args ...any) *Error { return newf(Data, format, args...) }

// Logicf builds a LogicError.
func Logicf(format string, args ...any) *Error { return newf(Logic, format, args...) }

// NoDataf builds a NoDataError.
func NoDataf(format string, args ...any) *Error { return newf(NoData, format, args...) }

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
