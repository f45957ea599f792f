// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error raised across the package boundary. Unlike the
// single undifferentiated error field the engine is modelled on, every
// error that can reach a caller carries one of these.
type Kind int

const (
	// InvalidArgument covers out-of-range variables, malformed orderings,
	// cross-factory operations and assignment-length mismatches.
	InvalidArgument Kind = iota
	// UnsupportedOperation covers calling a mutating method on an
	// immutable iterator.
	UnsupportedOperation
	// NoSuchElement covers an exhausted iterator.
	NoSuchElement
	// ConcurrentModification covers iteration after the underlying handle
	// was replaced.
	ConcurrentModification
	// UnknownOperator is internal: it indicates a programming error in
	// operator dispatch and should never surface from a correct caller.
	UnknownOperator
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid-argument"
	case UnsupportedOperation:
		return "unsupported-operation"
	case NoSuchElement:
		return "no-such-element"
	case ConcurrentModification:
		return "concurrent-modification"
	case UnknownOperator:
		return "unknown-operator"
	default:
		return "unknown"
	}
}

// Error is the package's single error type. It always carries a Kind, a
// descriptive message, and an optional wrapped cause, in the spirit of the
// source's single chained error field but with the taxonomy the interface
// boundary needs.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("dd: %s: %s: %v", e.kind, e.msg, e.cause)
	}
	return fmt.Sprintf("dd: %s: %s", e.kind, e.msg)
}

// Kind reports the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Unwrap lets errors.Is/errors.As see through to the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Newf builds a *Error of the given kind, formatting msg/args like fmt.Sprintf.
func Newf(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(msg, args...)}
}

// Wrapf builds a *Error of the given kind wrapping an existing cause,
// grounded on github.com/pkg/errors' Wrap/Cause composition.
func Wrapf(cause error, kind Kind, msg string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(msg, args...), cause: errors.WithStack(cause)}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}

// Internal resource-exhaustion conditions. These are not part of the
// caller-facing Kind taxonomy (spec §7): they describe the node/cache
// arena running out of room to grow, grounded on the source's own
// kernel.go sentinel errors (errMemory/errResize/errReset).
var (
	errMemory = errors.New("dd: cannot allocate memory")
	errResize = errors.New("dd: cannot resize node table")
	errReset  = errors.New("dd: cannot reset cache")
)
