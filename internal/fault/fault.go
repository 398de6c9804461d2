// Package fault classifies failures surfaced to the user.
//
// Every error that leaves the catalog client or the favorites store is wrapped
// in an *Error carrying a Kind. The coordinator only looks at the Kind to pick
// a message; it never inspects transport or storage internals. Cancellation is
// not a Kind: callers test IsCanceled first and drop the outcome silently.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind is the user-facing failure category.
type Kind int

const (
	KindGeneric Kind = iota
	KindNetworkTimeout
	KindNetworkOther
	KindHTTP
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindNetworkTimeout:
		return "network_timeout"
	case KindNetworkOther:
		return "network"
	case KindHTTP:
		return "http"
	case KindPersistence:
		return "persistence"
	default:
		return "generic"
	}
}

// Message returns the text shown to the user for this kind of failure.
func (k Kind) Message() string {
	switch k {
	case KindNetworkTimeout:
		return "The catalog took too long to respond."
	case KindNetworkOther:
		return "Could not reach the catalog. Check your connection."
	case KindHTTP:
		return "The catalog service returned an error."
	case KindPersistence:
		return "Could not save your favorites."
	default:
		return "Something went wrong."
	}
}

// Retryable reports whether offering a retry action makes sense.
func (k Kind) Retryable() bool {
	return k != KindPersistence
}

// Error wraps an underlying error with its Kind and the failed operation.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int // HTTP status code if applicable
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given kind. A nil err stays nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind recorded on err, classifying unwrapped network
// errors on the way. Unknown errors are KindGeneric.
func KindOf(err error) Kind {
	if err == nil {
		return KindGeneric
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetworkTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindNetworkTimeout
		}
		return KindNetworkOther
	}
	return KindGeneric
}

// IsCanceled reports whether err is a deliberate cancellation. Deadline
// expiry is a timeout, not a cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
