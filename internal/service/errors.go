// Package service holds the domain operations: the balance ledger, the
// spend reports, the per-period balances and account management.
package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the API boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

// Error is a classified failure. Message is safe to show to clients; Err
// carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindInternal when it is unclassified.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of err.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Kind != KindInternal {
		return se.Message
	}
	return MsgInternal
}

// MsgInternal is the generic message for unexpected failures.
const MsgInternal = "Error interno del servidor"

func validationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFoundError(message string, err error) error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func authError(message string) error {
	return &Error{Kind: KindAuth, Message: message}
}

func internalError(op string, err error) error {
	return &Error{Kind: KindInternal, Message: op, Err: err}
}
