// Package apperr tags errors with the class the HTTP boundary maps to a status code.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Op   string // store operation, empty for validation/auth
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Op != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Msg: msg}
}

// Store wraps a row store failure. The message of err is kept as the
// caller-visible reason.
func Store(op string, err error) *Error {
	return &Error{Kind: KindStore, Op: op, Msg: err.Error(), Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Message returns the reason carried by the first *Error in err's chain.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}
