package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable classification returned to API callers.
type Kind string

const (
	KindValidation      Kind = "validation_error"
	KindConflict        Kind = "conflict_error"
	KindUnauthenticated Kind = "unauthenticated"
	KindAuthorization   Kind = "authorization_error"
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindExternal        Kind = "external_service_error"
)

// Error is a classified business error. A sentinel with an empty message
// matches every error of the same kind under errors.Is.
type Error struct {
	kind Kind
	msg  string
	err  error
}

var (
	ErrValidation      = &Error{kind: KindValidation}
	ErrConflict        = &Error{kind: KindConflict}
	ErrUnauthenticated = &Error{kind: KindUnauthenticated}
	ErrAuthorization   = &Error{kind: KindAuthorization}
	ErrNotFound        = &Error{kind: KindNotFound}
	ErrInvalidState    = &Error{kind: KindInvalidState}
	ErrExternal        = &Error{kind: KindExternal}
)

func New(kind Kind, msg string) *Error { return &Error{kind: kind, msg: msg} }

func Validation(msg string) *Error      { return New(KindValidation, msg) }
func Conflict(msg string) *Error        { return New(KindConflict, msg) }
func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func Forbidden(msg string) *Error       { return New(KindAuthorization, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func InvalidState(msg string) *Error    { return New(KindInvalidState, msg) }

func Validationf(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

// External wraps a failure of the store or the chain. The cause is kept for
// logging but never shown to the caller.
func External(msg string, cause error) *Error {
	return &Error{kind: KindExternal, msg: msg, err: cause}
}

// OrExternal keeps classified errors as they are and turns anything else
// into an External error carrying msg.
func OrExternal(err error, msg string) error {
	if err == nil || KindOf(err) != "" {
		return err
	}
	return External(msg, err)
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Error() string {
	switch {
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		return string(e.kind)
	}
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.msg == "" && t.err == nil && t.kind == e.kind
}

type kinded interface{ Kind() Kind }

// KindOf returns the classification of err, or "" for unclassified errors.
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
