package apperror

import (
	"errors"
	"net/http"
)

// Kind is the closed set of failures surfaced to callers.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindNotFound
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// HTTPStatus maps a kind to its transport status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a terminal, user-facing failure.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the infrastructure cause for logging only.
func (e *Error) Unwrap() error { return e.cause }

func newError(kind Kind, code Code, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: Message(code, args...)}
}

func Validation(code Code, args ...any) *Error { return newError(KindValidation, code, args...) }

func Conflict(code Code, args ...any) *Error { return newError(KindConflict, code, args...) }

func NotFound(code Code, args ...any) *Error { return newError(KindNotFound, code, args...) }

// Authentication never says why: bad token, logged-out session and wrong
// owner all look the same to the caller.
func Authentication() *Error { return newError(KindAuthentication, NotAuthorized) }

// Internal hides cause from the message but keeps it for logs.
func Internal(cause error) *Error {
	e := newError(KindInternal, InternalFailure)
	e.cause = cause
	return e
}

// WithCause attaches an underlying error to e.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// ValidationMessage builds a Validation error with a message that is not in the
// catalog (validation chain results carry their own text).
func ValidationMessage(code Code, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind and code.
func Is(err error, kind Kind, code Code) bool {
	e, ok := As(err)
	return ok && e.Kind == kind && e.Code == code
}
