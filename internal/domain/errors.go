package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Workflows wrap these in *Error so handlers can map to HTTP status codes
// without leaking infrastructure details or inspecting messages.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnverified   = errors.New("unverified")
	ErrNotFound     = errors.New("not found")
	ErrNotification = errors.New("notification failed")
)

// Error is a tagged workflow error. Kind is one of the sentinels above,
// Message is safe to show to the caller, Cause is the optional underlying error.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func WrapError(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// Message returns the public message of the most specific *Error in the chain, or "" if none.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return ""
}
