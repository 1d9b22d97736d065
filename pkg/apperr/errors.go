package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindUpload     Kind = "upload"
	KindInternal   Kind = "internal"
)

// AuthCause narrows a KindAuth error so callers can branch on why a
// credential was rejected.
type AuthCause string

const (
	CauseMissing       AuthCause = "Missing"
	CauseInvalid       AuthCause = "Invalid"
	CauseExpired       AuthCause = "Expired"
	CauseWrongPassword AuthCause = "WrongPassword"
)

type Error struct {
	Kind    Kind
	Cause   AuthCause
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Auth(cause AuthCause, msg string, err error) *Error {
	return &Error{Kind: KindAuth, Cause: cause, Message: msg, Err: err}
}

func Upload(msg string, err error) *Error {
	return &Error{Kind: KindUpload, Message: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the kind of err. Errors that were never classified are
// treated as internal failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CauseOf returns the auth cause carried by err, or "" when err is not an
// auth error.
func CauseOf(err error) AuthCause {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindAuth {
		return e.Cause
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the client-facing message of err. Internal errors never
// leak their wrapped cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
