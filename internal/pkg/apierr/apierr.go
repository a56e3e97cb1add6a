package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an error without binding it to a transport status.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
	KindInvalid
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unexpected error"
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

func Invalid(msg string) *Error { return &Error{Kind: KindInvalid, Msg: msg} }

// Unexpected wraps err, preserving its message for callers that log it.
func Unexpected(msg string, err error) *Error {
	return &Error{Kind: KindUnexpected, Msg: msg, Err: err}
}

func Unexpectedf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnexpected, Msg: fmt.Sprintf(format, args...)}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
func IsInvalid(err error) bool  { return KindOf(err) == KindInvalid }
