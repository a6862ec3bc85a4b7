package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPrecondition  = errors.New("precondition not satisfied")
	ErrConfiguration = errors.New("configuration error")
	ErrSchema        = errors.New("schema mismatch")
	ErrIO            = errors.New("io error")
	ErrRuntime       = errors.New("runtime error")
)

// Error attaches a taxonomy kind to a failure. errors.Is matches both the kind
// and the wrapped cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func PreconditionError(format string, args ...any) error {
	return &Error{Kind: ErrPrecondition, Msg: fmt.Sprintf(format, args...)}
}

func ConfigurationError(format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Msg: fmt.Sprintf(format, args...)}
}

func SchemaError(format string, args ...any) error {
	return &Error{Kind: ErrSchema, Msg: fmt.Sprintf(format, args...)}
}

func IOError(err error, format string, args ...any) error {
	return &Error{Kind: ErrIO, Msg: fmt.Sprintf(format, args...), Err: err}
}

func RuntimeError(err error, format string, args ...any) error {
	return &Error{Kind: ErrRuntime, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the taxonomy kind carried by err, or nil.
func KindOf(err error) error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}

	return nil
}
