package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. Handlers map each kind to one status.
type Kind int

const (
	// KindInvalid means the caller sent unusable input
	KindInvalid Kind = iota + 1
	// KindNotFound means the addressed item does not exist
	KindNotFound
	// KindFault is an internal or collaborator failure
	KindFault
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Error is returned by every service operation that fails
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != e.Err.Error() {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid returns a KindInvalid error
func Invalid(field, message string, err error) *Error {
	return &Error{Kind: KindInvalid, Field: field, Message: message, Err: err}
}

// NotFound returns a KindNotFound error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Fault wraps an unexpected error. The message echoes the cause.
func Fault(err error) *Error {
	return &Error{Kind: KindFault, Message: err.Error(), Err: err}
}

// KindOf returns the kind of err, KindFault for foreign errors
func KindOf(err error) Kind {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return KindFault
}
