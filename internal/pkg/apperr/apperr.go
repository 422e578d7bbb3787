// Package apperr defines the typed failures returned by the services.
package apperr

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindAlreadyExists
	KindNotFound
	KindInvalidState
	KindUnauthorized
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindNotFound:
		return "NotFound"
	case KindInvalidState:
		return "InvalidState"
	case KindUnauthorized:
		return "Unauthorized"
	case KindInvalidInput:
		return "InvalidInput"
	}
	return "Internal"
}

type Error struct {
	Kind    Kind
	Message string
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
