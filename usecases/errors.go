package usecases

import (
	"errors"
	"strings"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is the failure returned for every expected condition. Message is
// safe to show to clients; Err keeps the underlying cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrEmptyUser        = &Error{Kind: KindValidation, Message: "Empty user"}
	ErrSelfFollow       = &Error{Kind: KindValidation, Message: "You can't follow yourself"}
	ErrAlreadyFollowing = &Error{Kind: KindConflict, Message: "Already following this user"}
	ErrNotFollowing     = &Error{Kind: KindNotFound, Message: "Unable to unfollow that user"}

	ErrUserNotFound     = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrSenderNotFound   = &Error{Kind: KindNotFound, Message: "Sender not found"}
	ErrReceiverNotFound = &Error{Kind: KindNotFound, Message: "Receiver not found"}
	ErrContentEmpty     = &Error{Kind: KindValidation, Message: "Content cannot be empty"}
	ErrContentTooLong   = &Error{Kind: KindValidation, Message: "Content cannot exceed 280 characters"}

	ErrPostNotFound       = &Error{Kind: KindNotFound, Message: "Post not found"}
	ErrNotAllowedToDelete = &Error{Kind: KindForbidden, Message: "You are not allowed to delete this post"}

	ErrUsernameTaken      = &Error{Kind: KindConflict, Message: "Username already exists"}
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: "Email already exists"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid username or password"}
	ErrInvalidToken       = &Error{Kind: KindUnauthorized, Message: "Invalid token"}
)

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// internalError wraps a store failure, carrying its message.
func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}

// KindOf classifies err; anything that is not an *Error is internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func isEmptyID(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || id == "00000000-0000-0000-0000-000000000000"
}
