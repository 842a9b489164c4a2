package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. Every error the service layer
// returns to the boundary wraps exactly one kind.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindValidationFailed Kind = "validation_failed"
	KindConflict         Kind = "conflict"
	KindUploadError      Kind = "upload_error"
)

// Sentinel errors, matchable with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrUploadError      = errors.New("upload rejected")
)

// Error is a tagged domain error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindPermissionDenied:
		return ErrPermissionDenied
	case KindValidationFailed:
		return ErrValidationFailed
	case KindConflict:
		return ErrConflict
	case KindUploadError:
		return ErrUploadError
	}
	return nil
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func PermissionDenied(format string, args ...interface{}) error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func ValidationFailed(format string, args ...interface{}) error {
	return &Error{Kind: KindValidationFailed, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Upload(format string, args ...interface{}) error {
	return &Error{Kind: KindUploadError, Message: fmt.Sprintf(format, args...)}
}
