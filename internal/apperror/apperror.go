// Package apperror defines the error kinds shared by every layer.
//
// Repositories and upstream clients return these; handlers translate them
// into HTTP status codes with errors.Is. Nothing in here knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrUpstream   = errors.New("upstream error")
)

type AppError struct {
	Err     error  // sentinel kind, matched with errors.Is
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Cause   error  // Optional: underlying driver or transport error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause, so errors.Is matches either.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports a value that is missing or has the wrong shape.
// field names it the way it appears on the wire.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation on resource.field = value.
func Conflict(resource, field, value string, cause error) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s with %s %q already exists", resource, field, value),
		Field:   field,
		Cause:   cause,
	}
}

// Upstream wraps a failed call to a third-party API. service names the API
// ("randomuser", "catalog") so log lines stay readable. When cause is itself
// an *AppError (a ValidationFailed on the response body), its Field is
// carried up so the outer error still names it.
func Upstream(service string, cause error) *AppError {
	e := &AppError{
		Err:     ErrUpstream,
		Message: fmt.Sprintf("%s request failed", service),
		Cause:   cause,
	}
	var inner *AppError
	if errors.As(cause, &inner) {
		e.Field = inner.Field
	}
	return e
}
