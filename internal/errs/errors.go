package errs

import (
	"errors"
	"fmt"
)

// Category classifies an error for callers. Categories are stable API.
type Category string

// Error categories
const (
	CategoryNotFound       Category = "NOT_FOUND"
	CategoryNotAllowed     Category = "NOT_ALLOWED"
	CategoryConflict       Category = "CONFLICT"
	CategoryInvalidRequest Category = "INVALID_REQUEST"
	CategoryAccessDenied   Category = "ACCESS_DENIED"
	CategoryInternal       Category = "INTERNAL"
)

// Stable error codes
const (
	CodeNotFound       = 2000
	CodeNotAllowed     = 2001
	CodeConflict       = 2002
	CodeInvalidRequest = 2003
	CodeAccessDenied   = 2004
	CodeInternal       = 2500
)

// Error carries a stable (code, category, message) triple for the caller
type Error struct {
	Code     int
	Category Category
	Message  string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("error %d [%s]: %s", e.Code, e.Category, e.Message)
}

// NotFound reports an absent or deleted entity on a direct fetch
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Category: CategoryNotFound, Message: fmt.Sprintf(format, args...)}
}

// NotAllowed reports a blocked entity hidden from the caller
func NotAllowed(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotAllowed, Category: CategoryNotAllowed, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate edge or duplicate username
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Code: CodeConflict, Category: CategoryConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidRequest reports a malformed parameter, unknown sort key or
// self-referencing edge, rejected before or during the unit of work
func InvalidRequest(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidRequest, Category: CategoryInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// AccessDenied reports a mutation attempted by a non-owner
func AccessDenied(format string, args ...interface{}) *Error {
	return &Error{Code: CodeAccessDenied, Category: CategoryAccessDenied, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure without leaking its detail
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Category: CategoryInternal, Message: err.Error()}
}

// CategoryOf returns the category of err, or CategoryInternal for
// errors outside the taxonomy
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return CategoryInternal
}

// Is reports whether err belongs to the given category
func Is(err error, category Category) bool {
	return CategoryOf(err) == category
}
