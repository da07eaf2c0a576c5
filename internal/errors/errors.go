package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// NotFound reports a missing entity, e.g. NotFound("post").
func NotFound(what string) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf("%s not found", what), StatusCode: http.StatusNotFound}
}

var (
	ErrNotAuthor  = &ErrorWithStatusCode{Message: "only the author can edit this post", StatusCode: http.StatusForbidden}
	ErrSelfFollow = &ErrorWithStatusCode{Message: "cannot follow yourself", StatusCode: http.StatusBadRequest}
	ErrBadCreds   = &ErrorWithStatusCode{Message: "invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrUserExists = &ErrorWithStatusCode{Message: "a user with that username already exists", StatusCode: http.StatusConflict}
)

func IsNotFound(err error) bool {
	return HasStatus(err, http.StatusNotFound)
}

// HasStatus reports whether err wraps an ErrorWithStatusCode with the given code.
func HasStatus(err error, code int) bool {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode == code
	}
	return false
}

// StatusCode returns the wrapped status code or 500.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ValidationError maps form field names to human readable messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
