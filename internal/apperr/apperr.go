// Package apperr defines the application-wide error taxonomy. Handlers map
// these onto HTTP responses; repositories and services produce them so the
// transport layer never inspects driver errors directly.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a form field name to a user-facing message.
type FieldErrors map[string]string

// ValidationError reports one or more invalid form fields. It is surfaced
// inline next to the offending fields, not as an error page.
type ValidationError struct {
	Fields FieldErrors
}

func NewValidation() *ValidationError {
	return &ValidationError{Fields: FieldErrors{}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = message
	return e
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func NotFound(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s #%d not found", e.Resource, e.ID)
}

// ConflictError reports a write blocked by a mandatory reference still in
// use, e.g. deleting a payment method that existing orders point at.
type ConflictError struct {
	Reason string
}

func Conflict(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// DependencyUnavailableError reports that an optional collaborator (the PDF
// renderer and its font resources) failed; callers show a flash message and
// redirect instead of rendering a failure page.
type DependencyUnavailableError struct {
	Dependency string
	Err        error
}

func DependencyUnavailable(dependency string, err error) *DependencyUnavailableError {
	return &DependencyUnavailableError{Dependency: dependency, Err: err}
}

func (e *DependencyUnavailableError) Error() string {
	return fmt.Sprintf("dependency %s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyUnavailableError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidation returns the typed validation error when err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsDependencyUnavailable(err error) bool {
	var de *DependencyUnavailableError
	return errors.As(err, &de)
}
