// Package errors provides the error taxonomy for the rxmvvm CLI.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrPrecondition indicates a request was rejected before any scan,
	// e.g. an empty name or a missing destination directory.
	ErrPrecondition = errors.New("precondition failed")

	// ErrCollision indicates output names already exist locally or elsewhere
	// in the project.
	ErrCollision = errors.New("name collision")

	// ErrTemplateMissing indicates a required template source is absent.
	ErrTemplateMissing = errors.New("template missing")

	// ErrPermission indicates a file or directory could not be written.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a file, snapshot or directory was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is a file or directory path (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Details lists every contributing item, one per line (optional).
	Details []string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	for _, d := range e.Details {
		b.WriteString("    ")
		b.WriteString(d)
		b.WriteString("\n")
	}

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewPreconditionError creates a precondition error with details.
func NewPreconditionError(message, location, hint string) error {
	return &DetailError{
		Type:     "invalid request",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrPrecondition,
	}
}

// NewCollisionError creates a collision error listing every offending item.
func NewCollisionError(message, location string, details []string, hint string) error {
	return &DetailError{
		Type:     "name collision",
		Message:  message,
		Location: location,
		Details:  details,
		Hint:     hint,
		Cause:    ErrCollision,
	}
}

// NewTemplateMissingError creates an error for an absent template source.
func NewTemplateMissingError(template, location string) error {
	return &DetailError{
		Type:     "template not found",
		Message:  fmt.Sprintf("template file not found: %s", template),
		Location: location,
		Hint:     "Run 'rxmvvm templates reset' to restore the built-in templates.",
		Cause:    ErrTemplateMissing,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewPermissionError creates a permission denied error with details.
func NewPermissionError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "permission denied",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrPermission,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
