package errs

import (
	"fmt"
	"strings"
)

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", e.Field, e.Message))
}

// ValidationErrors collects field-level failures so a request can report every
// invalid field at once instead of failing on the first one. An empty list is
// not an error; callers use AsError to convert.
type ValidationErrors struct {
	fields []FieldError
}

// NewValidationErrors creates an empty collector.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add appends one field-level failure.
func (v *ValidationErrors) Add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// AddRequired appends a missing-value failure for field.
func (v *ValidationErrors) AddRequired(field string) {
	v.Add(field, ErrValueIsRequired.Error())
}

// Merge appends all failures from another collector.
func (v *ValidationErrors) Merge(other *ValidationErrors) {
	if other == nil {
		return
	}
	v.fields = append(v.fields, other.fields...)
}

// Fields returns the collected failures in insertion order.
func (v *ValidationErrors) Fields() []FieldError {
	return v.fields
}

// HasErrors reports whether any failure was collected.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.fields) > 0
}

// AsError returns v when at least one failure was collected, nil otherwise.
func (v *ValidationErrors) AsError() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

func (v *ValidationErrors) Error() string {
	msgs := make([]string, len(v.fields))
	for i, f := range v.fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v *ValidationErrors) Unwrap() error {
	return ErrValueIsInvalid
}
