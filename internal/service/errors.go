package service

import (
	"errors"
	"strings"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so callers cannot probe which addresses are registered.
var ErrInvalidCredentials = errors.New("invalid email or password")

// FieldError describes one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed or missing input. It carries every
// offending field, not just the first one found.
type ValidationError struct {
	Fields []FieldError
}

// Error joins all field problems into a single human-readable message.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validation accumulates field errors while checking an input.
type validation struct {
	fields []FieldError
}

func (v *validation) add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// err returns a *ValidationError when any field failed, nil otherwise.
func (v *validation) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
