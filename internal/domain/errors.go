package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is a uniqueness violation on a natural key (name, good and price).
	ErrDuplicate = errors.New("already exists")
	// ErrDuplicateID is a primary key collision on an explicitly chosen id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrAllocationExhausted means every attempt to draw an anonymous order id collided.
	ErrAllocationExhausted = errors.New("order id allocation exhausted")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	NonFieldErrors = "non_field_errors"

	MsgOffersUnavailable = "Some offers are not available anymore. Please refresh."
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}
