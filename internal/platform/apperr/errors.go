// Package apperr define la taxonomía de errores que cruza capas
// (storage -> domain -> http).
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrBadRequest      = errors.New("bad request")
	ErrConflict        = errors.New("conflict")
)

// Detail es un error con mensaje público propio; Kind decide el status HTTP.
type Detail struct {
	Kind error
	Msg  string
}

func (e *Detail) Error() string { return e.Msg }
func (e *Detail) Unwrap() error { return e.Kind }

func WithDetail(kind error, msg string) error {
	return &Detail{Kind: kind, Msg: msg}
}

// NotFound devuelve "<Entity> not found" (ej. "Pet not found").
func NotFound(entity string) error {
	return &Detail{Kind: ErrNotFound, Msg: entity + " not found"}
}

// ValidationError acumula errores por campo. Siempre es ErrInvalidInput.
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
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError de un solo campo.
func Invalid(field, reason string) error {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
