// Package patch modela campos opcionales de payloads PUT/PATCH.
//
// Un Field distingue tres estados:
//   - no enviado (Present == false): no tocar
//   - enviado como null (Present == true, Value == nil): limpiar
//   - enviado con valor (Present == true, Value != nil): asignar
package patch

import "encoding/json"

type Field[T any] struct {
	Present bool
	Value   *T
}

// UnmarshalJSON solo se invoca cuando la key existe en el body (incluido null).
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Present = true
	if string(b) == "null" {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// Set construye un Field presente con valor (útil en tests y seeds).
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: &v}
}

// Null construye un Field presente con null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true}
}

// IsNull indica que el campo vino explícitamente como null.
func (f Field[T]) IsNull() bool {
	return f.Present && f.Value == nil
}

// Apply copia el valor sobre dst si el campo está presente.
// dst es un puntero a campo nullable del modelo.
func (f Field[T]) Apply(dst **T) {
	if !f.Present {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	v := *f.Value
	*dst = &v
}
