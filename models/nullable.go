package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a partial-update field with three states: absent (leave the
// stored value alone), null (clear it) and a concrete value.
//
// Absent fields are dropped from JSON output through the omitzero tag option,
// which consults IsZero.
type Nullable[T any] struct {
	value T
	valid bool
	set   bool
}

// Value returns a present, non-null field.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, valid: true, set: true}
}

// Null returns a present field that clears the stored value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true}
}

// IsSet reports whether the field is part of the payload at all.
func (n Nullable[T]) IsSet() bool { return n.set }

// IsNull reports whether the field is present and explicitly null.
func (n Nullable[T]) IsNull() bool { return n.set && !n.valid }

// Get returns the value and whether it is a present, non-null value.
func (n Nullable[T]) Get() (T, bool) { return n.value, n.valid }

func (n Nullable[T]) IsZero() bool { return !n.set }

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.value = zero
		n.valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.value); err != nil {
		return err
	}
	n.valid = true
	return nil
}
