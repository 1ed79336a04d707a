package sar

import "encoding/json"

// Field is an optional value in a partial update. Set is true when the caller
// supplied the field, even if the value is null, so "clear" and "leave alone"
// stay distinguishable.
type Field[T any] struct {
	Set   bool
	Value T
}

// Some returns a set field holding v
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the field as set whenever its key is present
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes the value, or null when unset
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// apply writes the value into dst when the field is set
func (f Field[T]) apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}

// mapText runs fn over a set string field
func mapText(f *Field[string], fn func(string) string) {
	if f.Set {
		f.Value = fn(f.Value)
	}
}

// mapOptionalText runs fn over a set, non-null string field
func mapOptionalText(f *Field[*string], fn func(string) string) {
	if f.Set && f.Value != nil {
		v := fn(*f.Value)
		f.Value = &v
	}
}
