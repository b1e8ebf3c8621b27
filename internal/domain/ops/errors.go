package ops

import "fmt"

// ErrUnknownCode indicates a wire ordinal outside the fixed code enumeration.
type ErrUnknownCode struct{ Value int32 }

func (e ErrUnknownCode) Error() string { return fmt.Sprintf("unknown status code ordinal: %d", e.Value) }

// ErrInvalidField indicates a record field whose value has the wrong type.
type ErrInvalidField struct {
	Field string
	Want  string
	Value any
}

func (e ErrInvalidField) Error() string {
	return fmt.Sprintf("field %q: not a %s value: %v", e.Field, e.Want, e.Value)
}

// ErrMissingField indicates a record without one of the required fields.
type ErrMissingField struct{ Field string }

func (e ErrMissingField) Error() string { return fmt.Sprintf("field %q: missing", e.Field) }
