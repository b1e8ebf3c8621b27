package ops

import "fmt"

// Record field names. The wire contract is a fixed-schema record with
// exactly these three fields, in this order.
const (
	FieldCode    = "code"
	FieldID      = "id"
	FieldMessage = "message"
)

// FieldNames lists the record fields in wire order.
var FieldNames = []string{FieldCode, FieldID, FieldMessage}

// Record is the external representation of a Status for management and
// monitoring tooling: the code's wire ordinal as an int32, the id as an
// int32, and the message as a string. Fields are read by name and are
// strictly typed; decoding never coerces.
type Record map[string]any

// Record encodes the status. Encoding cannot fail; an invariant violation
// here would be a programming error, not a recoverable condition.
func (s Status) Record() Record {
	return Record{
		FieldCode:    s.code.Int32(),
		FieldID:      s.id,
		FieldMessage: s.message,
	}
}

// StatusFromRecord decodes a record back into a Status. Each field is read
// by name and its dynamic type strictly validated; a missing field, a value
// of the wrong type, or an out of range code ordinal is rejected with a
// typed error identifying the field. Encode-then-decode reproduces an equal
// Status.
func StatusFromRecord(r Record) (Status, error) {
	ordinal, err := int32Field(r, FieldCode)
	if err != nil {
		return Status{}, err
	}

	id, err := int32Field(r, FieldID)
	if err != nil {
		return Status{}, err
	}

	message, err := stringField(r, FieldMessage)
	if err != nil {
		return Status{}, err
	}

	code, err := CodeFromInt32(ordinal)
	if err != nil {
		return Status{}, fmt.Errorf("field %q: %w", FieldCode, err)
	}

	return newStatus(code, id, message), nil
}

func int32Field(r Record, field string) (int32, error) {
	v, ok := r[field]
	if !ok {
		return 0, ErrMissingField{Field: field}
	}
	i, ok := v.(int32)
	if !ok {
		return 0, ErrInvalidField{Field: field, Want: "int32", Value: v}
	}
	return i, nil
}

func stringField(r Record, field string) (string, error) {
	v, ok := r[field]
	if !ok {
		return "", ErrMissingField{Field: field}
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrInvalidField{Field: field, Want: "string", Value: v}
	}
	return s, nil
}
