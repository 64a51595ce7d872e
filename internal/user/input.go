package user

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Input carries the writable user fields exactly as the client sent them.
// A nil pointer means the field was absent from the payload.
type Input struct {
	Name       *string
	Email      *string
	Phone      *string
	Department *string
	Password   *string
	IsActive   *bool

	// fields present in the payload with the wrong JSON type
	invalid ValidationError
}

// ParseInput converts a decoded JSON object into an Input. Unknown keys are
// ignored. Strings are trimmed, except the password; null counts as empty.
// Emails are lowercased.
func ParseInput(raw map[string]json.RawMessage) Input {
	var in Input

	in.Name = in.parseString(raw, FieldName, true)
	in.Email = in.parseString(raw, FieldEmail, true)
	if in.Email != nil {
		*in.Email = NormalizeEmail(*in.Email)
	}
	in.Phone = in.parseString(raw, FieldPhone, true)
	in.Department = in.parseString(raw, FieldDepartment, true)
	in.Password = in.parseString(raw, FieldPassword, false)
	in.IsActive = in.parseBool(raw, FieldIsActive)

	return in
}

func (in *Input) parseString(raw map[string]json.RawMessage, field string, trim bool) *string {
	value, ok := raw[field]
	if !ok {
		return nil
	}

	s := ""
	if !isNull(value) {
		if err := json.Unmarshal(value, &s); err != nil {
			in.invalid.add(field, messages[field][ruleString])
			return nil
		}
	}

	if trim {
		s = strings.TrimSpace(s)
	}

	return &s
}

// parseBool accepts true, false, 1, 0, "1" and "0".
func (in *Input) parseBool(raw map[string]json.RawMessage, field string) *bool {
	value, ok := raw[field]
	if !ok {
		return nil
	}

	var b bool
	switch string(bytes.TrimSpace(value)) {
	case `true`, `1`, `"1"`:
		b = true
	case `false`, `0`, `"0"`:
		b = false
	default:
		in.invalid.add(field, messages[field][ruleBoolean])
		return nil
	}

	return &b
}

// NormalizeEmail is the stored form of an email: trimmed and lowercased, so
// uniqueness does not depend on letter case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNull(value json.RawMessage) bool {
	return string(bytes.TrimSpace(value)) == "null"
}
