package user

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("email already in use")
)

// ValidationError maps a field name to every rule message it failed.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return "validation failed: " + strings.Join(keys, ", ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) has(field string) bool {
	return len(e.Fields[field]) > 0
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}
