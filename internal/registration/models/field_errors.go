package models

import (
	"sort"
	"strings"
)

// FieldErrors maps a field key to a user-facing message. An empty map means
// the data is valid.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (e FieldErrors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Set records msg for field, replacing any earlier message.
func (e FieldErrors) Set(field, msg string) {
	e[field] = msg
}

// Err returns nil when there are no field errors.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Fields returns the messages keyed by field, one message per field.
func (e FieldErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(e))
	for k, msg := range e {
		out[k] = []string{msg}
	}
	return out
}
