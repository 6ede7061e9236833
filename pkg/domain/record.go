package domain

import "strings"

// Record is the flat field-path to value mapping edited by one step.
// Values are always strings, even for dates and phone segments; composite
// fields (phone, email/password confirmation) span multiple paths and are
// validated together.
type Record map[string]string

// NewRecord creates an empty record.
func NewRecord() Record {
	return make(Record)
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ErrorMap maps a field path to a human-readable validation message.
// Absence of a key means the field currently has no error.
type ErrorMap map[string]string

// Set records a message for a path. Empty messages are ignored so callers
// can pass validator output through unconditionally.
func (e ErrorMap) Set(path, message string) {
	if message == "" {
		return
	}
	e[path] = message
}

// Clear removes any error recorded for the path.
func (e ErrorMap) Clear(path string) {
	delete(e, path)
}

// ClearPrefix removes every error whose path starts with prefix.
// Used when a toggle hides an entire sub-record.
func (e ErrorMap) ClearPrefix(prefix string) {
	for path := range e {
		if strings.HasPrefix(path, prefix) {
			delete(e, path)
		}
	}
}

// Valid reports whether the map holds no errors.
func (e ErrorMap) Valid() bool {
	return len(e) == 0
}

// Merge copies every entry of other into e, overwriting duplicates.
func (e ErrorMap) Merge(other ErrorMap) {
	for path, msg := range other {
		e[path] = msg
	}
}
