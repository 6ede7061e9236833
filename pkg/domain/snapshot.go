package domain

// Snapshot is the JSON-serializable state persisted for one step: one or
// more records plus auxiliary flags (e.g. "sameAsBeneficiary"). It lives
// under a stable step key for the lifetime of the store and is never
// deleted by the engine.
type Snapshot map[string]any

// NewSnapshot creates an empty snapshot.
func NewSnapshot() Snapshot {
	return make(Snapshot)
}

// Merge shallow-merges partial over a copy of s and returns the result.
// Keys absent from partial survive untouched; partial writes never erase
// unrelated keys.
func (s Snapshot) Merge(partial Snapshot) Snapshot {
	out := make(Snapshot, len(s)+len(partial))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range partial {
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
