// Package tracker decides whether a field's validation error is currently
// shown: a field's error is displayed only once the field has been touched,
// or after a failed forward-navigation attempt reveals every error at once.
package tracker

import (
	"strings"
	"sync"
)

// Tracker records per-field interaction plus the step-scoped reveal-all flag.
// Safe for concurrent use.
type Tracker struct {
	mu        sync.RWMutex
	touched   map[string]struct{}
	revealAll bool
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{
		touched: make(map[string]struct{}),
	}
}

// MarkTouched records that the user has blurred or committed the field.
func (t *Tracker) MarkTouched(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched[path] = struct{}{}
}

// Touched reports whether the field has been interacted with.
func (t *Tracker) Touched(path string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.touched[path]
	return ok
}

// ShouldShow reports whether an error for the path is currently visible.
func (t *Tracker) ShouldShow(path string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.revealAll {
		return true
	}
	_, ok := t.touched[path]
	return ok
}

// RevealAll forces every error visible. Once set it stays set for the
// lifetime of the tracker; a step change starts a fresh tracker.
func (t *Tracker) RevealAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revealAll = true
}

// Revealed reports whether reveal-all is in effect.
func (t *Tracker) Revealed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.revealAll
}

// ClearPrefix forgets every touched path under prefix. Used when a toggle
// hides a whole sub-record so its stale errors cannot resurface.
func (t *Tracker) ClearPrefix(prefix string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for path := range t.touched {
		if strings.HasPrefix(path, prefix) {
			delete(t.touched, path)
		}
	}
}
