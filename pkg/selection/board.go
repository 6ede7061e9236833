package selection

import (
	"sort"
	"sync"

	"github.com/aretw0/enform/pkg/observability"
	"github.com/aretw0/enform/pkg/ports"
)

type optionSet map[string]struct{}

func (s optionSet) clone() optionSet {
	out := make(optionSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Board maintains the selection state for a multi-question selector.
// Safe for concurrent use.
type Board struct {
	mu     sync.Mutex
	shadow map[string]optionSet
	render map[string]optionSet

	scheduler ports.Scheduler
	pending   bool
	subs      []func()

	metrics *observability.Metrics
}

// Option configures the Board.
type Option func(*Board)

// WithScheduler injects the tick scheduler used to mirror the shadow into
// render state. The default runs the mirror on a fresh goroutine.
func WithScheduler(s ports.Scheduler) Option {
	return func(b *Board) {
		b.scheduler = s
	}
}

// WithMetrics configures Prometheus counters.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(b *Board) {
		b.metrics = metrics
	}
}

// NewBoard creates an empty board.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		shadow: make(map[string]optionSet),
		render: make(map[string]optionSet),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.scheduler == nil {
		b.scheduler = ports.SchedulerFunc(func(fn func()) { go fn() })
	}
	if b.metrics == nil {
		b.metrics = observability.Nop()
	}
	return b
}

// Toggle applies a user action to the shadow store synchronously, then
// schedules a render refresh. For a single-choice question the option
// replaces the whole set (re-selecting the current option keeps it
// selected); for a multi-choice question membership is flipped.
func (b *Board) Toggle(questionID, optionID string, multi bool) {
	b.mu.Lock()

	set := b.shadow[questionID]
	if set == nil {
		set = make(optionSet)
		b.shadow[questionID] = set
	}

	if multi {
		if _, on := set[optionID]; on {
			delete(set, optionID)
		} else {
			set[optionID] = struct{}{}
		}
	} else {
		b.shadow[questionID] = optionSet{optionID: {}}
	}

	b.metrics.SelectionToggles.Inc()
	schedule := !b.pending
	b.pending = true
	b.mu.Unlock()

	// One refresh covers any number of toggles queued before it runs.
	if schedule {
		b.scheduler.Schedule(b.Flush)
	}
}

// IsSelected reports whether the option is currently chosen. It reads the
// shadow store, never the render copy, so the answer is always current.
func (b *Board) IsSelected(questionID, optionID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, on := b.shadow[questionID][optionID]
	return on
}

// Selected returns the chosen options for the question, sorted.
func (b *Board) Selected(questionID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sortedKeys(b.shadow[questionID])
}

// Rendered returns the display copy for the question, sorted. It may lag
// the shadow by one scheduler tick and must not drive correctness.
func (b *Board) Rendered(questionID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sortedKeys(b.render[questionID])
}

// Eligible reports whether the question can advance its sub-flow: the
// shadow set must be non-empty.
func (b *Board) Eligible(questionID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.shadow[questionID]) > 0
}

// Subscribe registers a callback invoked after each render refresh.
func (b *Board) Subscribe(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Flush mirrors the shadow into the render copy and notifies subscribers.
// Normally invoked by the scheduler; callers may force it to reach the
// idle, converged state deterministically.
func (b *Board) Flush() {
	b.mu.Lock()
	for q, set := range b.shadow {
		b.render[q] = set.clone()
	}
	for q := range b.render {
		if _, ok := b.shadow[q]; !ok {
			delete(b.render, q)
		}
	}
	b.pending = false
	subs := make([]func(), len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Export returns the shadow state as a plain map for persistence.
func (b *Board) Export() map[string][]string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string][]string, len(b.shadow))
	for q, set := range b.shadow {
		out[q] = sortedKeys(set)
	}
	return out
}

// Import replaces the shadow state from a persisted map and schedules a
// render refresh.
func (b *Board) Import(state map[string][]string) {
	b.mu.Lock()
	b.shadow = make(map[string]optionSet, len(state))
	for q, options := range state {
		set := make(optionSet, len(options))
		for _, opt := range options {
			set[opt] = struct{}{}
		}
		b.shadow[q] = set
	}
	schedule := !b.pending
	b.pending = true
	b.mu.Unlock()

	if schedule {
		b.scheduler.Schedule(b.Flush)
	}
}

func sortedKeys(set optionSet) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
