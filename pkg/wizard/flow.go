package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/enform/internal/logging"
	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/observability"
	"github.com/aretw0/enform/pkg/snapshot"
	"github.com/aretw0/enform/pkg/tracker"
	"github.com/aretw0/enform/pkg/validate"
)

// Flow is the wizard navigator. It holds the ordered steps and the runtime
// state of the step currently being edited.
type Flow struct {
	steps []Step
	index map[string]int

	validator *validate.Validator
	snapshots *snapshot.Manager
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu      sync.Mutex
	current int
	record  domain.Record
	errs    domain.ErrorMap
	touched *tracker.Tracker
	phase   domain.Phase
	toggles map[string]bool
}

// Option configures the Flow.
type Option func(*Flow)

// WithValidator injects the validator (e.g. with a fixed clock in tests).
func WithValidator(v *validate.Validator) Option {
	return func(f *Flow) {
		f.validator = v
	}
}

// WithLogger configures a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithMetrics configures Prometheus counters.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(f *Flow) {
		f.metrics = metrics
	}
}

// NewFlow creates a flow over the given steps and snapshot manager.
func NewFlow(steps []Step, snapshots *snapshot.Manager, opts ...Option) (*Flow, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("flow requires at least one step")
	}

	f := &Flow{
		steps:     steps,
		index:     make(map[string]int, len(steps)),
		snapshots: snapshots,
		phase:     domain.PhaseEditing,
	}
	for i, step := range steps {
		if step.ID == "" {
			return nil, fmt.Errorf("step %d has empty ID", i)
		}
		if _, dup := f.index[step.ID]; dup {
			return nil, fmt.Errorf("duplicate step ID %q", step.ID)
		}
		f.index[step.ID] = i
	}

	for _, opt := range opts {
		opt(f)
	}
	if f.validator == nil {
		f.validator = validate.New()
	}
	if f.logger == nil {
		f.logger = logging.NewNop()
	}
	if f.metrics == nil {
		f.metrics = observability.Nop()
	}
	return f, nil
}

// Start enters the first step.
func (f *Flow) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enter(ctx, 0)
}

// Goto enters the step with the given ID, restoring its persisted snapshot.
func (f *Flow) Goto(ctx context.Context, stepID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i, ok := f.index[stepID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownStep, stepID)
	}
	f.enter(ctx, i)
	return nil
}

// enter loads the step's snapshot into fresh runtime state. The tracker is
// always new: reveal-all and touched state never survive a step change.
func (f *Flow) enter(ctx context.Context, i int) {
	f.current = i
	f.record = domain.NewRecord()
	f.toggles = make(map[string]bool)
	f.touched = tracker.New()

	step := f.steps[i]
	if step.SnapshotKey != "" {
		snap := f.snapshots.Load(ctx, step.SnapshotKey)
		if raw, ok := snap[recordKey].(map[string]any); ok {
			for path, v := range raw {
				if s, ok := v.(string); ok {
					f.record[path] = s
				}
			}
		}
		for _, t := range step.Toggles {
			if on, ok := snap[t.Flag].(bool); ok {
				f.toggles[t.Flag] = on
			}
		}
	}

	f.refreshGate()
	f.logger.Debug("entered step", "step", step.ID, "phase", f.phase)
}

// Current returns the active step definition.
func (f *Flow) Current() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps[f.current]
}

// Phase returns the gate state of the active step.
func (f *Flow) Phase() domain.Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Value returns the current value of a field.
func (f *Flow) Value(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record[path]
}

// Record returns a copy of the step's record.
func (f *Flow) Record() domain.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record.Clone()
}

// ToggleOn reports whether the step flag is set.
func (f *Flow) ToggleOn(flag string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.toggles[flag]
}

// SetField updates a field value, marks it touched, revalidates the whole
// record, persists the updated record and recomputes the gate. A later
// mutation's validation result always supersedes an earlier one for the
// same path because the error map is rebuilt from the current record.
func (f *Flow) SetField(ctx context.Context, path, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	step := f.steps[f.current]
	if !f.knownPath(step, path) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownField, path)
	}

	f.record[path] = value
	f.touched.MarkTouched(path)
	f.refreshGate()
	f.persistRecord(ctx, nil)
	return nil
}

// SetToggle flips an auxiliary step flag. Turning on a hiding toggle
// clears touched state and errors for every path under the hidden prefix
// so stale errors cannot resurface for fields the user can no longer see.
func (f *Flow) SetToggle(ctx context.Context, flag string, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	step := f.steps[f.current]
	var toggle *Toggle
	for i := range step.Toggles {
		if step.Toggles[i].Flag == flag {
			toggle = &step.Toggles[i]
			break
		}
	}
	if toggle == nil {
		return fmt.Errorf("%w: toggle %s", domain.ErrUnknownField, flag)
	}

	f.toggles[flag] = on
	if on && toggle.HidesPrefix != "" {
		f.touched.ClearPrefix(toggle.HidesPrefix)
	}

	f.refreshGate()
	f.persistRecord(ctx, domain.Snapshot{flag: on})
	return nil
}

// Touch marks a field as interacted with without changing its value.
func (f *Flow) Touch(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched.MarkTouched(path)
}

// Errors returns the full error map for the current record, regardless of
// visibility. This is what the gate reflects.
func (f *Flow) Errors() domain.ErrorMap {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(domain.ErrorMap, len(f.errs))
	out.Merge(f.errs)
	return out
}

// VisibleErrors returns only the errors currently shown: those on touched
// fields, or all of them once reveal-all is in effect.
func (f *Flow) VisibleErrors() domain.ErrorMap {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(domain.ErrorMap)
	for path, msg := range f.errs {
		if f.touched.ShouldShow(path) {
			out[path] = msg
		}
	}
	return out
}

// Forward attempts the forward transition. On validation failure it sets
// reveal-all, keeps the step and returns domain.ErrNavigationBlocked; on
// success it persists the record plus a submission marker, enters the next
// step and returns its address. The terminal step, and the last step of a
// flow even when not marked terminal, stay put and return "".
func (f *Flow) Forward(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	step := f.steps[f.current]
	if step.Terminal || f.current == len(f.steps)-1 {
		return "", nil
	}

	f.refreshGate()
	if f.phase != domain.PhaseReady {
		f.touched.RevealAll()
		f.metrics.GateRejections.Inc()
		for path := range f.errs {
			f.metrics.ValidationFailures.WithLabelValues(path).Inc()
		}
		f.logger.Debug("forward navigation blocked",
			"step", step.ID,
			"invalid_fields", len(f.errs),
		)
		return "", domain.ErrNavigationBlocked
	}

	f.persistRecord(ctx, domain.Snapshot{domain.SubmittedKey: true})
	f.logger.Info("step completed", "step", step.ID)

	next := f.current + 1
	f.enter(ctx, next)
	return f.steps[next].Addr, nil
}

// Back performs the unconditional backward transition and returns the
// previous step's address. At the first step it stays put.
func (f *Flow) Back(ctx context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == 0 {
		return f.steps[0].Addr
	}
	prev := f.current - 1
	f.enter(ctx, prev)
	return f.steps[prev].Addr
}

// refreshGate recomputes the error map from the full current record and
// derives the phase. Visibility never plays into this: the gate reflects
// true validity even for untouched fields.
func (f *Flow) refreshGate() {
	step := f.steps[f.current]

	errs := make(domain.ErrorMap)
	for _, s := range step.Schemas {
		errs.Merge(f.validator.Record(s, f.record))
	}
	for _, prefix := range f.hiddenPrefixes(step) {
		errs.ClearPrefix(prefix)
	}
	f.errs = errs

	valid := errs.Valid()
	if valid && step.Gate != nil {
		valid = step.Gate()
	}
	if valid {
		f.phase = domain.PhaseReady
	} else {
		f.phase = domain.PhaseGated
	}
}

func (f *Flow) hiddenPrefixes(step Step) []string {
	var prefixes []string
	for _, t := range step.Toggles {
		if t.HidesPrefix != "" && f.toggles[t.Flag] {
			prefixes = append(prefixes, t.HidesPrefix)
		}
	}
	return prefixes
}

// persistRecord writes the current record (and any extra keys) under the
// step's snapshot key. Extra keys ride along in the same partial update.
func (f *Flow) persistRecord(ctx context.Context, extra domain.Snapshot) {
	step := f.steps[f.current]
	if step.SnapshotKey == "" {
		return
	}

	raw := make(map[string]any, len(f.record))
	for path, v := range f.record {
		raw[path] = v
	}
	partial := domain.Snapshot{recordKey: raw}
	for k, v := range extra {
		partial[k] = v
	}
	f.snapshots.Persist(ctx, step.SnapshotKey, partial)
}

func (f *Flow) knownPath(step Step, path string) bool {
	for _, s := range step.Schemas {
		if s.Has(path) {
			return true
		}
	}
	return false
}

// Steps returns the flow's step definitions in order.
func (f *Flow) Steps() []Step {
	return f.steps
}

// Snapshots returns the snapshot manager, for the confirmation aggregator.
func (f *Flow) Snapshots() *snapshot.Manager {
	return f.snapshots
}
