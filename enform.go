package enform

import (
	"context"
	"log/slog"

	"github.com/aretw0/enform/internal/logging"
	"github.com/aretw0/enform/pkg/adapters/memory"
	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/observability"
	"github.com/aretw0/enform/pkg/ports"
	"github.com/aretw0/enform/pkg/schema"
	"github.com/aretw0/enform/pkg/selection"
	"github.com/aretw0/enform/pkg/snapshot"
	"github.com/aretw0/enform/pkg/validate"
	"github.com/aretw0/enform/pkg/wizard"
)

// Engine is the high-level entry point for the enform library. It wraps the
// wizard flow, the snapshot manager and the plan-selection board behind a
// simplified API for hosts (CLI, HTTP).
type Engine struct {
	flow       *wizard.Flow
	board      *selection.Board
	snapshots  *snapshot.Manager
	aggregator *wizard.Aggregator
	registry   *schema.Registry

	store     ports.SnapshotStore
	steps     []wizard.Step
	validator *validate.Validator
	scheduler ports.Scheduler
	logger    *slog.Logger
	metrics   *observability.Metrics

	// activeQuestion is the plan-screen question whose shadow set gates
	// forward navigation.
	activeQuestion string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a snapshot backend, bypassing the default in-memory store.
func WithStore(store ports.SnapshotStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithSteps replaces the default enrollment steps.
func WithSteps(steps []wizard.Step) Option {
	return func(e *Engine) {
		e.steps = steps
	}
}

// WithValidator sets a custom validator (e.g. with a fixed clock).
func WithValidator(v *validate.Validator) Option {
	return func(e *Engine) {
		e.validator = v
	}
}

// WithScheduler sets the tick scheduler for selection mirroring.
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// WithRegistry replaces the default schema registry.
func WithRegistry(r *schema.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// New initializes an enform Engine. By default it uses an in-memory
// snapshot store, the built-in enrollment steps and a no-op logger.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		activeQuestion: "plan",
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.metrics == nil {
		eng.metrics = observability.Nop()
	}
	if eng.registry == nil {
		eng.registry = schema.DefaultRegistry()
	}

	eng.snapshots = snapshot.NewManager(eng.store,
		snapshot.WithLogger(eng.logger),
		snapshot.WithMetrics(eng.metrics),
	)

	boardOpts := []selection.Option{selection.WithMetrics(eng.metrics)}
	if eng.scheduler != nil {
		boardOpts = append(boardOpts, selection.WithScheduler(eng.scheduler))
	}
	eng.board = selection.NewBoard(boardOpts...)

	if eng.steps == nil {
		eng.steps = wizard.EnrollmentSteps(eng.planGate)
	}

	flowOpts := []wizard.Option{
		wizard.WithLogger(eng.logger),
		wizard.WithMetrics(eng.metrics),
	}
	if eng.validator != nil {
		flowOpts = append(flowOpts, wizard.WithValidator(eng.validator))
	}
	flow, err := wizard.NewFlow(eng.steps, eng.snapshots, flowOpts...)
	if err != nil {
		return nil, err
	}
	eng.flow = flow
	eng.aggregator = wizard.NewAggregator(eng.snapshots, eng.logger)

	return eng, nil
}

func (e *Engine) planGate() bool {
	return e.board.Eligible(e.activeQuestion)
}

// Start enters the first step.
func (e *Engine) Start(ctx context.Context) {
	e.flow.Start(ctx)
}

// Goto enters a step by ID.
func (e *Engine) Goto(ctx context.Context, stepID string) error {
	return e.flow.Goto(ctx, stepID)
}

// Current returns the active step.
func (e *Engine) Current() wizard.Step {
	return e.flow.Current()
}

// Steps returns the flow's step definitions.
func (e *Engine) Steps() []wizard.Step {
	return e.flow.Steps()
}

// Phase returns the gate state of the active step.
func (e *Engine) Phase() domain.Phase {
	return e.flow.Phase()
}

// SetField updates a field on the active step.
func (e *Engine) SetField(ctx context.Context, path, value string) error {
	return e.flow.SetField(ctx, path, value)
}

// SetToggle flips an auxiliary flag on the active step.
func (e *Engine) SetToggle(ctx context.Context, flag string, on bool) error {
	return e.flow.SetToggle(ctx, flag, on)
}

// ToggleOn reports whether an auxiliary flag is set.
func (e *Engine) ToggleOn(flag string) bool {
	return e.flow.ToggleOn(flag)
}

// Touch marks a field as interacted with.
func (e *Engine) Touch(path string) {
	e.flow.Touch(path)
}

// Value returns a field's current value.
func (e *Engine) Value(path string) string {
	return e.flow.Value(path)
}

// Record returns a copy of the active step's record.
func (e *Engine) Record() domain.Record {
	return e.flow.Record()
}

// Errors returns the full error map the gate reflects.
func (e *Engine) Errors() domain.ErrorMap {
	return e.flow.Errors()
}

// VisibleErrors returns only the currently displayed errors.
func (e *Engine) VisibleErrors() domain.ErrorMap {
	return e.flow.VisibleErrors()
}

// Forward attempts the forward transition, returning the next step's
// address or domain.ErrNavigationBlocked.
func (e *Engine) Forward(ctx context.Context) (string, error) {
	return e.flow.Forward(ctx)
}

// Back performs the unconditional backward transition.
func (e *Engine) Back(ctx context.Context) string {
	return e.flow.Back(ctx)
}

// Toggle applies a plan-selection action to the shadow store and persists
// the exported selection state.
func (e *Engine) Toggle(ctx context.Context, questionID, optionID string, multi bool) {
	e.board.Toggle(questionID, optionID, multi)
	e.persistSelections(ctx)
}

// SelectQuestion sets the plan-screen question whose shadow set gates
// forward navigation.
func (e *Engine) SelectQuestion(questionID string) {
	e.activeQuestion = questionID
}

// IsSelected reads the authoritative shadow store.
func (e *Engine) IsSelected(questionID, optionID string) bool {
	return e.board.IsSelected(questionID, optionID)
}

// Selected returns the chosen options for the question, sorted.
func (e *Engine) Selected(questionID string) []string {
	return e.board.Selected(questionID)
}

// Board returns the selection board.
func (e *Engine) Board() *selection.Board {
	return e.board
}

// Snapshots returns the snapshot manager.
func (e *Engine) Snapshots() *snapshot.Manager {
	return e.snapshots
}

// Registry returns the schema registry.
func (e *Engine) Registry() *schema.Registry {
	return e.registry
}

// Aggregate assembles the confirmation view from every persisted snapshot.
func (e *Engine) Aggregate(ctx context.Context) wizard.Summary {
	return e.aggregator.Aggregate(ctx)
}

// Finalize hands the aggregated record to the logging sink and returns it.
func (e *Engine) Finalize(ctx context.Context) wizard.Summary {
	return e.aggregator.Finalize(ctx)
}

func (e *Engine) persistSelections(ctx context.Context) {
	exported := e.board.Export()
	raw := make(map[string]any, len(exported))
	for q, options := range exported {
		raw[q] = options
	}
	e.snapshots.Persist(ctx, wizard.KeyPlan, domain.Snapshot{"selections": raw})
}
