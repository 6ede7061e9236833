package selection_test

import (
	"testing"

	"github.com/aretw0/enform/pkg/ports"
	"github.com/aretw0/enform/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler queues mirror work so tests control the tick boundary.
type manualScheduler struct {
	queue []func()
}

func (m *manualScheduler) Schedule(fn func()) {
	m.queue = append(m.queue, fn)
}

func (m *manualScheduler) tick() {
	queue := m.queue
	m.queue = nil
	for _, fn := range queue {
		fn()
	}
}

func newBoard() (*selection.Board, *manualScheduler) {
	sched := &manualScheduler{}
	return selection.NewBoard(selection.WithScheduler(sched)), sched
}

var _ ports.Scheduler = (*manualScheduler)(nil)

func TestSingleChoiceReplaces(t *testing.T) {
	b, _ := newBoard()

	b.Toggle("plan", "economy", false)
	assert.True(t, b.IsSelected("plan", "economy"))

	// Selecting a second option removes the first from the shadow set
	// immediately, before any render-state read would reflect it.
	b.Toggle("plan", "premium", false)
	assert.False(t, b.IsSelected("plan", "economy"))
	assert.True(t, b.IsSelected("plan", "premium"))
	assert.Equal(t, []string{"premium"}, b.Selected("plan"))
}

func TestSingleChoiceReselectIsIdempotent(t *testing.T) {
	b, _ := newBoard()

	b.Toggle("plan", "standard", false)
	b.Toggle("plan", "standard", false)

	assert.True(t, b.IsSelected("plan", "standard"), "re-selection keeps the option selected")
	assert.Equal(t, []string{"standard"}, b.Selected("plan"))
}

func TestMultiChoiceFlipsMembership(t *testing.T) {
	b, _ := newBoard()

	b.Toggle("riders", "cancer", true)
	b.Toggle("riders", "hospital", true)
	assert.Equal(t, []string{"cancer", "hospital"}, b.Selected("riders"))

	b.Toggle("riders", "cancer", true)
	assert.Equal(t, []string{"hospital"}, b.Selected("riders"))
	assert.False(t, b.IsSelected("riders", "cancer"))
}

func TestRenderCopyLagsOneTick(t *testing.T) {
	b, sched := newBoard()

	b.Toggle("plan", "economy", false)

	// Shadow is current; render still empty until the tick runs.
	assert.True(t, b.IsSelected("plan", "economy"))
	assert.Empty(t, b.Rendered("plan"))

	sched.tick()
	assert.Equal(t, []string{"economy"}, b.Rendered("plan"))
}

func TestRapidTogglesCoalesce(t *testing.T) {
	b, sched := newBoard()

	// Multiple toggles before the tick: one scheduled refresh covers all.
	b.Toggle("riders", "cancer", true)
	b.Toggle("riders", "hospital", true)
	b.Toggle("riders", "cancer", true)
	require.Len(t, sched.queue, 1, "refreshes coalesce")

	sched.tick()
	assert.Equal(t, b.Selected("riders"), b.Rendered("riders"), "render converges to shadow when idle")
	assert.Equal(t, []string{"hospital"}, b.Rendered("riders"))
}

func TestEligibleRequiresNonEmptyShadow(t *testing.T) {
	b, _ := newBoard()

	assert.False(t, b.Eligible("plan"))
	b.Toggle("plan", "economy", false)
	assert.True(t, b.Eligible("plan"))

	b.Toggle("riders", "cancer", true)
	b.Toggle("riders", "cancer", true)
	assert.False(t, b.Eligible("riders"), "flipping off empties the multi set")
}

func TestSubscribersNotifiedAfterFlush(t *testing.T) {
	b, sched := newBoard()

	notified := 0
	b.Subscribe(func() { notified++ })

	b.Toggle("plan", "economy", false)
	assert.Zero(t, notified)

	sched.tick()
	assert.Equal(t, 1, notified)
}

func TestExportImportRoundTrip(t *testing.T) {
	b, _ := newBoard()

	b.Toggle("plan", "standard", false)
	b.Toggle("riders", "cancer", true)
	b.Toggle("riders", "income", true)

	state := b.Export()
	assert.Equal(t, map[string][]string{
		"plan":   {"standard"},
		"riders": {"cancer", "income"},
	}, state)

	restored, restoredSched := newBoard()
	restored.Import(state)
	assert.True(t, restored.IsSelected("plan", "standard"))
	assert.True(t, restored.IsSelected("riders", "income"))

	restoredSched.tick()
	assert.Equal(t, []string{"cancer", "income"}, restored.Rendered("riders"))
}
