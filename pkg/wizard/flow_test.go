package wizard_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/enform/pkg/adapters/memory"
	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/schema"
	"github.com/aretw0/enform/pkg/snapshot"
	"github.com/aretw0/enform/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityFlow(t *testing.T) (*wizard.Flow, *snapshot.Manager) {
	t.Helper()
	snapshots := snapshot.NewManager(memory.NewStore())
	f, err := wizard.NewFlow([]wizard.Step{
		{
			ID:          "identity",
			Addr:        "/enroll/identity",
			SnapshotKey: wizard.KeyIdentity,
			Schemas:     []*schema.Schema{schema.IdentityDocument()},
		},
		{ID: "confirm", Addr: "/enroll/confirm", Terminal: true},
	}, snapshots)
	require.NoError(t, err)
	f.Start(context.Background())
	return f, snapshots
}

func TestNewFlowRejectsDuplicateIDs(t *testing.T) {
	snapshots := snapshot.NewManager(memory.NewStore())
	_, err := wizard.NewFlow([]wizard.Step{
		{ID: "a"},
		{ID: "a"},
	}, snapshots)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate step ID")
}

func TestGotoUnknownStep(t *testing.T) {
	f, _ := newIdentityFlow(t)
	err := f.Goto(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownStep)
}

func TestSetFieldUnknownPath(t *testing.T) {
	f, _ := newIdentityFlow(t)
	err := f.SetField(context.Background(), "fax", "1234")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestGatePhaseTransitions(t *testing.T) {
	ctx := context.Background()
	f, _ := newIdentityFlow(t)

	assert.Equal(t, domain.PhaseGated, f.Phase(), "empty required fields gate the step")

	require.NoError(t, f.SetField(ctx, "documentType", "passport"))
	assert.Equal(t, domain.PhaseGated, f.Phase())

	require.NoError(t, f.SetField(ctx, "documentNumber", "12345678"))
	assert.Equal(t, domain.PhaseReady, f.Phase())

	// Regressing a field drops the phase back.
	require.NoError(t, f.SetField(ctx, "documentNumber", "AB-123"))
	assert.Equal(t, domain.PhaseGated, f.Phase())
}

func TestForwardBlockedRevealsAllErrors(t *testing.T) {
	ctx := context.Background()
	f, _ := newIdentityFlow(t)

	// Nothing touched: both fields are invalid but no error is visible.
	assert.Empty(t, f.VisibleErrors())
	assert.Len(t, f.Errors(), 2)

	addr, err := f.Forward(ctx)
	assert.ErrorIs(t, err, domain.ErrNavigationBlocked)
	assert.Empty(t, addr)
	assert.Equal(t, "identity", f.Current().ID, "the step does not change")

	// The rejection reveals every error at once, touched or not.
	visible := f.VisibleErrors()
	assert.Len(t, visible, 2)
	assert.NotEmpty(t, visible["documentType"])
	assert.NotEmpty(t, visible["documentNumber"])
}

func TestForwardPersistsAndAdvances(t *testing.T) {
	ctx := context.Background()
	f, snapshots := newIdentityFlow(t)

	require.NoError(t, f.SetField(ctx, "documentType", "passport"))
	require.NoError(t, f.SetField(ctx, "documentNumber", "12345678"))

	addr, err := f.Forward(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/enroll/confirm", addr)
	assert.Equal(t, "confirm", f.Current().ID)

	snap := snapshots.Load(ctx, wizard.KeyIdentity)
	assert.Equal(t, true, snap[domain.SubmittedKey])
	raw, ok := snap["record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "passport", raw["documentType"])
}

func TestForwardOnUnmarkedFinalStepStaysPut(t *testing.T) {
	ctx := context.Background()
	snapshots := snapshot.NewManager(memory.NewStore())
	f, err := wizard.NewFlow([]wizard.Step{
		{
			ID:          "identity",
			Addr:        "/enroll/identity",
			SnapshotKey: wizard.KeyIdentity,
			Schemas:     []*schema.Schema{schema.IdentityDocument()},
		},
	}, snapshots)
	require.NoError(t, err)
	f.Start(ctx)

	// A fully valid record on a last step that was never marked terminal
	// must not advance past the end of the flow.
	require.NoError(t, f.SetField(ctx, "documentType", "passport"))
	require.NoError(t, f.SetField(ctx, "documentNumber", "12345678"))
	require.Equal(t, domain.PhaseReady, f.Phase())

	addr, err := f.Forward(ctx)
	require.NoError(t, err)
	assert.Empty(t, addr)
	assert.Equal(t, "identity", f.Current().ID)
}

func TestForwardOnTerminalStaysPut(t *testing.T) {
	ctx := context.Background()
	f, _ := newIdentityFlow(t)
	require.NoError(t, f.Goto(ctx, "confirm"))

	addr, err := f.Forward(ctx)
	require.NoError(t, err)
	assert.Empty(t, addr)
	assert.Equal(t, "confirm", f.Current().ID)
}

func TestBackIsUnconditional(t *testing.T) {
	ctx := context.Background()
	f, _ := newIdentityFlow(t)
	require.NoError(t, f.Goto(ctx, "confirm"))

	// No validity check on the way back.
	addr := f.Back(ctx)
	assert.Equal(t, "/enroll/identity", addr)
	assert.Equal(t, "identity", f.Current().ID)

	// At the first step Back stays put.
	addr = f.Back(ctx)
	assert.Equal(t, "/enroll/identity", addr)
}

func TestRevealAllDoesNotSurviveStepChange(t *testing.T) {
	ctx := context.Background()
	f, _ := newIdentityFlow(t)

	_, err := f.Forward(ctx)
	require.ErrorIs(t, err, domain.ErrNavigationBlocked)
	require.NotEmpty(t, f.VisibleErrors())

	require.NoError(t, f.Goto(ctx, "confirm"))
	require.NoError(t, f.Goto(ctx, "identity"))
	assert.Empty(t, f.VisibleErrors(), "re-entering a step starts with a fresh tracker")
	assert.Len(t, f.Errors(), 2, "validity itself is unchanged")
}

func TestSnapshotRestoredOnReenter(t *testing.T) {
	ctx := context.Background()
	f, _ := newIdentityFlow(t)

	require.NoError(t, f.SetField(ctx, "documentType", "licence"))
	require.NoError(t, f.Goto(ctx, "confirm"))
	require.NoError(t, f.Goto(ctx, "identity"))

	assert.Equal(t, "licence", f.Value("documentType"))
}

func TestToggleHidesPrefix(t *testing.T) {
	ctx := context.Background()
	snapshots := snapshot.NewManager(memory.NewStore())
	f, err := wizard.NewFlow(wizard.EnrollmentSteps(nil), snapshots)
	require.NoError(t, err)
	require.NoError(t, f.Goto(ctx, "beneficiary"))

	require.NoError(t, f.SetField(ctx, "agent.surname", "yamada"))
	require.NotEmpty(t, f.Errors()["agent.surname"], "romaji fails the kanji rule")
	require.NotEmpty(t, f.VisibleErrors()["agent.surname"])

	require.NoError(t, f.SetToggle(ctx, "sameAsBeneficiary", true))
	assert.True(t, f.ToggleOn("sameAsBeneficiary"))

	for path := range f.Errors() {
		assert.False(t, strings.HasPrefix(path, "agent."),
			"hidden fields are excluded from the gate: %s", path)
	}
	assert.Empty(t, f.VisibleErrors()["agent.surname"], "hiding clears touched state under the prefix")

	// Turning the toggle off brings the agent fields back into the gate.
	require.NoError(t, f.SetToggle(ctx, "sameAsBeneficiary", false))
	assert.NotEmpty(t, f.Errors()["agent.surname"])
}

func TestToggleUnknownFlag(t *testing.T) {
	f, _ := newIdentityFlow(t)
	err := f.SetToggle(context.Background(), "sameAsBeneficiary", true)
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestExternalGateBlocksForward(t *testing.T) {
	ctx := context.Background()
	eligible := false
	snapshots := snapshot.NewManager(memory.NewStore())
	f, err := wizard.NewFlow([]wizard.Step{
		{
			ID:          "plan",
			Addr:        "/enroll/plan",
			SnapshotKey: wizard.KeyPlan,
			Gate:        func() bool { return eligible },
		},
		{ID: "confirm", Addr: "/enroll/confirm", Terminal: true},
	}, snapshots)
	require.NoError(t, err)
	f.Start(ctx)

	// The record is trivially valid (no schema) but the gate says no.
	assert.Equal(t, domain.PhaseGated, f.Phase())
	_, err = f.Forward(ctx)
	assert.ErrorIs(t, err, domain.ErrNavigationBlocked)

	eligible = true
	addr, err := f.Forward(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/enroll/confirm", addr)
}
