package wizard_test

import (
	"context"
	"testing"

	"github.com/aretw0/enform/pkg/adapters/memory"
	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/snapshot"
	"github.com/aretw0/enform/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateToleratesAbsentSteps(t *testing.T) {
	ctx := context.Background()
	snapshots := snapshot.NewManager(memory.NewStore())

	snapshots.Persist(ctx, wizard.KeyCustomer, domain.Snapshot{
		"record": map[string]any{
			"surname":   "山田",
			"givenName": "太郎",
			"email":     "taro@example.com",
		},
		domain.SubmittedKey: true,
	})

	agg := wizard.NewAggregator(snapshots, nil)
	summary := agg.Aggregate(ctx)

	customer := summary.Steps[wizard.KeyCustomer]
	assert.True(t, customer.Present)
	assert.True(t, customer.Submitted)
	assert.Equal(t, "山田", summary.Customer.Surname)
	assert.Equal(t, "taro@example.com", summary.Customer.Email)

	// Steps never visited still appear, unmarked.
	payment := summary.Steps[wizard.KeyPayment]
	assert.False(t, payment.Present)
	assert.False(t, payment.Submitted)
	assert.Empty(t, summary.Payment.Method)
}

func TestAggregateDecodesPlanSelections(t *testing.T) {
	ctx := context.Background()
	snapshots := snapshot.NewManager(memory.NewStore())

	snapshots.Persist(ctx, wizard.KeyPlan, domain.Snapshot{
		"selections": map[string]any{
			"plan":   []string{"standard"},
			"riders": []any{"cancer", "income"},
		},
	})

	summary := wizard.NewAggregator(snapshots, nil).Aggregate(ctx)
	assert.Equal(t, []string{"standard"}, summary.Plan["plan"])
	assert.Equal(t, []string{"cancer", "income"}, summary.Plan["riders"])
}

func TestFinalizeReturnsAggregate(t *testing.T) {
	ctx := context.Background()
	snapshots := snapshot.NewManager(memory.NewStore())

	snapshots.Persist(ctx, wizard.KeyPayment, domain.Snapshot{
		"record": map[string]any{"method": "card", "cardHolder": "ヤマダタロウ"},
	})

	summary := wizard.NewAggregator(snapshots, nil).Finalize(ctx)
	require.True(t, summary.Steps[wizard.KeyPayment].Present)
	assert.Equal(t, "card", summary.Payment.Method)
	assert.Equal(t, "ヤマダタロウ", summary.Payment.CardHolder)
}
