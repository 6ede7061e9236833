package wizard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/enform/internal/logging"
	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/snapshot"
	"github.com/mitchellh/mapstructure"
)

// Placeholder is shown for any step whose snapshot key has never been
// written (first-time visitors skipping ahead).
const Placeholder = "-"

// CustomerSummary is the typed view of the customer/beneficiary blob.
type CustomerSummary struct {
	Surname       string `mapstructure:"surname"`
	GivenName     string `mapstructure:"givenName"`
	KanaSurname   string `mapstructure:"kanaSurname"`
	KanaGivenName string `mapstructure:"kanaGivenName"`
	BirthDate     string `mapstructure:"birthDate"`
	PostalCode    string `mapstructure:"postalCode"`
	Prefecture    string `mapstructure:"prefecture"`
	City          string `mapstructure:"city"`
	AddressLine   string `mapstructure:"addressLine"`
	Email         string `mapstructure:"email"`
}

// PaymentSummary is the typed view of the payment blob.
type PaymentSummary struct {
	Method        string `mapstructure:"method"`
	CardHolder    string `mapstructure:"cardHolder"`
	AccountHolder string `mapstructure:"accountHolder"`
}

// StepSummary is one step's slice of the aggregated confirmation view.
type StepSummary struct {
	Key       string
	Present   bool
	Submitted bool
	Record    map[string]string
}

// Summary aggregates every step's persisted snapshot for the confirmation
// screen.
type Summary struct {
	Steps    map[string]StepSummary
	Customer CustomerSummary
	Payment  PaymentSummary
	Plan     map[string][]string
}

// Aggregator builds and finalizes the confirmation view.
type Aggregator struct {
	snapshots *snapshot.Manager
	logger    *slog.Logger
}

// NewAggregator creates an Aggregator over the snapshot manager. The
// logger doubles as the submission sink: Finalize writes the intended
// payload to it instead of performing any network submission.
func NewAggregator(snapshots *snapshot.Manager, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Aggregator{snapshots: snapshots, logger: logger}
}

// Aggregate reads every known snapshot key and assembles the confirmation
// view. Absent keys are tolerated and reported with Present=false and
// placeholder values.
func (a *Aggregator) Aggregate(ctx context.Context) Summary {
	summary := Summary{
		Steps: make(map[string]StepSummary),
		Plan:  make(map[string][]string),
	}

	for _, key := range []string{KeyCustomer, KeyPayment, KeyPlan, KeyNotice, KeyIdentity} {
		snap := a.snapshots.Load(ctx, key)
		step := StepSummary{
			Key:    key,
			Record: map[string]string{},
		}
		if len(snap) > 0 {
			step.Present = true
			step.Submitted, _ = snap[domain.SubmittedKey].(bool)
			if raw, ok := snap[recordKey].(map[string]any); ok {
				for path, v := range raw {
					if s, ok := v.(string); ok {
						step.Record[path] = s
					}
				}
			}
		}
		summary.Steps[key] = step

		switch key {
		case KeyCustomer:
			decodeRecord(snap, &summary.Customer)
		case KeyPayment:
			decodeRecord(snap, &summary.Payment)
		case KeyPlan:
			decodePlan(snap, summary.Plan)
		}
	}

	return summary
}

// Finalize hands the aggregated record to the logging sink. The engine's
// responsibility ends at producing the complete merged payload; there is
// no network submission.
func (a *Aggregator) Finalize(ctx context.Context) Summary {
	summary := a.Aggregate(ctx)

	present := 0
	for _, step := range summary.Steps {
		if step.Present {
			present++
		}
	}
	a.logger.Info("enrollment finalized",
		"steps_present", present,
		"customer", fmt.Sprintf("%s %s", orPlaceholder(summary.Customer.Surname), orPlaceholder(summary.Customer.GivenName)),
		"payment_method", orPlaceholder(summary.Payment.Method),
		"plan", summary.Plan,
	)
	return summary
}

// decodeRecord decodes snap["record"] into a typed summary struct.
// Decode failures are tolerated: the summary keeps zero values.
func decodeRecord(snap domain.Snapshot, out any) {
	raw, ok := snap[recordKey].(map[string]any)
	if !ok {
		return
	}
	_ = mapstructure.Decode(raw, out)
}

// decodePlan reads the persisted selection export.
func decodePlan(snap domain.Snapshot, out map[string][]string) {
	raw, ok := snap["selections"].(map[string]any)
	if !ok {
		return
	}
	for q, v := range raw {
		switch options := v.(type) {
		case []string:
			out[q] = append(out[q], options...)
		case []any:
			for _, opt := range options {
				if s, ok := opt.(string); ok {
					out[q] = append(out[q], s)
				}
			}
		}
	}
}

func orPlaceholder(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}
