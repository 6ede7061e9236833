package wizard

import (
	"github.com/aretw0/enform/pkg/schema"
)

// Toggle declares an auxiliary boolean flag on a step that, when set,
// hides the sub-record under HidesPrefix. Hiding clears the touched set
// and the error map for every path under the prefix and excludes those
// fields from the gate.
type Toggle struct {
	Flag        string
	HidesPrefix string
}

// Step is one screen of the enrollment sequence. Steps are statically
// ordered; the flow never inserts or removes them at runtime.
type Step struct {
	// ID identifies the step within the flow.
	ID string

	// Title and Description (markdown) feed the presentation layer.
	Title       string
	Description string

	// Addr is the step's navigation address. Addresses are opaque to the
	// engine and owned by the routing collaborator.
	Addr string

	// SnapshotKey scopes the persisted snapshot. Steps may share a key
	// (customer and beneficiary write to the same blob).
	SnapshotKey string

	// Schemas are the record schemas validated on this step.
	Schemas []*schema.Schema

	// Toggles are the step's sub-record visibility flags.
	Toggles []Toggle

	// Gate is an extra predicate ANDed with record validity, for screens
	// whose eligibility is not record-driven (plan selection).
	Gate func() bool

	// Terminal marks the confirmation step: it aggregates every prior
	// snapshot and has no forward gate of its own.
	Terminal bool
}

// Snapshot keys for the enrollment flow, one per logical step blob.
const (
	KeyCustomer = "enroll_customer"
	KeyPayment  = "enroll_payment"
	KeyPlan     = "enroll_plan"
	KeyNotice   = "enroll_notice"
	KeyIdentity = "enroll_identity"
)

// recordKey is the snapshot key the step's record lives under.
const recordKey = "record"

// EnrollmentSteps returns the standard flow: customer, beneficiary/agent,
// payment, plan selection, notice, identity, confirmation. planGate is the
// plan step's eligibility predicate (typically selection.Board.Eligible
// closed over the active question); nil leaves the plan step record-gated
// only.
func EnrollmentSteps(planGate func() bool) []Step {
	return []Step{
		{
			ID:          "customer",
			Title:       "Customer information",
			Description: "Enter the contractor's name, address and contact details.",
			Addr:        "/enroll/customer",
			SnapshotKey: KeyCustomer,
			Schemas:     []*schema.Schema{schema.CustomerInfo()},
		},
		{
			ID:          "beneficiary",
			Title:       "Beneficiary and agent",
			Description: "Enter the beneficiary, and the agent unless it is the same person.",
			Addr:        "/enroll/beneficiary",
			SnapshotKey: KeyCustomer,
			Schemas: []*schema.Schema{
				schema.Person().WithPrefix("beneficiary."),
				schema.Person().WithPrefix("agent."),
			},
			Toggles: []Toggle{
				{Flag: "sameAsBeneficiary", HidesPrefix: "agent."},
			},
		},
		{
			ID:          "payment",
			Title:       "Payment method",
			Description: "Choose how premiums are paid.",
			Addr:        "/enroll/payment",
			SnapshotKey: KeyPayment,
			Schemas:     []*schema.Schema{schema.PaymentMethod()},
		},
		{
			ID:          "plan",
			Title:       "Plan selection",
			Description: "Pick a plan and its riders.",
			Addr:        "/enroll/plan",
			SnapshotKey: KeyPlan,
			Gate:        planGate,
		},
		{
			ID:          "notice",
			Title:       "Health notice",
			Description: "Answer the health declaration.",
			Addr:        "/enroll/notice",
			SnapshotKey: KeyNotice,
			Schemas:     []*schema.Schema{schema.NoticeDeclaration()},
		},
		{
			ID:          "identity",
			Title:       "Identity verification",
			Description: "Provide an identity document.",
			Addr:        "/enroll/identity",
			SnapshotKey: KeyIdentity,
			Schemas:     []*schema.Schema{schema.IdentityDocument()},
		},
		{
			ID:          "confirm",
			Title:       "Confirmation",
			Description: "Review everything before submitting.",
			Addr:        "/enroll/confirm",
			Terminal:    true,
		},
	}
}
