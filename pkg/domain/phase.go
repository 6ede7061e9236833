package domain

// Phase describes the gate state of a step.
type Phase string

const (
	// PhaseEditing is the initial state before any validation has run.
	PhaseEditing Phase = "editing"
	// PhaseGated means at least one required field is invalid; forward navigation is blocked.
	PhaseGated Phase = "gated"
	// PhaseReady means the whole record validates; forward navigation is permitted.
	PhaseReady Phase = "ready"
)

// SubmittedKey is the auxiliary snapshot key written when a step's forward
// transition succeeds. The confirmation step treats its presence as "this
// step was completed at least once".
const SubmittedKey = "submitted"
