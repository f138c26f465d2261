package models

import "encoding/json"

// Action is the discrete trading decision.
type Action int

const (
	ActionHold Action = iota
	ActionAccumulate
	ActionLiquidate
)

func (a Action) String() string {
	switch a {
	case ActionAccumulate:
		return "ACCUMULATE"
	case ActionLiquidate:
		return "LIQUIDATE"
	default:
		return "HOLD"
	}
}

func (a Action) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

// Decision is the terminal output of one evaluation. Created fresh per
// request, immutable once returned, never persisted here.
type Decision struct {
	Action Action

	// Confidence is bounded to [30, 90] so it never reads as certainty in
	// either direction. Insufficient history pins it to exactly 30.
	Confidence int

	// Reasons lists the signals that drove the decision, ordered by
	// contribution weight descending.
	Reasons []string
}

// ReasonInsufficientData is the fixed reason attached to the guarded HOLD
// returned when history is shorter than the long trend window. Callers
// presenting results should treat it as "no actionable signal".
const ReasonInsufficientData = "insufficient history for trend indicators"
