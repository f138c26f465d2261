package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// ScenarioLabel enumerates the closed set of forward price-move hypotheses.
type ScenarioLabel int

const (
	StrongUp ScenarioLabel = iota
	MildUp
	Sideways
	MildDown
	StrongDown
)

func (l ScenarioLabel) String() string {
	switch l {
	case StrongUp:
		return "STRONG_UP"
	case MildUp:
		return "MILD_UP"
	case MildDown:
		return "MILD_DOWN"
	case StrongDown:
		return "STRONG_DOWN"
	default:
		return "SIDEWAYS"
	}
}

func (l ScenarioLabel) MarshalJSON() ([]byte, error) { return json.Marshal(l.String()) }

// Scenario is one labeled, probability-weighted forward price-move hypothesis.
// ExpectedMovePct is signed: positive for up moves, negative for down moves.
type Scenario struct {
	Label           ScenarioLabel
	ExpectedMovePct float64
	Probability     float64
}

// ScenarioSet is an ordered sequence of scenarios whose probabilities sum
// to 1. Order is fixed: STRONG_UP, MILD_UP, SIDEWAYS, MILD_DOWN, STRONG_DOWN.
type ScenarioSet []Scenario

const probTolerance = 1e-6

// Validate checks the sum-to-one invariant and label uniqueness.
func (s ScenarioSet) Validate() error {
	sum := 0.0
	seen := make(map[ScenarioLabel]bool, len(s))
	for _, sc := range s {
		if sc.Probability < 0 {
			return fmt.Errorf("scenario %s has negative probability %f", sc.Label, sc.Probability)
		}
		if seen[sc.Label] {
			return fmt.Errorf("duplicate scenario label %s", sc.Label)
		}
		seen[sc.Label] = true
		sum += sc.Probability
	}
	if math.Abs(sum-1.0) > probTolerance {
		return fmt.Errorf("scenario probabilities sum to %f, want 1", sum)
	}
	return nil
}

// UpsideProbability returns the total probability mass on up moves.
func (s ScenarioSet) UpsideProbability() float64 {
	total := 0.0
	for _, sc := range s {
		if sc.Label == StrongUp || sc.Label == MildUp {
			total += sc.Probability
		}
	}
	return total
}
