package service

import "StockSage/internal/domain/models"

// The advisor pipeline is pure and synchronous: every stage is a function of
// its inputs with no I/O, clock, or shared state, so no context threads
// through these interfaces.

// SignalEvaluator classifies an indicator snapshot into categorical signals
// and a composite score.
type SignalEvaluator interface {
	Evaluate(snap models.IndicatorSnapshot) models.SignalState
}

// ScenarioGenerator produces the five-way forward price-move distribution
// from the composite score and ATR-derived volatility.
type ScenarioGenerator interface {
	Generate(snap models.IndicatorSnapshot, signals models.SignalState) models.ScenarioSet
}

// DecisionEngine thresholds the signal state into a discrete trading
// decision with a bounded confidence and ordered reasons.
type DecisionEngine interface {
	Decide(signals models.SignalState) models.Decision
}

// WatchlistDetector checks a not-owned symbol against target-price and
// volume conditions on top of the decision output.
type WatchlistDetector interface {
	Check(bars []models.PriceBar, snap models.IndicatorSnapshot, dec models.Decision, symbol string, targetPrice float64, note string) models.WatchAlert
}
