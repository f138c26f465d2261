package models

import "time"

// Evaluation is the consolidated output of one advisor run for a symbol:
// indicators, categorical signals, the scenario distribution, and the final
// decision. A pure function of the bar history and configuration.
// Note: no transport (json/http) concerns here.
type Evaluation struct {
	Symbol     string
	AsOf       time.Time // date of the last bar evaluated
	Indicators IndicatorSnapshot
	Signals    SignalState
	Scenarios  ScenarioSet
	Decision   Decision

	// RealizedVol is the annualized volatility of daily log returns over
	// the trailing window, as a fraction. Context only; it does not feed
	// the composite score.
	RealizedVol Float
}
