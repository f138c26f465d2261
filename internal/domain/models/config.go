package models

import (
	"fmt"
	"math"
)

// ScoreWeights distributes the composite score across signal categories.
// They must sum to 1 so the composite stays in [-1, 1].
type ScoreWeights struct {
	LongTrend  float64
	ShortTrend float64
	RSI        float64
	MACD       float64
	Bands      float64
}

// Sum returns the total weight.
func (w ScoreWeights) Sum() float64 {
	return w.LongTrend + w.ShortTrend + w.RSI + w.MACD + w.Bands
}

// AdvisorConfig collects every tunable of the evaluation pipeline. The zero
// value is not usable; start from DefaultAdvisorConfig.
type AdvisorConfig struct {
	SMAFast int // short SMA window
	SMASlow int // medium SMA window
	SMALong int // long trend SMA window

	EMAFast int
	EMASlow int

	RSIWindow  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int

	BBWindow int
	BBWidth  float64 // stddev multiplier

	ATRWindow int

	Weights ScoreWeights

	// Composite score cutoffs for the decision rule table.
	AccumulateThreshold float64
	LiquidateThreshold  float64

	// Scenario move floors, in percent, applied when ATR is near zero so
	// scenarios stay meaningful.
	MildFloorPct   float64
	StrongFloorPct float64

	// MinAlertConfidence is the watchlist trigger threshold in points.
	MinAlertConfidence int
}

// DefaultAdvisorConfig returns the documented defaults: SMA 20/50/200,
// EMA 12/26, RSI 14, MACD 12/26/9, Bollinger 20/2, ATR 14, weights
// 0.3/0.2/0.15/0.2/0.15, alert threshold 40.
func DefaultAdvisorConfig() AdvisorConfig {
	return AdvisorConfig{
		SMAFast:    20,
		SMASlow:    50,
		SMALong:    200,
		EMAFast:    12,
		EMASlow:    26,
		RSIWindow:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		BBWindow:   20,
		BBWidth:    2,
		ATRWindow:  14,
		Weights: ScoreWeights{
			LongTrend:  0.30,
			ShortTrend: 0.20,
			RSI:        0.15,
			MACD:       0.20,
			Bands:      0.15,
		},
		AccumulateThreshold: 0.20,
		LiquidateThreshold:  -0.20,
		MildFloorPct:        0.5,
		StrongFloorPct:      1.5,
		MinAlertConfidence:  40,
	}
}

// Validate fails fast on configuration errors, before any evaluation runs.
func (c AdvisorConfig) Validate() error {
	windows := map[string]int{
		"sma_fast":    c.SMAFast,
		"sma_slow":    c.SMASlow,
		"sma_long":    c.SMALong,
		"ema_fast":    c.EMAFast,
		"ema_slow":    c.EMASlow,
		"rsi_window":  c.RSIWindow,
		"macd_fast":   c.MACDFast,
		"macd_slow":   c.MACDSlow,
		"macd_signal": c.MACDSignal,
		"bb_window":   c.BBWindow,
		"atr_window":  c.ATRWindow,
	}
	for name, w := range windows {
		if w <= 0 {
			return fmt.Errorf("advisor config: %s must be positive, got %d", name, w)
		}
	}
	if c.SMAFast >= c.SMASlow || c.SMASlow >= c.SMALong {
		return fmt.Errorf("advisor config: sma windows must be ascending, got %d/%d/%d",
			c.SMAFast, c.SMASlow, c.SMALong)
	}
	if c.MACDFast >= c.MACDSlow {
		return fmt.Errorf("advisor config: macd fast %d must be below slow %d", c.MACDFast, c.MACDSlow)
	}
	if c.BBWidth <= 0 {
		return fmt.Errorf("advisor config: bb_width must be positive, got %f", c.BBWidth)
	}
	if math.Abs(c.Weights.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("advisor config: score weights sum to %f, want 1", c.Weights.Sum())
	}
	if c.Weights.LongTrend < 0 || c.Weights.ShortTrend < 0 || c.Weights.RSI < 0 ||
		c.Weights.MACD < 0 || c.Weights.Bands < 0 {
		return fmt.Errorf("advisor config: score weights must be non-negative")
	}
	if c.AccumulateThreshold <= 0 || c.LiquidateThreshold >= 0 {
		return fmt.Errorf("advisor config: thresholds must straddle zero, got %f/%f",
			c.AccumulateThreshold, c.LiquidateThreshold)
	}
	if c.MildFloorPct <= 0 || c.StrongFloorPct < c.MildFloorPct {
		return fmt.Errorf("advisor config: scenario floors invalid, got mild=%f strong=%f",
			c.MildFloorPct, c.StrongFloorPct)
	}
	if c.MinAlertConfidence < 0 || c.MinAlertConfidence > 100 {
		return fmt.Errorf("advisor config: min_alert_confidence must be in [0,100], got %d",
			c.MinAlertConfidence)
	}
	return nil
}
