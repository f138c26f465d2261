package models

import "encoding/json"

// Trend is a directional judgment over a moving-average window.
type Trend int

const (
	TrendSideways Trend = iota
	TrendUp
	TrendDown
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "UP"
	case TrendDown:
		return "DOWN"
	default:
		return "SIDEWAYS"
	}
}

// RSIState classifies the RSI oscillator with a reversal bias: oversold leans
// bullish, overbought leans bearish.
type RSIState int

const (
	RSINeutral RSIState = iota
	RSIOversold
	RSIOverbought
)

func (s RSIState) String() string {
	switch s {
	case RSIOversold:
		return "OVERSOLD"
	case RSIOverbought:
		return "OVERBOUGHT"
	default:
		return "NEUTRAL"
	}
}

// MACDState has no neutral band: a crossing at exact equality counts as
// bearish by convention.
type MACDState int

const (
	MACDBearish MACDState = iota
	MACDBullish
)

func (s MACDState) String() string {
	if s == MACDBullish {
		return "BULLISH"
	}
	return "BEARISH"
}

// BandState classifies where the close sits relative to the Bollinger bands.
type BandState int

const (
	BandNeutral BandState = iota
	BandNearUpper
	BandNearLower
)

func (s BandState) String() string {
	switch s {
	case BandNearUpper:
		return "NEAR_UPPER"
	case BandNearLower:
		return "NEAR_LOWER"
	default:
		return "NEUTRAL"
	}
}

// VolumeState classifies current volume against its 20-day average.
type VolumeState int

const (
	VolumeNormal VolumeState = iota
	VolumeLow
	VolumeHigh
)

func (s VolumeState) String() string {
	switch s {
	case VolumeLow:
		return "LOW"
	case VolumeHigh:
		return "HIGH"
	default:
		return "NORMAL"
	}
}

func (t Trend) MarshalJSON() ([]byte, error)       { return json.Marshal(t.String()) }
func (s RSIState) MarshalJSON() ([]byte, error)    { return json.Marshal(s.String()) }
func (s MACDState) MarshalJSON() ([]byte, error)   { return json.Marshal(s.String()) }
func (s BandState) MarshalJSON() ([]byte, error)   { return json.Marshal(s.String()) }
func (s VolumeState) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// SignalState holds the categorical judgments derived from an
// IndicatorSnapshot plus the numeric composite score in [-1, 1].
type SignalState struct {
	LongTrend  Trend
	ShortTrend Trend
	RSI        RSIState
	MACD       MACDState
	Bands      BandState
	Volume     VolumeState

	// Composite is the weighted directional sum; more bullish inputs
	// strictly increase it, more bearish inputs strictly decrease it.
	Composite float64

	// InsufficientData is set when the long-trend moving averages could not
	// be computed; the decision layer falls back to a guarded HOLD.
	InsufficientData bool
}
