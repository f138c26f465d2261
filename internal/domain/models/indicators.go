package models

import "encoding/json"

// Float is an indicator value that may be unavailable when the input series
// is shorter than the indicator's lookback window. Downstream logic must
// treat an unavailable value as neutral, never as zero.
type Float struct {
	Val   float64
	Valid bool
}

// FloatFrom wraps a computed value.
func FloatFrom(v float64) Float { return Float{Val: v, Valid: true} }

// Or returns the value, or def when unavailable.
func (f Float) Or(def float64) float64 {
	if !f.Valid {
		return def
	}
	return f.Val
}

// MarshalJSON renders unavailable values as null so API consumers can tell
// "not computable" apart from an actual zero.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Val)
}

// UnmarshalJSON accepts null as unavailable.
func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Float{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FloatFrom(v)
	return nil
}

// IndicatorSnapshot holds every technical indicator computed for the most
// recent bar of a series. Each field derives strictly from history up to and
// including the evaluation date.
type IndicatorSnapshot struct {
	Close  float64
	Volume float64

	SMAFast Float // default 20
	SMASlow Float // default 50
	SMALong Float // default 200
	EMAFast Float // default 12
	EMASlow Float // default 26

	RSI        Float
	MACD       Float
	MACDSignal Float
	MACDHist   Float

	BBUpper Float
	BBMid   Float
	BBLower Float

	ATR Float
	OBV Float

	VolumeAvg10 Float
	VolumeAvg20 Float
	VolumeAvg50 Float
}
