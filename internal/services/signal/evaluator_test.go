package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSage/internal/domain/models"
)

func f(v float64) models.Float { return models.FloatFrom(v) }

// bullishSnapshot has every category pointing up: price above a rising long
// trend, fast averages above slow, oversold RSI, bullish MACD, close hugging
// the lower band.
func bullishSnapshot() models.IndicatorSnapshot {
	return models.IndicatorSnapshot{
		Close:       105,
		Volume:      1000,
		SMAFast:     f(104),
		SMASlow:     f(102),
		SMALong:     f(100),
		EMAFast:     f(104.5),
		EMASlow:     f(103),
		RSI:         f(30),
		MACD:        f(1.2),
		MACDSignal:  f(0.8),
		BBUpper:     f(130),
		BBMid:       f(118),
		BBLower:     f(106),
		ATR:         f(2),
		VolumeAvg20: f(1000),
	}
}

func bearishSnapshot() models.IndicatorSnapshot {
	return models.IndicatorSnapshot{
		Close:       95,
		Volume:      1000,
		SMAFast:     f(96),
		SMASlow:     f(98),
		SMALong:     f(100),
		EMAFast:     f(95.5),
		EMASlow:     f(97),
		RSI:         f(70),
		MACD:        f(-1.2),
		MACDSignal:  f(-0.8),
		BBUpper:     f(94),
		BBMid:       f(82),
		BBLower:     f(70),
		ATR:         f(2),
		VolumeAvg20: f(1000),
	}
}

func TestEvaluateFullyBullish(t *testing.T) {
	e := NewEvaluator(models.DefaultAdvisorConfig())
	st := e.Evaluate(bullishSnapshot())

	assert.Equal(t, models.TrendUp, st.LongTrend)
	assert.Equal(t, models.TrendUp, st.ShortTrend)
	assert.Equal(t, models.RSIOversold, st.RSI)
	assert.Equal(t, models.MACDBullish, st.MACD)
	assert.Equal(t, models.BandNearLower, st.Bands)
	assert.False(t, st.InsufficientData)
	assert.InDelta(t, 1.0, st.Composite, 1e-9)
}

func TestEvaluateFullyBearish(t *testing.T) {
	e := NewEvaluator(models.DefaultAdvisorConfig())
	st := e.Evaluate(bearishSnapshot())

	assert.Equal(t, models.TrendDown, st.LongTrend)
	assert.Equal(t, models.TrendDown, st.ShortTrend)
	assert.Equal(t, models.RSIOverbought, st.RSI)
	assert.Equal(t, models.MACDBearish, st.MACD)
	assert.Equal(t, models.BandNearUpper, st.Bands)
	assert.InDelta(t, -1.0, st.Composite, 1e-9)
}

func TestEvaluateMissingLongTrendFlagsInsufficientData(t *testing.T) {
	snap := bullishSnapshot()
	snap.SMALong = models.Float{}
	e := NewEvaluator(models.DefaultAdvisorConfig())
	st := e.Evaluate(snap)

	assert.True(t, st.InsufficientData)
	assert.Equal(t, models.TrendSideways, st.LongTrend)
	// the remaining categories still score; only the long trend drops out
	assert.InDelta(t, 0.70, st.Composite, 1e-9)
}

func TestEvaluateMixedShortWindowsIsSideways(t *testing.T) {
	snap := bullishSnapshot()
	snap.EMAFast = f(100) // EMA disagrees with the SMA direction
	snap.EMASlow = f(103)
	e := NewEvaluator(models.DefaultAdvisorConfig())
	st := e.Evaluate(snap)

	assert.Equal(t, models.TrendSideways, st.ShortTrend)
}

func TestEvaluateMACDEqualityIsBearish(t *testing.T) {
	snap := bullishSnapshot()
	snap.MACD = f(0.5)
	snap.MACDSignal = f(0.5)
	e := NewEvaluator(models.DefaultAdvisorConfig())
	st := e.Evaluate(snap)

	assert.Equal(t, models.MACDBearish, st.MACD)
}

func TestEvaluateUnavailableIndicatorsContributeZero(t *testing.T) {
	snap := bullishSnapshot()
	snap.RSI = models.Float{}
	snap.MACD = models.Float{}
	snap.MACDSignal = models.Float{}
	snap.BBUpper = models.Float{}
	snap.BBLower = models.Float{}
	e := NewEvaluator(models.DefaultAdvisorConfig())
	st := e.Evaluate(snap)

	assert.Equal(t, models.RSINeutral, st.RSI)
	assert.Equal(t, models.BandNeutral, st.Bands)
	// only the two trend categories remain: 0.30 + 0.20
	assert.InDelta(t, 0.50, st.Composite, 1e-9)
}

func TestEvaluateRSICutoffs(t *testing.T) {
	cases := []struct {
		rsi  float64
		want models.RSIState
	}{
		{34.9, models.RSIOversold},
		{35.0, models.RSINeutral},
		{65.0, models.RSINeutral},
		{65.1, models.RSIOverbought},
	}
	e := NewEvaluator(models.DefaultAdvisorConfig())
	for _, tc := range cases {
		snap := bullishSnapshot()
		snap.RSI = f(tc.rsi)
		st := e.Evaluate(snap)
		assert.Equalf(t, tc.want, st.RSI, "rsi=%v", tc.rsi)
	}
}

func TestEvaluateDegenerateBandsAreNeutral(t *testing.T) {
	snap := bullishSnapshot()
	snap.BBUpper = f(105)
	snap.BBMid = f(105)
	snap.BBLower = f(105)
	e := NewEvaluator(models.DefaultAdvisorConfig())
	st := e.Evaluate(snap)

	assert.Equal(t, models.BandNeutral, st.Bands)
}

func TestEvaluateVolumeStates(t *testing.T) {
	e := NewEvaluator(models.DefaultAdvisorConfig())

	snap := bullishSnapshot()
	snap.Volume = 400 // 40% of the 20-day average
	assert.Equal(t, models.VolumeLow, e.Evaluate(snap).Volume)

	snap.Volume = 1600
	assert.Equal(t, models.VolumeHigh, e.Evaluate(snap).Volume)

	snap.Volume = 1000
	assert.Equal(t, models.VolumeNormal, e.Evaluate(snap).Volume)

	snap.VolumeAvg20 = models.Float{}
	snap.Volume = 1600
	assert.Equal(t, models.VolumeNormal, e.Evaluate(snap).Volume)
}

func TestEvaluateCompositeBounded(t *testing.T) {
	e := NewEvaluator(models.DefaultAdvisorConfig())
	for _, snap := range []models.IndicatorSnapshot{bullishSnapshot(), bearishSnapshot(), {}} {
		st := e.Evaluate(snap)
		require.GreaterOrEqual(t, st.Composite, -1.0)
		require.LessOrEqual(t, st.Composite, 1.0)
	}
}
