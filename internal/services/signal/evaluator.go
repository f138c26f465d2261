package signal

import (
	"StockSage/internal/domain/models"
	domsvc "StockSage/internal/domain/service"
)

// Classification cutoffs. RSI leans toward the reversal read: oversold is a
// bullish bias, overbought a bearish one.
const (
	rsiOversoldMax   = 35.0
	rsiOverboughtMin = 65.0
	bandProximity    = 0.05 // within 5% of a band counts as "near"
	volumeLowRatio   = 0.5
	volumeHighRatio  = 1.5
)

// Evaluator folds an IndicatorSnapshot into categorical signals and the
// weighted composite score. Stateless; safe for concurrent use.
type Evaluator struct {
	cfg models.AdvisorConfig
}

func NewEvaluator(cfg models.AdvisorConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate classifies every signal category and computes the composite.
// Contributions fold in a fixed order: long trend, short trend, RSI, MACD,
// bands. An unavailable indicator contributes zero, never a guess.
func (e *Evaluator) Evaluate(snap models.IndicatorSnapshot) models.SignalState {
	st := models.SignalState{}

	st.LongTrend, st.InsufficientData = e.longTrend(snap)
	st.ShortTrend = e.shortTrend(snap)
	st.RSI = rsiState(snap.RSI)
	st.MACD = macdState(snap.MACD, snap.MACDSignal)
	st.Bands = bandState(snap)
	st.Volume = volumeState(snap)

	w := e.cfg.Weights
	score := w.LongTrend * trendContribution(st.LongTrend)
	score += w.ShortTrend * trendContribution(st.ShortTrend)
	score += w.RSI * rsiContribution(st.RSI)
	score += w.MACD * macdContribution(st.MACD, snap)
	score += w.Bands * bandContribution(st.Bands)
	st.Composite = score

	return st
}

// longTrend requires both the long SMA and the medium SMA; when either is
// unavailable the whole evaluation is flagged as data-starved.
func (e *Evaluator) longTrend(snap models.IndicatorSnapshot) (models.Trend, bool) {
	if !snap.SMALong.Valid || !snap.SMASlow.Valid {
		return models.TrendSideways, true
	}
	switch {
	case snap.Close > snap.SMALong.Val && snap.SMASlow.Val > snap.SMALong.Val:
		return models.TrendUp, false
	case snap.Close < snap.SMALong.Val && snap.SMASlow.Val < snap.SMALong.Val:
		return models.TrendDown, false
	default:
		return models.TrendSideways, false
	}
}

// shortTrend is directional only when the fast SMA and fast EMA agree
// against their slower counterparts; mixed short-window signals are
// SIDEWAYS, never guessed.
func (e *Evaluator) shortTrend(snap models.IndicatorSnapshot) models.Trend {
	if !snap.SMAFast.Valid || !snap.SMASlow.Valid || !snap.EMAFast.Valid || !snap.EMASlow.Valid {
		return models.TrendSideways
	}
	smaDir := direction(snap.SMAFast.Val, snap.SMASlow.Val)
	emaDir := direction(snap.EMAFast.Val, snap.EMASlow.Val)
	if smaDir == emaDir && smaDir != models.TrendSideways {
		return smaDir
	}
	return models.TrendSideways
}

func direction(fast, slow float64) models.Trend {
	switch {
	case fast > slow:
		return models.TrendUp
	case fast < slow:
		return models.TrendDown
	default:
		return models.TrendSideways
	}
}

func rsiState(rsi models.Float) models.RSIState {
	if !rsi.Valid {
		return models.RSINeutral
	}
	switch {
	case rsi.Val < rsiOversoldMax:
		return models.RSIOversold
	case rsi.Val > rsiOverboughtMin:
		return models.RSIOverbought
	default:
		return models.RSINeutral
	}
}

// macdState has no neutral band: equality counts as bearish by convention.
// An unavailable MACD reads as bearish here but contributes nothing to the
// composite.
func macdState(line, sig models.Float) models.MACDState {
	if line.Valid && sig.Valid && line.Val > sig.Val {
		return models.MACDBullish
	}
	return models.MACDBearish
}

// bandState ignores degenerate (zero-width) bands: a flat series sits on
// both bands at once and says nothing about reversal.
func bandState(snap models.IndicatorSnapshot) models.BandState {
	if !snap.BBUpper.Valid || !snap.BBLower.Valid {
		return models.BandNeutral
	}
	if snap.BBUpper.Val-snap.BBLower.Val <= 0 {
		return models.BandNeutral
	}
	if snap.BBUpper.Val > 0 && snap.Close >= snap.BBUpper.Val*(1-bandProximity) {
		return models.BandNearUpper
	}
	if snap.BBLower.Val > 0 && snap.Close <= snap.BBLower.Val*(1+bandProximity) {
		return models.BandNearLower
	}
	return models.BandNeutral
}

// volumeState compares the latest volume against its 20-day average. It is
// context for the decision and watchlist stages and does not feed the
// composite score.
func volumeState(snap models.IndicatorSnapshot) models.VolumeState {
	if !snap.VolumeAvg20.Valid || snap.VolumeAvg20.Val <= 0 {
		return models.VolumeNormal
	}
	ratio := snap.Volume / snap.VolumeAvg20.Val
	switch {
	case ratio < volumeLowRatio:
		return models.VolumeLow
	case ratio > volumeHighRatio:
		return models.VolumeHigh
	default:
		return models.VolumeNormal
	}
}

func trendContribution(t models.Trend) float64 {
	switch t {
	case models.TrendUp:
		return 1
	case models.TrendDown:
		return -1
	default:
		return 0
	}
}

func rsiContribution(s models.RSIState) float64 {
	switch s {
	case models.RSIOversold:
		return 1
	case models.RSIOverbought:
		return -1
	default:
		return 0
	}
}

func macdContribution(s models.MACDState, snap models.IndicatorSnapshot) float64 {
	if !snap.MACD.Valid || !snap.MACDSignal.Valid {
		return 0
	}
	if s == models.MACDBullish {
		return 1
	}
	return -1
}

func bandContribution(s models.BandState) float64 {
	switch s {
	case models.BandNearLower:
		return 1 // reversal bias: hugging the lower band leans bullish
	case models.BandNearUpper:
		return -1
	default:
		return 0
	}
}

var _ domsvc.SignalEvaluator = (*Evaluator)(nil)
