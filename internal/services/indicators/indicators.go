package indicators

import (
	"math"

	"StockSage/internal/domain/models"
)

// Pure indicator math over daily series. Every function reports an
// unavailable value instead of silently averaging a short window, since that
// would corrupt comparability with the documented indicator lengths.

// SMA returns the arithmetic mean of the last n values.
func SMA(values []float64, n int) models.Float {
	if n <= 0 || len(values) < n {
		return models.Float{}
	}
	sum := 0.0
	for i := len(values) - n; i < len(values); i++ {
		sum += values[i]
	}
	return models.FloatFrom(sum / float64(n))
}

// EMA returns the exponential moving average with multiplier 2/(n+1),
// seeded by the SMA of the first n values.
func EMA(values []float64, n int) models.Float {
	series, start := emaSeries(values, n)
	if start < 0 {
		return models.Float{}
	}
	return models.FloatFrom(series[len(series)-1])
}

// emaSeries computes the EMA over the whole series. The returned slice is
// aligned with values; entries before start are meaningless. start is -1
// when the series is too short.
func emaSeries(values []float64, n int) ([]float64, int) {
	if n <= 0 || len(values) < n {
		return nil, -1
	}
	out := make([]float64, len(values))
	seed := 0.0
	for i := 0; i < n; i++ {
		seed += values[i]
	}
	start := n - 1
	out[start] = seed / float64(n)
	mult := 2.0 / float64(n+1)
	for i := start + 1; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*mult + out[i-1]
	}
	return out, start
}

// RSI computes the Wilder-smoothed relative strength index over n periods.
// Needs n+1 closes. When the average loss is zero the series is fully
// bullish and RSI is exactly 100.
func RSI(closes []float64, n int) models.Float {
	if n <= 0 || len(closes) < n+1 {
		return models.Float{}
	}
	var avgGain, avgLoss float64
	for i := 1; i <= n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(n)
	avgLoss /= float64(n)

	for i := n + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(n-1) + gain) / float64(n)
		avgLoss = (avgLoss*float64(n-1) + loss) / float64(n)
	}

	if avgLoss == 0 {
		return models.FloatFrom(100.0)
	}
	rs := avgGain / avgLoss
	return models.FloatFrom(100.0 - 100.0/(1.0+rs))
}

// MACD computes the MACD line (EMA fast − EMA slow), its signal line
// (EMA of the MACD line), and the histogram (line − signal).
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist models.Float) {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return models.Float{}, models.Float{}, models.Float{}
	}
	efSeries, efStart := emaSeries(closes, fast)
	esSeries, esStart := emaSeries(closes, slow)
	if esStart < 0 {
		return models.Float{}, models.Float{}, models.Float{}
	}
	_ = efStart // fast start is always <= slow start

	macdLine := make([]float64, 0, len(closes)-esStart)
	for i := esStart; i < len(closes); i++ {
		macdLine = append(macdLine, efSeries[i]-esSeries[i])
	}
	line = models.FloatFrom(macdLine[len(macdLine)-1])

	sigSeries, sigStart := emaSeries(macdLine, signal)
	if sigStart < 0 {
		return line, models.Float{}, models.Float{}
	}
	sig = models.FloatFrom(sigSeries[len(sigSeries)-1])
	hist = models.FloatFrom(line.Val - sig.Val)
	return line, sig, hist
}

// Bollinger computes the middle band (SMA n) and upper/lower bands at
// k standard deviations.
func Bollinger(closes []float64, n int, k float64) (upper, mid, lower models.Float) {
	m := SMA(closes, n)
	if !m.Valid {
		return models.Float{}, models.Float{}, models.Float{}
	}
	sd := stddev(closes[len(closes)-n:], m.Val)
	return models.FloatFrom(m.Val + k*sd), m, models.FloatFrom(m.Val - k*sd)
}

// ATR computes the Wilder-smoothed average true range. Needs n+1 bars since
// the true range references the previous close.
func ATR(bars []models.PriceBar, n int) models.Float {
	if n <= 0 || len(bars) < n+1 {
		return models.Float{}
	}
	trs := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		trs = append(trs, trueRange(bars[i], bars[i-1].Close))
	}
	atr := 0.0
	for i := 0; i < n; i++ {
		atr += trs[i]
	}
	atr /= float64(n)
	for i := n; i < len(trs); i++ {
		atr = (atr*float64(n-1) + trs[i]) / float64(n)
	}
	return models.FloatFrom(atr)
}

func trueRange(b models.PriceBar, prevClose float64) float64 {
	tr := b.High - b.Low
	if d := math.Abs(b.High - prevClose); d > tr {
		tr = d
	}
	if d := math.Abs(b.Low - prevClose); d > tr {
		tr = d
	}
	return tr
}

// OBV computes on-balance volume as a running total across the entire
// available history: volume added on up-closes, subtracted on down-closes,
// unchanged on flat closes.
func OBV(bars []models.PriceBar) models.Float {
	if len(bars) == 0 {
		return models.Float{}
	}
	obv := 0.0
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv -= bars[i].Volume
		}
	}
	return models.FloatFrom(obv)
}

// Momentum returns the percentage change of the close over the last
// lookback sessions.
func Momentum(closes []float64, lookback int) models.Float {
	if lookback <= 0 || len(closes) < lookback+1 {
		return models.Float{}
	}
	base := closes[len(closes)-1-lookback]
	if base == 0 {
		return models.Float{}
	}
	return models.FloatFrom((closes[len(closes)-1] - base) / base * 100)
}

func stddev(window []float64, mean float64) float64 {
	if len(window) == 0 {
		return 0
	}
	sum2 := 0.0
	for _, v := range window {
		d := v - mean
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(len(window)))
}
