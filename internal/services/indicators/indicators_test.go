package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSage/internal/domain/models"
)

func flatBars(n int, price, volume float64) []models.PriceBar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, n)
	for i := range bars {
		bars[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Symbol: "TEST",
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: volume,
		}
	}
	return bars
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	got := SMA(values, 3)
	require.True(t, got.Valid)
	assert.InDelta(t, 4.0, got.Val, 1e-12)

	full := SMA(values, 5)
	require.True(t, full.Valid)
	assert.InDelta(t, 3.0, full.Val, 1e-12)
}

func TestSMAShortSeries(t *testing.T) {
	assert.False(t, SMA([]float64{1, 2}, 3).Valid)
	assert.False(t, SMA(nil, 1).Valid)
	assert.False(t, SMA([]float64{1, 2, 3}, 0).Valid)
}

func TestEMAConstantSeries(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 42.5
	}
	got := EMA(values, 12)
	require.True(t, got.Valid)
	assert.InDelta(t, 42.5, got.Val, 1e-9)
}

func TestEMASeedMatchesSMA(t *testing.T) {
	values := []float64{10, 11, 12}
	got := EMA(values, 3)
	require.True(t, got.Valid)
	assert.InDelta(t, 11.0, got.Val, 1e-12)
}

func TestRSIAllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	got := RSI(closes, 14)
	require.True(t, got.Valid)
	assert.InDelta(t, 100.0, got.Val, 1e-9)
}

func TestRSIAllLosses(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	got := RSI(closes, 14)
	require.True(t, got.Valid)
	assert.InDelta(t, 0.0, got.Val, 1e-9)
}

func TestRSINeedsWindowPlusOne(t *testing.T) {
	closes := make([]float64, 14)
	for i := range closes {
		closes[i] = float64(i)
	}
	assert.False(t, RSI(closes, 14).Valid)
	closes = append(closes, 15)
	assert.True(t, RSI(closes, 14).Valid)
}

func TestRSIBounded(t *testing.T) {
	closes := []float64{50, 52, 49, 51, 53, 48, 50, 52, 54, 51, 49, 53, 55, 52, 50, 54}
	got := RSI(closes, 14)
	require.True(t, got.Valid)
	assert.GreaterOrEqual(t, got.Val, 0.0)
	assert.LessOrEqual(t, got.Val, 100.0)
}

func TestMACDConstantSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 75
	}
	line, sig, hist := MACD(closes, 12, 26, 9)
	require.True(t, line.Valid)
	require.True(t, sig.Valid)
	require.True(t, hist.Valid)
	assert.InDelta(t, 0.0, line.Val, 1e-9)
	assert.InDelta(t, 0.0, sig.Val, 1e-9)
	assert.InDelta(t, 0.0, hist.Val, 1e-9)
}

func TestMACDSignalNeedsMoreHistory(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 75 + float64(i)*0.1
	}
	line, sig, hist := MACD(closes, 12, 26, 9)
	assert.True(t, line.Valid)
	assert.False(t, sig.Valid)
	assert.False(t, hist.Valid)
}

func TestMACDRisingSeriesIsPositive(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	line, sig, hist := MACD(closes, 12, 26, 9)
	require.True(t, line.Valid)
	require.True(t, sig.Valid)
	assert.Greater(t, line.Val, 0.0)
	assert.InDelta(t, line.Val-sig.Val, hist.Val, 1e-12)
}

func TestBollingerFlatSeries(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 88
	}
	upper, mid, lower := Bollinger(closes, 20, 2)
	require.True(t, mid.Valid)
	assert.InDelta(t, 88.0, mid.Val, 1e-12)
	assert.InDelta(t, 88.0, upper.Val, 1e-12)
	assert.InDelta(t, 88.0, lower.Val, 1e-12)
}

func TestBollingerSymmetricAroundMiddle(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + math.Sin(float64(i))*5
	}
	upper, mid, lower := Bollinger(closes, 20, 2)
	require.True(t, upper.Valid)
	assert.InDelta(t, mid.Val-lower.Val, upper.Val-mid.Val, 1e-9)
	assert.Greater(t, upper.Val, mid.Val)
}

func TestATRFlatBars(t *testing.T) {
	bars := flatBars(20, 50, 1000)
	got := ATR(bars, 14)
	require.True(t, got.Valid)
	assert.InDelta(t, 0.0, got.Val, 1e-12)
}

func TestATRNeedsWindowPlusOne(t *testing.T) {
	assert.False(t, ATR(flatBars(14, 50, 1000), 14).Valid)
	assert.True(t, ATR(flatBars(15, 50, 1000), 14).Valid)
}

func TestATRConstantRange(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, 20)
	for i := range bars {
		bars[i] = models.PriceBar{
			Date: start.AddDate(0, 0, i),
			Open: 100, High: 102, Low: 98, Close: 100, Volume: 1000,
		}
	}
	got := ATR(bars, 14)
	require.True(t, got.Valid)
	assert.InDelta(t, 4.0, got.Val, 1e-9)
}

func TestOBV(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := []models.PriceBar{
		{Date: start, Close: 10, Volume: 100},
		{Date: start.AddDate(0, 0, 1), Close: 11, Volume: 200}, // up: +200
		{Date: start.AddDate(0, 0, 2), Close: 10, Volume: 150}, // down: -150
		{Date: start.AddDate(0, 0, 3), Close: 10, Volume: 300}, // flat: 0
	}
	got := OBV(bars)
	require.True(t, got.Valid)
	assert.InDelta(t, 50.0, got.Val, 1e-12)
}

func TestMomentum(t *testing.T) {
	closes := []float64{100, 101, 105}
	got := Momentum(closes, 2)
	require.True(t, got.Valid)
	assert.InDelta(t, 5.0, got.Val, 1e-9)

	assert.False(t, Momentum([]float64{100, 101}, 2).Valid)
	assert.False(t, Momentum([]float64{0, 0, 5}, 2).Valid)
}
