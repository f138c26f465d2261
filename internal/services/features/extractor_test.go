package features

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSage/internal/domain/models"
)

func barsFromCloses(closes ...float64) []models.PriceBar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		out[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: c}
	}
	return out
}

func TestComputeLogReturns(t *testing.T) {
	rets := ComputeLogReturns(barsFromCloses(100, 110, 99))
	require.Len(t, rets, 2)
	assert.InDelta(t, math.Log(1.10), rets[0], 1e-12)
	assert.InDelta(t, math.Log(0.90), rets[1], 1e-12)

	assert.Nil(t, ComputeLogReturns(barsFromCloses(100)))
}

func TestComputeLogReturnsSkipsNonPositive(t *testing.T) {
	rets := ComputeLogReturns(barsFromCloses(100, 0, 100))
	require.Len(t, rets, 2)
	assert.Zero(t, rets[0])
	assert.Zero(t, rets[1])
}

func TestRealizedVolatility(t *testing.T) {
	flat := ComputeLogReturns(barsFromCloses(100, 100, 100, 100, 100))
	v := RealizedVolatility(flat, len(flat))
	require.True(t, v.Valid)
	assert.InDelta(t, 0.0, v.Val, 1e-12)

	assert.False(t, RealizedVolatility(flat, len(flat)+1).Valid)
	assert.False(t, RealizedVolatility(nil, 1).Valid)

	choppy := ComputeLogReturns(barsFromCloses(100, 105, 98, 107, 96))
	cv := RealizedVolatility(choppy, len(choppy))
	require.True(t, cv.Valid)
	assert.Greater(t, cv.Val, 0.0)
}
