package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSage/internal/domain/models"
)

func TestComputeEmptySeries(t *testing.T) {
	snap := Compute(nil, models.DefaultAdvisorConfig())
	assert.Zero(t, snap.Close)
	assert.False(t, snap.SMAFast.Valid)
	assert.False(t, snap.RSI.Valid)
}

func TestComputeShortHistoryDegradesGracefully(t *testing.T) {
	bars := flatBars(60, 100, 5000)
	snap := Compute(bars, models.DefaultAdvisorConfig())

	assert.Equal(t, 100.0, snap.Close)
	assert.Equal(t, 5000.0, snap.Volume)

	assert.True(t, snap.SMAFast.Valid)
	assert.True(t, snap.SMASlow.Valid)
	assert.False(t, snap.SMALong.Valid, "200-day SMA must be unavailable on 60 bars")

	assert.True(t, snap.RSI.Valid)
	assert.True(t, snap.MACD.Valid)
	assert.True(t, snap.ATR.Valid)
	assert.True(t, snap.VolumeAvg20.Valid)
	assert.True(t, snap.VolumeAvg50.Valid, "50-day volume average fits in 60 bars")
}

func TestComputeFullHistory(t *testing.T) {
	bars := flatBars(260, 100, 5000)
	snap := Compute(bars, models.DefaultAdvisorConfig())

	require.True(t, snap.SMALong.Valid)
	assert.InDelta(t, 100.0, snap.SMALong.Val, 1e-9)
	assert.InDelta(t, 100.0, snap.BBUpper.Val, 1e-9)
	assert.InDelta(t, 100.0, snap.BBLower.Val, 1e-9)
	require.True(t, snap.VolumeAvg20.Valid)
	assert.InDelta(t, 5000.0, snap.VolumeAvg20.Val, 1e-9)
}

func TestComputeDeterministic(t *testing.T) {
	bars := flatBars(260, 100, 5000)
	cfg := models.DefaultAdvisorConfig()
	a := Compute(bars, cfg)
	b := Compute(bars, cfg)
	assert.Equal(t, a, b)
}
