package watchlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSage/internal/domain/models"
)

func risingBars(closes ...float64) []models.PriceBar {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: c, Volume: 1000}
	}
	return bars
}

func snapshotWith(close, volume, volAvg float64) models.IndicatorSnapshot {
	return models.IndicatorSnapshot{
		Close:       close,
		Volume:      volume,
		VolumeAvg20: models.FloatFrom(volAvg),
	}
}

func TestCheckAllConditionsMatch(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	bars := risingBars(100, 101, 103.5) // +3.5% over two sessions
	snap := snapshotWith(103.5, 2000, 1000)
	dec := models.Decision{Action: models.ActionAccumulate, Confidence: 78}

	alert := d.Check(bars, snap, dec, "VNM", 104, "breakout candidate")

	assert.True(t, alert.Triggered)
	assert.Equal(t, 90, alert.Confidence) // 30+20+30+10
	assert.Equal(t, []string{"near_target", "volume_surge", "decision", "momentum"}, alert.Matched)
	assert.Equal(t, "VNM", alert.Symbol)
	assert.Equal(t, "breakout candidate", alert.Note)
}

func TestCheckTargetTwoPercentBelowClose(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	bars := risingBars(100, 100, 100)
	snap := snapshotWith(100, 2000, 1000)
	dec := models.Decision{Action: models.ActionAccumulate, Confidence: 78}

	// target 98 sits exactly 2% under the close of 100
	alert := d.Check(bars, snap, dec, "VIC", 98, "")
	require.Equal(t, []string{"near_target", "volume_surge", "decision"}, alert.Matched)
	assert.Equal(t, 80, alert.Confidence) // 30+20+30
	assert.True(t, alert.Triggered)
}

func TestCheckFarTargetHoldStaysQuiet(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	bars := risingBars(100, 100, 100)
	snap := snapshotWith(100, 2000, 1000)
	dec := models.Decision{Action: models.ActionHold, Confidence: 50}

	// target 10% away and an unconvinced hold leave only the volume points
	alert := d.Check(bars, snap, dec, "VIC", 90, "")
	assert.Equal(t, []string{"volume_surge"}, alert.Matched)
	assert.Equal(t, 20, alert.Confidence)
	assert.False(t, alert.Triggered)
}

func TestCheckBelowThresholdDoesNotTrigger(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	bars := risingBars(100, 100, 100)
	snap := snapshotWith(100, 1000, 1000)
	dec := models.Decision{Action: models.ActionHold, Confidence: 50}

	alert := d.Check(bars, snap, dec, "HPG", 150, "")

	assert.False(t, alert.Triggered)
	assert.Zero(t, alert.Confidence)
	assert.Empty(t, alert.Matched)
}

func TestCheckNearTargetAlone(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	bars := risingBars(100, 100, 100)
	snap := snapshotWith(100, 1000, 1000)
	dec := models.Decision{Action: models.ActionHold, Confidence: 50}

	// 100 vs target 101 is within 2%
	alert := d.Check(bars, snap, dec, "FPT", 101, "")
	require.Equal(t, []string{"near_target"}, alert.Matched)
	assert.Equal(t, 30, alert.Confidence)
	assert.False(t, alert.Triggered, "30 points sits below the default threshold of 40")
}

func TestCheckZeroTargetDisablesProximity(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	bars := risingBars(100, 100, 100)
	snap := snapshotWith(100, 1000, 1000)
	dec := models.Decision{Action: models.ActionAccumulate, Confidence: 60}

	alert := d.Check(bars, snap, dec, "FPT", 0, "")
	assert.Equal(t, []string{"decision"}, alert.Matched)
	assert.Equal(t, 30, alert.Confidence)
}

func TestCheckConfidentHoldScoresLessThanAccumulate(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	bars := risingBars(100, 100, 100)
	snap := snapshotWith(100, 1000, 1000)

	hold := d.Check(bars, snap, models.Decision{Action: models.ActionHold, Confidence: 75}, "X", 0, "")
	assert.Equal(t, 10, hold.Confidence)

	borderline := d.Check(bars, snap, models.Decision{Action: models.ActionHold, Confidence: 70}, "X", 0, "")
	assert.Zero(t, borderline.Confidence, "confidence must exceed 70, not equal it")

	liq := d.Check(bars, snap, models.Decision{Action: models.ActionLiquidate, Confidence: 90}, "X", 0, "")
	assert.Zero(t, liq.Confidence, "liquidate never scores for a watch candidate")
}

func TestCheckVolumeSurgeBoundary(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	bars := risingBars(100, 100, 100)
	dec := models.Decision{Action: models.ActionHold, Confidence: 50}

	exact := d.Check(bars, snapshotWith(100, 1500, 1000), dec, "X", 0, "")
	assert.Empty(t, exact.Matched, "exactly 150% is not a surge")

	over := d.Check(bars, snapshotWith(100, 1501, 1000), dec, "X", 0, "")
	assert.Equal(t, []string{"volume_surge"}, over.Matched)
}

func TestCheckMomentumNeedsThreeBars(t *testing.T) {
	d := NewDetector(models.DefaultAdvisorConfig())
	snap := snapshotWith(110, 1000, 1000)
	dec := models.Decision{Action: models.ActionHold, Confidence: 50}

	alert := d.Check(risingBars(100, 110), snap, dec, "X", 0, "")
	assert.Empty(t, alert.Matched)
}

func TestCheckScoreCapped(t *testing.T) {
	cfg := models.DefaultAdvisorConfig()
	d := NewDetector(cfg)
	bars := risingBars(100, 105, 110)
	snap := snapshotWith(110, 5000, 1000)
	dec := models.Decision{Action: models.ActionAccumulate, Confidence: 90}

	alert := d.Check(bars, snap, dec, "X", 110, "")
	assert.LessOrEqual(t, alert.Confidence, 100)
	assert.True(t, alert.Triggered)
}
