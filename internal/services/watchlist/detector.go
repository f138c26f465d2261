package watchlist

import (
	"math"

	"StockSage/internal/domain/models"
	domsvc "StockSage/internal/domain/service"
)

// Condition scores. They sum past 100 on purpose; the total is capped so a
// symbol matching everything still reports a bounded confidence.
const (
	targetProximityPct = 0.02
	volumeSurgeRatio   = 1.5
	momentumLookback   = 2
	momentumMinPct     = 2.0

	nearTargetScore    = 30
	volumeSurgeScore   = 20
	accumulateScore    = 30
	confidentHoldScore = 10
	momentumScore      = 10

	holdConfidenceMin = 70
	maxScore          = 100
)

// Matched condition labels, reported in evaluation order.
const (
	matchNearTarget  = "near_target"
	matchVolumeSurge = "volume_surge"
	matchDecision    = "decision"
	matchMomentum    = "momentum"
)

// Detector scores a not-owned symbol against entry conditions layered on
// top of the decision output. Stateless; safe for concurrent use.
type Detector struct {
	cfg models.AdvisorConfig
}

func NewDetector(cfg models.AdvisorConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Check accumulates condition scores in a fixed order and triggers when the
// total clears the configured alert threshold. A zero target price disables
// the proximity condition rather than matching trivially.
func (d *Detector) Check(bars []models.PriceBar, snap models.IndicatorSnapshot, dec models.Decision, symbol string, targetPrice float64, note string) models.WatchAlert {
	alert := models.WatchAlert{Symbol: symbol, Note: note}

	// Proximity is measured against the close, so a target sitting exactly
	// 2% below the current price still counts as near.
	if targetPrice > 0 && snap.Close > 0 {
		if math.Abs(snap.Close-targetPrice)/snap.Close <= targetProximityPct {
			alert.Confidence += nearTargetScore
			alert.Matched = append(alert.Matched, matchNearTarget)
		}
	}

	if snap.VolumeAvg20.Valid && snap.VolumeAvg20.Val > 0 &&
		snap.Volume/snap.VolumeAvg20.Val > volumeSurgeRatio {
		alert.Confidence += volumeSurgeScore
		alert.Matched = append(alert.Matched, matchVolumeSurge)
	}

	switch {
	case dec.Action == models.ActionAccumulate:
		alert.Confidence += accumulateScore
		alert.Matched = append(alert.Matched, matchDecision)
	case dec.Action == models.ActionHold && dec.Confidence > holdConfidenceMin:
		alert.Confidence += confidentHoldScore
		alert.Matched = append(alert.Matched, matchDecision)
	}

	if pct, ok := recentMomentum(bars); ok && pct > momentumMinPct {
		alert.Confidence += momentumScore
		alert.Matched = append(alert.Matched, matchMomentum)
	}

	if alert.Confidence > maxScore {
		alert.Confidence = maxScore
	}
	alert.Triggered = alert.Confidence >= d.cfg.MinAlertConfidence
	return alert
}

// recentMomentum is the close-to-close change over the last two sessions,
// in percent.
func recentMomentum(bars []models.PriceBar) (float64, bool) {
	if len(bars) < momentumLookback+1 {
		return 0, false
	}
	prev := bars[len(bars)-1-momentumLookback].Close
	last := bars[len(bars)-1].Close
	if prev <= 0 {
		return 0, false
	}
	return (last - prev) / prev * 100, true
}

var _ domsvc.WatchlistDetector = (*Detector)(nil)
