package scenario

import (
	"math"

	"StockSage/internal/domain/models"
	domsvc "StockSage/internal/domain/service"
)

// Probability curve constants. The curve maps the composite score s in
// [-1,1] onto five outcome probabilities that always sum to exactly 1:
//
//	sideways   = sidewaysBase - sidewaysSlope*|s|
//	up         = (1 - sideways) * (0.5 + directionalTilt*s)
//	down       = (1 - sideways) - up
//	strongUp   = up * (strongShareBase + strongShareSlope*max(s, 0))
//	strongDown = down * (strongShareBase + strongShareSlope*max(-s, 0))
//
// A zero score yields the symmetric split with SIDEWAYS as the single
// largest outcome; upside probability grows monotonically with s.
const (
	sidewaysBase     = 0.40
	sidewaysSlope    = 0.25
	directionalTilt  = 0.45
	strongShareBase  = 0.30
	strongShareSlope = 0.30
)

// Generator derives the five-outcome scenario set from the indicator
// snapshot and the composite score. Stateless; safe for concurrent use.
type Generator struct {
	cfg models.AdvisorConfig
}

func NewGenerator(cfg models.AdvisorConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate builds the scenario set in fixed label order. Expected moves are
// scaled off ATR relative to the last close, with configured floors so a
// dead-flat series still produces distinguishable scenarios.
func (g *Generator) Generate(snap models.IndicatorSnapshot, signals models.SignalState) models.ScenarioSet {
	s := clamp(signals.Composite, -1, 1)

	sideways := sidewaysBase - sidewaysSlope*math.Abs(s)
	directional := 1 - sideways
	up := directional * (0.5 + directionalTilt*s)
	down := directional - up

	strongUp := up * (strongShareBase + strongShareSlope*math.Max(s, 0))
	mildUp := up - strongUp
	strongDown := down * (strongShareBase + strongShareSlope*math.Max(-s, 0))
	mildDown := down - strongDown

	mildMove, strongMove := g.moveSizes(snap)

	return models.ScenarioSet{
		{Label: models.StrongUp, ExpectedMovePct: strongMove, Probability: strongUp},
		{Label: models.MildUp, ExpectedMovePct: mildMove, Probability: mildUp},
		{Label: models.Sideways, ExpectedMovePct: 0, Probability: sideways},
		{Label: models.MildDown, ExpectedMovePct: -mildMove, Probability: mildDown},
		{Label: models.StrongDown, ExpectedMovePct: -strongMove, Probability: strongDown},
	}
}

// moveSizes derives the mild and strong move magnitudes (in percent) from
// ATR over the last close, clamped to the configured floors.
func (g *Generator) moveSizes(snap models.IndicatorSnapshot) (mild, strong float64) {
	unit := 0.0
	if snap.ATR.Valid && snap.Close > 0 {
		unit = snap.ATR.Val / snap.Close * 100
	}
	mild = math.Max(unit, g.cfg.MildFloorPct)
	strong = math.Max(3*unit, g.cfg.StrongFloorPct)
	if strong < mild {
		strong = mild
	}
	return mild, strong
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ domsvc.ScenarioGenerator = (*Generator)(nil)
