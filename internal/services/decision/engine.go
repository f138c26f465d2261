package decision

import (
	"fmt"
	"math"
	"sort"

	"StockSage/internal/domain/models"
	domsvc "StockSage/internal/domain/service"
)

// Confidence scale. Bounded so the engine never reads as certain.
const (
	confidenceBase = 30
	confidenceCap  = 90
	perSignalBonus = 12
	holdSpread     = 45
)

// Engine thresholds a SignalState into a discrete action. The rule table is
// conjunctive: crossing the composite threshold alone is not enough, the
// long trend and MACD have to back it and the RSI must not already sit at
// the exhausted extreme.
type Engine struct {
	cfg models.AdvisorConfig
}

func NewEngine(cfg models.AdvisorConfig) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Decide(st models.SignalState) models.Decision {
	if st.InsufficientData {
		return models.Decision{
			Action:     models.ActionHold,
			Confidence: confidenceBase,
			Reasons:    []string{models.ReasonInsufficientData},
		}
	}

	action := models.ActionHold
	switch {
	case st.Composite >= e.cfg.AccumulateThreshold &&
		st.LongTrend == models.TrendUp &&
		st.MACD == models.MACDBullish &&
		st.RSI != models.RSIOverbought:
		action = models.ActionAccumulate
	case st.Composite <= e.cfg.LiquidateThreshold &&
		st.LongTrend == models.TrendDown &&
		st.MACD == models.MACDBearish &&
		st.RSI != models.RSIOversold:
		action = models.ActionLiquidate
	}

	return models.Decision{
		Action:     action,
		Confidence: e.confidence(action, st),
		Reasons:    e.reasons(action, st),
	}
}

// confidence grows with the number of signal categories agreeing with the
// action. HOLD confidence instead reflects how balanced the composite is: a
// score near zero is a confident HOLD, a score near a threshold is not.
func (e *Engine) confidence(action models.Action, st models.SignalState) int {
	if action == models.ActionHold {
		balance := 1 - math.Min(math.Abs(st.Composite), 1)
		return confidenceBase + int(balance*holdSpread)
	}
	conf := confidenceBase + perSignalBonus*agreeingSignals(action, st)
	if conf > confidenceCap {
		conf = confidenceCap
	}
	return conf
}

func agreeingSignals(action models.Action, st models.SignalState) int {
	bullish := action == models.ActionAccumulate
	n := 0
	if (bullish && st.LongTrend == models.TrendUp) || (!bullish && st.LongTrend == models.TrendDown) {
		n++
	}
	if (bullish && st.ShortTrend == models.TrendUp) || (!bullish && st.ShortTrend == models.TrendDown) {
		n++
	}
	if (bullish && st.RSI == models.RSIOversold) || (!bullish && st.RSI == models.RSIOverbought) {
		n++
	}
	if (bullish && st.MACD == models.MACDBullish) || (!bullish && st.MACD == models.MACDBearish) {
		n++
	}
	if (bullish && st.Bands == models.BandNearLower) || (!bullish && st.Bands == models.BandNearUpper) {
		n++
	}
	return n
}

// reasons lists the non-neutral signal categories ordered by their score
// weight, heaviest first. Ties keep the fixed category order: long trend,
// short trend, MACD, RSI, bands.
func (e *Engine) reasons(action models.Action, st models.SignalState) []string {
	type entry struct {
		weight float64
		text   string
	}
	var entries []entry

	if st.LongTrend != models.TrendSideways {
		entries = append(entries, entry{e.cfg.Weights.LongTrend,
			fmt.Sprintf("long trend %s", st.LongTrend)})
	}
	if st.ShortTrend != models.TrendSideways {
		entries = append(entries, entry{e.cfg.Weights.ShortTrend,
			fmt.Sprintf("short trend %s", st.ShortTrend)})
	}
	entries = append(entries, entry{e.cfg.Weights.MACD,
		fmt.Sprintf("MACD %s", st.MACD)})
	if st.RSI != models.RSINeutral {
		entries = append(entries, entry{e.cfg.Weights.RSI,
			fmt.Sprintf("RSI %s", st.RSI)})
	}
	if st.Bands != models.BandNeutral {
		entries = append(entries, entry{e.cfg.Weights.Bands,
			fmt.Sprintf("price %s Bollinger band", bandPhrase(st.Bands))})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].weight > entries[j].weight
	})

	out := make([]string, 0, len(entries)+1)
	for _, en := range entries {
		out = append(out, en.text)
	}
	if action == models.ActionHold {
		out = append(out, fmt.Sprintf("composite score %.2f inside hold band", st.Composite))
	}
	return out
}

func bandPhrase(b models.BandState) string {
	if b == models.BandNearUpper {
		return "near upper"
	}
	return "near lower"
}

var _ domsvc.DecisionEngine = (*Engine)(nil)
