package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSage/internal/domain/models"
)

func fullyBullish() models.SignalState {
	return models.SignalState{
		LongTrend:  models.TrendUp,
		ShortTrend: models.TrendUp,
		RSI:        models.RSIOversold,
		MACD:       models.MACDBullish,
		Bands:      models.BandNearLower,
		Composite:  1.0,
	}
}

func fullyBearish() models.SignalState {
	return models.SignalState{
		LongTrend:  models.TrendDown,
		ShortTrend: models.TrendDown,
		RSI:        models.RSIOverbought,
		MACD:       models.MACDBearish,
		Bands:      models.BandNearUpper,
		Composite:  -1.0,
	}
}

func TestDecideInsufficientData(t *testing.T) {
	e := NewEngine(models.DefaultAdvisorConfig())
	dec := e.Decide(models.SignalState{InsufficientData: true, Composite: 0.9})

	assert.Equal(t, models.ActionHold, dec.Action)
	assert.Equal(t, 30, dec.Confidence)
	assert.Equal(t, []string{models.ReasonInsufficientData}, dec.Reasons)
}

func TestDecideAccumulate(t *testing.T) {
	e := NewEngine(models.DefaultAdvisorConfig())
	dec := e.Decide(fullyBullish())

	assert.Equal(t, models.ActionAccumulate, dec.Action)
	// five agreeing categories: 30 + 5*12 capped at 90
	assert.Equal(t, 90, dec.Confidence)
}

func TestDecideLiquidate(t *testing.T) {
	e := NewEngine(models.DefaultAdvisorConfig())
	dec := e.Decide(fullyBearish())

	assert.Equal(t, models.ActionLiquidate, dec.Action)
	assert.Equal(t, 90, dec.Confidence)
}

func TestDecideOverboughtGuardBlocksAccumulate(t *testing.T) {
	st := fullyBullish()
	st.RSI = models.RSIOverbought
	st.Composite = 0.55 // still well above the threshold

	e := NewEngine(models.DefaultAdvisorConfig())
	dec := e.Decide(st)
	assert.Equal(t, models.ActionHold, dec.Action)
}

func TestDecideOversoldGuardBlocksLiquidate(t *testing.T) {
	st := fullyBearish()
	st.RSI = models.RSIOversold
	st.Composite = -0.55

	e := NewEngine(models.DefaultAdvisorConfig())
	dec := e.Decide(st)
	assert.Equal(t, models.ActionHold, dec.Action)
}

func TestDecideThresholdAloneIsNotEnough(t *testing.T) {
	st := models.SignalState{
		LongTrend: models.TrendSideways,
		MACD:      models.MACDBullish,
		Composite: 0.35,
	}
	e := NewEngine(models.DefaultAdvisorConfig())
	assert.Equal(t, models.ActionHold, e.Decide(st).Action)
}

func TestDecideBearishMACDBlocksAccumulate(t *testing.T) {
	st := fullyBullish()
	st.MACD = models.MACDBearish
	st.Composite = 0.60

	e := NewEngine(models.DefaultAdvisorConfig())
	assert.Equal(t, models.ActionHold, e.Decide(st).Action)
}

func TestDecideAccumulateConfidenceScalesWithAgreement(t *testing.T) {
	st := models.SignalState{
		LongTrend:  models.TrendUp,
		ShortTrend: models.TrendSideways,
		RSI:        models.RSINeutral,
		MACD:       models.MACDBullish,
		Bands:      models.BandNeutral,
		Composite:  0.50, // long 0.30 + macd 0.20
	}
	e := NewEngine(models.DefaultAdvisorConfig())
	dec := e.Decide(st)

	require.Equal(t, models.ActionAccumulate, dec.Action)
	// two agreeing categories: 30 + 2*12
	assert.Equal(t, 54, dec.Confidence)
}

func TestDecideHoldConfidence(t *testing.T) {
	e := NewEngine(models.DefaultAdvisorConfig())

	balanced := e.Decide(models.SignalState{Composite: 0})
	assert.Equal(t, 75, balanced.Confidence)

	leaning := e.Decide(models.SignalState{Composite: 0.19})
	assert.Greater(t, balanced.Confidence, leaning.Confidence)
	assert.GreaterOrEqual(t, leaning.Confidence, 30)
}

func TestDecideConfidenceBounds(t *testing.T) {
	e := NewEngine(models.DefaultAdvisorConfig())
	states := []models.SignalState{
		fullyBullish(),
		fullyBearish(),
		{Composite: 0},
		{Composite: 0.19, MACD: models.MACDBullish},
		{InsufficientData: true},
	}
	for _, st := range states {
		dec := e.Decide(st)
		assert.GreaterOrEqual(t, dec.Confidence, 30)
		assert.LessOrEqual(t, dec.Confidence, 90)
	}
}

func TestDecideReasonsOrderedByWeight(t *testing.T) {
	e := NewEngine(models.DefaultAdvisorConfig())
	dec := e.Decide(fullyBullish())

	require.Equal(t, []string{
		"long trend UP",
		"short trend UP",
		"MACD BULLISH",
		"RSI OVERSOLD",
		"price near lower Bollinger band",
	}, dec.Reasons)
}

func TestDecideHoldExplainsComposite(t *testing.T) {
	e := NewEngine(models.DefaultAdvisorConfig())
	dec := e.Decide(models.SignalState{Composite: 0.05, MACD: models.MACDBullish})

	require.NotEmpty(t, dec.Reasons)
	assert.Contains(t, dec.Reasons[len(dec.Reasons)-1], "hold band")
}

func TestDecideDeterministic(t *testing.T) {
	e := NewEngine(models.DefaultAdvisorConfig())
	st := fullyBullish()
	assert.Equal(t, e.Decide(st), e.Decide(st))
}
