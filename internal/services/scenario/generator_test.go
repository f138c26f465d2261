package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSage/internal/domain/models"
)

func generate(t *testing.T, composite float64, snap models.IndicatorSnapshot) models.ScenarioSet {
	t.Helper()
	g := NewGenerator(models.DefaultAdvisorConfig())
	set := g.Generate(snap, models.SignalState{Composite: composite})
	require.NoError(t, set.Validate())
	return set
}

func TestGenerateFixedOrderAndSum(t *testing.T) {
	for _, s := range []float64{-1, -0.5, -0.1, 0, 0.1, 0.5, 1} {
		set := generate(t, s, models.IndicatorSnapshot{Close: 100, ATR: models.FloatFrom(2)})
		require.Len(t, set, 5)
		assert.Equal(t, models.StrongUp, set[0].Label)
		assert.Equal(t, models.MildUp, set[1].Label)
		assert.Equal(t, models.Sideways, set[2].Label)
		assert.Equal(t, models.MildDown, set[3].Label)
		assert.Equal(t, models.StrongDown, set[4].Label)

		sum := 0.0
		for _, sc := range set {
			require.GreaterOrEqual(t, sc.Probability, 0.0)
			sum += sc.Probability
		}
		assert.InDeltaf(t, 1.0, sum, 1e-9, "composite=%v", s)
	}
}

func TestGenerateNeutralScoreFavorsSideways(t *testing.T) {
	set := generate(t, 0, models.IndicatorSnapshot{Close: 100, ATR: models.FloatFrom(2)})

	sideways := set[2].Probability
	for i, sc := range set {
		if i == 2 {
			continue
		}
		assert.Less(t, sc.Probability, sideways)
	}
	assert.InDelta(t, set[0].Probability, set[4].Probability, 1e-12)
	assert.InDelta(t, set[1].Probability, set[3].Probability, 1e-12)
}

func TestGenerateUpsideMonotonicInComposite(t *testing.T) {
	snap := models.IndicatorSnapshot{Close: 100, ATR: models.FloatFrom(2)}
	prev := -1.0
	for _, s := range []float64{-1, -0.6, -0.2, 0, 0.2, 0.6, 1} {
		up := generate(t, s, snap).UpsideProbability()
		assert.Greaterf(t, up, prev, "composite=%v", s)
		prev = up
	}
}

func TestGenerateStrongShareGrowsWithScore(t *testing.T) {
	snap := models.IndicatorSnapshot{Close: 100, ATR: models.FloatFrom(2)}
	weak := generate(t, 0.2, snap)
	strong := generate(t, 0.9, snap)

	weakShare := weak[0].Probability / (weak[0].Probability + weak[1].Probability)
	strongShare := strong[0].Probability / (strong[0].Probability + strong[1].Probability)
	assert.Greater(t, strongShare, weakShare)
}

func TestGenerateMoveSizesFromATR(t *testing.T) {
	// ATR 2 on close 100 is a 2% unit: above both floors
	set := generate(t, 0.5, models.IndicatorSnapshot{Close: 100, ATR: models.FloatFrom(2)})
	assert.InDelta(t, 6.0, set[0].ExpectedMovePct, 1e-9)
	assert.InDelta(t, 2.0, set[1].ExpectedMovePct, 1e-9)
	assert.Zero(t, set[2].ExpectedMovePct)
	assert.InDelta(t, -2.0, set[3].ExpectedMovePct, 1e-9)
	assert.InDelta(t, -6.0, set[4].ExpectedMovePct, 1e-9)
}

func TestGenerateFlatSeriesUsesFloors(t *testing.T) {
	set := generate(t, 0, models.IndicatorSnapshot{Close: 100, ATR: models.FloatFrom(0)})
	assert.InDelta(t, 1.5, set[0].ExpectedMovePct, 1e-12)
	assert.InDelta(t, 0.5, set[1].ExpectedMovePct, 1e-12)
	assert.InDelta(t, -0.5, set[3].ExpectedMovePct, 1e-12)
	assert.InDelta(t, -1.5, set[4].ExpectedMovePct, 1e-12)
}

func TestGenerateUnavailableATRUsesFloors(t *testing.T) {
	set := generate(t, 0.3, models.IndicatorSnapshot{Close: 100})
	assert.InDelta(t, 0.5, set[1].ExpectedMovePct, 1e-12)
	assert.InDelta(t, 1.5, set[0].ExpectedMovePct, 1e-12)
}

func TestGenerateClampsCompositeOutOfRange(t *testing.T) {
	snap := models.IndicatorSnapshot{Close: 100, ATR: models.FloatFrom(2)}
	extreme := generate(t, 5, snap)
	atOne := generate(t, 1, snap)
	assert.Equal(t, atOne, extreme)
}

func TestGenerateDeterministic(t *testing.T) {
	snap := models.IndicatorSnapshot{Close: 100, ATR: models.FloatFrom(1.5)}
	a := generate(t, 0.42, snap)
	b := generate(t, 0.42, snap)
	assert.Equal(t, a, b)
}
