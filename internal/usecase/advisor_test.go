package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSage/internal/domain/models"
	"StockSage/internal/services/decision"
	"StockSage/internal/services/scenario"
	"StockSage/internal/services/signal"
	"StockSage/internal/services/watchlist"
)

type stubBarStore struct {
	bars map[string][]models.PriceBar
}

func (s *stubBarStore) GetBars(_ context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error) {
	var out []models.PriceBar
	for _, b := range s.bars[symbol] {
		if !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBarStore) GetLatestNBars(_ context.Context, symbol string, n int) ([]models.PriceBar, error) {
	all := s.bars[symbol]
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordBarStored(backend, symbol string)       {}
func (noopMetrics) RecordEvaluation(symbol, action string)       {}
func (noopMetrics) RecordError(kind string)                      {}
func (noopMetrics) RecordLastClose(symbol string, price float64) {}
func (noopMetrics) RecordLatency(op string, seconds float64)     {}

func seriesBars(symbol string, closes []float64) []models.PriceBar {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Symbol: symbol,
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 10000,
		}
	}
	return bars
}

func flatCloses(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func risingCloses(n int, start, dailyPct float64) []float64 {
	out := make([]float64, n)
	p := start
	for i := range out {
		out[i] = p
		p *= 1 + dailyPct/100
	}
	return out
}

func newTestAdvisor(store *stubBarStore) *AdvisorUseCase {
	cfg := models.DefaultAdvisorConfig()
	return NewAdvisorUseCase(
		store,
		signal.NewEvaluator(cfg),
		scenario.NewGenerator(cfg),
		decision.NewEngine(cfg),
		watchlist.NewDetector(cfg),
		cfg,
		noopMetrics{},
		nil,
	)
}

func TestEvaluateDeterministic(t *testing.T) {
	store := &stubBarStore{bars: map[string][]models.PriceBar{
		"VNM": seriesBars("VNM", risingCloses(300, 50, 0.3)),
	}}
	uc := newTestAdvisor(store)

	a, err := uc.Evaluate(context.Background(), "VNM", 260)
	require.NoError(t, err)
	b, err := uc.Evaluate(context.Background(), "VNM", 260)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluateEmptySymbol(t *testing.T) {
	uc := newTestAdvisor(&stubBarStore{bars: map[string][]models.PriceBar{}})
	_, err := uc.Evaluate(context.Background(), "", 260)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestEvaluateNoHistory(t *testing.T) {
	uc := newTestAdvisor(&stubBarStore{bars: map[string][]models.PriceBar{}})
	_, err := uc.Evaluate(context.Background(), "GHOST", 260)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestEvaluateShortHistoryGuardedHold(t *testing.T) {
	store := &stubBarStore{bars: map[string][]models.PriceBar{
		"HPG": seriesBars("HPG", flatCloses(60, 25)),
	}}
	uc := newTestAdvisor(store)

	ev, err := uc.Evaluate(context.Background(), "HPG", 260)
	require.NoError(t, err)

	assert.True(t, ev.Signals.InsufficientData)
	assert.Equal(t, models.ActionHold, ev.Decision.Action)
	assert.Equal(t, 30, ev.Decision.Confidence)
	assert.Equal(t, []string{models.ReasonInsufficientData}, ev.Decision.Reasons)

	// flat series: SIDEWAYS must carry the largest probability mass
	require.NoError(t, ev.Scenarios.Validate())
	var sideways, best float64
	for _, sc := range ev.Scenarios {
		if sc.Label == models.Sideways {
			sideways = sc.Probability
		}
		best = math.Max(best, sc.Probability)
	}
	assert.Equal(t, best, sideways)
}

func TestEvaluateRisingSeriesLeansBullish(t *testing.T) {
	store := &stubBarStore{bars: map[string][]models.PriceBar{
		"FPT": seriesBars("FPT", risingCloses(300, 40, 0.4)),
	}}
	uc := newTestAdvisor(store)

	ev, err := uc.Evaluate(context.Background(), "FPT", 260)
	require.NoError(t, err)

	assert.False(t, ev.Signals.InsufficientData)
	assert.Equal(t, models.TrendUp, ev.Signals.LongTrend)
	assert.Greater(t, ev.Signals.Composite, 0.0)
	assert.NotEqual(t, models.ActionLiquidate, ev.Decision.Action)
	upside := ev.Scenarios.UpsideProbability()
	var downside float64
	for _, sc := range ev.Scenarios {
		if sc.Label == models.MildDown || sc.Label == models.StrongDown {
			downside += sc.Probability
		}
	}
	assert.Greater(t, upside, downside)
	assert.True(t, ev.RealizedVol.Valid)
	assert.Equal(t, ev.AsOf, store.bars["FPT"][len(store.bars["FPT"])-1].Date)
}

func TestWatchValidation(t *testing.T) {
	uc := newTestAdvisor(&stubBarStore{bars: map[string][]models.PriceBar{}})

	_, err := uc.Watch(context.Background(), "", 100, "", 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = uc.Watch(context.Background(), "VNM", -1, "", 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestWatchReturnsAlert(t *testing.T) {
	closes := risingCloses(300, 40, 0.4)
	store := &stubBarStore{bars: map[string][]models.PriceBar{
		"FPT": seriesBars("FPT", closes),
	}}
	uc := newTestAdvisor(store)

	last := closes[len(closes)-1]
	res, err := uc.Watch(context.Background(), "FPT", last, "entry watch", 0)
	require.NoError(t, err)

	assert.Equal(t, "FPT", res.Alert.Symbol)
	assert.Equal(t, "entry watch", res.Alert.Note)
	assert.Contains(t, res.Alert.Matched, "near_target")
	assert.NotNil(t, res.Evaluation)
}
