package usecase

import (
	"context"
	"fmt"
	"time"

	"StockSage/internal/domain/models"
	domrepo "StockSage/internal/domain/repository"
	domsvc "StockSage/internal/domain/service"
	"StockSage/internal/services/features"
	"StockSage/internal/services/indicators"
	applogger "StockSage/pkg/logger"
)

// DefaultHistoryBars is the evaluation window when the caller does not ask
// for a specific depth: roughly one trading year plus the long SMA warmup.
const DefaultHistoryBars = 260

// AdvisorUseCase orchestrates one full evaluation: fetch history, compute
// indicators, classify signals, derive scenarios, and decide. All analysis
// stages are pure; this layer owns I/O, logging, and metrics.
type AdvisorUseCase struct {
	store     domrepo.BarStore
	evaluator domsvc.SignalEvaluator
	scenarios domsvc.ScenarioGenerator
	decider   domsvc.DecisionEngine
	watcher   domsvc.WatchlistDetector
	cfg       models.AdvisorConfig
	metrics   domrepo.Metrics
	l         *applogger.Logger
	timeout   time.Duration
}

func NewAdvisorUseCase(
	store domrepo.BarStore,
	evaluator domsvc.SignalEvaluator,
	scenarios domsvc.ScenarioGenerator,
	decider domsvc.DecisionEngine,
	watcher domsvc.WatchlistDetector,
	cfg models.AdvisorConfig,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *AdvisorUseCase {
	return &AdvisorUseCase{
		store:     store,
		evaluator: evaluator,
		scenarios: scenarios,
		decider:   decider,
		watcher:   watcher,
		cfg:       cfg,
		metrics:   metrics,
		l:         l,
		timeout:   10 * time.Second,
	}
}

// Evaluate runs the full pipeline for symbol over the latest n daily bars.
func (uc *AdvisorUseCase) Evaluate(ctx context.Context, symbol string, n int) (*models.Evaluation, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol required", models.ErrInvalidInput)
	}
	if n <= 0 {
		n = DefaultHistoryBars
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	bars, err := uc.store.GetLatestNBars(ctx, symbol, n)
	if err != nil {
		uc.metrics.RecordError("advisor_fetch")
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no history for %s", models.ErrInvalidInput, symbol)
	}
	if err := models.ValidateBars(bars); err != nil {
		uc.metrics.RecordError("advisor_validate")
		return nil, err
	}

	ev := uc.run(symbol, bars)

	uc.metrics.RecordEvaluation(symbol, ev.Decision.Action.String())
	uc.metrics.RecordLastClose(symbol, ev.Indicators.Close)
	uc.metrics.RecordLatency("evaluate", time.Since(start).Seconds())
	if uc.l != nil {
		uc.l.Info("evaluation complete",
			applogger.String("symbol", symbol),
			applogger.Int("bars", len(bars)),
			applogger.String("action", ev.Decision.Action.String()),
			applogger.Int("confidence", ev.Decision.Confidence),
			applogger.Float64("composite", ev.Signals.Composite),
		)
	}
	return ev, nil
}

// run is the deterministic part of the pipeline: same bars, same result.
func (uc *AdvisorUseCase) run(symbol string, bars []models.PriceBar) *models.Evaluation {
	snap := indicators.Compute(bars, uc.cfg)
	signals := uc.evaluator.Evaluate(snap)
	set := uc.scenarios.Generate(snap, signals)
	if err := set.Validate(); err != nil {
		// the generator guarantees this; treat a violation as a bug, not a
		// user error
		uc.metrics.RecordError("advisor_scenarios")
		if uc.l != nil {
			uc.l.Error("scenario set invalid", applogger.String("symbol", symbol), applogger.Error(err))
		}
	}
	dec := uc.decider.Decide(signals)
	rets := features.ComputeLogReturns(bars)

	return &models.Evaluation{
		Symbol:      symbol,
		AsOf:        bars[len(bars)-1].Date,
		Indicators:  snap,
		Signals:     signals,
		Scenarios:   set,
		Decision:    dec,
		RealizedVol: features.RealizedVolatility(rets, volWindow(len(rets))),
	}
}

// volWindow fits the volatility lookback to the available history, capped
// at 60 sessions.
func volWindow(n int) int {
	if n < 60 {
		return n
	}
	return 60
}

// WatchResult pairs the full evaluation with the watchlist verdict.
type WatchResult struct {
	Evaluation *models.Evaluation
	Alert      models.WatchAlert
}

// Watch evaluates symbol and layers the watchlist conditions on top.
func (uc *AdvisorUseCase) Watch(ctx context.Context, symbol string, target float64, note string, n int) (*WatchResult, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol required", models.ErrInvalidInput)
	}
	if target < 0 {
		return nil, fmt.Errorf("%w: target cannot be negative", models.ErrInvalidInput)
	}
	if n <= 0 {
		n = DefaultHistoryBars
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	bars, err := uc.store.GetLatestNBars(ctx, symbol, n)
	if err != nil {
		uc.metrics.RecordError("advisor_fetch")
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no history for %s", models.ErrInvalidInput, symbol)
	}
	if err := models.ValidateBars(bars); err != nil {
		uc.metrics.RecordError("advisor_validate")
		return nil, err
	}

	ev := uc.run(symbol, bars)
	alert := uc.watcher.Check(bars, ev.Indicators, ev.Decision, symbol, target, note)

	if uc.l != nil {
		uc.l.Info("watch check complete",
			applogger.String("symbol", symbol),
			applogger.Bool("triggered", alert.Triggered),
			applogger.Int("confidence", alert.Confidence),
			applogger.Strings("matched", alert.Matched),
		)
	}
	return &WatchResult{Evaluation: ev, Alert: alert}, nil
}
