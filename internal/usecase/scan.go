package usecase

import (
	"context"
	"sync"
	"time"

	"StockSage/internal/service/metrics"
	applogger "StockSage/pkg/logger"
)

// ScanTarget is one configured watchlist entry.
type ScanTarget struct {
	Symbol string
	Target float64
	Note   string
}

// ScanUseCase sweeps the configured watchlist concurrently and collects
// every triggered alert. Results keep the configured order regardless of
// completion order.
type ScanUseCase struct {
	advisor *AdvisorUseCase
	targets []ScanTarget
	workers int
	l       *applogger.Logger
	timeout time.Duration
}

func NewScanUseCase(advisor *AdvisorUseCase, targets []ScanTarget, workers int, l *applogger.Logger) *ScanUseCase {
	if workers <= 0 {
		workers = 4
	}
	return &ScanUseCase{
		advisor: advisor,
		targets: targets,
		workers: workers,
		l:       l,
		timeout: 60 * time.Second,
	}
}

// ScanItem is the outcome for one watchlist entry. Err is set when the
// evaluation itself failed; the scan continues over the other symbols.
type ScanItem struct {
	Symbol string
	Result *WatchResult
	Err    error
}

// Scan runs the watchlist sweep and returns one item per configured entry.
func (uc *ScanUseCase) Scan(ctx context.Context) []ScanItem {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	items := make([]ScanItem, len(uc.targets))
	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup

	for i, t := range uc.targets {
		wg.Add(1)
		go func(i int, t ScanTarget) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := uc.advisor.Watch(ctx, t.Symbol, t.Target, t.Note, 0)
			items[i] = ScanItem{Symbol: t.Symbol, Result: res, Err: err}
		}(i, t)
	}
	wg.Wait()

	for _, it := range items {
		switch {
		case it.Err != nil:
			if uc.l != nil {
				uc.l.Warn("scan entry failed",
					applogger.String("symbol", it.Symbol),
					applogger.Error(it.Err),
				)
			}
		case it.Result.Alert.Triggered:
			metrics.WatchAlerts.WithLabelValues(it.Symbol).Inc()
			if uc.l != nil {
				uc.l.Info("watch alert triggered",
					applogger.String("symbol", it.Symbol),
					applogger.Int("confidence", it.Result.Alert.Confidence),
					applogger.Strings("matched", it.Result.Alert.Matched),
				)
			}
		}
	}
	return items
}

// Targets returns the configured watchlist entries.
func (uc *ScanUseCase) Targets() []ScanTarget { return uc.targets }
