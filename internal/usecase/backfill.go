package usecase

import (
	"context"
	"fmt"
	"time"

	"StockSage/internal/domain/models"
	"StockSage/internal/service/marketdata"
	applogger "StockSage/pkg/logger"
)

// BackfillUseCase seeds bar storage from the provider REST history so the
// advisor has enough depth before the stream has run for months.
type BackfillUseCase struct {
	history *marketdata.History
	proc    *BarProcessor
	l       *applogger.Logger
}

func NewBackfillUseCase(history *marketdata.History, proc *BarProcessor, l *applogger.Logger) *BackfillUseCase {
	return &BackfillUseCase{history: history, proc: proc, l: l}
}

// Backfill fetches days of daily history for each symbol and routes it to
// the configured backend. Failures on one symbol do not stop the rest.
func (uc *BackfillUseCase) Backfill(ctx context.Context, symbols []string, days int) error {
	if days <= 0 {
		days = 400
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	var firstErr error
	for _, sym := range symbols {
		bars, err := uc.history.DailyBars(ctx, sym, from, to)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("backfill %s: %w", sym, err)
			}
			if uc.l != nil {
				uc.l.Warn("backfill fetch failed", applogger.String("symbol", sym), applogger.Error(err))
			}
			continue
		}

		batch := make([]*models.PriceBar, len(bars))
		for i := range bars {
			batch[i] = &bars[i]
		}
		if err := uc.proc.ProcessBatch(ctx, batch); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("backfill store %s: %w", sym, err)
			}
			if uc.l != nil {
				uc.l.Warn("backfill store failed", applogger.String("symbol", sym), applogger.Error(err))
			}
			continue
		}
		if uc.l != nil {
			uc.l.Info("backfill complete", applogger.String("symbol", sym), applogger.Int("bars", len(bars)))
		}
	}
	return firstErr
}
