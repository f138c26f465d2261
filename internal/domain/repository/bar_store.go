package repository

import (
	"context"
	"time"

	"StockSage/internal/domain/models"
)

// BarStore provides read-only access to daily bar history for the advisor.
type BarStore interface {
	GetBars(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error)
	GetLatestNBars(ctx context.Context, symbol string, n int) ([]models.PriceBar, error)
}
