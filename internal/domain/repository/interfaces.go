package repository

import (
	"context"

	"StockSage/internal/domain/models"
)

// MarketStream delivers end-of-day bar events from a provider feed.
type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.PriceBar, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Publisher pushes bar events onto the message bus.
type Publisher interface {
	Publish(ctx context.Context, b *models.PriceBar) error
	PublishBatch(ctx context.Context, bars []*models.PriceBar) error
	Close() error
}

// Storage persists daily bars.
type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, b *models.PriceBar) error
	StoreBatch(ctx context.Context, bars []*models.PriceBar) error
	Health(ctx context.Context) error // ping
	Close() error
}

// Metrics records operational signals from the ingest and advisor paths.
type Metrics interface {
	RecordBarStored(backend, symbol string)
	RecordEvaluation(symbol, action string)
	RecordError(kind string)
	RecordLastClose(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
