package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"StockSage/internal/domain/models"
	pkgcache "StockSage/pkg/cache"
	pkgch "StockSage/pkg/clickhouse"
	applogger "StockSage/pkg/logger"
)

// CHBarStore implements BarStore backed by ClickHouse.
type CHBarStore struct {
	db       *sql.DB
	table    string
	l        *applogger.Logger
	cache    pkgcache.Service
	cacheTTL time.Duration
}

func NewCHBarStore(ch *pkgch.Client, table string) *CHBarStore {
	if table == "" {
		table = "stocksage.daily_bars"
	}
	return &CHBarStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHBarStore) SetLogger(l *applogger.Logger) { s.l = l }

// SetCache enables read-through caching of the latest-bars query. Daily bars
// change at most once per session, so a short TTL keeps repeat evaluations off
// ClickHouse without serving stale history.
func (s *CHBarStore) SetCache(c pkgcache.Service, ttl time.Duration) {
	s.cache = c
	if ttl <= 0 {
		ttl = time.Minute
	}
	s.cacheTTL = ttl
}

func (s *CHBarStore) cachedBars(ctx context.Context, key string) ([]models.PriceBar, bool) {
	if s.cache == nil {
		return nil, false
	}
	var v interface{}
	if err := s.cache.Get(ctx, key, &v); err != nil {
		return nil, false
	}
	bars, ok := v.([]models.PriceBar)
	return bars, ok
}

func (s *CHBarStore) GetBars(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error) {
	start := time.Now()
	const qtpl = `
        SELECT date, symbol, open, high, low, close, volume
        FROM %s FINAL
        WHERE symbol = ? AND date >= ? AND date <= ?
        ORDER BY date ASC
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_bars query error",
				applogger.String("table", s.table),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get bars: %w", err)
	}
	defer rows.Close()

	out := make([]models.PriceBar, 0, 512)
	for rows.Next() {
		var b models.PriceBar
		if err := rows.Scan(&b.Date, &b.Symbol, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse get_bars scan error",
					applogger.String("table", s.table),
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse get_bars ok",
			applogger.String("table", s.table),
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHBarStore) GetLatestNBars(ctx context.Context, symbol string, n int) ([]models.PriceBar, error) {
	start := time.Now()
	key := pkgcache.GenerateKeyWithParams("bars:latest", symbol, n)
	if bars, ok := s.cachedBars(ctx, key); ok {
		return bars, nil
	}
	const qtpl = `
        SELECT date, symbol, open, high, low, close, volume
        FROM %s FINAL
        WHERE symbol = ?
        ORDER BY date DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_bars query error",
				applogger.String("table", s.table),
				applogger.String("symbol", symbol),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get latest bars: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.PriceBar, 0, n)
	for rows.Next() {
		var b models.PriceBar
		if err := rows.Scan(&b.Date, &b.Symbol, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_bars scan error",
					applogger.String("table", s.table),
					applogger.String("symbol", symbol),
					applogger.Int("limit", n),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		tmp = append(tmp, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, tmp, s.cacheTTL)
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_bars ok",
			applogger.String("table", s.table),
			applogger.String("symbol", symbol),
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}
