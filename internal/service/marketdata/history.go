package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"StockSage/internal/domain/models"
	"StockSage/internal/service/ratelimit"
	xhttp "StockSage/pkg/http"
)

// History backfills daily bar history over the provider REST API. Calls are
// throttled through a shared token bucket keyed per provider.
type History struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	rate    float64 // requests per second
}

func NewHistory(baseURL, apiKey string, client *xhttp.Client, limiter *ratelimit.Limiter, ratePerMinute int) *History {
	if ratePerMinute <= 0 {
		ratePerMinute = 60
	}
	return &History{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		limiter: limiter,
		rate:    float64(ratePerMinute) / 60.0,
	}
}

// candleResponse is the provider's column-oriented daily candle payload.
type candleResponse struct {
	Status  string    `json:"s"`
	Times   []int64   `json:"t"`
	Opens   []float64 `json:"o"`
	Highs   []float64 `json:"h"`
	Lows    []float64 `json:"l"`
	Closes  []float64 `json:"c"`
	Volumes []float64 `json:"v"`
}

// DailyBars fetches daily bars for symbol in [from, to], ascending by date.
func (h *History) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error) {
	if err := h.waitForToken(ctx); err != nil {
		return nil, err
	}

	var resp candleResponse
	err := h.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    h.baseURL + "/stock/candle",
		QueryParams: map[string][]string{
			"symbol":     {symbol},
			"resolution": {"D"},
			"from":       {strconv.FormatInt(from.Unix(), 10)},
			"to":         {strconv.FormatInt(to.Unix(), 10)},
			"token":      {h.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("history %s: provider status %q", symbol, resp.Status)
	}

	n := len(resp.Times)
	if len(resp.Opens) != n || len(resp.Highs) != n || len(resp.Lows) != n ||
		len(resp.Closes) != n || len(resp.Volumes) != n {
		return nil, fmt.Errorf("history %s: ragged candle columns", symbol)
	}

	bars := make([]models.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		bars = append(bars, models.PriceBar{
			Date:   time.Unix(resp.Times[i], 0).UTC().Truncate(24 * time.Hour),
			Symbol: symbol,
			Open:   resp.Opens[i],
			High:   resp.Highs[i],
			Low:    resp.Lows[i],
			Close:  resp.Closes[i],
			Volume: resp.Volumes[i],
		})
	}
	if err := models.ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	return bars, nil
}

func (h *History) waitForToken(ctx context.Context) error {
	for {
		if h.limiter.Allow("marketdata:history", h.rate*10, h.rate) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}
