package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	models "StockSage/internal/domain/models"
	icache "StockSage/internal/service/cache"
	"StockSage/internal/service/metrics"
	"StockSage/internal/service/ratelimit"
	"StockSage/internal/usecase"
	xhttp "StockSage/pkg/http"
	xlogger "StockSage/pkg/logger"
	"StockSage/pkg/util"

	"github.com/labstack/echo/v4"
)

// AdvisorEchoHandler exposes the advisor pipeline over HTTP.
type AdvisorEchoHandler struct {
	logger  *xlogger.Logger
	advisor *usecase.AdvisorUseCase
	bars    *usecase.BarsUseCase
	scan    *usecase.ScanUseCase

	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
}

func NewAdvisorEchoHandler(logger *xlogger.Logger, advisor *usecase.AdvisorUseCase, bars *usecase.BarsUseCase, scan *usecase.ScanUseCase) *AdvisorEchoHandler {
	metrics.Register()
	return &AdvisorEchoHandler{
		logger:   logger,
		advisor:  advisor,
		bars:     bars,
		scan:     scan,
		cacheTTL: 60 * time.Second,
		rl:       ratelimit.New(),
	}
}

// SetCache enables response caching for evaluate results.
func (h *AdvisorEchoHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

func (h *AdvisorEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/evaluate", h.Evaluate)
	g.GET("/watchlist", h.Watchlist)
	g.GET("/bars", h.Bars)
	g.GET("/scan", h.Scan)
}

func (h *AdvisorEchoHandler) Evaluate(c echo.Context) error {
	start := time.Now()
	endpoint := "evaluate"
	defer func() { metrics.AdvisorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.EvaluateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":evaluate", 10, 5) {
		return xhttp.DataResponse(c, 429, "rate limited")
	}

	cacheKey := fmt.Sprintf("evaluate:%s:%d", req.Symbol, req.N)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			h.logger.Warn("evaluate cache_get_error", xlogger.Error(err))
		} else if ok {
			var cached models.Evaluation
			if err := json.Unmarshal(b, &cached); err == nil {
				return xhttp.SuccessResponse(c, &cached)
			}
		}
	}

	res, err := h.advisor.Evaluate(c.Request().Context(), req.Symbol, req.N)
	if err != nil {
		metrics.AdvisorErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("evaluate usecase error", xlogger.Error(err))
		if errors.Is(err, models.ErrInvalidInput) {
			return xhttp.BadRequestResponse(c, err.Error())
		}
		return xhttp.AppErrorResponse(c, err)
	}

	if h.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := h.cache.SetBytes(cacheKey, b, h.cacheTTL); err != nil {
				h.logger.Warn("evaluate cache_set_error", xlogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) Watchlist(c echo.Context) error {
	start := time.Now()
	endpoint := "watchlist"
	defer func() { metrics.AdvisorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.WatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":watchlist", 10, 5) {
		return xhttp.DataResponse(c, 429, "rate limited")
	}

	res, err := h.advisor.Watch(c.Request().Context(), req.Symbol, req.Target, req.Note, req.N)
	if err != nil {
		metrics.AdvisorErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("watchlist usecase error", xlogger.Error(err))
		if errors.Is(err, models.ErrInvalidInput) {
			return xhttp.BadRequestResponse(c, err.Error())
		}
		return xhttp.AppErrorResponse(c, err)
	}
	if res.Alert.Triggered {
		metrics.WatchAlerts.WithLabelValues(req.Symbol).Inc()
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) Bars(c echo.Context) error {
	start := time.Now()
	endpoint := "bars"
	defer func() { metrics.AdvisorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.BarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	now := time.Now().UTC()
	from := xhttp.ParseTimeDefault(req.From, now.AddDate(0, 0, -DefaultBarsLookbackDays))
	to := xhttp.ParseTimeDefault(req.To, now)
	from, to = util.AlignFromTo(from, to)

	res, err := h.bars.GetBars(c.Request().Context(), usecase.GetBarsParams{
		Symbol: req.Symbol,
		From:   from,
		To:     to,
		Limit:  req.Limit,
	})
	if err != nil {
		metrics.AdvisorErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("bars usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// DefaultBarsLookbackDays bounds the bars query when no from date is given.
const DefaultBarsLookbackDays = 365

func (h *AdvisorEchoHandler) Scan(c echo.Context) error {
	start := time.Now()
	endpoint := "scan"
	defer func() { metrics.AdvisorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.rl.Allow(c.RealIP()+":scan", 2, 0.2) {
		return xhttp.DataResponse(c, 429, "rate limited")
	}

	items := h.scan.Scan(c.Request().Context())

	type scanEntry struct {
		Symbol string             `json:"symbol"`
		Alert  *models.WatchAlert `json:"alert,omitempty"`
		Error  string             `json:"error,omitempty"`
	}
	out := make([]scanEntry, 0, len(items))
	for _, it := range items {
		e := scanEntry{Symbol: it.Symbol}
		if it.Err != nil {
			e.Error = it.Err.Error()
			metrics.AdvisorErrors.WithLabelValues(endpoint).Inc()
		} else {
			alert := it.Result.Alert
			e.Alert = &alert
		}
		out = append(out, e)
	}
	return xhttp.SuccessResponse(c, out)
}
