package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"StockSage/internal/usecase"
	pkgch "StockSage/pkg/clickhouse"
	"StockSage/pkg/config"
	xhttp "StockSage/pkg/http"
	pkgkafka "StockSage/pkg/kafka"
	applogger "StockSage/pkg/logger"
	"StockSage/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	l           *applogger.Logger
	collector   *usecase.BarCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	scan        *usecase.ScanUseCase
	backfill    *usecase.BackfillUseCase
	jobs        *queue.RedisQueue
	sched       *cron.Cron
	BarProc     *usecase.BarProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.BarCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	scan *usecase.ScanUseCase,
	backfill *usecase.BackfillUseCase,
	jobs *queue.RedisQueue,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
		scan:      scan,
		backfill:  backfill,
		jobs:      jobs,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.l

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Warm the bar store with historical candles before live collection
	if a.backfill != nil && a.cfg.MarketData.HistoryDays > 0 {
		go func() {
			if err := a.backfill.Backfill(ctx, a.cfg.MarketData.Symbols, a.cfg.MarketData.HistoryDays); err != nil {
				l.Warn("history backfill incomplete", applogger.Error(err))
			}
		}()
		l.Info("history backfill started", applogger.Int("days", a.cfg.MarketData.HistoryDays))
	}

	// Start collector
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("collector started", applogger.Strings("symbols", a.cfg.MarketData.Symbols))

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start the scan job queue when Redis is configured
	if a.jobs != nil {
		if err := a.jobs.Start(); err != nil {
			l.Error("scan queue start error", applogger.Error(err))
			return err
		}
		a.jobs.StartRetryProcessor()
		l.Info("scan queue started")
	}

	// Schedule periodic watchlist sweeps
	if a.cfg.Scan.Schedule != "" && a.scan != nil {
		a.sched = cron.New()
		if _, err := a.sched.AddFunc(a.cfg.Scan.Schedule, func() { a.runScan(ctx) }); err != nil {
			l.Error("scan schedule error", applogger.String("schedule", a.cfg.Scan.Schedule), applogger.Error(err))
			return err
		}
		a.sched.Start()
		l.Info("scan scheduler started", applogger.String("schedule", a.cfg.Scan.Schedule))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// runScan hands the sweep to the job queue when available, otherwise runs it inline.
func (a *App) runScan(ctx context.Context) {
	if a.jobs != nil {
		if err := a.jobs.Enqueue(ctx, usecase.ScanJobType, usecase.ScanJobPayload{}); err != nil {
			a.l.Warn("scan enqueue error", applogger.Error(err))
		}
		return
	}
	items := a.scan.Scan(ctx)
	triggered := 0
	for _, it := range items {
		if it.Err == nil && it.Result != nil && it.Result.Alert.Triggered {
			triggered++
		}
	}
	a.l.Info("scheduled scan complete",
		applogger.Int("targets", len(items)),
		applogger.Int("triggered", triggered))
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.l
	l.Info("shutting down...")

	// Stop the sweep scheduler first so no new work arrives
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}

	// Stop collector (pipeline + stream)
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop the job queue
	if a.jobs != nil {
		if err := a.jobs.Stop(shutdownCtx); err != nil {
			l.Warn("scan queue stop error", applogger.Error(err))
		}
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Close bar processor resources (publisher/storage)
	if a.BarProc != nil {
		a.BarProc.Close()
	}

	l.Info("shutdown complete")
	return nil
}
