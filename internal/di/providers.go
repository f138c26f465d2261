package di

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"StockSage/internal/domain/repository"
	"StockSage/internal/handler/api"
	mid "StockSage/internal/middleware"
	internalrepo "StockSage/internal/repository"
	icache "StockSage/internal/service/cache"
	"StockSage/internal/service/marketdata"
	"StockSage/internal/service/ratelimit"
	"StockSage/internal/services/decision"
	"StockSage/internal/services/scenario"
	"StockSage/internal/services/signal"
	"StockSage/internal/services/watchlist"
	"StockSage/internal/usecase"
	pkgcache "StockSage/pkg/cache"
	pkgch "StockSage/pkg/clickhouse"
	"StockSage/pkg/config"
	xhttp "StockSage/pkg/http"
	pkgkafka "StockSage/pkg/kafka"
	applogger "StockSage/pkg/logger"
	"StockSage/pkg/metrics"
	"StockSage/pkg/queue"
	"StockSage/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.daily_bars (
			date Date,
			symbol LowCardinality(String),
			open Float64,
			high Float64,
			low Float64,
			close Float64,
			volume Float64,
			source LowCardinality(String),
			event_id String
		) ENGINE=ReplacingMergeTree ORDER BY (symbol, date)`, cfg.ClickHouse.Database),
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideBarStorage creates ClickHouse storage repository.
func ProvideBarStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	return internalrepo.NewClickHouseStorage(chClient.DB(), cfg.ClickHouse.Database+".daily_bars")
}

// ProvideBarPublisher creates Kafka publisher repository.
func ProvideBarPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaBarsHandler registers the handler for the daily bars topic.
func ProvideKafkaBarsHandler(store repository.Storage, metrics repository.Metrics, cfg *config.Config) *usecase.KafkaBarsHandler {
	return usecase.NewKafkaBarsHandler(cfg.Kafka.Topic, store, metrics)
}

// ProvideMarketStream creates the provider WebSocket bar stream.
func ProvideMarketStream(cfg *config.Config) repository.MarketStream {
	return marketdata.NewStream(
		cfg.MarketData.APIKey,
		cfg.MarketData.WebSocketURL,
		cfg.MarketData.Symbols,
		cfg.MarketData.ReconnectDelay,
		cfg.MarketData.PingInterval,
	)
}

// ProvideHistory creates the provider REST client for historical candles.
func ProvideHistory(cfg *config.Config) *marketdata.History {
	hc := xhttp.NewClient(xhttp.WithTimeout(30 * time.Second))
	return marketdata.NewHistory(
		cfg.MarketData.RESTBaseURL,
		cfg.MarketData.APIKey,
		hc,
		ratelimit.New(),
		cfg.MarketData.RatePerMinute,
	)
}

// ProvideBarProcessor creates the bar processor use case.
func ProvideBarProcessor(
	pub repository.Publisher,
	store repository.Storage,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.BarProcessor {
	return usecase.NewBarProcessor(
		pub,
		store,
		metrics,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideBarCollector creates the bar collector use case.
func ProvideBarCollector(
	stream repository.MarketStream,
	processor *usecase.BarProcessor,
	metrics repository.Metrics,
) *usecase.BarCollector {
	// Build middleware pipeline between WebSocket and the backend
	pipe := mid.NewIngestPipeline(processor, metrics,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewBarCollector(stream, processor, metrics, pipe)
}

// ProvideBarStore creates the ClickHouse bar read store used by the advisor.
func ProvideBarStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.BarStore {
	store := internalrepo.NewCHBarStore(chClient, cfg.ClickHouse.Database+".daily_bars")
	store.SetLogger(l)
	store.SetCache(pkgcache.NewMemoryCache(
		pkgcache.WithMemoryMaxSize(1024),
		pkgcache.WithMemoryCleanup(5*time.Minute),
	), time.Minute)
	return store
}

// ProvideAdvisorUseCase assembles the pure evaluation services around the bar store.
func ProvideAdvisorUseCase(
	store repository.BarStore,
	cfg *config.Config,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.AdvisorUseCase {
	acfg := cfg.AdvisorConfig()
	return usecase.NewAdvisorUseCase(
		store,
		signal.NewEvaluator(acfg),
		scenario.NewGenerator(acfg),
		decision.NewEngine(acfg),
		watchlist.NewDetector(acfg),
		acfg,
		m,
		l,
	)
}

// ProvideBarsUseCase creates the raw bar query use case.
func ProvideBarsUseCase(store repository.BarStore) *usecase.BarsUseCase {
	return usecase.NewBarsUseCase(store)
}

// ProvideScanUseCase builds the watchlist sweep from configured targets.
func ProvideScanUseCase(advisor *usecase.AdvisorUseCase, cfg *config.Config, l *applogger.Logger) *usecase.ScanUseCase {
	targets := make([]usecase.ScanTarget, 0, len(cfg.Scan.Watchlist))
	for _, w := range cfg.Scan.Watchlist {
		targets = append(targets, usecase.ScanTarget{Symbol: w.Symbol, Target: w.Target, Note: w.Note})
	}
	return usecase.NewScanUseCase(advisor, targets, cfg.Scan.Workers, l)
}

// ProvideBackfillUseCase creates the history backfill use case.
func ProvideBackfillUseCase(history *marketdata.History, proc *usecase.BarProcessor, l *applogger.Logger) *usecase.BackfillUseCase {
	return usecase.NewBackfillUseCase(history, proc, l)
}

// ProvideScanQueue creates the Redis job queue running watchlist sweeps, or nil
// when Redis is disabled (the scheduler then runs sweeps in-process).
func ProvideScanQueue(cfg *config.Config, scan *usecase.ScanUseCase, l *applogger.Logger) *queue.RedisQueue {
	if !cfg.Cache.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	q := queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    2,
		RetryLimit: 3,
		RetryDelay: 30 * time.Second,
	}, client, queue.ModeProducerConsumer)
	q.RegisterJob(usecase.NewScanJob(scan, l))
	return q
}

// ProvideEvaluationCache picks the evaluation response cache backend.
func ProvideEvaluationCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	advisor *usecase.AdvisorUseCase,
	bars *usecase.BarsUseCase,
	scan *usecase.ScanUseCase,
	c icache.BytesCache,
	cfg *config.Config,
) xhttp.Handler {
	h := api.NewAdvisorEchoHandler(l, advisor, bars, scan)
	h.SetCache(c, cfg.Cache.EvaluationTTL)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.BarCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaBarsHandler,
	chClient *pkgch.Client,
	handler xhttp.Handler,
	scan *usecase.ScanUseCase,
	backfill *usecase.BackfillUseCase,
	jobs *queue.RedisQueue,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	app := server.New(cfg, l, collector, consumer, kh, chClient, scan, backfill, jobs)
	app.SetHTTPHandler(handler)
	// attach bar processor to app for closing resources via collector
	if collector != nil {
		app.BarProc = collector.Processor()
	}
	return app
}
