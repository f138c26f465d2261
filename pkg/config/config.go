package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockSage/internal/domain/models"
)

type WatchEntry struct {
	Symbol string  `yaml:"symbol"`
	Target float64 `yaml:"target"`
	Note   string  `yaml:"note"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Backend struct {
		Type         string        `yaml:"type"`
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
	} `yaml:"backend"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	MarketData struct {
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url"`
		RESTBaseURL    string        `yaml:"rest_base_url"`
		Symbols        []string      `yaml:"symbols"`
		HistoryDays    int           `yaml:"history_days"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
		RatePerMinute  int           `yaml:"rate_per_minute"`
	} `yaml:"market_data"`
	Advisor struct {
		SMAFast    int     `yaml:"sma_fast"`
		SMASlow    int     `yaml:"sma_slow"`
		SMALong    int     `yaml:"sma_long"`
		EMAFast    int     `yaml:"ema_fast"`
		EMASlow    int     `yaml:"ema_slow"`
		RSIWindow  int     `yaml:"rsi_window"`
		MACDFast   int     `yaml:"macd_fast"`
		MACDSlow   int     `yaml:"macd_slow"`
		MACDSignal int     `yaml:"macd_signal"`
		BBWindow   int     `yaml:"bb_window"`
		BBWidth    float64 `yaml:"bb_width"`
		ATRWindow  int     `yaml:"atr_window"`

		Weights struct {
			LongTrend  float64 `yaml:"long_trend"`
			ShortTrend float64 `yaml:"short_trend"`
			RSI        float64 `yaml:"rsi"`
			MACD       float64 `yaml:"macd"`
			Bands      float64 `yaml:"bands"`
		} `yaml:"weights"`

		AccumulateThreshold float64 `yaml:"accumulate_threshold"`
		LiquidateThreshold  float64 `yaml:"liquidate_threshold"`
		MildFloorPct        float64 `yaml:"mild_floor_pct"`
		StrongFloorPct      float64 `yaml:"strong_floor_pct"`
		MinAlertConfidence  int     `yaml:"min_alert_confidence"`
	} `yaml:"advisor"`
	Cache struct {
		EvaluationTTL time.Duration `yaml:"evaluation_ttl"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Scan struct {
		Schedule  string       `yaml:"schedule"` // cron expression; empty disables the scheduler
		Workers   int          `yaml:"workers"`
		Watchlist []WatchEntry `yaml:"watchlist"`
	} `yaml:"scan"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKET_DATA_API_KEY"); v != "" {
		c.MarketData.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.MarketData.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}

	return c, nil
}

// AdvisorConfig maps the advisor section onto the evaluation tunables.
// Unset fields keep their documented defaults, so a minimal config file
// still yields a fully specified pipeline.
func (c *Config) AdvisorConfig() models.AdvisorConfig {
	out := models.DefaultAdvisorConfig()
	a := c.Advisor

	setInt := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	setInt(&out.SMAFast, a.SMAFast)
	setInt(&out.SMASlow, a.SMASlow)
	setInt(&out.SMALong, a.SMALong)
	setInt(&out.EMAFast, a.EMAFast)
	setInt(&out.EMASlow, a.EMASlow)
	setInt(&out.RSIWindow, a.RSIWindow)
	setInt(&out.MACDFast, a.MACDFast)
	setInt(&out.MACDSlow, a.MACDSlow)
	setInt(&out.MACDSignal, a.MACDSignal)
	setInt(&out.BBWindow, a.BBWindow)
	setInt(&out.ATRWindow, a.ATRWindow)
	if a.BBWidth > 0 {
		out.BBWidth = a.BBWidth
	}

	w := a.Weights
	if w.LongTrend+w.ShortTrend+w.RSI+w.MACD+w.Bands > 0 {
		out.Weights = models.ScoreWeights{
			LongTrend:  w.LongTrend,
			ShortTrend: w.ShortTrend,
			RSI:        w.RSI,
			MACD:       w.MACD,
			Bands:      w.Bands,
		}
	}
	if a.AccumulateThreshold != 0 {
		out.AccumulateThreshold = a.AccumulateThreshold
	}
	if a.LiquidateThreshold != 0 {
		out.LiquidateThreshold = a.LiquidateThreshold
	}
	if a.MildFloorPct > 0 {
		out.MildFloorPct = a.MildFloorPct
	}
	if a.StrongFloorPct > 0 {
		out.StrongFloorPct = a.StrongFloorPct
	}
	if a.MinAlertConfidence > 0 {
		out.MinAlertConfidence = a.MinAlertConfidence
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "kafka" && c.Backend.Type != "clickhouse" {
		return fmt.Errorf("backend.type must be 'kafka' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	if len(c.MarketData.Symbols) == 0 {
		return fmt.Errorf("market_data.symbols cannot be empty")
	}
	if err := c.AdvisorConfig().Validate(); err != nil {
		return err
	}
	for i, w := range c.Scan.Watchlist {
		if w.Symbol == "" {
			return fmt.Errorf("scan.watchlist[%d].symbol is required", i)
		}
		if w.Target < 0 {
			return fmt.Errorf("scan.watchlist[%d].target cannot be negative", i)
		}
	}
	return nil
}
