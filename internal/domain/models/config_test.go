package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAdvisorConfigIsValid(t *testing.T) {
	cfg := DefaultAdvisorConfig()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), 1e-12)
}

func TestAdvisorConfigValidateRejects(t *testing.T) {
	mutate := func(f func(*AdvisorConfig)) AdvisorConfig {
		cfg := DefaultAdvisorConfig()
		f(&cfg)
		return cfg
	}
	cases := []struct {
		name string
		cfg  AdvisorConfig
	}{
		{"zero window", mutate(func(c *AdvisorConfig) { c.RSIWindow = 0 })},
		{"sma not ascending", mutate(func(c *AdvisorConfig) { c.SMAFast = 60 })},
		{"macd fast above slow", mutate(func(c *AdvisorConfig) { c.MACDFast = 30 })},
		{"weights off one", mutate(func(c *AdvisorConfig) { c.Weights.RSI = 0.5 })},
		{"negative weight", mutate(func(c *AdvisorConfig) {
			c.Weights.RSI = -0.15
			c.Weights.MACD = 0.5
		})},
		{"thresholds on one side", mutate(func(c *AdvisorConfig) { c.LiquidateThreshold = 0.1 })},
		{"strong floor below mild", mutate(func(c *AdvisorConfig) { c.StrongFloorPct = 0.1 })},
		{"alert threshold out of range", mutate(func(c *AdvisorConfig) { c.MinAlertConfidence = 150 })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
}
