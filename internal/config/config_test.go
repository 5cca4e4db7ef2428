package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/entrybarrier/internal/market"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestParseOverridesOnlyGivenValues(t *testing.T) {
	src := `
session {
  players = 12
}

treatment {
  sequential_entry = true
  mid_round        = 4
}

payoff {
  low_cost = 0
}

simulation {
  seed                = 0
  decision_timeout_ms = 250
  entrant_strategy    = "random"
}

log {
  level = "debug"
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	def := market.DefaultConfig()
	assert.Equal(t, 12, cfg.Players)
	assert.Equal(t, def.RoundsMin, cfg.Market.RoundsMin)
	assert.True(t, cfg.Market.SequentialEntry)
	assert.False(t, cfg.Market.FixedPrice)
	assert.Equal(t, 4, cfg.Market.MidRound)
	assert.Equal(t, 0, cfg.Market.LowCost, "explicit zero must not be replaced by the default")
	assert.Equal(t, def.HighCost, cfg.Market.HighCost)
	require.NotNil(t, cfg.Simulation.Seed)
	assert.EqualValues(t, 0, *cfg.Simulation.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.DecisionTimeout)
	assert.Equal(t, "random", cfg.Simulation.EntrantStrategy)
	assert.Equal(t, "reputation", cfg.Simulation.BuyerStrategy)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseRejectsBadSyntax(t *testing.T) {
	_, err := Parse([]byte(`session { players = }`), "bad.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`session { unknown = 1 }`), "bad.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"players not multiple of four", func(c *Config) { c.Players = 6 }},
		{"no players", func(c *Config) { c.Players = 0 }},
		{"no sessions", func(c *Config) { c.Simulation.Sessions = 0 }},
		{"no workers", func(c *Config) { c.Simulation.Workers = 0 }},
		{"no timeout", func(c *Config) { c.Simulation.DecisionTimeout = 0 }},
		{"no attempts", func(c *Config) { c.Simulation.MaxAttempts = 0 }},
		{"unknown strategy", func(c *Config) { c.Simulation.BuyerStrategy = "oracle" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad market", func(c *Config) { c.Market.RoundsMax = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)

	want := Default()
	seed := int64(42)
	want.Simulation.Seed = &seed
	want.Market.FixedPrice = true
	want.Players = 16
	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
