package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/entrybarrier/cmd/entrybarrier/shared"
	"github.com/lox/entrybarrier/internal/config"
	"github.com/lox/entrybarrier/internal/runner"
	"github.com/lox/entrybarrier/internal/simulator"
)

// SimulateCmd runs a batch of sessions played by bots.
type SimulateCmd struct {
	Config   string `short:"c" default:"entrybarrier.hcl" help:"Configuration file (defaults apply when missing)"`
	Sessions int    `help:"Number of sessions (overrides config)"`
	Workers  int    `help:"Concurrent sessions (overrides config)"`
	Seed     *int64 `help:"Deterministic RNG seed (overrides config)"`
	Debug    bool   `help:"Enable debug logging"`
	NoColor  bool   `help:"Disable coloured output"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Sessions > 0 {
		cfg.Simulation.Sessions = c.Sessions
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := shared.SetupLogger(cfg.LogLevel, c.Debug)
	if err != nil {
		return err
	}
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	var seed int64
	if cfg.Simulation.Seed != nil {
		seed = *cfg.Simulation.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	}

	ctx := shared.SetupSignalHandler(logger)

	logger.Info("Starting simulation",
		"sessions", cfg.Simulation.Sessions,
		"players", cfg.Players,
		"workers", cfg.Simulation.Workers,
		"sequential_entry", cfg.Market.SequentialEntry,
		"fixed_price", cfg.Market.FixedPrice)

	sim := simulator.New(simulator.Config{
		Market:   cfg.Market,
		Players:  cfg.Players,
		Sessions: cfg.Simulation.Sessions,
		Workers:  cfg.Simulation.Workers,
		Seed:     seed,
		Runner: runner.Config{
			DecisionTimeout: cfg.Simulation.DecisionTimeout,
			MaxAttempts:     cfg.Simulation.MaxAttempts,
		},
		Strategies: cfg.Strategies(),
		Logger:     logger,
	})
	summary, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, renderSummary(cfg, seed, summary))
	return nil
}
