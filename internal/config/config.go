// Package config loads the HCL configuration file of the entrybarrier tools.
//
//	session    { rounds_min = 12  rounds_max = 15  players = 8 }
//	treatment  { sequential_entry = false  fixed_price = false  mid_round = 6 }
//	payoff     { low_cost = 5  high_cost = 30  ... }
//	simulation { sessions = 100  workers = 4  buyer_strategy = "reputation" }
//	log        { level = "info" }
//
// Every block and attribute is optional; missing values take the defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/entrybarrier/internal/bot"
	"github.com/lox/entrybarrier/internal/market"
)

// DefaultFilename is looked up when no path is given.
const DefaultFilename = "entrybarrier.hcl"

// Config is the resolved configuration.
type Config struct {
	Market     market.Config
	Players    int
	Simulation Simulation
	LogLevel   string
}

// Simulation configures batch runs of bot sessions.
type Simulation struct {
	Sessions        int
	Seed            *int64 // nil draws a seed at start-up
	Workers         int
	DecisionTimeout time.Duration
	MaxAttempts     int

	BuyerStrategy     string
	IncumbentStrategy string
	EntrantStrategy   string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Market:  market.DefaultConfig(),
		Players: 8,
		Simulation: Simulation{
			Sessions:          100,
			Workers:           4,
			DecisionTimeout:   time.Second,
			MaxAttempts:       3,
			BuyerStrategy:     bot.Reputation,
			IncumbentStrategy: bot.Reputation,
			EntrantStrategy:   bot.Opportunist,
		},
		LogLevel: "info",
	}
}

// file mirrors the HCL layout. Attributes are pointers so that an explicit
// zero or false can be told apart from an omitted attribute.
type file struct {
	Session    *sessionBlock    `hcl:"session,block"`
	Treatment  *treatmentBlock  `hcl:"treatment,block"`
	Payoff     *payoffBlock     `hcl:"payoff,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
	Log        *logBlock        `hcl:"log,block"`
}

type sessionBlock struct {
	RoundsMin *int `hcl:"rounds_min,optional"`
	RoundsMax *int `hcl:"rounds_max,optional"`
	Players   *int `hcl:"players,optional"`
}

type treatmentBlock struct {
	SequentialEntry *bool `hcl:"sequential_entry,optional"`
	FixedPrice      *bool `hcl:"fixed_price,optional"`
	MidRound        *int  `hcl:"mid_round,optional"`
}

type payoffBlock struct {
	LowCost         *int `hcl:"low_cost,optional"`
	HighCost        *int `hcl:"high_cost,optional"`
	LowUtility      *int `hcl:"low_utility,optional"`
	HighUtility     *int `hcl:"high_utility,optional"`
	DefaultPrice    *int `hcl:"default_price,optional"`
	BuyerEndowment  *int `hcl:"buyer_endowment,optional"`
	SellerEndowment *int `hcl:"seller_endowment,optional"`
}

type simulationBlock struct {
	Sessions          *int    `hcl:"sessions,optional"`
	Seed              *int64  `hcl:"seed,optional"`
	Workers           *int    `hcl:"workers,optional"`
	DecisionTimeoutMs *int    `hcl:"decision_timeout_ms,optional"`
	MaxAttempts       *int    `hcl:"max_attempts,optional"`
	BuyerStrategy     *string `hcl:"buyer_strategy,optional"`
	IncumbentStrategy *string `hcl:"incumbent_strategy,optional"`
	EntrantStrategy   *string `hcl:"entrant_strategy,optional"`
}

type logBlock struct {
	Level *string `hcl:"level,optional"`
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source on top of the defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if b := raw.Session; b != nil {
		set(&cfg.Market.RoundsMin, b.RoundsMin)
		set(&cfg.Market.RoundsMax, b.RoundsMax)
		set(&cfg.Players, b.Players)
	}
	if b := raw.Treatment; b != nil {
		set(&cfg.Market.SequentialEntry, b.SequentialEntry)
		set(&cfg.Market.FixedPrice, b.FixedPrice)
		set(&cfg.Market.MidRound, b.MidRound)
	}
	if b := raw.Payoff; b != nil {
		set(&cfg.Market.LowCost, b.LowCost)
		set(&cfg.Market.HighCost, b.HighCost)
		set(&cfg.Market.LowUtility, b.LowUtility)
		set(&cfg.Market.HighUtility, b.HighUtility)
		set(&cfg.Market.DefaultPrice, b.DefaultPrice)
		set(&cfg.Market.BuyerEndowment, b.BuyerEndowment)
		set(&cfg.Market.SellerEndowment, b.SellerEndowment)
	}
	if b := raw.Simulation; b != nil {
		sim := &cfg.Simulation
		set(&sim.Sessions, b.Sessions)
		if b.Seed != nil {
			seed := *b.Seed
			sim.Seed = &seed
		}
		set(&sim.Workers, b.Workers)
		if b.DecisionTimeoutMs != nil {
			sim.DecisionTimeout = time.Duration(*b.DecisionTimeoutMs) * time.Millisecond
		}
		set(&sim.MaxAttempts, b.MaxAttempts)
		set(&sim.BuyerStrategy, b.BuyerStrategy)
		set(&sim.IncumbentStrategy, b.IncumbentStrategy)
		set(&sim.EntrantStrategy, b.EntrantStrategy)
	}
	if b := raw.Log; b != nil {
		set(&cfg.LogLevel, b.Level)
	}
	return cfg, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Market.Validate(); err != nil {
		return err
	}
	if c.Players < market.GroupSize || c.Players%market.GroupSize != 0 {
		return fmt.Errorf("players must be a positive multiple of %d, got %d", market.GroupSize, c.Players)
	}

	sim := c.Simulation
	if sim.Sessions < 1 {
		return fmt.Errorf("sessions must be positive, got %d", sim.Sessions)
	}
	if sim.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", sim.Workers)
	}
	if sim.DecisionTimeout <= 0 {
		return fmt.Errorf("decision timeout must be positive, got %v", sim.DecisionTimeout)
	}
	if sim.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be positive, got %d", sim.MaxAttempts)
	}
	for role, name := range c.Strategies() {
		if !bot.Known(name) {
			return fmt.Errorf("%s strategy: unknown bot %q (known: %v)", role, name, bot.Names())
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Strategies maps each role to its configured bot strategy.
func (c *Config) Strategies() map[market.Role]string {
	return map[market.Role]string{
		market.Buyer:     c.Simulation.BuyerStrategy,
		market.Incumbent: c.Simulation.IncumbentStrategy,
		market.Entrant:   c.Simulation.EntrantStrategy,
	}
}
