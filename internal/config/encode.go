package config

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/entrybarrier/internal/fileutil"
)

// Encode renders c as an HCL file that Parse reads back to the same values.
func Encode(c *Config) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	session := root.AppendNewBlock("session", nil).Body()
	session.SetAttributeValue("rounds_min", cty.NumberIntVal(int64(c.Market.RoundsMin)))
	session.SetAttributeValue("rounds_max", cty.NumberIntVal(int64(c.Market.RoundsMax)))
	session.SetAttributeValue("players", cty.NumberIntVal(int64(c.Players)))
	root.AppendNewline()

	treatment := root.AppendNewBlock("treatment", nil).Body()
	treatment.SetAttributeValue("sequential_entry", cty.BoolVal(c.Market.SequentialEntry))
	treatment.SetAttributeValue("fixed_price", cty.BoolVal(c.Market.FixedPrice))
	treatment.SetAttributeValue("mid_round", cty.NumberIntVal(int64(c.Market.MidRound)))
	root.AppendNewline()

	payoff := root.AppendNewBlock("payoff", nil).Body()
	for _, kv := range []struct {
		name  string
		value int
	}{
		{"low_cost", c.Market.LowCost},
		{"high_cost", c.Market.HighCost},
		{"low_utility", c.Market.LowUtility},
		{"high_utility", c.Market.HighUtility},
		{"default_price", c.Market.DefaultPrice},
		{"buyer_endowment", c.Market.BuyerEndowment},
		{"seller_endowment", c.Market.SellerEndowment},
	} {
		payoff.SetAttributeValue(kv.name, cty.NumberIntVal(int64(kv.value)))
	}
	root.AppendNewline()

	sim := root.AppendNewBlock("simulation", nil).Body()
	sim.SetAttributeValue("sessions", cty.NumberIntVal(int64(c.Simulation.Sessions)))
	if c.Simulation.Seed != nil {
		sim.SetAttributeValue("seed", cty.NumberIntVal(*c.Simulation.Seed))
	}
	sim.SetAttributeValue("workers", cty.NumberIntVal(int64(c.Simulation.Workers)))
	sim.SetAttributeValue("decision_timeout_ms", cty.NumberIntVal(c.Simulation.DecisionTimeout.Milliseconds()))
	sim.SetAttributeValue("max_attempts", cty.NumberIntVal(int64(c.Simulation.MaxAttempts)))
	sim.SetAttributeValue("buyer_strategy", cty.StringVal(c.Simulation.BuyerStrategy))
	sim.SetAttributeValue("incumbent_strategy", cty.StringVal(c.Simulation.IncumbentStrategy))
	sim.SetAttributeValue("entrant_strategy", cty.StringVal(c.Simulation.EntrantStrategy))
	root.AppendNewline()

	logging := root.AppendNewBlock("log", nil).Body()
	logging.SetAttributeValue("level", cty.StringVal(c.LogLevel))

	return hclwrite.Format(f.Bytes())
}

// Write stores c at filename atomically.
func Write(filename string, c *Config) error {
	return fileutil.WriteFileAtomic(filename, Encode(c), 0o644)
}
