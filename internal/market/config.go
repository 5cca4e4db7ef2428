package market

import (
	"fmt"
	rand "math/rand/v2"
)

// Config holds the immutable parameters of a session. It is passed by value
// into every gate and payoff call.
type Config struct {
	RoundsMin int
	RoundsMax int

	LowCost     int
	HighCost    int
	LowUtility  int
	HighUtility int

	DefaultPrice    int
	BuyerEndowment  int
	SellerEndowment int

	// SequentialEntry bars entrants from the market before MidRound.
	SequentialEntry bool
	// FixedPrice pins every price to DefaultPrice.
	FixedPrice bool
	MidRound   int
}

// DefaultConfig returns the parameters used in the laboratory sessions.
func DefaultConfig() Config {
	return Config{
		RoundsMin:       12,
		RoundsMax:       15,
		LowCost:         5,
		HighCost:        30,
		LowUtility:      60,
		HighUtility:     95,
		DefaultPrice:    55,
		BuyerEndowment:  20,
		SellerEndowment: 10,
		MidRound:        6,
	}
}

// Validate checks internal consistency of the parameters.
func (c Config) Validate() error {
	if c.RoundsMin < 1 {
		return fmt.Errorf("%w: rounds_min must be at least 1, got %d", ErrConfiguration, c.RoundsMin)
	}
	if c.RoundsMax < c.RoundsMin {
		return fmt.Errorf("%w: rounds_max %d below rounds_min %d", ErrConfiguration, c.RoundsMax, c.RoundsMin)
	}
	if c.MidRound < 1 {
		return fmt.Errorf("%w: mid_round must be at least 1, got %d", ErrConfiguration, c.MidRound)
	}
	if c.LowCost < 0 || c.HighCost < c.LowCost {
		return fmt.Errorf("%w: costs must satisfy 0 <= low_cost <= high_cost", ErrConfiguration)
	}
	if c.LowUtility < 0 || c.HighUtility < c.LowUtility {
		return fmt.Errorf("%w: utilities must satisfy 0 <= low_utility <= high_utility", ErrConfiguration)
	}
	if c.BuyerEndowment < 0 || c.SellerEndowment < 0 {
		return fmt.Errorf("%w: endowments must not be negative", ErrConfiguration)
	}
	if c.FixedPrice && c.DefaultPrice < 0 {
		return fmt.Errorf("%w: default_price must not be negative", ErrConfiguration)
	}
	return nil
}

// PriceBounds returns the inclusive range of acceptable prices. Under the
// fixed-price treatment both bounds equal DefaultPrice.
func (c Config) PriceBounds() (lo, hi int) {
	if c.FixedPrice {
		return c.DefaultPrice, c.DefaultPrice
	}
	return c.LowUtility - c.BuyerEndowment, c.HighUtility - c.BuyerEndowment
}

// UnitCost is the seller's cost per unit sold at the given quality.
func (c Config) UnitCost(high bool) int {
	if high {
		return c.HighCost
	}
	return c.LowCost
}

// Utility is the buyer's value of one unit at the given quality.
func (c Config) Utility(high bool) int {
	if high {
		return c.HighUtility
	}
	return c.LowUtility
}

// EntryOpen reports whether a seller of the given role may choose to enter in
// the given round.
func (c Config) EntryOpen(role Role, round int) bool {
	switch role {
	case Incumbent:
		return true
	case Entrant:
		return !c.SequentialEntry || round >= c.MidRound
	default:
		return false
	}
}

// DrawRounds draws the realized number of rounds uniformly from
// [RoundsMin, RoundsMax].
func DrawRounds(rng *rand.Rand, c Config) int {
	return c.RoundsMin + rng.IntN(c.RoundsMax-c.RoundsMin+1)
}
