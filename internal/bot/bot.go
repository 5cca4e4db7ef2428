// Package bot provides automated market participants. Every bot implements
// market.Agent for all roles and answers whichever phase it is asked about.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sort"

	"github.com/lox/entrybarrier/internal/market"
)

// Strategy names accepted by New.
const (
	Random      = "random"
	Reputation  = "reputation"
	Opportunist = "opportunist"
)

var constructors = map[string]func(rng *rand.Rand) market.Agent{
	Random:      func(rng *rand.Rand) market.Agent { return NewRandBot(rng) },
	Reputation:  func(*rand.Rand) market.Agent { return NewReputationBot() },
	Opportunist: func(*rand.Rand) market.Agent { return NewOpportunistBot() },
}

// Names lists the known strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a known strategy.
func Known(name string) bool {
	_, ok := constructors[name]
	return ok
}

// New creates a bot by strategy name.
func New(name string, rng *rand.Rand) (market.Agent, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (known: %v)", name, Names())
	}
	return ctor(rng), nil
}

func unsupported(v market.View) error {
	return fmt.Errorf("bot cannot decide phase %s", v.Phase)
}

// cheapest returns the offer with the lowest price, ties to the lower
// position.
func cheapest(offers []market.Offer) (market.Offer, bool) {
	if len(offers) == 0 {
		return market.Offer{}, false
	}
	return slices.MinFunc(offers, func(a, b market.Offer) int {
		if a.Price != b.Price {
			return a.Price - b.Price
		}
		return a.Position - b.Position
	}), true
}
