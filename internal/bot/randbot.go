package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/lox/entrybarrier/internal/market"
)

// RandBot picks uniformly among the acceptable answers of every phase.
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (b *RandBot) Decide(ctx context.Context, v market.View) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	switch v.Phase {
	case market.PhaseEntry, market.PhaseQuality:
		return b.rng.IntN(2), nil
	case market.PhasePrice:
		return v.PriceMin + b.rng.IntN(v.PriceMax-v.PriceMin+1), nil
	case market.PhaseBuy:
		choice := b.rng.IntN(len(v.Offers) + 1)
		if choice == len(v.Offers) {
			return market.NoPurchase, nil
		}
		return v.Offers[choice].Position, nil
	default:
		return 0, unsupported(v)
	}
}
