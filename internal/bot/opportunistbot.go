package bot

import (
	"context"

	"github.com/lox/entrybarrier/internal/market"
)

// OpportunistBot enters at the highest allowed price and cuts quality. As a
// buyer it takes the cheapest seller in the market whenever there is one.
type OpportunistBot struct{}

func NewOpportunistBot() *OpportunistBot {
	return &OpportunistBot{}
}

func (b *OpportunistBot) Decide(ctx context.Context, v market.View) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	switch v.Phase {
	case market.PhaseEntry:
		return 1, nil
	case market.PhasePrice:
		return v.PriceMax, nil
	case market.PhaseQuality:
		return 0, nil
	case market.PhaseBuy:
		if o, ok := cheapest(v.Offers); ok {
			return o.Position, nil
		}
		return market.NoPurchase, nil
	default:
		return 0, unsupported(v)
	}
}
