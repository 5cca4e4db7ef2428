package bot

import (
	"context"

	"github.com/lox/entrybarrier/internal/market"
)

// ReputationBot builds and trusts reputations. As a seller it always enters
// at the middle of the price range and delivers high quality. As a buyer it
// estimates each seller's chance of high quality from its public history,
// starting from an even prior, and buys where the expected surplus beats
// keeping the endowment.
type ReputationBot struct{}

func NewReputationBot() *ReputationBot {
	return &ReputationBot{}
}

func (b *ReputationBot) Decide(ctx context.Context, v market.View) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	switch v.Phase {
	case market.PhaseEntry, market.PhaseQuality:
		return 1, nil
	case market.PhasePrice:
		return (v.PriceMin + v.PriceMax) / 2, nil
	case market.PhaseBuy:
		return b.choose(v), nil
	default:
		return 0, unsupported(v)
	}
}

func (b *ReputationBot) choose(v market.View) int {
	best := market.NoPurchase
	bestValue := float64(v.Config.BuyerEndowment)
	for _, o := range v.Offers {
		q := HighQualityRate(v.Histories[o.Position])
		value := q*float64(v.Config.HighUtility) + (1-q)*float64(v.Config.LowUtility) - float64(o.Price)
		if value > bestValue {
			best, bestValue = o.Position, value
		}
	}
	return best
}

// HighQualityRate is the Laplace-smoothed share of high-quality sales in a
// seller's history.
func HighQualityRate(history []market.HistoryRecord) float64 {
	trades, high := 0, 0
	for _, rec := range history {
		if !rec.Traded {
			continue
		}
		trades++
		if rec.HighQuality {
			high++
		}
	}
	return float64(high+1) / float64(trades+2)
}
