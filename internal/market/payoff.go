package market

import "fmt"

// ComputePayoffs returns the payoff of every member of g for round, ordered
// by position. It reads decisions only and does not check completeness.
//
// Buyers who opt out keep BuyerEndowment; buyers who trade receive the
// utility of the delivered quality minus the seller's price. Sellers who stay
// out keep SellerEndowment; sellers who enter earn trades*(price-unit cost),
// which is exactly 0 when nobody buys from them.
func ComputePayoffs(g *Group, round int, cfg Config) ([GroupSize]int, error) {
	var out [GroupSize]int
	for i, p := range g.members {
		d := p.decision(round)
		if d == nil {
			return out, fmt.Errorf("%w: round %d out of range", ErrInvalidDecision, round)
		}

		if p.Role == Buyer {
			if d.Target == NoPurchase {
				out[i] = cfg.BuyerEndowment
				continue
			}
			s := g.Player(d.Target)
			if s == nil || !s.Role.IsSeller() {
				return out, fmt.Errorf("%w: buyer %d targets position %d which is not a seller", ErrInvalidDecision, p.ID, d.Target)
			}
			sd := s.decision(round)
			if !sd.Entered {
				return out, fmt.Errorf("%w: buyer %d targets seller %d who is not in the market", ErrInvalidDecision, p.ID, s.ID)
			}
			out[i] = cfg.Utility(sd.HighQuality) - sd.Price
			continue
		}

		if !d.Entered {
			out[i] = cfg.SellerEndowment
			continue
		}
		k := g.Trades(round, p.Position)
		if k == 0 {
			out[i] = 0
			continue
		}
		out[i] = k * (d.Price - cfg.UnitCost(d.HighQuality))
	}
	return out, nil
}
