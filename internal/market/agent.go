package market

import "context"

// Agent is anything that can supply decisions for a player: a bot, or an
// adapter around a human's form submissions. Agents see an immutable View and
// return the encoded decision value expected by Session.RecordDecision.
type Agent interface {
	Decide(ctx context.Context, view View) (int, error)
}

// Offer is a seller in the market as shown to a buyer during the buy phase.
type Offer struct {
	Position int
	Price    int
}

// View is the read-only state presented to one player for one decision.
type View struct {
	PlayerID int
	Role     Role
	Position int
	GroupID  int
	Round    int
	Rounds   int
	Phase    Phase
	Config   Config

	PriceMin int
	PriceMax int

	// Decision holds what the player already decided this round.
	Decision Decision
	// Offers lists the eligible sellers during the buy phase.
	Offers []Offer
	// Histories maps seller positions to their public records. Buyers only.
	Histories map[int][]HistoryRecord

	SellersInMarket  int
	Trades           int
	CumulativePayoff int

	// Rejection explains why the previous answer was refused, if it was.
	Rejection string
}

// View builds the view of the open phase for a player.
func (s *Session) View(playerID int) (View, error) {
	p, err := s.Player(playerID)
	if err != nil {
		return View{}, err
	}
	if p.group == nil || s.round == 0 {
		return View{}, ErrIncompleteRound
	}

	lo, hi := s.Config.PriceBounds()
	v := View{
		PlayerID:        p.ID,
		Role:            p.Role,
		Position:        p.Position,
		GroupID:         p.group.ID,
		Round:           s.round,
		Rounds:          s.Rounds,
		Phase:           s.phase,
		Config:          s.Config,
		PriceMin:        lo,
		PriceMax:        hi,
		Decision:        *p.decision(s.round),
		SellersInMarket: p.group.SellersInMarket(s.round),
	}
	if p.Role.IsSeller() {
		v.Trades = p.group.Trades(s.round, p.Position)
	}
	if v.CumulativePayoff, err = s.CumulativePayoff(p.ID, s.round-1); err != nil {
		return View{}, err
	}

	if p.Role == Buyer {
		v.Histories = make(map[int][]HistoryRecord, 2)
		for _, seller := range p.group.Sellers() {
			h, err := SellerHistory(seller, s.round)
			if err != nil {
				return View{}, err
			}
			v.Histories[seller.Position] = h
		}
		if eligible, ok := p.group.EligibleTargets(s.round); ok {
			for _, pos := range eligible {
				v.Offers = append(v.Offers, Offer{Position: pos, Price: p.group.Player(pos).decision(s.round).Price})
			}
		}
	}
	return v, nil
}
