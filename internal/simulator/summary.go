package simulator

import (
	"github.com/lox/entrybarrier/internal/market"
	"github.com/lox/entrybarrier/internal/runner"
)

// RoleStats accumulates outcomes for one role across sessions.
type RoleStats struct {
	Players      int
	TotalPayoff  int
	PlayerRounds int

	// Seller roles only.
	OpenRounds    int // rounds in which entry was allowed
	Entries       int
	Trades        int
	TradedRounds  int
	HighQuality   int // traded rounds delivered at high quality
	SellerRevenue int
}

// MeanPayoff is the average session total per player.
func (r RoleStats) MeanPayoff() float64 {
	if r.Players == 0 {
		return 0
	}
	return float64(r.TotalPayoff) / float64(r.Players)
}

// EntryRate is the share of open rounds in which the seller entered.
func (r RoleStats) EntryRate() float64 {
	if r.OpenRounds == 0 {
		return 0
	}
	return float64(r.Entries) / float64(r.OpenRounds)
}

// HighQualityRate is the share of traded rounds delivered at high quality.
func (r RoleStats) HighQualityRate() float64 {
	if r.TradedRounds == 0 {
		return 0
	}
	return float64(r.HighQuality) / float64(r.TradedRounds)
}

// Summary aggregates a batch of sessions.
type Summary struct {
	Sessions int
	Rounds   int
	Roles    map[market.Role]*RoleStats
}

func NewSummary() *Summary {
	return &Summary{
		Roles: map[market.Role]*RoleStats{
			market.Buyer:     {},
			market.Incumbent: {},
			market.Entrant:   {},
		},
	}
}

// Add folds one session result into the summary.
func (s *Summary) Add(res *runner.Result) {
	s.Sessions++
	s.Rounds += res.Rounds
	for _, p := range res.Players {
		rs := s.Roles[p.Role]
		rs.Players++
		rs.TotalPayoff += p.Total
		rs.PlayerRounds += len(p.Rounds)
		if !p.Role.IsSeller() {
			continue
		}
		for _, out := range p.Rounds {
			if out.EntryOpen {
				rs.OpenRounds++
			}
			if out.Decision.Entered {
				rs.Entries++
			}
			if out.Trades > 0 {
				rs.Trades += out.Trades
				rs.TradedRounds++
				rs.SellerRevenue += out.Decision.Payoff
				if out.Decision.HighQuality {
					rs.HighQuality++
				}
			}
		}
	}
}

// TotalTrades counts trades across both seller roles.
func (s *Summary) TotalTrades() int {
	return s.Roles[market.Incumbent].Trades + s.Roles[market.Entrant].Trades
}

// EntrantShare is the entrants' share of all trades.
func (s *Summary) EntrantShare() float64 {
	total := s.TotalTrades()
	if total == 0 {
		return 0
	}
	return float64(s.Roles[market.Entrant].Trades) / float64(total)
}
