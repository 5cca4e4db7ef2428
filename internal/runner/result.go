package runner

import "github.com/lox/entrybarrier/internal/market"

// Result is the outcome of a finished session.
type Result struct {
	SessionID string
	Rounds    int
	Config    market.Config
	Players   []PlayerResult
}

// PlayerResult holds one player's seat and round-by-round outcome.
type PlayerResult struct {
	ID       int
	GroupID  int
	Position int
	Role     market.Role
	Rounds   []RoundOutcome
	Total    int
}

// RoundOutcome is a settled round from one player's perspective.
type RoundOutcome struct {
	Round     int
	EntryOpen bool
	Trades    int
	Decision  market.Decision
}

// NewResult snapshots the settled rounds of s.
func NewResult(s *market.Session) *Result {
	res := &Result{
		SessionID: s.ID,
		Rounds:    s.Rounds,
		Config:    s.Config,
		Players:   make([]PlayerResult, 0, len(s.Players())),
	}
	for _, p := range s.Players() {
		pr := PlayerResult{
			ID:       p.ID,
			Role:     p.Role,
			Position: p.Position,
		}
		if g := p.Group(); g != nil {
			pr.GroupID = g.ID
		}
		for round := 1; round <= s.Rounds; round++ {
			d, ok := p.Decision(round)
			if !ok || !d.Settled() {
				break
			}
			out := RoundOutcome{Round: round, Decision: d}
			if p.Role.IsSeller() {
				out.EntryOpen = s.Config.EntryOpen(p.Role, round)
				out.Trades = p.Group().Trades(round, p.Position)
			}
			pr.Rounds = append(pr.Rounds, out)
			pr.Total += d.Payoff
		}
		res.Players = append(res.Players, pr)
	}
	return res
}
