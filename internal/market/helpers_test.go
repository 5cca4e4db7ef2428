package market

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/entrybarrier/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func poolIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

// newStartedSession returns a session of n players, already in round 1.
// With ids 1..4 the group is buyers 3 and 1 (positions 1, 2), incumbent 2
// (position 3) and entrant 4 (position 4).
func newStartedSession(t *testing.T, cfg Config, n, rounds int) (*Session, *Orchestrator) {
	t.Helper()
	s, err := NewSession(cfg, poolIDs(n), randutil.New(1), WithRounds(rounds), WithID("test"))
	require.NoError(t, err)
	o := NewOrchestrator(s, testLogger())
	require.NoError(t, o.Start())
	return s, o
}

// roundPlan scripts one round. Missing sellers stay out, missing prices are
// 50, missing buyers opt out and missing qualities are low.
type roundPlan struct {
	entry   map[int]bool
	price   map[int]int
	buy     map[int]int
	quality map[int]bool
}

func playRound(t *testing.T, s *Session, o *Orchestrator, plan roundPlan) {
	t.Helper()
	round := s.Round()

	require.Equal(t, PhaseEntry, s.Phase())
	for _, p := range o.Pending() {
		require.NoError(t, s.RecordEntry(p.ID, round, plan.entry[p.ID]))
	}
	require.NoError(t, o.Advance())

	require.Equal(t, PhasePrice, s.Phase())
	for _, p := range o.Pending() {
		price, ok := plan.price[p.ID]
		if !ok {
			price = 50
		}
		require.NoError(t, s.RecordPrice(p.ID, round, price))
	}
	require.NoError(t, o.Advance())

	require.Equal(t, PhaseBuy, s.Phase())
	for _, p := range o.Pending() {
		require.NoError(t, s.RecordBuy(p.ID, round, plan.buy[p.ID]))
	}
	require.NoError(t, o.Advance())

	require.Equal(t, PhaseQuality, s.Phase())
	for _, p := range o.Pending() {
		require.NoError(t, s.RecordQuality(p.ID, round, plan.quality[p.ID]))
	}
	require.NoError(t, o.Advance())
	require.Equal(t, PhaseSettle, s.Phase())
	require.NoError(t, o.Advance())
}

func payoff(t *testing.T, s *Session, id, round int) int {
	t.Helper()
	p, err := s.Player(id)
	require.NoError(t, err)
	d, ok := p.Decision(round)
	require.True(t, ok)
	require.True(t, d.Settled(), "round %d not settled for player %d", round, id)
	return d.Payoff
}
