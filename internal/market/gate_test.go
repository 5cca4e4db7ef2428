package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivePhasesFollowDecisions(t *testing.T) {
	s, o := newStartedSession(t, DefaultConfig(), 4, 1)
	cfg := s.Config
	buyer, _ := s.Player(3)
	incumbent, _ := s.Player(2)
	entrant, _ := s.Player(4)

	assert.Equal(t, PhaseSet(0).With(PhaseBuy), ActivePhases(buyer, 1, cfg))
	assert.Equal(t, PhaseSet(0).With(PhaseEntry), ActivePhases(incumbent, 1, cfg))
	assert.Equal(t, PhaseSet(0).With(PhaseEntry), ActivePhases(entrant, 1, cfg))

	require.NoError(t, s.RecordEntry(2, 1, true))
	require.NoError(t, s.RecordEntry(4, 1, false))
	assert.Equal(t, PhaseSet(0).With(PhaseEntry).With(PhasePrice), ActivePhases(incumbent, 1, cfg))
	assert.Equal(t, PhaseSet(0).With(PhaseEntry), ActivePhases(entrant, 1, cfg))

	require.NoError(t, o.Advance())
	require.NoError(t, s.RecordPrice(2, 1, 60))
	require.NoError(t, o.Advance())
	require.NoError(t, s.RecordBuy(3, 1, 3))

	assert.True(t, ActivePhases(incumbent, 1, cfg).Has(PhaseQuality))
	assert.False(t, ActivePhases(entrant, 1, cfg).Has(PhasePrice))
	assert.Equal(t, PhaseSet(0).With(PhaseBuy), ActivePhases(buyer, 1, cfg))
}

func TestActivePhasesIsPure(t *testing.T) {
	s, _ := newStartedSession(t, DefaultConfig(), 8, 2)
	require.NoError(t, s.RecordEntry(2, 1, true))

	for _, p := range s.Players() {
		before, _ := p.Decision(1)
		first := ActivePhases(p, 1, s.Config)
		second := ActivePhases(p, 1, s.Config)
		after, _ := p.Decision(1)
		assert.Equal(t, first, second)
		assert.Equal(t, before, after)
	}
}

func TestSequentialEntryLocksOutEntrants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SequentialEntry = true
	cfg.MidRound = 3
	s, o := newStartedSession(t, cfg, 4, 4)

	entrant, _ := s.Player(4)
	incumbent, _ := s.Player(2)

	for round := 1; round <= 4; round++ {
		require.Equal(t, round, s.Round())
		assert.True(t, ActivePhases(incumbent, round, cfg).Has(PhaseEntry))
		assert.Equal(t, round >= 3, ActivePhases(entrant, round, cfg).Has(PhaseEntry), "round %d", round)

		if round < 3 {
			err := s.RecordEntry(4, round, true)
			assert.ErrorIs(t, err, ErrInvalidDecision)
		}
		playRound(t, s, o, roundPlan{entry: map[int]bool{2: true, 4: true}})
		if round < 3 {
			assert.Equal(t, cfg.SellerEndowment, payoff(t, s, 4, round))
		} else {
			assert.Equal(t, 0, payoff(t, s, 4, round))
		}
	}
}

func TestActivePhasesOutsideSession(t *testing.T) {
	s, _ := newStartedSession(t, DefaultConfig(), 4, 2)
	p, _ := s.Player(2)
	assert.True(t, ActivePhases(p, 0, s.Config).Empty())
	assert.True(t, ActivePhases(p, 3, s.Config).Empty())
	assert.True(t, ActivePhases(&Player{ID: 9}, 1, s.Config).Empty())
}

func TestPhaseSetString(t *testing.T) {
	set := PhaseSet(0).With(PhaseQuality).With(PhaseEntry)
	assert.Equal(t, "{entry,quality}", set.String())
	assert.Equal(t, []Phase{PhaseEntry, PhaseQuality}, set.Phases())
}
