package market

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
)

// Session is the arena holding every player, group and per-round decision of
// one run. Group formation happens once; afterwards only per-round decision
// fields change, each written at most once.
type Session struct {
	ID     string
	Config Config
	Rounds int

	players []*Player
	byID    map[int]*Player
	groups  []*Group

	round    int // 0 until the orchestrator starts the session
	phase    Phase
	finished bool
}

// SessionOption configures a Session during creation.
type SessionOption func(*Session)

// WithID sets the session identifier.
func WithID(id string) SessionOption {
	return func(s *Session) { s.ID = id }
}

// WithRounds fixes the realized round count instead of drawing it.
func WithRounds(n int) SessionOption {
	return func(s *Session) { s.Rounds = n }
}

// NewSession creates a session for the given player identifiers. The round
// count is drawn once from the configured range using rng.
func NewSession(cfg Config, ids []int, rng *rand.Rand, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		panic("rng is required for session creation")
	}

	s := &Session{
		Config: cfg,
		Rounds: DrawRounds(rng, cfg),
		byID:   make(map[int]*Player, len(ids)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Rounds < 1 {
		return nil, fmt.Errorf("%w: session needs at least one round", ErrConfiguration)
	}

	for _, id := range ids {
		if _, dup := s.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate player id %d", ErrConfiguration, id)
		}
		p := &Player{ID: id}
		s.players = append(s.players, p)
		s.byID[id] = p
	}
	return s, nil
}

// FormGroups partitions the pool. It succeeds at most once per session.
func (s *Session) FormGroups() ([]*Group, error) {
	if s.groups != nil {
		return nil, fmt.Errorf("%w: groups already formed", ErrConfiguration)
	}
	groups, err := FormGroups(s.players, s.Rounds)
	if err != nil {
		return nil, err
	}
	s.groups = groups
	return groups, nil
}

func (s *Session) Players() []*Player { return s.players }
func (s *Session) Groups() []*Group   { return s.groups }
func (s *Session) Round() int         { return s.round }
func (s *Session) Phase() Phase       { return s.phase }
func (s *Session) Finished() bool     { return s.finished }

// Player looks up a player by identifier.
func (s *Session) Player(id int) (*Player, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	return p, nil
}

// Group looks up a group by identifier.
func (s *Session) Group(id int) (*Group, error) {
	if id < 1 || id > len(s.groups) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGroup, id)
	}
	return s.groups[id-1], nil
}

// ActivePhases is the session-level form of the package ActivePhases gate.
func (s *Session) ActivePhases(playerID, round int) (PhaseSet, error) {
	p, err := s.Player(playerID)
	if err != nil {
		return 0, err
	}
	return ActivePhases(p, round, s.Config), nil
}

// RecordDecision stores a submitted decision. The value encoding follows the
// phase: entry and quality take 0 or 1, price takes the price, buy takes the
// group position of a seller in the market or NoPurchase. Decisions are only
// accepted for the open phase of the current round, when the phase is active
// for the player and nothing was recorded for it yet.
func (s *Session) RecordDecision(playerID, round int, phase Phase, value int) error {
	p, err := s.Player(playerID)
	if err != nil {
		return err
	}
	if s.finished {
		return ErrSessionFinished
	}
	if s.round == 0 || round != s.round {
		return fmt.Errorf("%w: round %d is not open (current round %d)", ErrInvalidDecision, round, s.round)
	}
	if phase != s.phase {
		return fmt.Errorf("%w: phase %s is not open (current phase %s)", ErrInvalidDecision, phase, s.phase)
	}
	if !ActivePhases(p, round, s.Config).Has(phase) {
		return fmt.Errorf("%w: phase %s is not active for %s %d", ErrInvalidDecision, phase, p.Role, p.ID)
	}
	d := p.decision(round)
	if d.Recorded(phase) {
		return fmt.Errorf("%w: %s already recorded for player %d", ErrInvalidDecision, phase, p.ID)
	}

	switch phase {
	case PhaseEntry:
		b, err := boolValue(phase, value)
		if err != nil {
			return err
		}
		d.Entered = b
	case PhasePrice:
		lo, hi := s.Config.PriceBounds()
		if value < lo || value > hi {
			return fmt.Errorf("%w: price %d outside [%d, %d]", ErrInvalidDecision, value, lo, hi)
		}
		d.Price = value
	case PhaseBuy:
		if value != NoPurchase {
			eligible, _ := p.group.EligibleTargets(round)
			if !slices.Contains(eligible, value) {
				return fmt.Errorf("%w: position %d is not a seller in the market (eligible %v)", ErrInvalidDecision, value, eligible)
			}
		}
		d.Target = value
	case PhaseQuality:
		b, err := boolValue(phase, value)
		if err != nil {
			return err
		}
		d.HighQuality = b
	default:
		return fmt.Errorf("%w: phase %s takes no decisions", ErrInvalidDecision, phase)
	}
	d.recorded = d.recorded.With(phase)
	return nil
}

// RecordEntry records a seller's entry decision.
func (s *Session) RecordEntry(playerID, round int, enter bool) error {
	return s.RecordDecision(playerID, round, PhaseEntry, BoolValue(enter))
}

// RecordPrice records a seller's price.
func (s *Session) RecordPrice(playerID, round, price int) error {
	return s.RecordDecision(playerID, round, PhasePrice, price)
}

// RecordBuy records a buyer's target position, or NoPurchase.
func (s *Session) RecordBuy(playerID, round, target int) error {
	return s.RecordDecision(playerID, round, PhaseBuy, target)
}

// RecordQuality records a seller's quality choice.
func (s *Session) RecordQuality(playerID, round int, high bool) error {
	return s.RecordDecision(playerID, round, PhaseQuality, BoolValue(high))
}

// SettleRound computes and stores the payoffs of one group for the current
// round. It runs once per group and round, after the quality phase closed.
func (s *Session) SettleRound(groupID, round int) error {
	g, err := s.Group(groupID)
	if err != nil {
		return err
	}
	if s.round == 0 || round != s.round {
		return fmt.Errorf("%w: round %d is not the current round %d", ErrIncompleteRound, round, s.round)
	}
	if g.Settled(round) {
		return fmt.Errorf("%w: group %d round %d already settled", ErrInvalidDecision, g.ID, round)
	}
	if s.phase != PhaseSettle {
		return fmt.Errorf("%w: round %d is still in phase %s", ErrIncompleteRound, round, s.phase)
	}
	for _, p := range g.members {
		if missing := missingDecisions(p, round, s.Config); len(missing) > 0 {
			return fmt.Errorf("%w: player %d has no decision for %v", ErrIncompleteRound, p.ID, missing)
		}
	}

	payoffs, err := ComputePayoffs(g, round, s.Config)
	if err != nil {
		return err
	}
	for i, p := range g.members {
		d := p.decision(round)
		d.Payoff = payoffs[i]
		d.settled = true
	}
	g.round(round).settled = true
	return nil
}

// SellerHistory returns the public records of rounds before uptoRound.
func (s *Session) SellerHistory(playerID, uptoRound int) ([]HistoryRecord, error) {
	p, err := s.Player(playerID)
	if err != nil {
		return nil, err
	}
	return SellerHistory(p, uptoRound)
}

// CumulativePayoff sums the payoffs of rounds 1 through uptoRound, all of
// which must be settled.
func (s *Session) CumulativePayoff(playerID, uptoRound int) (int, error) {
	p, err := s.Player(playerID)
	if err != nil {
		return 0, err
	}
	if uptoRound < 0 || uptoRound > len(p.rounds) {
		return 0, fmt.Errorf("%w: round %d out of range", ErrInvalidDecision, uptoRound)
	}
	total := 0
	for r := 1; r <= uptoRound; r++ {
		d := p.decision(r)
		if !d.Settled() {
			return 0, fmt.Errorf("%w: round %d is not settled", ErrIncompleteRound, r)
		}
		total += d.Payoff
	}
	return total, nil
}

// BoolValue encodes a yes/no decision.
func BoolValue(b bool) int {
	if b {
		return 1
	}
	return 0
}

func boolValue(phase Phase, v int) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s takes 0 or 1, got %d", ErrInvalidDecision, phase, v)
	}
}
