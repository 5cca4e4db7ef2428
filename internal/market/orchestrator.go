package market

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Orchestrator drives the per-round phase state machine of a session:
//
//	entry -> price -> buy -> quality -> settle -> next round
//
// A phase closes only when every player for whom it is active has a recorded
// decision. Which players act is delegated entirely to ActivePhases.
type Orchestrator struct {
	session *Session
	logger  *log.Logger
}

// NewOrchestrator creates an orchestrator for s.
func NewOrchestrator(s *Session, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		session: s,
		logger:  logger.WithPrefix("orchestrator").With("session", s.ID),
	}
}

// Session returns the driven session.
func (o *Orchestrator) Session() *Session {
	return o.session
}

// Start forms the groups and opens the entry phase of round 1.
func (o *Orchestrator) Start() error {
	s := o.session
	if s.round != 0 {
		return fmt.Errorf("%w: session already started", ErrConfiguration)
	}
	groups, err := s.FormGroups()
	if err != nil {
		return err
	}
	o.logger.Info("Groups formed", "groups", len(groups), "players", len(s.players), "rounds", s.Rounds)
	o.begin(1)
	return nil
}

func (o *Orchestrator) begin(round int) {
	o.session.round = round
	o.session.phase = PhaseEntry
	o.logger.Debug("Round started", "round", round)
}

// Active returns the players for whom the open phase is active.
func (o *Orchestrator) Active() []*Player {
	s := o.session
	if s.round == 0 || s.finished || s.phase == PhaseSettle {
		return nil
	}
	var out []*Player
	for _, g := range s.groups {
		for _, p := range g.members {
			if ActivePhases(p, s.round, s.Config).Has(s.phase) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Pending returns the active players that have not decided yet.
func (o *Orchestrator) Pending() []*Player {
	var out []*Player
	for _, p := range o.Active() {
		if !p.decision(o.session.round).Recorded(o.session.phase) {
			out = append(out, p)
		}
	}
	return out
}

// Advance closes the open phase and opens the next one. Entering the buy
// phase freezes every group's eligible sellers. Advancing from settle settles
// each group not yet settled and moves to the next round, or finishes the
// session after the last round.
func (o *Orchestrator) Advance() error {
	s := o.session
	switch {
	case s.finished:
		return ErrSessionFinished
	case s.round == 0:
		return fmt.Errorf("%w: session not started", ErrIncompleteRound)
	}

	if s.phase != PhaseSettle {
		if pending := o.Pending(); len(pending) > 0 {
			return fmt.Errorf("%w: %d players still to decide in round %d phase %s",
				ErrIncompleteRound, len(pending), s.round, s.phase)
		}
		next, _ := s.phase.Next()
		if next == PhaseBuy {
			for _, g := range s.groups {
				g.freezeTargets(s.round)
			}
		}
		o.logger.Debug("Phase closed", "round", s.round, "phase", s.phase, "next", next)
		s.phase = next
		return nil
	}

	for _, g := range s.groups {
		if g.Settled(s.round) {
			continue
		}
		if err := s.SettleRound(g.ID, s.round); err != nil {
			return err
		}
	}
	o.logger.Info("Round settled", "round", s.round, "groups", len(s.groups))

	if s.round == s.Rounds {
		s.finished = true
		o.logger.Info("Session finished", "rounds", s.Rounds)
		return nil
	}
	o.begin(s.round + 1)
	return nil
}
