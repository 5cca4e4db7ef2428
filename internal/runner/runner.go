// Package runner plays market sessions with agents. It is the collaborator
// that collects decisions: for every phase it asks all active players at
// once, waits for the whole phase (the barrier), records the answers and
// moves the orchestrator on.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/entrybarrier/internal/market"
)

// ErrDecisionTimeout is returned when an agent does not answer in time.
var ErrDecisionTimeout = errors.New("decision timeout")

// Config controls how decisions are collected.
type Config struct {
	DecisionTimeout time.Duration
	// MaxAttempts bounds how often a player is asked again after an invalid
	// answer.
	MaxAttempts int
}

// DefaultConfig returns a one second timeout and three attempts.
func DefaultConfig() Config {
	return Config{
		DecisionTimeout: time.Second,
		MaxAttempts:     3,
	}
}

// Runner drives sessions to completion.
type Runner struct {
	config Config
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a runner. The clock times decisions; pass quartz.NewReal()
// outside tests.
func New(config Config, clock quartz.Clock, logger *log.Logger) *Runner {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Runner{
		config: config,
		clock:  clock,
		logger: logger.WithPrefix("runner"),
	}
}

// Run plays every round of s. agents maps player identifiers to the agent
// deciding for them and must cover the whole pool. Agents of one phase are
// called concurrently, so an agent shared by several players must be safe
// for concurrent use.
func (r *Runner) Run(ctx context.Context, s *market.Session, agents map[int]market.Agent) (*Result, error) {
	for _, p := range s.Players() {
		if agents[p.ID] == nil {
			return nil, fmt.Errorf("%w: no agent for player %d", market.ErrConfiguration, p.ID)
		}
	}

	logger := r.logger.With("session", s.ID)
	o := market.NewOrchestrator(s, r.logger)
	if err := o.Start(); err != nil {
		return nil, err
	}

	for !s.Finished() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.Phase() != market.PhaseSettle {
			if err := r.collect(ctx, s, o, agents); err != nil {
				logger.Error("Session aborted", "round", s.Round(), "phase", s.Phase(), "error", err)
				return nil, err
			}
		}
		if err := o.Advance(); err != nil {
			return nil, err
		}
	}

	logger.Info("Session complete", "rounds", s.Rounds, "players", len(s.Players()))
	return NewResult(s), nil
}

// collect gathers the open phase's decisions from every pending player.
func (r *Runner) collect(ctx context.Context, s *market.Session, o *market.Orchestrator, agents map[int]market.Agent) error {
	round, phase := s.Round(), s.Phase()
	pending := o.Pending()
	rejections := make(map[int]string)

	for attempt := 1; len(pending) > 0; attempt++ {
		if attempt > r.config.MaxAttempts {
			return fmt.Errorf("%w: %d players gave no acceptable %s decision in round %d after %d attempts",
				market.ErrInvalidDecision, len(pending), phase, round, r.config.MaxAttempts)
		}

		// Views are built before fanning out; the session is not safe for
		// concurrent use.
		views := make([]market.View, len(pending))
		for i, p := range pending {
			v, err := s.View(p.ID)
			if err != nil {
				return err
			}
			v.Rejection = rejections[p.ID]
			views[i] = v
		}

		values := make([]int, len(pending))
		g, gctx := errgroup.WithContext(ctx)
		for i, p := range pending {
			g.Go(func() error {
				v, err := r.decide(gctx, agents[p.ID], views[i])
				if err != nil {
					return fmt.Errorf("player %d %s decision: %w", p.ID, phase, err)
				}
				values[i] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var retry []*market.Player
		for i, p := range pending {
			err := s.RecordDecision(p.ID, round, phase, values[i])
			switch {
			case err == nil:
				r.logger.Debug("Decision recorded", "round", round, "phase", phase, "player", p.ID, "role", p.Role, "value", values[i])
			case errors.Is(err, market.ErrInvalidDecision):
				r.logger.Warn("Decision rejected", "round", round, "phase", phase, "player", p.ID, "value", values[i], "error", err)
				rejections[p.ID] = err.Error()
				retry = append(retry, p)
			default:
				return err
			}
		}
		pending = retry
	}
	return nil
}

// decide asks one agent, bounded by the decision timeout.
func (r *Runner) decide(ctx context.Context, agent market.Agent, v market.View) (int, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	timer := r.clock.AfterFunc(r.config.DecisionTimeout, func() {
		cancel(ErrDecisionTimeout)
	}, "runner", "decide")
	defer timer.Stop()

	value, err := agent.Decide(ctx, v)
	if err != nil {
		if errors.Is(context.Cause(ctx), ErrDecisionTimeout) {
			return 0, fmt.Errorf("%w after %v", ErrDecisionTimeout, r.config.DecisionTimeout)
		}
		return 0, err
	}
	return value, nil
}
