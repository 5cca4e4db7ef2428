// Package simulator runs batches of bot-played market sessions.
package simulator

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/entrybarrier/internal/bot"
	"github.com/lox/entrybarrier/internal/market"
	"github.com/lox/entrybarrier/internal/randutil"
	"github.com/lox/entrybarrier/internal/runner"
	"github.com/lox/entrybarrier/internal/sessionid"
)

// Config holds configuration for running simulations
type Config struct {
	Market     market.Config
	Players    int
	Sessions   int
	Workers    int
	Seed       int64
	Runner     runner.Config
	Strategies map[market.Role]string
	Clock      quartz.Clock
	Logger     *log.Logger
}

// Simulator runs market sessions concurrently.
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{
		config: config,
		logger: config.Logger.WithPrefix("simulator"),
	}
}

// Run plays all sessions and aggregates them. Session i is seeded from
// Derive(Seed, i), so a batch replays identically regardless of worker
// count.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	ids := make([]int, s.config.Players)
	for i := range ids {
		ids[i] = i + 1
	}

	results := make([]*runner.Result, s.config.Sessions)
	var progress sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := 0; i < s.config.Sessions; i++ {
		g.Go(func() error {
			res, err := s.playSession(gctx, i, ids)
			if err != nil {
				return fmt.Errorf("session %d: %w", i+1, err)
			}
			results[i] = res

			progress.Lock()
			done++
			n := done
			progress.Unlock()
			s.logger.Debug("Session finished", "session", res.SessionID, "done", n, "of", s.config.Sessions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := NewSummary()
	for _, res := range results {
		summary.Add(res)
	}
	s.logger.Info("Simulation complete", "sessions", summary.Sessions, "rounds", summary.Rounds)
	return summary, nil
}

func (s *Simulator) playSession(ctx context.Context, index int, ids []int) (*runner.Result, error) {
	seed := randutil.Derive(s.config.Seed, index)
	rng := randutil.New(seed)

	id, err := sessionid.New(randutil.Reader(rng))
	if err != nil {
		return nil, err
	}
	session, err := market.NewSession(s.config.Market, ids, rng, market.WithID(id))
	if err != nil {
		return nil, err
	}

	agents := make(map[int]market.Agent, len(ids))
	for _, pid := range ids {
		// Roles are fixed by identifier at group formation.
		name := s.config.Strategies[market.RoleForID(pid)]
		agent, err := bot.New(name, randutil.New(randutil.Derive(seed, pid)))
		if err != nil {
			return nil, err
		}
		agents[pid] = agent
	}

	r := runner.New(s.config.Runner, s.config.Clock, s.config.Logger)
	return r.Run(ctx, session, agents)
}
