// Package market implements the round-based entry-barrier market game.
//
// A Session owns a fixed pool of players that is partitioned once into
// groups of four (two buyers, one incumbent seller, one entrant seller).
// Every round walks the same four decision phases:
//
//	entry -> price -> buy -> quality -> settle
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	s, err := market.NewSession(market.DefaultConfig(), []int{1, 2, 3, 4}, rng)
//	o := market.NewOrchestrator(s, logger)
//	if err := o.Start(); err != nil { ... }
//	// for each phase: record decisions of o.Pending(), then o.Advance()
//
// # Architecture
//
// The session is an arena: players and groups are allocated once and indexed
// by small stable integers, and every player carries one Decision per round.
//   - ActivePhases: pure gate deciding which phases a player acts in
//   - FormGroups: one-time partition of the pool into groups
//   - ComputePayoffs: settlement arithmetic for one group and round
//   - SellerHistory: public trade record derived from settled rounds
//   - Orchestrator: drives the phase state machine and settlement
//
// The package performs no locking. Callers serialise access and provide the
// barrier between phases.
package market
