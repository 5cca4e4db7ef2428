package market

// ActivePhases returns the phases in which p acts during round. It depends
// only on the player's role, the round, the treatment and decisions already
// recorded this round, and never mutates state.
//
//   - buy: every buyer, every round
//   - entry: every seller, except entrants before MidRound under sequential entry
//   - price: entry is active and the recorded entry decision is positive
//   - quality: price is active and at least one buyer chose this seller
//
// Quality can only become active once the group's buyers have recorded their
// targets, so it must be evaluated after the buy phase closes.
func ActivePhases(p *Player, round int, cfg Config) PhaseSet {
	var set PhaseSet
	d := p.decision(round)
	if d == nil || p.group == nil {
		return set
	}

	if p.Role == Buyer {
		return set.With(PhaseBuy)
	}
	if !cfg.EntryOpen(p.Role, round) {
		return set
	}
	set = set.With(PhaseEntry)

	if !d.Recorded(PhaseEntry) || !d.Entered {
		return set
	}
	set = set.With(PhasePrice)

	if p.group.Trades(round, p.Position) > 0 {
		set = set.With(PhaseQuality)
	}
	return set
}

// missingDecisions lists the phases active for p this round that have no
// recorded decision.
func missingDecisions(p *Player, round int, cfg Config) []Phase {
	d := p.decision(round)
	if d == nil {
		return nil
	}
	var missing []Phase
	for _, ph := range ActivePhases(p, round, cfg).Phases() {
		if !d.Recorded(ph) {
			missing = append(missing, ph)
		}
	}
	return missing
}
