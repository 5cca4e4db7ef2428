package market

// NoPurchase is the buy target of a buyer who opts out of the market.
const NoPurchase = 0

// Decision holds one player's choices and outcome for a single round. Fields
// that belong to phases the player never acted in keep their zero values.
type Decision struct {
	Entered     bool
	Price       int
	Target      int // group position of the chosen seller, or NoPurchase
	HighQuality bool
	Payoff      int

	recorded PhaseSet
	settled  bool
}

// Recorded reports whether a decision for phase p was submitted.
func (d Decision) Recorded(p Phase) bool {
	return d.recorded.Has(p)
}

// Settled reports whether the round's payoff has been computed.
func (d Decision) Settled() bool {
	return d.settled
}

// Player is a participant. Role and group are assigned once by FormGroups.
type Player struct {
	ID       int
	Role     Role
	Position int // 1-based slot within the group

	group  *Group
	rounds []Decision
}

// Group returns the player's group, nil before formation.
func (p *Player) Group() *Group {
	return p.group
}

// Decision returns a copy of the player's decision for a round.
func (p *Player) Decision(round int) (Decision, bool) {
	d := p.decision(round)
	if d == nil {
		return Decision{}, false
	}
	return *d, true
}

func (p *Player) decision(round int) *Decision {
	if round < 1 || round > len(p.rounds) {
		return nil
	}
	return &p.rounds[round-1]
}
