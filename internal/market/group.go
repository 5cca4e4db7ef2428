package market

import (
	"fmt"
	"slices"
)

// GroupSize is the number of players in every group.
const GroupSize = 4

// Group is a fixed set of two buyers, one incumbent and one entrant. Positions
// 1 and 2 are buyers, 3 is the incumbent and 4 the entrant.
type Group struct {
	ID      int
	members [GroupSize]*Player
	rounds  []groupRound
}

type groupRound struct {
	eligible []int
	frozen   bool
	settled  bool
}

// Players returns the members ordered by position.
func (g *Group) Players() []*Player {
	return g.members[:]
}

// Player returns the member at a 1-based position.
func (g *Group) Player(pos int) *Player {
	if pos < 1 || pos > GroupSize {
		return nil
	}
	return g.members[pos-1]
}

// Sellers returns the incumbent and the entrant.
func (g *Group) Sellers() []*Player {
	return g.members[2:]
}

// Buyers returns both buyers.
func (g *Group) Buyers() []*Player {
	return g.members[:2]
}

// Trades counts the buyers whose recorded buy target this round is the
// seller at pos.
func (g *Group) Trades(round, pos int) int {
	n := 0
	for _, b := range g.Buyers() {
		d := b.decision(round)
		if d != nil && d.Recorded(PhaseBuy) && d.Target == pos {
			n++
		}
	}
	return n
}

// SellersInMarket counts sellers whose recorded entry decision this round is
// positive.
func (g *Group) SellersInMarket(round int) int {
	n := 0
	for _, s := range g.Sellers() {
		d := s.decision(round)
		if d != nil && d.Recorded(PhaseEntry) && d.Entered {
			n++
		}
	}
	return n
}

// EligibleTargets returns the frozen set of seller positions a buyer may buy
// from this round. ok is false until the buy phase has opened.
func (g *Group) EligibleTargets(round int) (targets []int, ok bool) {
	r := g.round(round)
	if r == nil || !r.frozen {
		return nil, false
	}
	return slices.Clone(r.eligible), true
}

// Settled reports whether the group's round has been settled.
func (g *Group) Settled(round int) bool {
	r := g.round(round)
	return r != nil && r.settled
}

// freezeTargets snapshots the sellers currently in the market. It is called
// once when the buy phase opens.
func (g *Group) freezeTargets(round int) {
	r := g.round(round)
	if r == nil || r.frozen {
		return
	}
	r.eligible = r.eligible[:0]
	for _, s := range g.Sellers() {
		d := s.decision(round)
		if d != nil && d.Recorded(PhaseEntry) && d.Entered {
			r.eligible = append(r.eligible, s.Position)
		}
	}
	r.frozen = true
}

func (g *Group) round(round int) *groupRound {
	if round < 1 || round > len(g.rounds) {
		return nil
	}
	return &g.rounds[round-1]
}

// FormGroups partitions the pool into groups. Roles are derived from player
// identifiers (see RoleForID) and stored on each player; players are then
// drawn from the back of each role pool, two buyers, one incumbent and one
// entrant at a time, until the buyers run out. rounds sizes the per-round
// decision history of every player.
func FormGroups(pool []*Player, rounds int) ([]*Group, error) {
	if len(pool) == 0 || len(pool)%GroupSize != 0 {
		return nil, fmt.Errorf("%w: pool of %d players is not a positive multiple of %d", ErrConfiguration, len(pool), GroupSize)
	}
	if rounds < 1 {
		return nil, fmt.Errorf("%w: session needs at least one round", ErrConfiguration)
	}

	ordered := slices.Clone(pool)
	slices.SortFunc(ordered, func(a, b *Player) int { return a.ID - b.ID })

	var buyers, incumbents, entrants []*Player
	for i, p := range ordered {
		if p.ID < 1 {
			return nil, fmt.Errorf("%w: player id %d must be positive", ErrConfiguration, p.ID)
		}
		if i > 0 && ordered[i-1].ID == p.ID {
			return nil, fmt.Errorf("%w: duplicate player id %d", ErrConfiguration, p.ID)
		}
		if p.group != nil {
			return nil, fmt.Errorf("%w: player %d already belongs to group %d", ErrConfiguration, p.ID, p.group.ID)
		}
		switch RoleForID(p.ID) {
		case Buyer:
			buyers = append(buyers, p)
		case Incumbent:
			incumbents = append(incumbents, p)
		case Entrant:
			entrants = append(entrants, p)
		}
	}

	n := len(pool) / GroupSize
	if len(buyers) != 2*n || len(incumbents) != n || len(entrants) != n {
		return nil, fmt.Errorf("%w: role pools %d/%d/%d cannot fill %d groups of 2 buyers, 1 incumbent, 1 entrant",
			ErrConfiguration, len(buyers), len(incumbents), len(entrants), n)
	}

	pop := func(s *[]*Player) *Player {
		last := (*s)[len(*s)-1]
		*s = (*s)[:len(*s)-1]
		return last
	}

	groups := make([]*Group, 0, n)
	for len(buyers) > 0 {
		g := &Group{
			ID:     len(groups) + 1,
			rounds: make([]groupRound, rounds),
		}
		g.members = [GroupSize]*Player{pop(&buyers), pop(&buyers), pop(&incumbents), pop(&entrants)}
		groups = append(groups, g)
	}

	for _, g := range groups {
		for i, p := range g.members {
			p.Role = [GroupSize]Role{Buyer, Buyer, Incumbent, Entrant}[i]
			p.Position = i + 1
			p.group = g
			p.rounds = make([]Decision, rounds)
		}
	}
	return groups, nil
}
