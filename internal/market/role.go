package market

import "fmt"

// Role is the persistent position a player holds for a whole session.
type Role int

const (
	Buyer Role = iota
	Incumbent
	Entrant
)

func (r Role) String() string {
	switch r {
	case Buyer:
		return "buyer"
	case Incumbent:
		return "incumbent"
	case Entrant:
		return "entrant"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// IsSeller reports whether the role sells in the market.
func (r Role) IsSeller() bool {
	return r == Incumbent || r == Entrant
}

// RoleForID derives the role encoded in a pool identifier: odd identifiers
// are buyers, even identifiers divisible by four are entrants and the other
// even identifiers are incumbents. Only FormGroups calls this; afterwards the
// role lives on the Player.
func RoleForID(id int) Role {
	switch {
	case id%2 != 0:
		return Buyer
	case id%4 == 0:
		return Entrant
	default:
		return Incumbent
	}
}
