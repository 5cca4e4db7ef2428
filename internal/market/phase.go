package market

import "strings"

// Phase is one step of a round.
type Phase int

const (
	PhaseEntry Phase = iota
	PhasePrice
	PhaseBuy
	PhaseQuality
	PhaseSettle
)

// DecisionPhases lists the phases in which players submit decisions, in
// round order.
var DecisionPhases = []Phase{PhaseEntry, PhasePrice, PhaseBuy, PhaseQuality}

func (p Phase) String() string {
	return [...]string{"entry", "price", "buy", "quality", "settle"}[p]
}

// Next returns the phase that follows p within a round. Settle is terminal.
func (p Phase) Next() (Phase, bool) {
	if p >= PhaseSettle {
		return PhaseSettle, false
	}
	return p + 1, true
}

// PhaseSet is a small bit set of phases.
type PhaseSet uint8

func (s PhaseSet) With(p Phase) PhaseSet {
	return s | 1<<p
}

func (s PhaseSet) Has(p Phase) bool {
	return s&(1<<p) != 0
}

func (s PhaseSet) Empty() bool {
	return s == 0
}

// Phases returns the members of the set in round order.
func (s PhaseSet) Phases() []Phase {
	var out []Phase
	for _, p := range DecisionPhases {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s PhaseSet) String() string {
	names := make([]string, 0, 4)
	for _, p := range s.Phases() {
		names = append(names, p.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
