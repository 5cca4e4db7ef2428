package market

import (
	"fmt"
	"strconv"
)

// HistoryRecord is the public outcome of one past round for a seller.
type HistoryRecord struct {
	Round       int
	Traded      bool
	HighQuality bool // meaningful only when Traded
	Price       int  // meaningful only when Traded
}

// Choice renders the record as Y (high quality sold), X (low quality sold)
// or N (no trade).
func (r HistoryRecord) Choice() string {
	switch {
	case !r.Traded:
		return "N"
	case r.HighQuality:
		return "Y"
	default:
		return "X"
	}
}

// PriceLabel is the traded price, or N without a trade.
func (r HistoryRecord) PriceLabel() string {
	if !r.Traded {
		return "N"
	}
	return strconv.Itoa(r.Price)
}

func (r HistoryRecord) String() string {
	return fmt.Sprintf("round %d: %s %s", r.Round, r.Choice(), r.PriceLabel())
}

// SellerHistory derives the records of rounds [1, uptoRound) for seller p.
// Every one of those rounds must already be settled.
func SellerHistory(p *Player, uptoRound int) ([]HistoryRecord, error) {
	if !p.Role.IsSeller() {
		return nil, fmt.Errorf("%w: player %d is a %s", ErrNotSeller, p.ID, p.Role)
	}
	if p.group == nil {
		return nil, fmt.Errorf("%w: player %d has no group yet", ErrIncompleteRound, p.ID)
	}
	if uptoRound < 1 || uptoRound-1 > len(p.rounds) {
		return nil, fmt.Errorf("%w: round %d out of range", ErrInvalidDecision, uptoRound)
	}

	history := make([]HistoryRecord, 0, uptoRound-1)
	for r := 1; r < uptoRound; r++ {
		d := p.decision(r)
		if !d.Settled() {
			return nil, fmt.Errorf("%w: round %d is not settled", ErrIncompleteRound, r)
		}
		rec := HistoryRecord{Round: r}
		if d.Entered && p.group.Trades(r, p.Position) > 0 {
			rec.Traded = true
			rec.HighQuality = d.HighQuality
			rec.Price = d.Price
		}
		history = append(history, rec)
	}
	return history, nil
}
