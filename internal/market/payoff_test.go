package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettlementScenarios(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("one trade at high quality", func(t *testing.T) {
		s, o := newStartedSession(t, cfg, 4, 1)
		playRound(t, s, o, roundPlan{
			entry:   map[int]bool{2: true, 4: false},
			price:   map[int]int{2: 50},
			buy:     map[int]int{3: 3, 1: NoPurchase},
			quality: map[int]bool{2: true},
		})
		assert.Equal(t, 45, payoff(t, s, 3, 1), "trading buyer")
		assert.Equal(t, 20, payoff(t, s, 1, 1), "opt-out buyer")
		assert.Equal(t, 20, payoff(t, s, 2, 1), "seller")
		assert.Equal(t, cfg.SellerEndowment, payoff(t, s, 4, 1), "seller out of market")
	})

	t.Run("entered seller without trades earns zero", func(t *testing.T) {
		s, o := newStartedSession(t, cfg, 4, 1)
		playRound(t, s, o, roundPlan{
			entry: map[int]bool{2: true},
			price: map[int]int{2: 50},
		})
		assert.Equal(t, 0, payoff(t, s, 2, 1))
		assert.Equal(t, cfg.BuyerEndowment, payoff(t, s, 1, 1))
		assert.Equal(t, cfg.BuyerEndowment, payoff(t, s, 3, 1))

		incumbent, _ := s.Player(2)
		d, _ := incumbent.Decision(1)
		assert.False(t, d.Recorded(PhaseQuality), "quality never opens without a trade")
	})

	t.Run("opt out keeps endowment", func(t *testing.T) {
		s, o := newStartedSession(t, cfg, 4, 1)
		playRound(t, s, o, roundPlan{})
		assert.Equal(t, cfg.SellerEndowment, payoff(t, s, 2, 1))
		assert.Equal(t, cfg.SellerEndowment, payoff(t, s, 4, 1))

		incumbent, _ := s.Player(2)
		d, _ := incumbent.Decision(1)
		assert.False(t, d.Recorded(PhasePrice))
		assert.False(t, d.Recorded(PhaseQuality))
	})

	t.Run("two trades at low quality", func(t *testing.T) {
		s, o := newStartedSession(t, cfg, 4, 1)
		playRound(t, s, o, roundPlan{
			entry:   map[int]bool{2: true, 4: true},
			price:   map[int]int{2: 70, 4: 45},
			buy:     map[int]int{3: 4, 1: 4},
			quality: map[int]bool{4: false},
		})
		assert.Equal(t, 2*(45-cfg.LowCost), payoff(t, s, 4, 1))
		assert.Equal(t, cfg.LowUtility-45, payoff(t, s, 3, 1))
		assert.Equal(t, cfg.LowUtility-45, payoff(t, s, 1, 1))
		assert.Equal(t, 0, payoff(t, s, 2, 1))
	})
}

func TestSellerAndBuyerPayoffsAgree(t *testing.T) {
	cfg := DefaultConfig()
	for _, high := range []bool{false, true} {
		for _, price := range []int{40, 55, 75} {
			for trades := 1; trades <= 2; trades++ {
				s, o := newStartedSession(t, cfg, 4, 1)
				buy := map[int]int{3: 3}
				if trades == 2 {
					buy[1] = 3
				}
				playRound(t, s, o, roundPlan{
					entry:   map[int]bool{2: true},
					price:   map[int]int{2: price},
					buy:     buy,
					quality: map[int]bool{2: high},
				})
				assert.Equal(t, trades*(price-cfg.UnitCost(high)), payoff(t, s, 2, 1))
				for buyer := range buy {
					assert.Equal(t, cfg.Utility(high)-price, payoff(t, s, buyer, 1))
				}
			}
		}
	}
}
