package feed

import (
	"math/rand"

	"lob-marketmaker-go/book"
)

// SyntheticAggressor generates the optional synthetic aggressor-trade
// flow the driver may inject each tick. It takes its seed as a
// constructor argument rather than reaching for global rand state, so a
// run stays reproducible across restarts and tests.
type SyntheticAggressor struct {
	rng      *rand.Rand
	buyRate  float64
	sellRate float64
	maxQty   int64
}

// NewSyntheticAggressor returns a generator seeded deterministically.
func NewSyntheticAggressor(seed int64, buyRate, sellRate float64, maxQty int64) *SyntheticAggressor {
	return &SyntheticAggressor{
		rng:      rand.New(rand.NewSource(seed)),
		buyRate:  buyRate,
		sellRate: sellRate,
		maxQty:   maxQty,
	}
}

// SyntheticTrade is one independently-drawn synthetic aggressor trade.
type SyntheticTrade struct {
	Side book.Side
	Qty  int64
}

// Sample draws this tick's synthetic trades. The buy-side and sell-side
// checks are independent, each against its own rate, so both can fire
// on the same tick (or neither).
func (s *SyntheticAggressor) Sample() []SyntheticTrade {
	if s.maxQty <= 0 {
		return nil
	}
	var trades []SyntheticTrade
	if s.buyRate > 0 && s.rng.Float64() < s.buyRate {
		trades = append(trades, SyntheticTrade{Side: book.Bid, Qty: s.sampleQty()})
	}
	if s.sellRate > 0 && s.rng.Float64() < s.sellRate {
		trades = append(trades, SyntheticTrade{Side: book.Ask, Qty: s.sampleQty()})
	}
	return trades
}

func (s *SyntheticAggressor) sampleQty() int64 {
	if s.maxQty <= 1 {
		return s.maxQty
	}
	return 1 + s.rng.Int63n(s.maxQty)
}
