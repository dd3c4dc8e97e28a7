// Package accounting tracks inventory, cash, and mark-to-market PnL from
// the fills the book reports, and the drawdown the risk controller reads.
package accounting

import (
	"math"

	"lob-marketmaker-go/book"
)

// Portfolio is the strategy's accumulated state. It is mutated only by
// ApplyFill, from fills the book reports, and by MarkToMarket, which
// advances the peak; it is never reset across event-stream restarts.
type Portfolio struct {
	Inventory    int64
	CashTicks    int64
	PeakPnLTicks int64
	TotalTrades  int64
	Buys         int64
	Sells        int64
}

// New returns a zero-initialized portfolio.
func New() *Portfolio {
	return &Portfolio{}
}

// ApplyFill updates inventory and cash from one fill. A Bid-side fill
// means a resting bid was hit (we bought); an Ask-side fill means a
// resting ask was hit (we sold). This is also the rule used for a
// crossing quote's own executions, where Side is the quote's side rather
// than a resting order's.
func (p *Portfolio) ApplyFill(f book.Fill) {
	switch f.Side {
	case book.Bid:
		p.Inventory += f.Qty
		p.CashTicks -= f.Qty * int64(f.Price)
		p.Buys++
	case book.Ask:
		p.Inventory -= f.Qty
		p.CashTicks += f.Qty * int64(f.Price)
		p.Sells++
	}
	p.TotalTrades++
}

// MarkToMarket recomputes PnL at the current touch, advances the
// monotonic peak, and returns the PnL in ticks.
func (p *Portfolio) MarkToMarket(bestBid, bestAsk book.Price) int64 {
	mid := float64(bestBid+bestAsk) / 2
	pnl := p.CashTicks + int64(math.Round(float64(p.Inventory)*mid))
	if pnl > p.PeakPnLTicks {
		p.PeakPnLTicks = pnl
	}
	return pnl
}

// DrawdownUSD converts the gap between the running peak and pnlTicks
// (as last produced by MarkToMarket) into currency. Always non-negative
// because MarkToMarket advances the peak before this is read.
func (p *Portfolio) DrawdownUSD(pnlTicks int64, tickUSD float64) float64 {
	return float64(p.PeakPnLTicks-pnlTicks) * tickUSD
}
