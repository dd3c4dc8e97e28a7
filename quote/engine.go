// Package quote computes inventory-aware two-sided quotes: reservation
// price, non-crossing clamp, side gating near inventory limits, and
// size scaling. It holds no book or portfolio state of its own — every
// call is a pure function of the touch, inventory, and risk-off flag.
package quote

import (
	"math"

	"lob-marketmaker-go/book"
)

// Config carries the tunables passed through at startup; this type is
// held by the engine, not global state.
type Config struct {
	Delta   float64 // half-spread in ticks
	Lambda  float64 // inventory tilt coefficient
	QtyBase int64
	QtyMin  int64
	InvSoft int64
}

// Quote is one tick's worth of two-sided output.
type Quote struct {
	BidPx     book.Price
	AskPx     book.Price
	EnableBid bool
	EnableAsk bool
	QtyBid    int64
	QtyAsk    int64
}

// Engine computes Quote from the current touch and strategy state.
type Engine struct {
	cfg Config
}

// New returns an Engine bound to cfg.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compute derives this tick's quote. bestBid/bestAsk must both be valid
// (the driver skips quoting on an empty-sided book before calling this).
func (e *Engine) Compute(bestBid, bestAsk book.Price, inventory int64, riskOff bool) Quote {
	mid := (float64(bestBid) + float64(bestAsk)) / 2
	r := mid - e.cfg.Lambda*float64(inventory)

	bidPx := book.Price(int64(math.Floor(r - e.cfg.Delta)))
	askPx := book.Price(int64(math.Ceil(r + e.cfg.Delta)))

	if bidPx > bestBid {
		bidPx = bestBid
	}
	if askPx < bestAsk {
		askPx = bestAsk
	}

	absI := inventory
	if absI < 0 {
		absI = -absI
	}

	q := Quote{BidPx: bidPx, AskPx: askPx, EnableBid: true, EnableAsk: true}

	if absI >= e.cfg.InvSoft || riskOff {
		switch {
		case inventory > 0:
			q.EnableBid = false
			if pulled := askPx - 1; pulled > bestAsk {
				q.AskPx = pulled
			} else {
				q.AskPx = bestAsk
			}
		case inventory < 0:
			q.EnableAsk = false
			if pulled := bidPx + 1; pulled < bestBid {
				q.BidPx = pulled
			} else {
				q.BidPx = bestBid
			}
		}
		// inventory == 0: both sides remain enabled even under risk_off.
	}

	invSoftDiv := e.cfg.InvSoft
	if invSoftDiv < 1 {
		invSoftDiv = 1
	}
	frac := 1 - float64(absI)/float64(invSoftDiv)
	if frac < 0.2 {
		frac = 0.2
	}
	qBase := int64(math.Floor(float64(e.cfg.QtyBase) * frac))
	if qBase < e.cfg.QtyMin {
		qBase = e.cfg.QtyMin
	}

	q.QtyBid, q.QtyAsk = qBase, qBase
	if absI >= e.cfg.InvSoft {
		switch {
		case inventory > 0:
			q.QtyAsk = maxInt64(qBase, qBase+1)
			q.QtyBid = e.cfg.QtyMin
		case inventory < 0:
			q.QtyBid = maxInt64(qBase, qBase+1)
			q.QtyAsk = e.cfg.QtyMin
		}
	}

	return q
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
