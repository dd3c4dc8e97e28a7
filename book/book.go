package book

import "sort"

// level holds all resting orders at a single price, FIFO by arrival.
type level struct {
	price  Price
	orders []*Order
}

type location struct {
	side Side
	px   Price
}

// Book is a two-sided price-time-priority limit order book. It is mutated
// by exactly one caller; no internal locking is performed (see the
// concurrency notes in the driver package).
type Book struct {
	bids map[Price]*level
	asks map[Price]*level

	// bidLevels is sorted high-to-low, askLevels low-to-high; index 0 is
	// always the touch on that side.
	bidLevels []Price
	askLevels []Price

	index map[string]location
	seq   uint64
}

// New returns an empty book.
func New() *Book {
	return &Book{
		bids:  make(map[Price]*level),
		asks:  make(map[Price]*level),
		index: make(map[string]location),
	}
}

func (b *Book) sideLevels(s Side) map[Price]*level {
	if s == Bid {
		return b.bids
	}
	return b.asks
}

func (b *Book) nextSeq() uint64 {
	b.seq++
	return b.seq
}

// insertLevelPrice inserts price into the sorted slice for side if absent.
func (b *Book) insertLevelPrice(s Side, px Price) {
	if s == Bid {
		i := sort.Search(len(b.bidLevels), func(i int) bool { return b.bidLevels[i] <= px })
		if i < len(b.bidLevels) && b.bidLevels[i] == px {
			return
		}
		b.bidLevels = append(b.bidLevels, 0)
		copy(b.bidLevels[i+1:], b.bidLevels[i:])
		b.bidLevels[i] = px
		return
	}
	i := sort.Search(len(b.askLevels), func(i int) bool { return b.askLevels[i] >= px })
	if i < len(b.askLevels) && b.askLevels[i] == px {
		return
	}
	b.askLevels = append(b.askLevels, 0)
	copy(b.askLevels[i+1:], b.askLevels[i:])
	b.askLevels[i] = px
}

func (b *Book) removeLevelPrice(s Side, px Price) {
	if s == Bid {
		i := sort.Search(len(b.bidLevels), func(i int) bool { return b.bidLevels[i] <= px })
		if i < len(b.bidLevels) && b.bidLevels[i] == px {
			b.bidLevels = append(b.bidLevels[:i], b.bidLevels[i+1:]...)
		}
		return
	}
	i := sort.Search(len(b.askLevels), func(i int) bool { return b.askLevels[i] >= px })
	if i < len(b.askLevels) && b.askLevels[i] == px {
		b.askLevels = append(b.askLevels[:i], b.askLevels[i+1:]...)
	}
}

// Add rests order on its side at its price, creating the level if absent.
// It fails with ErrDuplicateID if the identifier is already resting.
func (b *Book) Add(o *Order) error {
	if _, exists := b.index[o.ID]; exists {
		return ErrDuplicateID(o.ID)
	}
	b.addNoCheck(o)
	return nil
}

func (b *Book) addNoCheck(o *Order) {
	if o.Seq == 0 {
		o.Seq = b.nextSeq()
	}
	levels := b.sideLevels(o.Side)
	lv, ok := levels[o.Px]
	if !ok {
		lv = &level{price: o.Px}
		levels[o.Px] = lv
		b.insertLevelPrice(o.Side, o.Px)
	}
	lv.orders = append(lv.orders, o)
	b.index[o.ID] = location{side: o.Side, px: o.Px}
}

// Cancel removes the resting order with id, wherever it rests. It is a
// no-op (returns false) if the id is not currently resting.
func (b *Book) Cancel(id string) bool {
	loc, ok := b.index[id]
	if !ok {
		return false
	}
	levels := b.sideLevels(loc.side)
	lv := levels[loc.px]
	if lv == nil {
		delete(b.index, id)
		return false
	}
	for i, o := range lv.orders {
		if o.ID == id {
			lv.orders = append(lv.orders[:i], lv.orders[i+1:]...)
			break
		}
	}
	delete(b.index, id)
	if len(lv.orders) == 0 {
		delete(levels, loc.px)
		b.removeLevelPrice(loc.side, loc.px)
	}
	return true
}

// BestBid returns the top bid price, or ok=false if the bid side is empty.
func (b *Book) BestBid() (Price, bool) {
	if len(b.bidLevels) == 0 {
		return 0, false
	}
	return b.bidLevels[0], true
}

// BestAsk returns the top ask price, or ok=false if the ask side is empty.
func (b *Book) BestAsk() (Price, bool) {
	if len(b.askLevels) == 0 {
		return 0, false
	}
	return b.askLevels[0], true
}

// levelExec is one price level's aggregate consumption during a match.
type levelExec struct {
	price Price
	qty   int64
}

// matchAgainst consumes up to qty from the book side "consumed", FIFO
// within each level, best price first. It returns the total filled
// quantity, the per-level aggregate consumption (for the taker's own
// accounting), and a Fill for every consumed resting order that has
// Ours set (for the book side being consumed).
func (b *Book) matchAgainst(consumed Side, qty int64) (filled int64, perLevel []levelExec, oursFills []Fill) {
	levels := b.sideLevels(consumed)
	levelOrder := &b.bidLevels
	if consumed == Ask {
		levelOrder = &b.askLevels
	}

	for qty > 0 && len(*levelOrder) > 0 {
		px := (*levelOrder)[0]
		lv := levels[px]
		levelTaken := int64(0)

		for qty > 0 && len(lv.orders) > 0 {
			head := lv.orders[0]
			take := head.Qty
			if take > qty {
				take = qty
			}
			head.Qty -= take
			qty -= take
			levelTaken += take
			if head.Ours {
				oursFills = append(oursFills, Fill{Side: consumed, Qty: take, Price: px})
			}
			if head.Qty == 0 {
				delete(b.index, head.ID)
				lv.orders = lv.orders[1:]
			}
		}

		if levelTaken > 0 {
			perLevel = append(perLevel, levelExec{price: px, qty: levelTaken})
			filled += levelTaken
		}

		if len(lv.orders) == 0 {
			delete(levels, px)
			*levelOrder = (*levelOrder)[1:]
		}
	}
	return filled, perLevel, oursFills
}

// ExternalTrade models a taker of side aggressorSide consuming liquidity
// from the opposite side of the book, starting at the best price. It
// returns a Fill for every resting "ours" order consumed.
func (b *Book) ExternalTrade(aggressorSide Side, qty int64) []Fill {
	if qty <= 0 {
		return nil
	}
	_, _, oursFills := b.matchAgainst(aggressorSide.Opposite(), qty)
	return oursFills
}

// PlaceQuote either rests order (non-crossing) or treats it as a taker
// (crossing) against the opposite side. In the crossing regime, any
// unfilled remainder is discarded, not rested, and fills of other
// resting "ours" orders consumed along the way are not reported — only
// the incoming quote's own executions are, one Fill per price level
// touched, tagged with the quote's own side so the caller can route them
// through accounting directly.
func (b *Book) PlaceQuote(o *Order) (filledQty int64, execs []Fill) {
	crosses := false
	if o.Side == Bid {
		if ba, ok := b.BestAsk(); ok && o.Px >= ba {
			crosses = true
		}
	} else {
		if bb, ok := b.BestBid(); ok && o.Px <= bb {
			crosses = true
		}
	}

	if !crosses {
		o.Ours = true
		b.addNoCheck(o)
		return 0, nil
	}

	filled, perLevel, _ := b.matchAgainst(o.Side.Opposite(), o.Qty)
	execs = make([]Fill, 0, len(perLevel))
	for _, le := range perLevel {
		execs = append(execs, Fill{Side: o.Side, Qty: le.qty, Price: le.price})
	}
	return filled, execs
}
