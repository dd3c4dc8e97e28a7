// Package book implements a price-time-priority limit order book: resting
// orders on two sides, tagged "ours" where the strategy placed them, with
// external-aggressor matching and a separate crossing path for our own
// quotes.
package book

import "fmt"

// Side identifies which side of the book an order or fill belongs to.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "BID"
	}
	return "ASK"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

// Price is an integer tick. The book never compares prices as floats.
type Price int64

// Order is a resting or about-to-rest limit order. The book is its sole
// owner; callers hold at most a reference returned at construction time.
type Order struct {
	ID   string
	Side Side
	Px   Price
	Qty  int64
	Seq  uint64
	Ours bool
}

// Fill is an execution reported out of the book. For external_trade, Side
// is the side of the resting order that was consumed and only orders with
// Ours set produce one. For PlaceQuote, Side is the incoming quote's own
// side and every executed level produces one, regardless of whose resting
// order was on the other side of the trade.
type Fill struct {
	Side  Side
	Qty   int64
	Price Price
}

// ErrDuplicateID is returned by Add when the identifier is already resting.
type ErrDuplicateID string

func (e ErrDuplicateID) Error() string {
	return fmt.Sprintf("book: duplicate order id %q", string(e))
}
