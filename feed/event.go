// Package feed provides the lazy finite event source the driver consumes,
// and the machinery to replay it forever across pass boundaries.
package feed

import "lob-marketmaker-go/book"

// Kind is the event's operation.
type Kind int

const (
	Add Kind = iota
	Cancel
	Trade
)

func (k Kind) String() string {
	switch k {
	case Add:
		return "ADD"
	case Cancel:
		return "CANCEL"
	case Trade:
		return "TRADE"
	default:
		return "UNKNOWN"
	}
}

// Event mirrors one external input record. Ts is nil when the record
// omitted a timestamp; the driver then advances a counter of its own.
// Side is meaningless for Cancel, Price/Qty are meaningless for Cancel,
// and ID is meaningless for Trade.
type Event struct {
	Ts    *int64
	Kind  Kind
	Side  book.Side
	Price book.Price
	Qty   int64
	ID    string
}
