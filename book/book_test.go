package book

import "testing"

func seedBook(t *testing.T) *Book {
	t.Helper()
	b := New()
	must := func(err error) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(b.Add(&Order{ID: "bid-100-a", Side: Bid, Px: 100, Qty: 5}))
	must(b.Add(&Order{ID: "bid-99", Side: Bid, Px: 99, Qty: 3}))
	must(b.Add(&Order{ID: "ask-101", Side: Ask, Px: 101, Qty: 4}))
	return b
}

// S1 — empty trade leaves the book untouched.
func TestExternalTradeZeroQtyIsNoop(t *testing.T) {
	b := seedBook(t)
	fills := b.ExternalTrade(Bid, 0)
	if len(fills) != 0 {
		t.Fatalf("expected no fills, got %v", fills)
	}
	bb, _ := b.BestBid()
	ba, _ := b.BestAsk()
	if bb != 100 || ba != 101 {
		t.Fatalf("book touch changed: bb=%d ba=%d", bb, ba)
	}
}

// S2 — FIFO within a level; only the ours-tagged resting order emits a fill.
func TestExternalTradeFIFOOursOnly(t *testing.T) {
	b := New()
	if err := b.Add(&Order{ID: "A", Side: Bid, Px: 100, Qty: 2, Ours: true}); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(&Order{ID: "B", Side: Bid, Px: 100, Qty: 3, Ours: false}); err != nil {
		t.Fatal(err)
	}

	fills := b.ExternalTrade(Ask, 4)
	if len(fills) != 1 {
		t.Fatalf("expected exactly one fill, got %v", fills)
	}
	if fills[0] != (Fill{Side: Bid, Qty: 2, Price: 100}) {
		t.Fatalf("unexpected fill: %+v", fills[0])
	}

	if b.Cancel("A") {
		t.Fatal("A should already be fully consumed")
	}
	if !b.Cancel("B") {
		t.Fatal("B should still be resting with qty 1")
	}
}

// S3 — a crossing quote sweeps multiple levels and never emits a fill for
// the ours-tagged resting order it consumes; the remainder is discarded.
func TestPlaceQuoteCrossingDiscardsRemainderAndSuppressesOursFill(t *testing.T) {
	b := New()
	if err := b.Add(&Order{ID: "r1", Side: Ask, Px: 101, Qty: 5, Ours: false}); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(&Order{ID: "r2", Side: Ask, Px: 102, Qty: 2, Ours: true}); err != nil {
		t.Fatal(err)
	}

	filled, execs := b.PlaceQuote(&Order{ID: "qb1", Side: Bid, Px: 102, Qty: 6})
	if filled != 6 {
		t.Fatalf("expected filled_qty=6, got %d", filled)
	}
	wantExecs := []Fill{{Side: Bid, Qty: 5, Price: 101}, {Side: Bid, Qty: 1, Price: 102}}
	if len(execs) != len(wantExecs) {
		t.Fatalf("execs mismatch: got %+v", execs)
	}
	for i := range wantExecs {
		if execs[i] != wantExecs[i] {
			t.Fatalf("execs[%d] = %+v, want %+v", i, execs[i], wantExecs[i])
		}
	}

	ba, ok := b.BestAsk()
	if !ok || ba != 102 {
		t.Fatalf("expected remaining best ask 102, got %d ok=%v", ba, ok)
	}
	if b.Cancel("qb1") {
		t.Fatal("crossing quote should never have rested")
	}
}

func TestPlaceQuoteNonCrossingRests(t *testing.T) {
	b := seedBook(t)
	filled, execs := b.PlaceQuote(&Order{ID: "qb2", Side: Bid, Px: 99, Qty: 1})
	if filled != 0 || len(execs) != 0 {
		t.Fatalf("non-crossing quote should not fill: filled=%d execs=%v", filled, execs)
	}
	if !b.Cancel("qb2") {
		t.Fatal("non-crossing quote should have rested as ours")
	}
}

func TestAddDuplicateID(t *testing.T) {
	b := seedBook(t)
	err := b.Add(&Order{ID: "bid-99", Side: Bid, Px: 98, Qty: 1})
	if _, ok := err.(ErrDuplicateID); !ok {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestCancelUnknownIsNoop(t *testing.T) {
	b := seedBook(t)
	if b.Cancel("does-not-exist") {
		t.Fatal("expected false for unknown id")
	}
}

// Round-trip: ADD followed by CANCEL of the same id restores the touch.
func TestAddCancelRoundTrip(t *testing.T) {
	b := seedBook(t)
	bbBefore, _ := b.BestBid()

	if err := b.Add(&Order{ID: "transient", Side: Bid, Px: 105, Qty: 1}); err != nil {
		t.Fatal(err)
	}
	if bb, _ := b.BestBid(); bb != 105 {
		t.Fatalf("expected new touch 105, got %d", bb)
	}
	if !b.Cancel("transient") {
		t.Fatal("cancel should succeed")
	}
	if bb, _ := b.BestBid(); bb != bbBefore {
		t.Fatalf("touch not restored: got %d, want %d", bb, bbBefore)
	}
}

func TestCrossingADDRestsWithoutMatching(t *testing.T) {
	b := seedBook(t)
	if err := b.Add(&Order{ID: "crosser", Side: Bid, Px: 200, Qty: 1}); err != nil {
		t.Fatal(err)
	}
	bb, _ := b.BestBid()
	if bb != 200 {
		t.Fatalf("crossing ADD should rest at its own price, got %d", bb)
	}
	ba, _ := b.BestAsk()
	if ba != 101 {
		t.Fatalf("crossing ADD must not consume the opposite side, best ask = %d", ba)
	}
}

func TestLevelRemovedWhenEmptied(t *testing.T) {
	b := New()
	if err := b.Add(&Order{ID: "only", Side: Ask, Px: 101, Qty: 3}); err != nil {
		t.Fatal(err)
	}
	b.ExternalTrade(Bid, 3)
	if _, ok := b.BestAsk(); ok {
		t.Fatal("emptied level should be removed, ask side should be empty")
	}
}
