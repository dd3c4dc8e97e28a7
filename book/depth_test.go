package book

import "testing"

func TestDepthPublishAndRead(t *testing.T) {
	b := New()
	d := NewDepth()

	if _, ok, _, ok2 := d.Best(); ok || ok2 {
		t.Fatal("fresh depth should report nothing")
	}

	if err := b.Add(&Order{ID: "bid", Side: Bid, Px: 100, Qty: 1}); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(&Order{ID: "ask", Side: Ask, Px: 102, Qty: 1}); err != nil {
		t.Fatal(err)
	}
	d.Publish(b)

	bb, okBid, ba, okAsk := d.Best()
	if !okBid || !okAsk || bb != 100 || ba != 102 {
		t.Fatalf("unexpected touch: bb=%d ok=%v ba=%d ok=%v", bb, okBid, ba, okAsk)
	}
	mid, ok := d.Mid()
	if !ok || mid != 101 {
		t.Fatalf("expected mid 101, got %v ok=%v", mid, ok)
	}
	bidLv, askLv := d.Levels()
	if bidLv != 1 || askLv != 1 {
		t.Fatalf("expected 1 level per side, got bid=%d ask=%d", bidLv, askLv)
	}
}
