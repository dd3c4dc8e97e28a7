package feed

import "testing"

func tradesEqual(a, b []SyntheticTrade) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSyntheticAggressorDeterministicGivenSeed(t *testing.T) {
	a := NewSyntheticAggressor(42, 0.5, 0.5, 10)
	b := NewSyntheticAggressor(42, 0.5, 0.5, 10)

	for i := 0; i < 20; i++ {
		tradesA := a.Sample()
		tradesB := b.Sample()
		if !tradesEqual(tradesA, tradesB) {
			t.Fatalf("tick %d diverged: %v vs %v", i, tradesA, tradesB)
		}
	}
}

func TestSyntheticAggressorZeroRatesNeverFire(t *testing.T) {
	a := NewSyntheticAggressor(1, 0, 0, 10)
	for i := 0; i < 50; i++ {
		if trades := a.Sample(); len(trades) != 0 {
			t.Fatal("zero rates should never produce a synthetic trade")
		}
	}
}

func TestSyntheticAggressorQtyWithinBounds(t *testing.T) {
	a := NewSyntheticAggressor(7, 1, 1, 5)
	for i := 0; i < 50; i++ {
		for _, trade := range a.Sample() {
			if trade.Qty < 1 || trade.Qty > 5 {
				t.Fatalf("qty %d out of [1,5]", trade.Qty)
			}
		}
	}
}

func TestSyntheticAggressorBothSidesCanFireSameTick(t *testing.T) {
	a := NewSyntheticAggressor(3, 1, 1, 5)
	for i := 0; i < 20; i++ {
		trades := a.Sample()
		if len(trades) != 2 {
			continue
		}
		if trades[0].Side == trades[1].Side {
			t.Fatalf("expected one buy and one sell, got two %v trades", trades[0].Side)
		}
		return
	}
	t.Fatal("rate 1.0 on both sides never produced a double-fire tick")
}
