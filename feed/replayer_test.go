package feed

import (
	"io"
	"testing"
)

// sliceSource replays a fixed slice of events then EOFs.
type sliceSource struct {
	events []Event
	i      int
}

func (s *sliceSource) Next() (Event, error) {
	if s.i >= len(s.events) {
		return Event{}, io.EOF
	}
	e := s.events[s.i]
	s.i++
	return e, nil
}

// S6 — two passes over the same event stream: the replayer rebuilds a
// fresh Source at each pass boundary, and the driver rebuilds the book,
// while the caller's own strategy state is untouched by the Replayer.
func TestReplayerLoopsForeverAndSignalsPassBoundary(t *testing.T) {
	builds := 0
	r := NewReplayer(func() (Source, error) {
		builds++
		return &sliceSource{events: []Event{{Kind: Add, ID: "x"}, {Kind: Cancel, ID: "x"}}}, nil
	})

	var restarts []bool
	for i := 0; i < 5; i++ {
		_, restarted, err := r.Next()
		if err != nil {
			t.Fatal(err)
		}
		restarts = append(restarts, restarted)
	}

	want := []bool{true, false, true, false, true}
	for i, w := range want {
		if restarts[i] != w {
			t.Fatalf("restart[%d] = %v, want %v (sequence %v)", i, restarts[i], w, restarts)
		}
	}
	if builds != 3 {
		t.Fatalf("expected 3 rebuilds for 5 events of a 2-event pass, got %d", builds)
	}
}
