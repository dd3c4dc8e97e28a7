package feed

import (
	"errors"
	"io"
)

// Replayer rebuilds a fresh Source from factory at every end-of-stream,
// making a finite per-pass sequence loop forever. The driver reads
// restarted off Next to know when to rebuild its Book — strategy state
// is never touched here, only the book needs resetting at a pass
// boundary.
type Replayer struct {
	factory func() (Source, error)
	cur     Source
}

// NewReplayer returns a Replayer that calls factory to build (and
// rebuild, at every pass boundary) the underlying Source.
func NewReplayer(factory func() (Source, error)) *Replayer {
	return &Replayer{factory: factory}
}

// Next returns the next event. restarted is true exactly when this
// event is the first of a freshly (re)built pass, including the very
// first call; it is also true when the first record of a pass comes back
// as an error. An error from the factory itself (e.g. the input file
// vanished) is returned as-is; the next call to Next calls the factory
// again.
func (r *Replayer) Next() (Event, bool, error) {
	for {
		if r.cur == nil {
			src, err := r.factory()
			if err != nil {
				return Event{}, false, err
			}
			r.cur = src
			e, err := r.cur.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					// Degenerate empty pass; rebuild again.
					r.cur = nil
					continue
				}
				return Event{}, true, err
			}
			return e, true, nil
		}

		e, err := r.cur.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.cur = nil
				continue
			}
			return Event{}, false, err
		}
		return e, false, nil
	}
}
