package driver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"lob-marketmaker-go/accounting"
	"lob-marketmaker-go/book"
	"lob-marketmaker-go/config"
	"lob-marketmaker-go/feed"
	"lob-marketmaker-go/logs"
	"lob-marketmaker-go/metrics"
	"lob-marketmaker-go/quote"
	"lob-marketmaker-go/risk"
)

// Driver is the single-threaded per-event loop: mutate book, update
// accounting from fills, reprice, place quotes, emit a snapshot. No
// mutex guards any of its state — the concurrency model requires
// exactly one caller ever drives it.
type Driver struct {
	cfg config.Params

	bk        *book.Book
	portfolio *accounting.Portfolio
	quoteEng  *quote.Engine
	riskCtrl  *risk.Controller
	synthetic *feed.SyntheticAggressor

	depth   *book.Depth
	logger  *logs.Logger
	metrics *metrics.Collector

	ts       int64
	quoteSeq uint64
	riskOff  bool
}

// New builds a Driver from cfg. synthetic, logger, and metricsCollector
// may each be nil — the driver degrades gracefully without them.
func New(cfg config.Params, synthetic *feed.SyntheticAggressor, logger *logs.Logger, metricsCollector *metrics.Collector) *Driver {
	return &Driver{
		cfg:       cfg,
		bk:        book.New(),
		portfolio: accounting.New(),
		quoteEng: quote.New(quote.Config{
			Delta:   cfg.Delta,
			Lambda:  cfg.Lambda,
			QtyBase: cfg.QtyBase,
			QtyMin:  cfg.QtyMin,
			InvSoft: cfg.InvSoft,
		}),
		riskCtrl:  risk.NewController(cfg.InvHard, cfg.MaxDDUSD),
		synthetic: synthetic,
		depth:     book.NewDepth(),
		logger:    logger,
		metrics:   metricsCollector,
	}
}

// Portfolio exposes the accumulated strategy state, e.g. for a final
// run summary printed by the caller at shutdown.
func (d *Driver) Portfolio() *accounting.Portfolio { return d.portfolio }

// Depth exposes the last-published touch and level-count projection.
func (d *Driver) Depth() *book.Depth { return d.depth }

// Run drives replayer until ctx is cancelled or a non-recoverable error
// occurs. pace, if positive, sleeps between events (an external concern,
// not part of the core). sink receives one Snapshot per event that did
// not skip.
func (d *Driver) Run(ctx context.Context, replayer *feed.Replayer, pace time.Duration, sink SnapshotSink) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		ev, restarted, err := replayer.Next()
		if restarted {
			d.bk = book.New()
			d.depth = book.NewDepth()
		}
		if err != nil {
			var malformed *feed.ErrMalformedRecord
			if errors.As(err, &malformed) {
				if d.logger != nil {
					d.logger.LogMalformedRecord(malformed, map[string]interface{}{"line": malformed.Line})
				}
				continue
			}
			return err
		}

		if snap, ok := d.step(ev); ok && sink != nil {
			sink.OnSnapshot(snap)
		}

		if d.metrics != nil {
			d.metrics.TicksTotal.Inc()
		}
		if pace > 0 {
			time.Sleep(pace)
		}
	}
}

func (d *Driver) step(ev feed.Event) (Snapshot, bool) {
	if ev.Ts != nil {
		d.ts = *ev.Ts
	} else {
		d.ts++
	}

	switch ev.Kind {
	case feed.Add:
		if err := d.bk.Add(&book.Order{ID: ev.ID, Side: ev.Side, Px: ev.Price, Qty: ev.Qty}); err != nil {
			if d.logger != nil {
				d.logger.LogDuplicateID(ev.ID)
			}
		}
	case feed.Cancel:
		d.bk.Cancel(ev.ID)
	case feed.Trade:
		for _, f := range d.bk.ExternalTrade(ev.Side, ev.Qty) {
			d.applyFill(f, "external_trade")
		}
	}

	bb, okBid := d.bk.BestBid()
	ba, okAsk := d.bk.BestAsk()
	if !okBid || !okAsk {
		if d.logger != nil {
			d.logger.LogSkippedTick(map[string]interface{}{"reason": "empty_book_side"})
		}
		return Snapshot{}, false
	}

	if d.synthetic != nil {
		for _, t := range d.synthetic.Sample() {
			fills := d.bk.ExternalTrade(t.Side, t.Qty)
			for _, f := range fills {
				d.applyFill(f, "synthetic")
			}
			if d.metrics != nil {
				d.metrics.SyntheticTotal.Inc()
			}
		}
	}

	bb, okBid = d.bk.BestBid()
	ba, okAsk = d.bk.BestAsk()
	if !okBid || !okAsk {
		return Snapshot{}, false
	}

	pnl := d.portfolio.MarkToMarket(bb, ba)
	drawdown := d.portfolio.DrawdownUSD(pnl, d.cfg.TickUSD)

	wasRiskOff := d.riskOff
	d.riskOff = d.riskCtrl.Evaluate(d.portfolio.Inventory, drawdown)
	if d.riskOff != wasRiskOff && d.logger != nil {
		d.logger.LogRiskTransition(d.riskOff, map[string]interface{}{
			"inventory":    d.portfolio.Inventory,
			"drawdown_usd": drawdown,
		})
	}

	q := d.quoteEng.Compute(bb, ba, d.portfolio.Inventory, d.riskOff)

	if q.EnableBid {
		id := d.nextQuoteID("qb")
		_, execs := d.bk.PlaceQuote(&book.Order{ID: id, Side: book.Bid, Px: q.BidPx, Qty: q.QtyBid})
		for _, f := range execs {
			d.applyFill(f, "place_quote")
		}
	}
	if q.EnableAsk {
		id := d.nextQuoteID("qa")
		_, execs := d.bk.PlaceQuote(&book.Order{ID: id, Side: book.Ask, Px: q.AskPx, Qty: q.QtyAsk})
		for _, f := range execs {
			d.applyFill(f, "place_quote")
		}
	}

	bb, okBid = d.bk.BestBid()
	ba, okAsk = d.bk.BestAsk()
	if !okBid || !okAsk {
		return Snapshot{}, false
	}
	pnl = d.portfolio.MarkToMarket(bb, ba)

	d.depth.Publish(d.bk)
	if d.metrics != nil {
		d.updateMetrics(pnl, drawdown)
	}

	mode := "RUN"
	if d.riskOff {
		mode = "RISK_OFF"
	}

	return Snapshot{
		Ts:         d.ts,
		BestBidUSD: round2(float64(bb) * d.cfg.TickUSD),
		BestAskUSD: round2(float64(ba) * d.cfg.TickUSD),
		MidUSD:     round2(float64(bb+ba) / 2 * d.cfg.TickUSD),
		Inventory:  d.portfolio.Inventory,
		CashUSD:    round2(float64(d.portfolio.CashTicks) * d.cfg.TickUSD),
		PnLUSD:     round2(float64(pnl) * d.cfg.TickUSD),
		Trades:     d.portfolio.TotalTrades,
		Buys:       d.portfolio.Buys,
		Sells:      d.portfolio.Sells,
		Mode:       mode,
	}, true
}

func (d *Driver) applyFill(f book.Fill, origin string) {
	d.portfolio.ApplyFill(f)
	if d.logger != nil {
		d.logger.LogFill(map[string]interface{}{
			"side":   f.Side.String(),
			"qty":    f.Qty,
			"price":  int64(f.Price),
			"origin": origin,
		})
	}
	if d.metrics != nil {
		d.metrics.ObserveTradeCounters(f.Side == book.Bid)
	}
}

func (d *Driver) updateMetrics(pnl int64, drawdownUSD float64) {
	d.metrics.Inventory.Set(float64(d.portfolio.Inventory))
	d.metrics.CashUSD.Set(float64(d.portfolio.CashTicks) * d.cfg.TickUSD)
	d.metrics.PnLUSD.Set(float64(pnl) * d.cfg.TickUSD)
	d.metrics.Drawdown.Set(drawdownUSD)
	if d.riskOff {
		d.metrics.RiskOff.Set(1)
	} else {
		d.metrics.RiskOff.Set(0)
	}
	bidLevels, askLevels := d.depth.Levels()
	d.metrics.BookLevels.WithLabelValues("bid").Set(float64(bidLevels))
	d.metrics.BookLevels.WithLabelValues("ask").Set(float64(askLevels))
}

// nextQuoteID returns a monotonic, globally unique identifier,
// independent of event ts and of pass boundaries, sidestepping the
// restart-collision risk of keying ids off ts.
func (d *Driver) nextQuoteID(prefix string) string {
	d.quoteSeq++
	return fmt.Sprintf("%s%d", prefix, d.quoteSeq)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
