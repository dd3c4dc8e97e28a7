// Package metrics exports the driver's per-tick state as Prometheus
// gauges and counters and serves them over HTTP.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the simulator publishes. One Collector
// exists per process and is injected into the driver the same way a
// promauto-built metrics struct is threaded through a long-running
// service's closures.
type Collector struct {
	Inventory prometheus.Gauge
	CashUSD   prometheus.Gauge
	PnLUSD    prometheus.Gauge
	Drawdown  prometheus.Gauge
	RiskOff   prometheus.Gauge

	TradesTotal prometheus.Counter
	BuysTotal   prometheus.Counter
	SellsTotal  prometheus.Counter

	BookLevels     *prometheus.GaugeVec
	TicksTotal     prometheus.Counter
	SyntheticTotal prometheus.Counter
}

// NewCollector registers every metric against the default registry.
func NewCollector(symbol string) *Collector {
	constLabels := prometheus.Labels{"symbol": symbol}
	return &Collector{
		Inventory: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sim_inventory", Help: "current signed inventory in units", ConstLabels: constLabels,
		}),
		CashUSD: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sim_cash_usd", Help: "current cash balance in USD", ConstLabels: constLabels,
		}),
		PnLUSD: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sim_pnl_usd", Help: "current mark-to-market PnL in USD", ConstLabels: constLabels,
		}),
		Drawdown: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sim_drawdown_usd", Help: "current drawdown from peak PnL in USD", ConstLabels: constLabels,
		}),
		RiskOff: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sim_risk_off", Help: "1 if risk_off is currently latched, else 0", ConstLabels: constLabels,
		}),
		TradesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sim_trades_total", Help: "total fills routed through accounting", ConstLabels: constLabels,
		}),
		BuysTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sim_buys_total", Help: "total buy-side fills", ConstLabels: constLabels,
		}),
		SellsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sim_sells_total", Help: "total sell-side fills", ConstLabels: constLabels,
		}),
		BookLevels: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sim_book_levels", Help: "distinct price levels resting per side", ConstLabels: constLabels,
		}, []string{"side"}),
		TicksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sim_ticks_total", Help: "total events processed", ConstLabels: constLabels,
		}),
		SyntheticTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sim_synthetic_trades_total", Help: "total injected synthetic aggressor trades", ConstLabels: constLabels,
		}),
	}
}

// ObserveTradeCounters increments the buy/sell/total counters once per
// fill, matching the sign convention accounting.Portfolio uses.
func (c *Collector) ObserveTradeCounters(isBuy bool) {
	c.TradesTotal.Inc()
	if isBuy {
		c.BuysTotal.Inc()
		return
	}
	c.SellsTotal.Inc()
}

// Serve starts the Prometheus HTTP listener in the background and stops
// it when ctx is cancelled.
func Serve(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
}
