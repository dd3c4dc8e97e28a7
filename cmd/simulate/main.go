// Command simulate replays a recorded limit-order-book event stream
// and runs the inventory-aware market maker against it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"

	"lob-marketmaker-go/config"
	"lob-marketmaker-go/driver"
	"lob-marketmaker-go/feed"
	"lob-marketmaker-go/logs"
	"lob-marketmaker-go/metrics"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML parameter file")
	eventsPath := flag.String("events", "events.csv", "path to the event stream CSV file")
	metricsAddr := flag.String("metricsAddr", ":9090", "address for the /metrics HTTP listener")
	pace := flag.Duration("pace", 0, "sleep between events; 0 runs as fast as possible")
	seed := flag.Int64("seed", 1, "seed for the synthetic aggressor generator")
	watch := flag.Bool("watch", false, "hot-reload config.yaml on change")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logs.New(logs.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *watch {
		w, err := config.NewWatcher(*configPath, cfg)
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		} else {
			w.Start(ctx, func(p config.Params, err error) {
				if err != nil {
					logger.Warn("config reload failed", zap.Error(err))
					return
				}
				cfg = p
				logger.Info("config reloaded")
			})
		}
	}

	metricsAddrVal := *metricsAddr
	if cfg.Metrics.Addr != "" {
		metricsAddrVal = cfg.Metrics.Addr
	}
	collector := metrics.NewCollector(cfg.Symbol)
	metrics.Serve(ctx, metricsAddrVal)

	var synthetic *feed.SyntheticAggressor
	if cfg.BuyRate > 0 || cfg.SellRate > 0 {
		synthetic = feed.NewSyntheticAggressor(*seed, cfg.BuyRate, cfg.SellRate, cfg.MaxSynQty)
	}

	d := driver.New(cfg, synthetic, logger, collector)

	replayer := feed.NewReplayer(func() (feed.Source, error) {
		return feed.NewCSVSource(*eventsPath)
	})

	sink := driver.SinkFunc(func(snap driver.Snapshot) {
		logger.Info("snapshot",
			zap.Int64("ts", snap.Ts),
			zap.Float64("best_bid_usd", snap.BestBidUSD),
			zap.Float64("best_ask_usd", snap.BestAskUSD),
			zap.Float64("mid_usd", snap.MidUSD),
			zap.Int64("inventory", snap.Inventory),
			zap.Float64("cash_usd", snap.CashUSD),
			zap.Float64("pnl_usd", snap.PnLUSD),
			zap.Int64("trades", snap.Trades),
			zap.String("mode", snap.Mode),
		)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutdown signal received")
		cancel()
	}()

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		logger.Warn("systemd notify failed", zap.Error(err))
	}
	if interval, err := daemon.SdWatchdogEnabled(false); err == nil && interval > 0 {
		go watchdogLoop(ctx, interval/2, logger)
	}

	if err := d.Run(ctx, replayer, *pace, sink); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}

	p := d.Portfolio()
	fmt.Printf("final: inventory=%d cash_ticks=%d trades=%d buys=%d sells=%d peak_pnl_ticks=%d\n",
		p.Inventory, p.CashTicks, p.TotalTrades, p.Buys, p.Sells, p.PeakPnLTicks)
}

func watchdogLoop(ctx context.Context, interval time.Duration, logger *logs.Logger) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog); err != nil {
				logger.Warn("systemd watchdog notify failed", zap.Error(err))
			}
		}
	}
}
