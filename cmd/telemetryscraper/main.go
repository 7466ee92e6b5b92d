// Command telemetryscraper runs component F's scrape half: consume
// dashboard_links_queue, scrape each dashboard URL, and publish a
// structured snapshot onto pollution_data_queue. Always acks, per spec.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/broker"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/browser"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/monitoring"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/telemetry"
)

const prefetch = 1

func main() {
	configPath := flag.String("config", "", "path to a TOML config file overlaying defaults")
	monitorAddr := flag.String("monitor-addr", ":8084", "address for the /health and /metrics endpoints")
	flag.Parse()

	cfg, err := common.LoadFromFile(*configPath)
	if err != nil {
		os.Stderr.WriteString("telemetryscraper: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := common.SetupLogger(cfg.Logging)
	common.PrintBanner("TELEMETRY SCRAPER", "scrapes live emissions dashboards into structured snapshots", cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := broker.Connect(cfg.Broker.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("telemetryscraper: connect broker")
	}
	defer b.Close()

	driver := browser.NewDashboardScraper(cfg.Dashboard.ParentBlockSelector, cfg.Dashboard.LabelSelector, cfg.Dashboard.Wait)
	scraper := telemetry.NewScraper(driver, b)

	registry := monitoring.NewRegistry(24 * time.Hour)
	monitorServer := monitoring.NewServer(*monitorAddr, registry, log)
	monitorServer.Start()
	defer monitorServer.Shutdown(context.Background())

	log.Info().Msg("telemetryscraper: ready, press Ctrl+C to stop")
	err = b.Consume(ctx, "dashboard_links_queue", prefetch, func(ctx context.Context, body []byte) error {
		started := time.Now()
		procErr := scraper.HandleMessage(ctx, body)
		registry.Record(monitoring.DocumentMetrics{StartedAt: started, FinishedAt: time.Now(), Success: procErr == nil})
		return procErr
	})
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("telemetryscraper: consume loop stopped")
	}
	common.PrintShutdownBanner("TELEMETRY SCRAPER", log)
}
