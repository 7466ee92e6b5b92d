// Command telemetrysink runs component G: consume pollution_data_queue and
// append each snapshot to the document store verbatim.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/broker"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/docstore"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/monitoring"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/telemetry"
)

const prefetch = 1

func main() {
	configPath := flag.String("config", "", "path to a TOML config file overlaying defaults")
	monitorAddr := flag.String("monitor-addr", ":8085", "address for the /health and /metrics endpoints")
	flag.Parse()

	cfg, err := common.LoadFromFile(*configPath)
	if err != nil {
		os.Stderr.WriteString("telemetrysink: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := common.SetupLogger(cfg.Logging)
	common.PrintBanner("TELEMETRY SINK", "appends scraped emissions snapshots to the document store", cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := docstore.Connect(ctx, cfg.DocStore.URI, cfg.DocStore.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetrysink: connect document store")
	}

	b, err := broker.Connect(cfg.Broker.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("telemetrysink: connect broker")
	}
	defer b.Close()

	sink := telemetry.NewSink(store)

	registry := monitoring.NewRegistry(24 * time.Hour)
	monitorServer := monitoring.NewServer(*monitorAddr, registry, log)
	monitorServer.Start()
	defer monitorServer.Shutdown(context.Background())

	log.Info().Msg("telemetrysink: ready, press Ctrl+C to stop")
	err = b.Consume(ctx, "pollution_data_queue", prefetch, func(ctx context.Context, body []byte) error {
		started := time.Now()
		procErr := sink.HandleMessage(ctx, body)
		registry.Record(monitoring.DocumentMetrics{StartedAt: started, FinishedAt: time.Now(), Success: procErr == nil})
		return procErr
	})
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("telemetrysink: consume loop stopped")
	}
	common.PrintShutdownBanner("TELEMETRY SINK", log)
}
