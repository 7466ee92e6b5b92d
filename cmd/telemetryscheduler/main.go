// Command telemetryscheduler runs component F's scheduler half: on a cron
// schedule, fan out one message per tracked dashboard link onto
// dashboard_links_queue.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/broker"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file overlaying defaults")
	cronSpec := flag.String("cron", "@every 5m", "cron schedule for dashboard link fan-out")
	flag.Parse()

	cfg, err := common.LoadFromFile(*configPath)
	if err != nil {
		os.Stderr.WriteString("telemetryscheduler: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := common.SetupLogger(cfg.Logging)
	common.PrintBanner("TELEMETRY SCHEDULER", "fans out dashboard links on a cron schedule", cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("telemetryscheduler: connect db")
	}
	defer database.Close()

	b, err := broker.Connect(cfg.Broker.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("telemetryscheduler: connect broker")
	}
	defer b.Close()

	scheduler := telemetry.NewScheduler(db.NewTelemetryCatalogRepo(database), b)

	log.Info().Str("cron", *cronSpec).Msg("telemetryscheduler: ready, press Ctrl+C to stop")
	if err := scheduler.Start(ctx, *cronSpec); err != nil {
		log.Error().Err(err).Msg("telemetryscheduler: scheduler stopped")
	}
	common.PrintShutdownBanner("TELEMETRY SCHEDULER", log)
}
