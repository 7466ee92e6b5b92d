// Command filingsworker runs component B on a fixed poll interval: resolve
// annual-report/BRSR URLs per tracked company, download and persist each
// PDF, and fan out to the embeddings worker.
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
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/filings"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/monitoring"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/objectstore"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file overlaying defaults")
	monitorAddr := flag.String("monitor-addr", ":8081", "address for the /health and /metrics endpoints")
	flag.Parse()

	cfg, err := common.LoadFromFile(*configPath)
	if err != nil {
		os.Stderr.WriteString("filingsworker: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := common.SetupLogger(cfg.Logging)
	common.PrintBanner("FILINGS WORKER", "resolves and downloads per-company annual/BRSR filings", cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("filingsworker: connect db")
	}
	defer database.Close()

	store, err := objectstore.New(ctx, objectstore.Config{
		Endpoint: cfg.ObjectStore.Endpoint, Region: cfg.ObjectStore.Region,
		AccessKey: cfg.ObjectStore.AccessKey, SecretKey: cfg.ObjectStore.SecretKey,
		Bucket: cfg.ObjectStore.Bucket,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("filingsworker: connect object store")
	}

	b, err := broker.Connect(cfg.Broker.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("filingsworker: connect broker")
	}
	defer b.Close()

	driver := browser.NewReportDriver(cfg.Filings.IndexURLTemplate, cfg.Filings.LinkSelector, cfg.Filings.Wait)
	worker := filings.NewWorker(driver, store, b, db.NewCatalogRepo(database), db.NewIngestionRepo(database))

	registry := monitoring.NewRegistry(24 * time.Hour)
	monitorServer := monitoring.NewServer(*monitorAddr, registry, log)
	monitorServer.Start()
	defer monitorServer.Shutdown(context.Background())

	runOnce := func() {
		started := time.Now()
		err := worker.RunOnce(ctx)
		registry.Record(monitoring.DocumentMetrics{StartedAt: started, FinishedAt: time.Now(), Success: err == nil})
		if err != nil {
			log.Error().Err(err).Msg("filingsworker: run failed")
		}
	}

	runOnce()
	ticker := time.NewTicker(cfg.Filings.PollInterval)
	defer ticker.Stop()

	log.Info().Dur("interval", cfg.Filings.PollInterval).Msg("filingsworker: ready, press Ctrl+C to stop")
	for {
		select {
		case <-ctx.Done():
			common.PrintShutdownBanner("FILINGS WORKER", log)
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
