// Command extractionworker runs component D: consume extraction-tasks, run
// filtered nearest-neighbor retrieval and structured-output extraction per
// BRSR indicator, persist the results, and trigger scoring.
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
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/extraction"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/llm"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/monitoring"
)

const prefetch = 1

func main() {
	configPath := flag.String("config", "", "path to a TOML config file overlaying defaults")
	monitorAddr := flag.String("monitor-addr", ":8083", "address for the /health and /metrics endpoints")
	flag.Parse()

	cfg, err := common.LoadFromFile(*configPath)
	if err != nil {
		os.Stderr.WriteString("extractionworker: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := common.SetupLogger(cfg.Logging)
	common.PrintBanner("EXTRACTION WORKER", "retrieves chunks per indicator and extracts structured values", cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("extractionworker: connect db")
	}
	defer database.Close()

	b, err := broker.Connect(cfg.Broker.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("extractionworker: connect broker")
	}
	defer b.Close()

	embedder, err := llm.NewEmbeddingClient(ctx, cfg.Embed.APIKey, cfg.Embed.ModelName, cfg.Embed.Dimensions, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("extractionworker: init embedding client")
	}
	generative := llm.NewGenerativeClient(cfg.Gen.APIKey, cfg.Gen.ModelName, 60*time.Second)

	worker := extraction.NewWorker(embedder, generative,
		db.NewCatalogRepo(database), db.NewIndicatorsRepo(database), db.NewEmbeddingsRepo(database),
		db.NewExtractedRepo(database), db.NewScoresRepo(database),
		cfg.Scoring.MinConfidence, cfg.Gen.Temperature)

	registry := monitoring.NewRegistry(24 * time.Hour)
	monitorServer := monitoring.NewServer(*monitorAddr, registry, log)
	monitorServer.Start()
	defer monitorServer.Shutdown(context.Background())

	log.Info().Msg("extractionworker: ready, press Ctrl+C to stop")
	err = b.Consume(ctx, "extraction-tasks", prefetch, func(ctx context.Context, body []byte) error {
		objectKey := string(body)
		started := time.Now()
		procErr := worker.ProcessObjectKey(ctx, objectKey)
		registry.Record(monitoring.DocumentMetrics{ObjectKey: objectKey, StartedAt: started, FinishedAt: time.Now(), Success: procErr == nil})
		return procErr
	})
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("extractionworker: consume loop stopped")
	}
	common.PrintShutdownBanner("EXTRACTION WORKER", log)
}
