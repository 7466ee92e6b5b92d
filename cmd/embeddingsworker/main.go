// Command embeddingsworker runs component C: consume embedding-tasks,
// download and chunk each filing PDF, embed every chunk, and persist the
// resulting vectors.
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
	"github.com/mageshboopath1/Live-ESG-sub001/internal/embeddings"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/llm"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/monitoring"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/objectstore"
)

const prefetch = 1

func main() {
	configPath := flag.String("config", "", "path to a TOML config file overlaying defaults")
	monitorAddr := flag.String("monitor-addr", ":8082", "address for the /health and /metrics endpoints")
	flag.Parse()

	cfg, err := common.LoadFromFile(*configPath)
	if err != nil {
		os.Stderr.WriteString("embeddingsworker: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := common.SetupLogger(cfg.Logging)
	common.PrintBanner("EMBEDDINGS WORKER", "chunks filings and writes retrieval-ready vectors", cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("embeddingsworker: connect db")
	}
	defer database.Close()

	store, err := objectstore.New(ctx, objectstore.Config{
		Endpoint: cfg.ObjectStore.Endpoint, Region: cfg.ObjectStore.Region,
		AccessKey: cfg.ObjectStore.AccessKey, SecretKey: cfg.ObjectStore.SecretKey,
		Bucket: cfg.ObjectStore.Bucket,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("embeddingsworker: connect object store")
	}

	b, err := broker.Connect(cfg.Broker.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("embeddingsworker: connect broker")
	}
	defer b.Close()

	embedder, err := llm.NewEmbeddingClient(ctx, cfg.Embed.APIKey, cfg.Embed.ModelName, cfg.Embed.Dimensions, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("embeddingsworker: init embedding client")
	}

	worker := embeddings.NewWorker(store, embedder, b,
		db.NewEmbeddingsRepo(database), db.NewIngestionRepo(database), db.NewCatalogRepo(database),
		cfg.Extraction.ChunkSize, cfg.Extraction.ChunkOverlap, cfg.Embed.BatchSize)

	registry := monitoring.NewRegistry(24 * time.Hour)
	monitorServer := monitoring.NewServer(*monitorAddr, registry, log)
	monitorServer.Start()
	defer monitorServer.Shutdown(context.Background())

	log.Info().Msg("embeddingsworker: ready, press Ctrl+C to stop")
	err = b.Consume(ctx, "embedding-tasks", prefetch, func(ctx context.Context, body []byte) error {
		objectKey := string(body)
		started := time.Now()
		procErr := worker.ProcessObjectKey(ctx, objectKey)
		registry.Record(monitoring.DocumentMetrics{ObjectKey: objectKey, StartedAt: started, FinishedAt: time.Now(), Success: procErr == nil})
		return procErr
	})
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("embeddingsworker: consume loop stopped")
	}
	common.PrintShutdownBanner("EMBEDDINGS WORKER", log)
}
