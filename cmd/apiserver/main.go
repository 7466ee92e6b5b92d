// Command apiserver runs component H: the authenticated HTTP query and
// orchestration API fronting the catalog, indicator, and score tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/broker"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/cache"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/httpapi"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file overlaying defaults")
	flag.Parse()

	cfg, err := common.LoadFromFile(*configPath)
	if err != nil {
		os.Stderr.WriteString("apiserver: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := common.SetupLogger(cfg.Logging)
	common.PrintBanner("QUERY API", "authenticated catalog, indicator, and score endpoints", cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("apiserver: connect db")
	}
	defer database.Close()

	b, err := broker.Connect(cfg.Broker.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("apiserver: connect broker")
	}
	defer b.Close()

	// apiCache stays a true nil interfaces.Cache when disabled; assigning a
	// typed-nil *cache.Cache here instead would make s.cache's nil check in
	// httpapi miss, since an interface holding a nil pointer is non-nil.
	var apiCache interfaces.Cache
	if cfg.Cache.Enabled {
		apiCache = cache.New(cfg.Cache.Addr(), cfg.Cache.Password, cfg.Cache.DB)
	}

	srv := httpapi.New(cfg, db.NewCatalogRepo(database), db.NewIndicatorsRepo(database), db.NewScoresRepo(database), db.NewAuthRepo(database), b, apiCache)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("apiserver: server failed")
		}
	}()

	log.Info().Str("url", fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)).Msg("apiserver: ready, press Ctrl+C to stop")
	<-ctx.Done()

	log.Info().Msg("apiserver: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apiserver: shutdown failed")
	}
	common.PrintShutdownBanner("QUERY API", log)
}
