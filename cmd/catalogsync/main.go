// Command catalogsync applies pending schema migrations, then runs
// component A on a fixed interval: reconciling the tracked company catalog
// against the upstream feed and refreshing the supplemented shareholder,
// announcement, and dashboard-link tables.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/catalog"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file overlaying defaults")
	flag.Parse()

	cfg, err := common.LoadFromFile(*configPath)
	if err != nil {
		os.Stderr.WriteString("catalogsync: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := common.SetupLogger(cfg.Logging)
	common.PrintBanner("CATALOG SYNC", "reconciles tracked companies from the upstream feed", cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("catalogsync: connect db")
	}
	defer database.Close()
	if err := database.Migrate(cfg.DB.DSN()); err != nil {
		log.Fatal().Err(err).Msg("catalogsync: migrate")
	}

	catalogRepo := db.NewCatalogRepo(database)
	shareholderRepo := db.NewShareholderRepo(database)
	announcementRepo := db.NewAnnouncementRepo(database)
	telemetryCatalogRepo := db.NewTelemetryCatalogRepo(database)
	indicatorsRepo := db.NewIndicatorsRepo(database)

	if err := indicatorsRepo.Seed(ctx, brsrSeed()); err != nil {
		log.Error().Err(err).Msg("catalogsync: seed indicator catalog")
	}

	syncer := catalog.NewSyncer(cfg.Catalog.FeedURL, catalogRepo)
	disclosures := catalog.NewDisclosureRefresher(cfg.Catalog.ShareholderFeedURL, cfg.Catalog.AnnouncementFeedURL, shareholderRepo, announcementRepo, catalogRepo)
	dashboardLinks := catalog.NewDashboardLinksRefresher(cfg.Catalog.DashboardFeedURL, telemetryCatalogRepo)

	runOnce := func() {
		if err := syncer.Sync(ctx); err != nil {
			log.Error().Err(err).Msg("catalogsync: sync failed")
		}
		if err := disclosures.RefreshShareholderPatterns(ctx); err != nil {
			log.Error().Err(err).Msg("catalogsync: shareholder refresh failed")
		}
		if err := disclosures.RefreshAnnouncements(ctx); err != nil {
			log.Error().Err(err).Msg("catalogsync: announcement refresh failed")
		}
		if err := dashboardLinks.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("catalogsync: dashboard link refresh failed")
		}
	}

	runOnce()
	ticker := time.NewTicker(cfg.Catalog.SyncInterval)
	defer ticker.Stop()

	log.Info().Dur("interval", cfg.Catalog.SyncInterval).Msg("catalogsync: ready, press Ctrl+C to stop")
	for {
		select {
		case <-ctx.Done():
			common.PrintShutdownBanner("CATALOG SYNC", log)
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
