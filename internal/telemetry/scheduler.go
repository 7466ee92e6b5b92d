// Package telemetry implements components F and G: a periodic scheduler
// that fans dashboard URLs into a queue, a headless-browser scraper that
// turns each URL into a structured snapshot, and a sink that writes
// snapshots to the document store.
package telemetry

import (
	"context"
	"encoding/json"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// Scheduler fans one message per tracked dashboard link onto
// dashboard_links_queue every tick. It is stateless: a missed or doubled
// tick is tolerated under at-least-once delivery.
type Scheduler struct {
	catalog *db.TelemetryCatalogRepo
	broker  interfaces.BrokerPublisher
	cron    *cron.Cron
	log     arbor.ILogger
}

func NewScheduler(catalog *db.TelemetryCatalogRepo, broker interfaces.BrokerPublisher) *Scheduler {
	return &Scheduler{
		catalog: catalog,
		broker:  broker,
		cron:    cron.New(),
		log:     common.GetLogger(),
	}
}

// Start schedules RunOnce on the given cron spec (default "@every 5m") and
// blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	if spec == "" {
		spec = "@every 5m"
	}
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn().Err(err).Msg("telemetry: scheduler tick failed")
		}
	})
	if err != nil {
		return common.Wrap(common.PermanentSystem, "telemetry: schedule", err)
	}
	s.cron.Start()
	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	return nil
}

// RunOnce publishes one message per dashboard link.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	links, err := s.catalog.All(ctx)
	if err != nil {
		return err
	}
	for _, link := range links {
		body, err := json.Marshal(models.DashboardLink{
			CompanyName:  link.CompanyName,
			IndustryName: link.IndustryName,
			StateName:    link.StateName,
			DetailURL:    link.DetailURL,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("url", link.DetailURL).Msg("telemetry: marshal link failed")
			continue
		}
		if err := s.broker.Publish(ctx, "dashboard_links_queue", body); err != nil {
			s.log.Warn().Err(err).Str("url", link.DetailURL).Msg("telemetry: publish link failed")
		}
	}
	s.log.Info().Int("links", len(links)).Msg("telemetry: scheduler tick complete")
	return nil
}
