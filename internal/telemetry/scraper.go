package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// Scraper consumes dashboard_links_queue and publishes one structured
// snapshot per URL onto pollution_data_queue. It always acks the inbound
// message, even on scrape failure, because the next scheduler tick
// supplies a fresh attempt (spec §4.F).
type Scraper struct {
	driver interfaces.DashboardScraper
	broker interfaces.BrokerPublisher
	log    arbor.ILogger
}

func NewScraper(driver interfaces.DashboardScraper, broker interfaces.BrokerPublisher) *Scraper {
	return &Scraper{driver: driver, broker: broker, log: common.GetLogger()}
}

// HandleMessage is the broker delivery callback. It always returns nil so
// the caller acks regardless of scrape outcome.
func (s *Scraper) HandleMessage(ctx context.Context, body []byte) error {
	var link models.DashboardLink
	if err := json.Unmarshal(body, &link); err != nil {
		s.log.Warn().Err(err).Msg("telemetry: scraper received unparseable link, acking anyway")
		return nil
	}

	readings, err := s.driver.ScrapeDashboard(ctx, link.DetailURL)
	if err != nil {
		s.log.Warn().Err(err).Str("url", link.DetailURL).Msg("telemetry: scrape failed, acking anyway")
		return nil
	}

	pollution := make(map[string]map[string]models.Measurement, len(readings))
	for parent, measurements := range readings {
		row := make(map[string]models.Measurement, len(measurements))
		for name, reading := range measurements {
			row[name] = models.Measurement{Status: reading.Status, Value: reading.Value, Time: reading.Time}
		}
		pollution[parent] = row
	}

	snapshot := models.TelemetrySnapshot{
		CompanyName:  link.CompanyName,
		IndustryName: link.IndustryName,
		StateName:    link.StateName,
		URL:          link.DetailURL,
		Pollution:    pollution,
		ScrapedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}

	out, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warn().Err(err).Str("url", link.DetailURL).Msg("telemetry: marshal snapshot failed, acking anyway")
		return nil
	}
	if err := s.broker.Publish(ctx, "pollution_data_queue", out); err != nil {
		s.log.Warn().Err(err).Str("url", link.DetailURL).Msg("telemetry: publish snapshot failed, acking anyway")
	}
	return nil
}
