package telemetry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

type fakeDashboardScraper struct {
	readings map[string]map[string]interfaces.MeasurementReading
	err      error
}

func (f *fakeDashboardScraper) ScrapeDashboard(ctx context.Context, url string) (map[string]map[string]interfaces.MeasurementReading, error) {
	return f.readings, f.err
}

type fakePublisher struct {
	published map[string][][]byte
}

func newFakePublisher() *fakePublisher { return &fakePublisher{published: map[string][][]byte{}} }

func (f *fakePublisher) Publish(ctx context.Context, queue string, body []byte) error {
	f.published[queue] = append(f.published[queue], body)
	return nil
}

func TestScraperBuildsStructuredSnapshot(t *testing.T) {
	value := "25"
	ts := "10:00 Time"
	driver := &fakeDashboardScraper{readings: map[string]map[string]interfaces.MeasurementReading{
		"Stack1": {"PM": {Status: "Operational", Value: &value, Time: &ts}},
	}}
	pub := newFakePublisher()
	s := NewScraper(driver, pub)

	link := models.DashboardLink{CompanyName: "Acme", DetailURL: "https://dashboard.example/acme"}
	body, err := json.Marshal(link)
	require.NoError(t, err)

	err = s.HandleMessage(context.Background(), body)
	require.NoError(t, err)
	require.Len(t, pub.published["pollution_data_queue"], 1)

	var snapshot models.TelemetrySnapshot
	require.NoError(t, json.Unmarshal(pub.published["pollution_data_queue"][0], &snapshot))
	assert.Equal(t, "Operational", snapshot.Pollution["Stack1"]["PM"].Status)
	assert.Equal(t, "25", *snapshot.Pollution["Stack1"]["PM"].Value)
}

func TestScraperAcksOnScrapeFailure(t *testing.T) {
	driver := &fakeDashboardScraper{err: assertError{}}
	pub := newFakePublisher()
	s := NewScraper(driver, pub)

	body, _ := json.Marshal(models.DashboardLink{DetailURL: "https://dashboard.example/broken"})
	err := s.HandleMessage(context.Background(), body)
	assert.NoError(t, err)
	assert.Empty(t, pub.published["pollution_data_queue"])
}

func TestScraperAcksOnUnparseableBody(t *testing.T) {
	driver := &fakeDashboardScraper{}
	pub := newFakePublisher()
	s := NewScraper(driver, pub)

	err := s.HandleMessage(context.Background(), []byte("not json"))
	assert.NoError(t, err)
}

type assertError struct{}

func (assertError) Error() string { return "scrape failed" }
