// Package interfaces declares the narrow boundaries between the pipeline
// core and its external collaborators (object store, broker, document store,
// headless browser, embedding/generative model clients), so the core stays
// testable behind stubs per the teacher's "behind a narrow interface" idiom
// (internal/services/crawler in ternarybob-quaero).
package interfaces

import (
	"context"
	"io"
)

// ObjectStore is the narrow S3-compatible surface components B and C need.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// BrokerPublisher is the publish-side of the shared message broker.
type BrokerPublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// BrokerConsumer is the consume-side of the shared message broker, modeling
// single-threaded cooperative consumption with prefetch=1: Handle is called
// once per message, and its return determines ack/nack-without-requeue.
type BrokerConsumer interface {
	Consume(ctx context.Context, queue string, prefetch int, handle func(ctx context.Context, body []byte) error) error
}

// Broker composes both sides; most components only need one of them.
type Broker interface {
	BrokerPublisher
	BrokerConsumer
	Close() error
}

// BrowserDriver is the black-box headless-browser capability: given a
// symbol, resolve annual-report URLs. Kept narrow per spec.md §9's
// "Headless-browser coupling" design note.
type BrowserDriver interface {
	FetchReportURLs(ctx context.Context, symbol string) ([]string, error)
}

// DashboardScraper is the headless-browser capability component F's scraper
// uses: given a dashboard URL, return the structured telemetry reading.
type DashboardScraper interface {
	ScrapeDashboard(ctx context.Context, url string) (map[string]map[string]MeasurementReading, error)
}

// MeasurementReading mirrors models.Measurement without importing the models
// package, keeping this boundary free of storage concerns.
type MeasurementReading struct {
	Status string
	Value  *string
	Time   *string
}

// EmbeddingClient is the remote embedding capability. A nil entry in the
// returned slice at index i means text i's vector did not have the
// configured dimensionality and was dropped.
type EmbeddingClient interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// ExtractionRequest bundles what the generative model needs to answer one
// indicator.
type ExtractionRequest struct {
	IndicatorCode string
	ParameterName string
	Unit          string
	Pillar        string
	Description   string
	Context       string // formatted, page/chunk-annotated retrieved text
	Temperature   float32
}

// ExtractionResult is the generative model's structured output, matching the
// JSON schema in spec.md §6.
type ExtractionResult struct {
	IndicatorCode  string
	ExtractedValue string
	NumericValue   *float64
	Unit           string
	Confidence     float64
	SourcePages    []int
	SourceChunks   []int
	Reasoning      string
}

// GenerativeClient is the remote structured-output LLM capability.
type GenerativeClient interface {
	Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResult, error)
}

// DocumentStore is the narrow append-only surface component G needs and H
// reads from.
type DocumentStore interface {
	InsertSnapshot(ctx context.Context, collection string, doc any) error
	LatestSnapshots(ctx context.Context, collection string, limit int) ([]map[string]any, error)
}

// Cache is the optional external key-value cache fronting H's read
// endpoints. Writes are best-effort; a Cache implementation must never make
// a read path fail because the cache is unavailable.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttlSeconds int) error
	InvalidatePattern(ctx context.Context, pattern string) error
}
