// Package monitoring implements component I: a per-document metrics ring
// buffer, aggregate counters, and a tiny embedded HTTP server exposing
// /health and /metrics, grounded on the extraction service's
// HealthMetricsServer (a background-thread stdlib HTTP server keyed by two
// callbacks) but wired to live pipeline counters instead of callbacks.
package monitoring

import (
	"sync"
	"time"
)

const recentDocumentsCapacity = 100

// DocumentMetrics is one record of a single document's processing run.
type DocumentMetrics struct {
	ObjectKey          string    `json:"object_key"`
	Company            string    `json:"company"`
	ReportYear         int       `json:"report_year"`
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
	ProcessingMillis    int64     `json:"processing_millis"`
	IndicatorsExtracted int       `json:"indicators_extracted"`
	Valid               int       `json:"valid"`
	Invalid             int       `json:"invalid"`
	Warnings            int       `json:"warnings"`
	MeanConfidence      float64   `json:"mean_confidence"`
	APICalls            int       `json:"api_calls"`
	APIErrors           int       `json:"api_errors"`
	Success             bool      `json:"success"`
}

// Registry accumulates per-document metrics and serves the aggregate view.
// Safe for concurrent use across a worker's consumer goroutines.
type Registry struct {
	mu             sync.Mutex
	recent         []DocumentMetrics
	totalProcessed int
	totalSucceeded int
	lastSuccess    time.Time
	staleThreshold time.Duration
}

func NewRegistry(staleThreshold time.Duration) *Registry {
	return &Registry{staleThreshold: staleThreshold}
}

// Record appends one document's outcome, trimming the ring to its capacity.
func (r *Registry) Record(m DocumentMetrics) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recent = append(r.recent, m)
	if len(r.recent) > recentDocumentsCapacity {
		r.recent = r.recent[len(r.recent)-recentDocumentsCapacity:]
	}
	r.totalProcessed++
	if m.Success {
		r.totalSucceeded++
		r.lastSuccess = m.FinishedAt
	}
}

// Health reports healthy when a successful extraction occurred within
// staleThreshold (spec §4.I), and also when nothing has been recorded yet.
func (r *Registry) Health() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := "healthy"
	if r.lastSuccess.IsZero() || time.Since(r.lastSuccess) > r.staleThreshold {
		if r.totalProcessed > 0 {
			status = "unhealthy"
		}
	}
	return map[string]any{
		"status":             status,
		"last_success_utc":   formatOrEmpty(r.lastSuccess),
		"total_processed":    r.totalProcessed,
		"stale_threshold_sec": r.staleThreshold.Seconds(),
	}
}

// Metrics reports the aggregate view plus the bounded recent-documents ring.
func (r *Registry) Metrics() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	successRate := 0.0
	meanMillis := 0.0
	if r.totalProcessed > 0 {
		successRate = float64(r.totalSucceeded) / float64(r.totalProcessed)
		var sum int64
		for _, m := range r.recent {
			sum += m.ProcessingMillis
		}
		if len(r.recent) > 0 {
			meanMillis = float64(sum) / float64(len(r.recent))
		}
	}
	recentCopy := make([]DocumentMetrics, len(r.recent))
	copy(recentCopy, r.recent)

	return map[string]any{
		"total_processed":       r.totalProcessed,
		"total_succeeded":       r.totalSucceeded,
		"success_rate":          successRate,
		"mean_processing_millis": meanMillis,
		"recent_documents":      recentCopy,
	}
}

func formatOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
