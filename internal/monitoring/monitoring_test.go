package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryHealthyAfterRecentSuccess(t *testing.T) {
	r := NewRegistry(24 * time.Hour)
	r.Record(DocumentMetrics{ObjectKey: "X/2024_BRSR_abc.pdf", Success: true, FinishedAt: time.Now()})
	assert.Equal(t, "healthy", r.Health()["status"])
}

func TestRegistryUnhealthyWhenStale(t *testing.T) {
	r := NewRegistry(time.Millisecond)
	r.Record(DocumentMetrics{Success: true, FinishedAt: time.Now().Add(-time.Hour)})
	assert.Equal(t, "unhealthy", r.Health()["status"])
}

func TestRegistryRingBufferCapsAt100(t *testing.T) {
	r := NewRegistry(24 * time.Hour)
	for i := 0; i < 150; i++ {
		r.Record(DocumentMetrics{Success: true, FinishedAt: time.Now()})
	}
	metrics := r.Metrics()
	recent := metrics["recent_documents"].([]DocumentMetrics)
	assert.Len(t, recent, 100)
	assert.Equal(t, 150, metrics["total_processed"])
}

func TestRegistrySuccessRateComputation(t *testing.T) {
	r := NewRegistry(24 * time.Hour)
	r.Record(DocumentMetrics{Success: true, FinishedAt: time.Now()})
	r.Record(DocumentMetrics{Success: false, FinishedAt: time.Now()})
	metrics := r.Metrics()
	assert.InDelta(t, 0.5, metrics["success_rate"], 0.0001)
}
