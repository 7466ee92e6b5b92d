package filings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

func TestObjectKeyDeterministic(t *testing.T) {
	body := []byte("pdf-bytes")
	k1 := objectKey("RELIANCE", 2024, models.DocumentBRSR, body)
	k2 := objectKey("RELIANCE", 2024, models.DocumentBRSR, body)
	assert.Equal(t, k1, k2)
	assert.Regexp(t, `^RELIANCE/2024_BRSR_[0-9a-f]{12}\.pdf$`, k1)
}

func TestObjectKeyDiffersOnContent(t *testing.T) {
	k1 := objectKey("RELIANCE", 2024, models.DocumentBRSR, []byte("a"))
	k2 := objectKey("RELIANCE", 2024, models.DocumentBRSR, []byte("b"))
	assert.NotEqual(t, k1, k2)
}

func TestClassifyFilingURLDetectsBRSR(t *testing.T) {
	year, kind := classifyFilingURL("https://example.com/reports/2024_BRSR_report.pdf")
	assert.Equal(t, 2024, year)
	assert.Equal(t, models.DocumentBRSR, kind)
}
