package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

func TestParseObjectKeyHappyPath(t *testing.T) {
	symbol, year, err := parseObjectKey("RELIANCE/2024_BRSR_abc123def456.pdf")
	require.NoError(t, err)
	assert.Equal(t, "RELIANCE", symbol)
	assert.Equal(t, 2024, year)
}

func TestParseObjectKeyRejectsUnconventionalFormat(t *testing.T) {
	_, _, err := parseObjectKey("not-a-valid-key.pdf")
	assert.Error(t, err)
}

func TestBuildSearchQueryTruncatesKeywords(t *testing.T) {
	def := models.BRSRIndicatorDefinition{
		ParameterName: "Scope 1 GHG Emissions",
		Unit:          "MT CO2e",
		Description:   "one two three four five six seven eight nine ten",
	}
	q := buildSearchQuery(def)
	assert.Contains(t, q, "Scope 1 GHG Emissions")
	assert.Contains(t, q, "MT CO2e")
	assert.Contains(t, q, "one two three four five six seven eight")
	assert.NotContains(t, q, "nine")
}

func TestGroupByAttributeAndSortedAttributes(t *testing.T) {
	defs := []models.BRSRIndicatorDefinition{
		{Attribute: 3, Code: "X"},
		{Attribute: 1, Code: "A"},
		{Attribute: 1, Code: "B"},
	}
	grouped := groupByAttribute(defs)
	assert.Len(t, grouped[1], 2)
	assert.Len(t, grouped[3], 1)
	assert.Equal(t, []int{1, 3}, sortedAttributes(grouped))
}

func TestBuildContextAnnotatesPageAndChunk(t *testing.T) {
	ctx := buildContext([]models.DocumentEmbedding{{PageNumber: 4, ChunkIndex: 2, ChunkText: "Scope 1 emissions were 120 MT"}})
	assert.Contains(t, ctx, "[page 4, chunk 2]")
	assert.Contains(t, ctx, "Scope 1 emissions were 120 MT")
}
