package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

func TestNormalizeBoundaryClamping(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(-10, 0, 100, models.PolarityHigherIsBetter))
	assert.Equal(t, 100.0, Normalize(150, 0, 100, models.PolarityHigherIsBetter))
	assert.Equal(t, 100.0, Normalize(-10, 0, 100, models.PolarityLowerIsBetter))
	assert.Equal(t, 0.0, Normalize(150, 0, 100, models.PolarityLowerIsBetter))
}

func TestNormalizePolaritySymmetric(t *testing.T) {
	v := 37.0
	higher := Normalize(v, 0, 100, models.PolarityHigherIsBetter)
	lower := Normalize(v, 0, 100, models.PolarityLowerIsBetter)
	assert.InDelta(t, 100.0, higher+lower, 1e-9)
}

func ptr(f float64) *float64 { return &f }

func TestScorePillarDeterminism(t *testing.T) {
	catalog := []models.BRSRIndicatorDefinition{
		{ID: 1, Code: "E1", Attribute: 1, Pillar: models.PillarEnvironmental, Weight: 1, Polarity: models.PolarityHigherIsBetter, MinBound: ptr(0), MaxBound: ptr(100)},
		{ID: 2, Code: "E2", Attribute: 2, Pillar: models.PillarEnvironmental, Weight: 1, Polarity: models.PolarityLowerIsBetter, MinBound: ptr(0), MaxBound: ptr(100)},
	}
	extracted := []models.ExtractedIndicator{
		{IndicatorID: 1, NumericValue: ptr(80), Confidence: 1},
		{IndicatorID: 2, NumericValue: ptr(20), Confidence: 1},
	}

	result := Score(extracted, catalog, 0.3)
	require := assert.New(t)
	var eScore *float64
	for _, p := range result.Pillars {
		if p.Pillar == models.PillarEnvironmental {
			eScore = p.Score
		}
	}
	require.NotNil(eScore)
	require.InDelta(80.0, *eScore, 1e-9)
}

func TestScoreExcludesBelowConfidenceGate(t *testing.T) {
	catalog := []models.BRSRIndicatorDefinition{
		{ID: 1, Code: "E1", Pillar: models.PillarEnvironmental, Weight: 1, Polarity: models.PolarityHigherIsBetter, MinBound: ptr(0), MaxBound: ptr(100)},
	}
	extracted := []models.ExtractedIndicator{
		{IndicatorID: 1, NumericValue: ptr(80), Confidence: 0.1},
	}

	result := Score(extracted, catalog, 0.3)
	for _, p := range result.Pillars {
		if p.Pillar == models.PillarEnvironmental {
			assert.Nil(t, p.Score)
		}
	}
	assert.Nil(t, result.Overall)
}

func TestScoreAllPillarsNullYieldsNullOverall(t *testing.T) {
	result := Score(nil, nil, 0.3)
	assert.Nil(t, result.Overall)
	assert.Len(t, result.Pillars, 3)
}
