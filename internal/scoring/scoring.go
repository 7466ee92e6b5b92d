// Package scoring implements component E: pure normalization and
// per-pillar aggregation over extracted indicator values. It performs no
// I/O; its caller (the extraction worker's trigger step) owns reading
// inputs and persisting the result.
package scoring

import (
	"encoding/json"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// Normalize maps a raw value onto [0, 100] given bounds and polarity,
// clamping out-of-range values rather than rejecting them.
func Normalize(v, min, max float64, polarity models.Polarity) float64 {
	if max <= min {
		return 0
	}
	var frac float64
	switch polarity {
	case models.PolarityLowerIsBetter:
		frac = (max - v) / (max - min)
	default: // higher-is-better
		frac = (v - min) / (max - min)
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac * 100
}

// Result is what Score returns: a breakdown per pillar plus the overall
// mean, ready to persist as four esg_scores rows.
type Result struct {
	Pillars []models.PillarBreakdown
	Overall *float64
}

// Score computes the full pillar + overall breakdown for one (company,
// year) given its extracted indicators and the indicator catalog, applying
// the confidence gate and polarity-aware normalization from spec §4.E.
func Score(extracted []models.ExtractedIndicator, catalog []models.BRSRIndicatorDefinition, minConfidence float64) Result {
	defByID := make(map[int64]models.BRSRIndicatorDefinition, len(catalog))
	for _, d := range catalog {
		defByID[d.ID] = d
	}

	byPillar := map[models.Pillar][]models.IndicatorContribution{}
	for _, e := range extracted {
		def, ok := defByID[e.IndicatorID]
		if !ok {
			continue
		}
		if e.NumericValue == nil || e.Confidence < minConfidence {
			continue
		}
		min, max := bounds(def)
		normalized := Normalize(*e.NumericValue, min, max, def.Polarity)
		contribution := normalized * def.Weight
		byPillar[def.Pillar] = append(byPillar[def.Pillar], models.IndicatorContribution{
			Code:         def.Code,
			Name:         def.ParameterName,
			RawValue:     *e.NumericValue,
			Unit:         def.Unit,
			Normalized:   normalized,
			Weight:       def.Weight,
			Contribution: contribution,
		})
	}

	var result Result
	var nonNull []float64
	for _, pillar := range []models.Pillar{models.PillarEnvironmental, models.PillarSocial, models.PillarGovernance} {
		contributions := byPillar[pillar]
		breakdown := models.PillarBreakdown{Pillar: pillar, Indicators: contributions}
		var sumWeight, sumContribution float64
		for _, c := range contributions {
			sumWeight += c.Weight
			sumContribution += c.Contribution
		}
		breakdown.TotalWeight = sumWeight
		if sumWeight > 0 {
			score := sumContribution / sumWeight
			breakdown.Score = &score
			nonNull = append(nonNull, score)
		}
		result.Pillars = append(result.Pillars, breakdown)
	}

	if len(nonNull) > 0 {
		var sum float64
		for _, s := range nonNull {
			sum += s
		}
		overall := sum / float64(len(nonNull))
		result.Overall = &overall
	}
	return result
}

// bounds resolves the effective [min, max] for one indicator, defaulting to
// [0, 100] when the catalog carries no explicit bounds (spec's Open
// Question 1: per-indicator bounds are an operator-supplied configuration
// concern, not something this engine invents).
func bounds(def models.BRSRIndicatorDefinition) (float64, float64) {
	min, max := 0.0, 100.0
	if def.MinBound != nil {
		min = *def.MinBound
	}
	if def.MaxBound != nil {
		max = *def.MaxBound
	}
	return min, max
}

// MarshalBreakdown serializes pillars for the synthetic OVERALL row's
// breakdown column.
func MarshalBreakdown(pillars []models.PillarBreakdown) ([]byte, error) {
	return json.Marshal(pillars)
}
