package db

import (
	"context"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// IndicatorsRepo reads the seeded-once brsr_indicators catalog component D
// and E both depend on.
type IndicatorsRepo struct{ db *DB }

func NewIndicatorsRepo(d *DB) *IndicatorsRepo { return &IndicatorsRepo{db: d} }

// All returns the full catalog, ordered by attribute then code for stable
// iteration in scoring's breakdown output.
func (r *IndicatorsRepo) All(ctx context.Context) ([]models.BRSRIndicatorDefinition, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, code, attribute, parameter_name, unit, description, pillar, weight, polarity, min_bound, max_bound
		FROM brsr_indicators ORDER BY attribute, code`)
	if err != nil {
		return nil, wrapQuery("indicators all", err)
	}
	defer rows.Close()

	var out []models.BRSRIndicatorDefinition
	for rows.Next() {
		var d models.BRSRIndicatorDefinition
		if err := rows.Scan(&d.ID, &d.Code, &d.Attribute, &d.ParameterName, &d.Unit, &d.Description, &d.Pillar, &d.Weight, &d.Polarity, &d.MinBound, &d.MaxBound); err != nil {
			return nil, wrapQuery("indicators scan", err)
		}
		out = append(out, d)
	}
	return out, wrapQuery("indicators rows", rows.Err())
}

// Seed inserts the catalog if empty, idempotent across repeated startups.
func (r *IndicatorsRepo) Seed(ctx context.Context, defs []models.BRSRIndicatorDefinition) error {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM brsr_indicators`).Scan(&count); err != nil {
		return wrapQuery("indicators count", err)
	}
	if count > 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return wrapQuery("indicators seed begin", err)
	}
	defer tx.Rollback(ctx)
	for _, d := range defs {
		_, err := tx.Exec(ctx, `
			INSERT INTO brsr_indicators (code, attribute, parameter_name, unit, description, pillar, weight, polarity, min_bound, max_bound)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			d.Code, d.Attribute, d.ParameterName, d.Unit, d.Description, d.Pillar, d.Weight, d.Polarity, d.MinBound, d.MaxBound,
		)
		if err != nil {
			return wrapQuery("indicators seed insert", err)
		}
	}
	return wrapQuery("indicators seed commit", tx.Commit(ctx))
}
