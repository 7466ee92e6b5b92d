package db

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// ScoresRepo persists esg_scores, component E's output and component H's
// primary read path.
type ScoresRepo struct{ db *DB }

func NewScoresRepo(d *DB) *ScoresRepo { return &ScoresRepo{db: d} }

// UpsertPillar writes one (company, year, pillar) row. breakdown is only
// populated on the synthetic OVERALL row.
func (r *ScoresRepo) UpsertPillar(ctx context.Context, s models.ESGScore) error {
	var breakdownJSON []byte
	if s.Breakdown != nil {
		var err error
		breakdownJSON, err = json.Marshal(json.RawMessage(s.Breakdown))
		if err != nil {
			return err
		}
	}
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO esg_scores (company_id, report_year, pillar, score, breakdown, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (company_id, report_year, pillar) DO UPDATE SET
			score = EXCLUDED.score, breakdown = EXCLUDED.breakdown, updated_at = now()`,
		s.CompanyID, s.ReportYear, s.Pillar, s.Score, breakdownJSON,
	)
	return wrapQuery("scores upsert", err)
}

// ForCompanyYear returns all pillar rows (E, S, G, OVERALL) for one company
// and year.
func (r *ScoresRepo) ForCompanyYear(ctx context.Context, companyID int64, reportYear int) ([]models.ESGScore, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, company_id, report_year, pillar, score, breakdown, updated_at
		FROM esg_scores WHERE company_id = $1 AND report_year = $2`, companyID, reportYear)
	if err != nil {
		return nil, wrapQuery("scores for company year", err)
	}
	defer rows.Close()

	var out []models.ESGScore
	for rows.Next() {
		var s models.ESGScore
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.ReportYear, &s.Pillar, &s.Score, &s.Breakdown, &s.UpdatedAt); err != nil {
			return nil, wrapQuery("scores scan", err)
		}
		out = append(out, s)
	}
	return out, wrapQuery("scores rows", rows.Err())
}

// Latest returns the most recent report year with a persisted OVERALL score
// for companyID, or (0, false) if none exists.
func (r *ScoresRepo) Latest(ctx context.Context, companyID int64) (int, bool, error) {
	var year int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT report_year FROM esg_scores WHERE company_id = $1 AND pillar = $2 ORDER BY report_year DESC LIMIT 1`,
		companyID, models.OverallPillar,
	).Scan(&year)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	return year, err == nil, wrapQuery("scores latest", err)
}
