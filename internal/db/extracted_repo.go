package db

import (
	"context"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// ExtractedRepo persists extracted_indicators, component D's output and
// component E's input.
type ExtractedRepo struct{ db *DB }

func NewExtractedRepo(d *DB) *ExtractedRepo { return &ExtractedRepo{db: d} }

// Upsert writes one indicator's extraction result, replacing any prior value
// for the same (company, year, indicator) identity.
func (r *ExtractedRepo) Upsert(ctx context.Context, e models.ExtractedIndicator) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO extracted_indicators
			(company_id, report_year, indicator_id, indicator_code, extracted_value, numeric_value, unit, confidence, source_pages, source_chunks, reasoning, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (company_id, report_year, indicator_id) DO UPDATE SET
			extracted_value = EXCLUDED.extracted_value,
			numeric_value = EXCLUDED.numeric_value,
			unit = EXCLUDED.unit,
			confidence = EXCLUDED.confidence,
			source_pages = EXCLUDED.source_pages,
			source_chunks = EXCLUDED.source_chunks,
			reasoning = EXCLUDED.reasoning,
			updated_at = now()`,
		e.CompanyID, e.ReportYear, e.IndicatorID, e.IndicatorCode, e.ExtractedValue, e.NumericValue, e.Unit, e.Confidence, e.SourcePages, e.SourceChunks, e.Reasoning,
	)
	return wrapQuery("extracted upsert", err)
}

// UpsertBatch writes every indicator result for one document inside a
// single transaction, matching spec's all-or-nothing persistence
// requirement for component D.
func (r *ExtractedRepo) UpsertBatch(ctx context.Context, indicators []models.ExtractedIndicator) error {
	if len(indicators) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return wrapQuery("extracted batch begin", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range indicators {
		_, err := tx.Exec(ctx, `
			INSERT INTO extracted_indicators
				(company_id, report_year, indicator_id, indicator_code, extracted_value, numeric_value, unit, confidence, source_pages, source_chunks, reasoning, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
			ON CONFLICT (company_id, report_year, indicator_id) DO UPDATE SET
				extracted_value = EXCLUDED.extracted_value,
				numeric_value = EXCLUDED.numeric_value,
				unit = EXCLUDED.unit,
				confidence = EXCLUDED.confidence,
				source_pages = EXCLUDED.source_pages,
				source_chunks = EXCLUDED.source_chunks,
				reasoning = EXCLUDED.reasoning,
				updated_at = now()`,
			e.CompanyID, e.ReportYear, e.IndicatorID, e.IndicatorCode, e.ExtractedValue, e.NumericValue, e.Unit, e.Confidence, e.SourcePages, e.SourceChunks, e.Reasoning,
		)
		if err != nil {
			return wrapQuery("extracted batch insert", err)
		}
	}
	return wrapQuery("extracted batch commit", tx.Commit(ctx))
}

// ForCompanyYear returns every extracted indicator for one (company, year),
// the full input to a scoring run.
func (r *ExtractedRepo) ForCompanyYear(ctx context.Context, companyID int64, reportYear int) ([]models.ExtractedIndicator, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, company_id, report_year, indicator_id, indicator_code, extracted_value, numeric_value, unit, confidence, source_pages, source_chunks, reasoning, updated_at
		FROM extracted_indicators WHERE company_id = $1 AND report_year = $2`, companyID, reportYear)
	if err != nil {
		return nil, wrapQuery("extracted for company year", err)
	}
	defer rows.Close()

	var out []models.ExtractedIndicator
	for rows.Next() {
		var e models.ExtractedIndicator
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.ReportYear, &e.IndicatorID, &e.IndicatorCode, &e.ExtractedValue, &e.NumericValue, &e.Unit, &e.Confidence, &e.SourcePages, &e.SourceChunks, &e.Reasoning, &e.UpdatedAt); err != nil {
			return nil, wrapQuery("extracted scan", err)
		}
		out = append(out, e)
	}
	return out, wrapQuery("extracted rows", rows.Err())
}

// CountForCompanyYear returns how many extracted rows exist for (company,
// year). Extraction workers treat any non-zero count as "already processed"
// and skip the document.
func (r *ExtractedRepo) CountForCompanyYear(ctx context.Context, companyID int64, reportYear int) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM extracted_indicators WHERE company_id = $1 AND report_year = $2`, companyID, reportYear).Scan(&count)
	return count, wrapQuery("extracted count", err)
}
