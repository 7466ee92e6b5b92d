package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// IngestionRepo persists ingestion_metadata rows, one per downloaded filing.
type IngestionRepo struct{ db *DB }

func NewIngestionRepo(d *DB) *IngestionRepo { return &IngestionRepo{db: d} }

// Insert creates a PENDING row for a newly discovered filing, returning its ID.
func (r *IngestionRepo) Insert(ctx context.Context, m models.IngestionMetadata) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO ingestion_metadata (company_id, object_key, kind, report_year, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (object_key) DO UPDATE SET object_key = EXCLUDED.object_key
		RETURNING id`,
		m.CompanyID, m.ObjectKey, m.Kind, m.ReportYear, models.StatusPending,
	).Scan(&id)
	return id, wrapQuery("ingestion insert", err)
}

// ByObjectKey fetches the row for a given object key, the join point between
// components B and C.
func (r *IngestionRepo) ByObjectKey(ctx context.Context, key string) (*models.IngestionMetadata, error) {
	var m models.IngestionMetadata
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, company_id, object_key, kind, report_year, status, created_at, updated_at
		FROM ingestion_metadata WHERE object_key = $1`, key,
	).Scan(&m.ID, &m.CompanyID, &m.ObjectKey, &m.Kind, &m.ReportYear, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &m, wrapQuery("ingestion by object key", err)
}

// UpdateStatus moves a row forward in its PENDING -> PROCESSING -> {SUCCESS,
// FAILURE} lifecycle.
func (r *IngestionRepo) UpdateStatus(ctx context.Context, id int64, status models.IngestionStatus) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE ingestion_metadata SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return wrapQuery("ingestion update status", err)
}

// PendingOrFailed returns rows eligible for (re)processing by the embeddings
// worker's backlog scan.
func (r *IngestionRepo) PendingOrFailed(ctx context.Context, limit int) ([]models.IngestionMetadata, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, company_id, object_key, kind, report_year, status, created_at, updated_at
		FROM ingestion_metadata WHERE status IN ('PENDING', 'FAILURE') ORDER BY created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, wrapQuery("ingestion backlog", err)
	}
	defer rows.Close()

	var out []models.IngestionMetadata
	for rows.Next() {
		var m models.IngestionMetadata
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ObjectKey, &m.Kind, &m.ReportYear, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, wrapQuery("ingestion scan", err)
		}
		out = append(out, m)
	}
	return out, wrapQuery("ingestion rows", rows.Err())
}
