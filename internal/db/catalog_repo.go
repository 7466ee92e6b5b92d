package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// CatalogRepo persists the company_catalog table component A reconciles.
type CatalogRepo struct{ db *DB }

func NewCatalogRepo(d *DB) *CatalogRepo { return &CatalogRepo{db: d} }

// All returns every tracked company, keyed for the reconciliation diff.
func (r *CatalogRepo) All(ctx context.Context) ([]models.Company, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, symbol, isin, name, industry, series, created_at, updated_at FROM company_catalog`)
	if err != nil {
		return nil, wrapQuery("catalog all", err)
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Symbol, &c.ISIN, &c.Name, &c.Industry, &c.Series, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, wrapQuery("catalog scan", err)
		}
		out = append(out, c)
	}
	return out, wrapQuery("catalog rows", rows.Err())
}

// Upsert inserts c or updates its mutable fields on (symbol, isin) conflict,
// returning the resolved row's ID.
func (r *CatalogRepo) Upsert(ctx context.Context, c models.Company) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO company_catalog (symbol, isin, name, industry, series, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (symbol, isin) DO UPDATE SET
			name = EXCLUDED.name, industry = EXCLUDED.industry, series = EXCLUDED.series, updated_at = now()
		RETURNING id`,
		c.Symbol, c.ISIN, c.Name, c.Industry, c.Series,
	).Scan(&id)
	return id, wrapQuery("catalog upsert", err)
}

// Delete removes a company no longer present in the source feed.
func (r *CatalogRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM company_catalog WHERE id = $1`, id)
	return wrapQuery("catalog delete", err)
}

// ByID fetches one company for lookups keyed off a symbol resolved elsewhere.
func (r *CatalogRepo) ByID(ctx context.Context, id int64) (*models.Company, error) {
	var c models.Company
	err := r.db.Pool.QueryRow(ctx, `SELECT id, symbol, isin, name, industry, series, created_at, updated_at FROM company_catalog WHERE id = $1`, id).
		Scan(&c.ID, &c.Symbol, &c.ISIN, &c.Name, &c.Industry, &c.Series, &c.CreatedAt, &c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &c, wrapQuery("catalog by id", err)
}

// BySymbol resolves a symbol to its company row for the filings worker.
func (r *CatalogRepo) BySymbol(ctx context.Context, symbol string) (*models.Company, error) {
	var c models.Company
	err := r.db.Pool.QueryRow(ctx, `SELECT id, symbol, isin, name, industry, series, created_at, updated_at FROM company_catalog WHERE symbol = $1`, symbol).
		Scan(&c.ID, &c.Symbol, &c.ISIN, &c.Name, &c.Industry, &c.Series, &c.CreatedAt, &c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &c, wrapQuery("catalog by symbol", err)
}
