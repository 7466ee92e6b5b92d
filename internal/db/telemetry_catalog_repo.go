package db

import (
	"context"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// TelemetryCatalogRepo owns dashboard_links, the URL catalog component F's
// scheduler fans out from.
type TelemetryCatalogRepo struct{ db *DB }

func NewTelemetryCatalogRepo(d *DB) *TelemetryCatalogRepo { return &TelemetryCatalogRepo{db: d} }

// All returns every tracked dashboard link.
func (r *TelemetryCatalogRepo) All(ctx context.Context) ([]models.DashboardLink, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, company_name, industry_name, state_name, detail_page_url FROM dashboard_links`)
	if err != nil {
		return nil, wrapQuery("dashboard links all", err)
	}
	defer rows.Close()

	var out []models.DashboardLink
	for rows.Next() {
		var l models.DashboardLink
		if err := rows.Scan(&l.ID, &l.CompanyName, &l.IndustryName, &l.StateName, &l.DetailURL); err != nil {
			return nil, wrapQuery("dashboard links scan", err)
		}
		out = append(out, l)
	}
	return out, wrapQuery("dashboard links rows", rows.Err())
}

// Upsert inserts or refreshes one dashboard link discovered by a catalog
// refresh pass.
func (r *TelemetryCatalogRepo) Upsert(ctx context.Context, l models.DashboardLink) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO dashboard_links (company_name, industry_name, state_name, detail_page_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (detail_page_url) DO UPDATE SET
			company_name = EXCLUDED.company_name, industry_name = EXCLUDED.industry_name, state_name = EXCLUDED.state_name`,
		l.CompanyName, l.IndustryName, l.StateName, l.DetailURL,
	)
	return wrapQuery("dashboard links upsert", err)
}

// ShareholderRepo persists the supplemented shareholder-pattern disclosure.
type ShareholderRepo struct{ db *DB }

func NewShareholderRepo(d *DB) *ShareholderRepo { return &ShareholderRepo{db: d} }

func (r *ShareholderRepo) Insert(ctx context.Context, s models.ShareholderPattern) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO shareholder_patterns (company_id, category, percent_held, as_of) VALUES ($1, $2, $3, $4)`,
		s.CompanyID, s.Category, s.PercentHeld, s.AsOf,
	)
	return wrapQuery("shareholder insert", err)
}

func (r *ShareholderRepo) ForCompany(ctx context.Context, companyID int64) ([]models.ShareholderPattern, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, company_id, category, percent_held, as_of FROM shareholder_patterns WHERE company_id = $1 ORDER BY as_of DESC`, companyID)
	if err != nil {
		return nil, wrapQuery("shareholder for company", err)
	}
	defer rows.Close()

	var out []models.ShareholderPattern
	for rows.Next() {
		var s models.ShareholderPattern
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Category, &s.PercentHeld, &s.AsOf); err != nil {
			return nil, wrapQuery("shareholder scan", err)
		}
		out = append(out, s)
	}
	return out, wrapQuery("shareholder rows", rows.Err())
}

// AnnouncementRepo persists the supplemented corporate-announcement feed.
type AnnouncementRepo struct{ db *DB }

func NewAnnouncementRepo(d *DB) *AnnouncementRepo { return &AnnouncementRepo{db: d} }

func (r *AnnouncementRepo) Insert(ctx context.Context, a models.CorporateAnnouncement) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO corporate_announcements (company_id, subject, announced_at) VALUES ($1, $2, $3)`,
		a.CompanyID, a.Subject, a.AnnouncedAt,
	)
	return wrapQuery("announcement insert", err)
}

func (r *AnnouncementRepo) ForCompany(ctx context.Context, companyID int64, limit int) ([]models.CorporateAnnouncement, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, company_id, subject, announced_at FROM corporate_announcements
		WHERE company_id = $1 ORDER BY announced_at DESC LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, wrapQuery("announcement for company", err)
	}
	defer rows.Close()

	var out []models.CorporateAnnouncement
	for rows.Next() {
		var a models.CorporateAnnouncement
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Subject, &a.AnnouncedAt); err != nil {
			return nil, wrapQuery("announcement scan", err)
		}
		out = append(out, a)
	}
	return out, wrapQuery("announcement rows", rows.Err())
}
