package catalog

import (
	"context"
	"encoding/json"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// dashboardLinkRecord mirrors one entry of the upstream JSON feed
// (original_source/recordsLinksDB.py's company_name/industry_name/
// state_name/detail_page_url shape).
type dashboardLinkRecord struct {
	CompanyName   string `json:"company_name"`
	IndustryName  string `json:"industry_name"`
	StateName     string `json:"state_name"`
	DetailPageURL string `json:"detail_page_url"`
}

// DashboardLinksRefresher refreshes the dashboard_links table that
// component F's scheduler fans out from, reusing component A's fetch-retry
// shape rather than a separate untracked process.
type DashboardLinksRefresher struct {
	syncer  *Syncer
	feedURL string
	repo    *db.TelemetryCatalogRepo
}

func NewDashboardLinksRefresher(feedURL string, repo *db.TelemetryCatalogRepo) *DashboardLinksRefresher {
	return &DashboardLinksRefresher{syncer: NewSyncer("", nil), feedURL: feedURL, repo: repo}
}

// Refresh fetches the JSON feed and upserts each link.
func (r *DashboardLinksRefresher) Refresh(ctx context.Context) error {
	if r.feedURL == "" {
		return nil
	}
	var records []dashboardLinkRecord
	err := common.Retry(ctx, common.DefaultRetryPolicy(), func() error {
		body, ferr := r.syncer.fetchRaw(ctx, r.feedURL)
		if ferr != nil {
			return ferr
		}
		defer body.Close()
		return json.NewDecoder(body).Decode(&records)
	})
	if err != nil {
		return common.Wrap(common.PermanentInput, "dashboard links: decode feed", err)
	}

	for _, rec := range records {
		if rec.DetailPageURL == "" {
			continue
		}
		if err := r.repo.Upsert(ctx, models.DashboardLink{
			CompanyName:  rec.CompanyName,
			IndustryName: rec.IndustryName,
			StateName:    rec.StateName,
			DetailURL:    rec.DetailPageURL,
		}); err != nil {
			return err
		}
	}
	return nil
}
