package catalog

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// DisclosureRefresher upserts the two supplemented auxiliary tables
// (shareholder patterns, corporate announcements) from the same
// CSV-feed family as the catalog sync, reusing its fetch-and-parse shape
// rather than running a separate untracked process
// (original_source/Governance/LoadingShareHolderP.py,
// original_source/Governance/fetchAnnouncements.py). Out of the scoring
// critical path; H exposes these read-only.
type DisclosureRefresher struct {
	http                *Syncer // reused purely for its http client + retry policy
	shareholders        *db.ShareholderRepo
	announcements       *db.AnnouncementRepo
	catalog             *db.CatalogRepo
	shareholderFeedURL  string
	announcementFeedURL string
}

func NewDisclosureRefresher(shareholderFeedURL, announcementFeedURL string, shareholders *db.ShareholderRepo, announcements *db.AnnouncementRepo, catalogRepo *db.CatalogRepo) *DisclosureRefresher {
	return &DisclosureRefresher{
		http:                NewSyncer("", nil),
		shareholders:        shareholders,
		announcements:       announcements,
		catalog:             catalogRepo,
		shareholderFeedURL:  shareholderFeedURL,
		announcementFeedURL: announcementFeedURL,
	}
}

// RefreshShareholderPatterns fetches a CSV of {symbol, category, percent_held,
// as_of} rows and inserts one row per record for its matching company.
func (r *DisclosureRefresher) RefreshShareholderPatterns(ctx context.Context) error {
	if r.shareholderFeedURL == "" {
		return nil
	}
	var rows []shareholderRow
	err := common.Retry(ctx, common.DefaultRetryPolicy(), func() error {
		body, ferr := r.http.fetchRaw(ctx, r.shareholderFeedURL)
		if ferr != nil {
			return ferr
		}
		defer body.Close()
		parsed, perr := parseShareholderCSV(body)
		if perr != nil {
			return perr
		}
		rows = parsed
		return nil
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		company, err := r.catalog.BySymbol(ctx, row.symbol)
		if err != nil || company == nil {
			continue
		}
		if err := r.shareholders.Insert(ctx, models.ShareholderPattern{
			CompanyID:   company.ID,
			Category:    row.category,
			PercentHeld: row.percentHeld,
			AsOf:        row.asOf,
		}); err != nil {
			return err
		}
	}
	return nil
}

// RefreshAnnouncements fetches a CSV of {symbol, subject, announced_at} rows.
func (r *DisclosureRefresher) RefreshAnnouncements(ctx context.Context) error {
	if r.announcementFeedURL == "" {
		return nil
	}
	var rows []announcementRow
	err := common.Retry(ctx, common.DefaultRetryPolicy(), func() error {
		body, ferr := r.http.fetchRaw(ctx, r.announcementFeedURL)
		if ferr != nil {
			return ferr
		}
		defer body.Close()
		parsed, perr := parseAnnouncementCSV(body)
		if perr != nil {
			return perr
		}
		rows = parsed
		return nil
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		company, err := r.catalog.BySymbol(ctx, row.symbol)
		if err != nil || company == nil {
			continue
		}
		if err := r.announcements.Insert(ctx, models.CorporateAnnouncement{
			CompanyID:   company.ID,
			Subject:     row.subject,
			AnnouncedAt: row.announcedAt,
		}); err != nil {
			return err
		}
	}
	return nil
}

type shareholderRow struct {
	symbol      string
	category    string
	percentHeld float64
	asOf        time.Time
}

func parseShareholderCSV(r io.Reader) ([]shareholderRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	if _, err := reader.Read(); err != nil { // header
		return nil, common.Wrap(common.PermanentInput, "disclosures: shareholder header", err)
	}
	var out []shareholderRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, common.Wrap(common.PermanentInput, "disclosures: shareholder row", err)
		}
		if len(rec) < 4 {
			continue
		}
		pct, _ := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		asOf, _ := time.Parse("2006-01-02", strings.TrimSpace(rec[3]))
		out = append(out, shareholderRow{
			symbol:      strings.TrimSpace(rec[0]),
			category:    strings.TrimSpace(rec[1]),
			percentHeld: pct,
			asOf:        asOf,
		})
	}
	return out, nil
}

type announcementRow struct {
	symbol      string
	subject     string
	announcedAt time.Time
}

func parseAnnouncementCSV(r io.Reader) ([]announcementRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	if _, err := reader.Read(); err != nil {
		return nil, common.Wrap(common.PermanentInput, "disclosures: announcement header", err)
	}
	var out []announcementRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, common.Wrap(common.PermanentInput, "disclosures: announcement row", err)
		}
		if len(rec) < 3 {
			continue
		}
		announcedAt, _ := time.Parse("2006-01-02", strings.TrimSpace(rec[2]))
		out = append(out, announcementRow{
			symbol:      strings.TrimSpace(rec[0]),
			subject:     strings.TrimSpace(rec[1]),
			announcedAt: announcedAt,
		})
	}
	return out, nil
}
