// Package catalog implements component A: a snapshot-reconciliation sync of
// the tracked company catalog from an upstream CSV feed (grounded on
// original_source/esg/services/company-catalog/src/main.py's NSE feed
// shape), plus refreshes of the two supplemented auxiliary tables.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// Row is one parsed feed record, matching the upstream CSV's
// "Company Name,Industry,Symbol,Series,ISIN Code" header.
type Row struct {
	Name     string
	Industry string
	Symbol   string
	Series   string
	ISIN     string
}

// Syncer drives a full fetch-parse-reconcile cycle.
type Syncer struct {
	feedURL string
	http    *http.Client
	repo    *db.CatalogRepo
	retry   common.RetryPolicy
	log     arbor.ILogger
}

func NewSyncer(feedURL string, repo *db.CatalogRepo) *Syncer {
	return &Syncer{
		feedURL: feedURL,
		http:    &http.Client{Timeout: 20 * time.Second},
		repo:    repo,
		retry:   common.DefaultRetryPolicy(),
		log:     common.GetLogger(),
	}
}

// Sync fetches the feed (with retry on transient HTTP failure), parses it,
// and reconciles it against the catalog table: present rows are upserted,
// rows whose symbol has dropped out of the feed are deleted. Fails the job
// without partial commit if the feed is empty or unparseable.
func (s *Syncer) Sync(ctx context.Context) error {
	var rows []Row
	err := common.Retry(ctx, s.retry, func() error {
		fetched, ferr := s.fetch(ctx)
		if ferr != nil {
			return ferr
		}
		rows = fetched
		return nil
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return common.Wrap(common.PermanentInput, "catalog: sync", fmt.Errorf("feed returned zero rows"))
	}

	existing, err := s.repo.All(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		present[r.Symbol] = true
	}

	for _, row := range rows {
		_, err := s.repo.Upsert(ctx, models.Company{
			Symbol:   row.Symbol,
			ISIN:     row.ISIN,
			Name:     row.Name,
			Industry: row.Industry,
			Series:   row.Series,
		})
		if err != nil {
			return err
		}
	}
	for _, existingCompany := range existing {
		if !present[existingCompany.Symbol] {
			if err := s.repo.Delete(ctx, existingCompany.ID); err != nil {
				return err
			}
		}
	}

	s.log.Info().Int("upserted", len(rows)).Msg("catalog: sync complete")
	return nil
}

func (s *Syncer) fetch(ctx context.Context) ([]Row, error) {
	body, err := s.fetchRaw(ctx, s.feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return parseCSV(body)
}

// fetchRaw issues the HTTP GET shared by the catalog sync and the
// supplemented disclosure refreshers, returning the unparsed body.
func (s *Syncer) fetchRaw(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, common.Wrap(common.PermanentInput, "catalog: build request", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; esg-catalog-sync/1.0)")

	client := s.http
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, common.Wrap(common.Transient, "catalog: fetch feed", err)
	}
	if resp.StatusCode >= 500 {
		resp.Body.Close()
		return nil, common.Wrap(common.Transient, "catalog: fetch feed", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, common.Wrap(common.PermanentInput, "catalog: fetch feed", fmt.Errorf("status %d", resp.StatusCode))
	}
	return resp.Body, nil
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, common.Wrap(common.PermanentInput, "catalog: read header", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	required := []string{"Company Name", "Industry", "Symbol", "Series", "ISIN Code"}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, common.Wrap(common.PermanentInput, "catalog: parse csv", fmt.Errorf("missing column %q", col))
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, common.Wrap(common.PermanentInput, "catalog: parse csv row", err)
		}
		rows = append(rows, Row{
			Name:     strings.TrimSpace(record[idx["Company Name"]]),
			Industry: strings.TrimSpace(record[idx["Industry"]]),
			Symbol:   strings.TrimSpace(record[idx["Symbol"]]),
			Series:   strings.TrimSpace(record[idx["Series"]]),
			ISIN:     strings.TrimSpace(record[idx["ISIN Code"]]),
		})
	}
	return rows, nil
}
