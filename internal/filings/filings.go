// Package filings implements component B: resolve annual-report/BRSR URLs
// per tracked company, download each PDF, persist it to the object store
// under a deterministic key, record its IngestionMetadata, and fan out to
// the embeddings worker.
package filings

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// Worker drives one pass over the full catalog, isolating per-company
// failures rather than aborting (spec §4.B: "failures per company are
// isolated, logged, moved on").
type Worker struct {
	driver   interfaces.BrowserDriver
	store    interfaces.ObjectStore
	broker   interfaces.BrokerPublisher
	catalog  *db.CatalogRepo
	ingest   *db.IngestionRepo
	http     *http.Client
	retry    common.RetryPolicy
	log      arbor.ILogger
}

func NewWorker(driver interfaces.BrowserDriver, store interfaces.ObjectStore, broker interfaces.BrokerPublisher, catalog *db.CatalogRepo, ingest *db.IngestionRepo) *Worker {
	return &Worker{
		driver:  driver,
		store:   store,
		broker:  broker,
		catalog: catalog,
		ingest:  ingest,
		http:    &http.Client{Timeout: 60 * time.Second},
		retry:   common.DefaultRetryPolicy(),
		log:     common.GetLogger(),
	}
}

// RunOnce resolves and ingests filings for every tracked company.
func (w *Worker) RunOnce(ctx context.Context) error {
	companies, err := w.catalog.All(ctx)
	if err != nil {
		return err
	}
	for _, c := range companies {
		if err := w.processCompany(ctx, c); err != nil {
			w.log.Warn().Err(err).Str("symbol", c.Symbol).Msg("filings: company failed, continuing")
		}
	}
	return nil
}

func (w *Worker) processCompany(ctx context.Context, company models.Company) error {
	urls, err := w.driver.FetchReportURLs(ctx, company.Symbol)
	if err != nil {
		return err
	}
	for _, url := range urls {
		if err := w.processURL(ctx, company, url); err != nil {
			w.log.Warn().Err(err).Str("symbol", company.Symbol).Str("url", url).Msg("filings: url failed, continuing")
		}
	}
	return nil
}

var yearAndKindPattern = regexp.MustCompile(`(?i)(20\d{2}).{0,20}?(brsr|annual)`)

func (w *Worker) processURL(ctx context.Context, company models.Company, url string) error {
	var body []byte
	err := common.Retry(ctx, w.retry, func() error {
		b, ferr := w.download(ctx, url)
		if ferr != nil {
			return ferr
		}
		body = b
		return nil
	})
	if err != nil {
		return err
	}

	year, kind := classifyFilingURL(url)
	key := objectKey(company.Symbol, year, kind, body)

	exists, err := w.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		if err := w.store.Put(ctx, key, bytes.NewReader(body), int64(len(body))); err != nil {
			return err
		}
	}

	id, err := w.ingest.Insert(ctx, models.IngestionMetadata{
		CompanyID:  company.ID,
		ObjectKey:  key,
		Kind:       kind,
		ReportYear: year,
	})
	if err != nil {
		return err
	}
	_ = id

	if err := w.broker.Publish(ctx, "embedding-tasks", []byte(key)); err != nil {
		w.log.Warn().Err(err).Str("key", key).Msg("filings: publish to embedding-tasks failed")
	}
	return nil
}

func (w *Worker) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, common.Wrap(common.PermanentInput, "filings: build download request", err)
	}
	resp, err := w.http.Do(req)
	if err != nil {
		return nil, common.Wrap(common.Transient, "filings: download", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return nil, common.Wrap(common.Transient, "filings: download", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, common.Wrap(common.PermanentInput, "filings: download", fmt.Errorf("status %d", resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

// classifyFilingURL guesses report year and document kind from the URL
// text, falling back to the current year and "ANNUAL_REPORT" when no
// pattern matches; the web-scraping mechanics of any particular filings
// index are explicitly out of scope, so this is a best-effort convention,
// not a parser of a specific site's markup.
func classifyFilingURL(url string) (int, models.DocumentKind) {
	match := yearAndKindPattern.FindStringSubmatch(url)
	year := time.Now().Year()
	kind := models.DocumentAnnualReport
	if len(match) == 3 {
		if y, err := strconv.Atoi(match[1]); err == nil {
			year = y
		}
		if strings.EqualFold(match[2], "brsr") {
			kind = models.DocumentBRSR
		}
	}
	return year, kind
}

// objectKey computes the deterministic `<SYMBOL>/<YYYY>_<TYPE>_<hash>.pdf`
// key spec.md §4.B and §6 require.
func objectKey(symbol string, year int, kind models.DocumentKind, body []byte) string {
	sum := sha256.Sum256(body)
	hash := hex.EncodeToString(sum[:])[:12]
	return fmt.Sprintf("%s/%d_%s_%s.pdf", symbol, year, kind, hash)
}
