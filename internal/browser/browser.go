// Package browser implements interfaces.BrowserDriver and
// interfaces.DashboardScraper with chromedp, grounded on the teacher's
// headless-browser allocator setup (internal/services/crawler/hybrid_scraper.go).
// Both implementations are intentionally narrow: the web-scraping mechanics
// of any particular third-party site are explicitly out of scope (spec.md
// §1's Non-goals), so only the allocator lifecycle and the structural
// parsing shared across sites live here.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
)

// notOperationalSentinel is the upstream dashboard's literal text for a
// stalled reading (original_source/main/database_sql/live_pollution_scraper).
const notOperationalSentinel = "Currently Plant or OCEMS or both not operational"

func newAllocator(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)
	return browserCtx, func() {
		browserCancel()
		allocatorCancel()
	}
}

// ReportDriver implements interfaces.BrowserDriver for component B: given a
// symbol, resolve the set of annual-report/BRSR URLs from the configured
// filings index site.
type ReportDriver struct {
	indexURLTemplate string
	linkSelector     string
	wait             time.Duration
	log              arbor.ILogger
}

// NewReportDriver builds a driver against indexURLTemplate, a %s-formatted
// URL pattern that resolves to one company's filings listing page, and
// linkSelector, the CSS selector matching report download anchors on that
// page.
func NewReportDriver(indexURLTemplate, linkSelector string, wait time.Duration) *ReportDriver {
	return &ReportDriver{indexURLTemplate: indexURLTemplate, linkSelector: linkSelector, wait: wait, log: common.GetLogger()}
}

func (d *ReportDriver) FetchReportURLs(ctx context.Context, symbol string) ([]string, error) {
	browserCtx, cancel := newAllocator(ctx)
	defer cancel()
	timeoutCtx, timeoutCancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer timeoutCancel()

	url := fmt.Sprintf(d.indexURLTemplate, symbol)
	var hrefs []string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(d.wait),
		chromedp.WaitVisible(d.linkSelector, chromedp.ByQueryAll),
		chromedp.Evaluate(fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(a => a.href)`, d.linkSelector), &hrefs),
	)
	if err != nil {
		return nil, common.Wrap(common.Transient, fmt.Sprintf("browser: fetch report urls for %s", symbol), err)
	}
	return hrefs, nil
}

// DashboardScraper implements interfaces.DashboardScraper for component F's
// scraper: navigate to one industry dashboard URL, read the repeating
// parent/measurement/value/time block structure, and classify each reading
// as Operational/Not Operational.
type DashboardScraper struct {
	parentBlockSelector string
	labelSelector       string
	wait                time.Duration
	log                 arbor.ILogger
}

func NewDashboardScraper(parentBlockSelector, labelSelector string, wait time.Duration) *DashboardScraper {
	return &DashboardScraper{parentBlockSelector: parentBlockSelector, labelSelector: labelSelector, wait: wait, log: common.GetLogger()}
}

// ScrapeDashboard reads repeating (parent, measurement, value, time) label
// tuples from url and structures them per parent block.
func (s *DashboardScraper) ScrapeDashboard(ctx context.Context, url string) (map[string]map[string]interfaces.MeasurementReading, error) {
	browserCtx, cancel := newAllocator(ctx)
	defer cancel()
	timeoutCtx, timeoutCancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer timeoutCancel()

	var blocks [][]string // each block: flattened label texts for one parent div
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(s.parentBlockSelector, chromedp.ByQueryAll),
		chromedp.Sleep(s.wait),
		chromedp.Evaluate(fmt.Sprintf(`
			Array.from(document.querySelectorAll(%q)).map(div =>
				Array.from(div.querySelectorAll(%q))
					.map(l => l.innerText.replace(/\n/g, ' ').trim())
					.filter(t => t.length > 0)
			)`, s.parentBlockSelector, s.labelSelector), &blocks),
	)
	if err != nil {
		return nil, common.Wrap(common.Transient, fmt.Sprintf("browser: scrape dashboard %s", url), err)
	}
	return parseBlocks(blocks), nil
}

// parseBlocks implements the triple-parsing rule from
// original_source/main/database_sql/live_pollution_scraper: the first label
// in a block is the parent parameter; every group of three labels after it
// is (measurement, value, time).
func parseBlocks(blocks [][]string) map[string]map[string]interfaces.MeasurementReading {
	out := make(map[string]map[string]interfaces.MeasurementReading)
	for _, block := range blocks {
		if len(block) == 0 {
			continue
		}
		parent := block[0]
		measurements := make(map[string]interfaces.MeasurementReading)
		for i := 1; i+2 < len(block); i += 3 {
			measurement := strings.TrimSpace(block[i])
			value := strings.TrimSpace(block[i+1])
			ts := strings.TrimSpace(strings.TrimSuffix(block[i+2], "Time"))
			ts = strings.TrimSpace(ts)
			if value == notOperationalSentinel {
				measurements[measurement] = interfaces.MeasurementReading{Status: "Not Operational"}
				continue
			}
			v, t := value, ts
			measurements[measurement] = interfaces.MeasurementReading{Status: "Operational", Value: &v, Time: &t}
		}
		out[parent] = measurements
	}
	return out
}
