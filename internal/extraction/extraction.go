// Package extraction implements component D: given a document key, run
// filtered nearest-neighbor retrieval per BRSR indicator, invoke a
// structured-output LLM chain, persist the typed results, and trigger
// scoring.
package extraction

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/scoring"
)

// keyPattern matches the `<SYMBOL>/<YYYY>_...` convention component B writes
// object keys in. Looser formats are a hard failure per spec, an explicit
// Open Question the implementer is told not to guess past.
var keyPattern = regexp.MustCompile(`^([A-Za-z0-9.&-]+)/(\d{4})_`)

const topK = 10

// Worker drives one object key through retrieval, extraction, persistence,
// and scoring.
type Worker struct {
	embedder          interfaces.EmbeddingClient
	generative        interfaces.GenerativeClient
	catalog           *db.CatalogRepo
	indicators        *db.IndicatorsRepo
	embeddings        *db.EmbeddingsRepo
	extracted         *db.ExtractedRepo
	scores            *db.ScoresRepo
	retry             common.RetryPolicy
	minScoringConf    float64
	temperature       float32
	log               arbor.ILogger
}

func NewWorker(embedder interfaces.EmbeddingClient, generative interfaces.GenerativeClient, catalog *db.CatalogRepo, indicators *db.IndicatorsRepo, embeddings *db.EmbeddingsRepo, extracted *db.ExtractedRepo, scores *db.ScoresRepo, minScoringConfidence float64, temperature float32) *Worker {
	return &Worker{
		embedder:       embedder,
		generative:     generative,
		catalog:        catalog,
		indicators:     indicators,
		embeddings:     embeddings,
		extracted:      extracted,
		scores:         scores,
		retry:          common.DefaultRetryPolicy(),
		minScoringConf: minScoringConfidence,
		temperature:    temperature,
		log:            common.GetLogger(),
	}
}

// ProcessObjectKey runs the full per-document extraction batch. A nil error
// acks the delivery; any error nacks without requeue.
func (w *Worker) ProcessObjectKey(ctx context.Context, objectKey string) error {
	symbol, year, err := parseObjectKey(objectKey)
	if err != nil {
		return common.Wrap(common.PermanentInput, "extraction: parse key", err)
	}

	company, err := w.catalog.BySymbol(ctx, symbol)
	if err != nil {
		return err
	}
	if company == nil {
		return common.Wrap(common.PermanentInput, "extraction: process", fmt.Errorf("no catalog entry for symbol %q", symbol))
	}

	count, err := w.extracted.CountForCompanyYear(ctx, company.ID, year)
	if err != nil {
		return err
	}
	if count > 0 {
		w.log.Info().Str("object_key", objectKey).Msg("extraction: already processed, skipping")
		return nil
	}

	defs, err := w.indicators.All(ctx)
	if err != nil {
		return err
	}

	grouped := groupByAttribute(defs)
	var results []models.ExtractedIndicator
	for _, attr := range sortedAttributes(grouped) {
		for _, def := range grouped[attr] {
			result, err := w.extractOne(ctx, company.ID, company.Name, year, def)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
	}

	if err := w.extracted.UpsertBatch(ctx, results); err != nil {
		return err
	}

	return w.triggerScoring(ctx, company.ID, year, defs)
}

func (w *Worker) extractOne(ctx context.Context, companyID int64, companyName string, year int, def models.BRSRIndicatorDefinition) (models.ExtractedIndicator, error) {
	query := buildSearchQuery(def)

	var queryVec []float32
	err := common.Retry(ctx, w.retry, func() error {
		vecs, ferr := w.embedder.Embed(ctx, []string{query})
		if ferr != nil {
			return ferr
		}
		if len(vecs) == 0 || vecs[0] == nil {
			return common.Wrap(common.Transient, "extraction: embed query", fmt.Errorf("no embedding returned"))
		}
		queryVec = vecs[0]
		return nil
	})
	if err != nil {
		return models.ExtractedIndicator{}, err
	}

	chunks, err := w.embeddings.NearestNeighbors(ctx, companyName, year, topK, queryVec)
	if err != nil {
		return models.ExtractedIndicator{}, err
	}

	base := models.ExtractedIndicator{
		CompanyID:     companyID,
		ReportYear:    year,
		IndicatorID:   def.ID,
		IndicatorCode: def.Code,
		Unit:          def.Unit,
	}

	if len(chunks) == 0 {
		base.ExtractedValue = "not found"
		base.Confidence = 0
		base.Reasoning = "no matching chunks retrieved for this indicator"
		return base, nil
	}

	prompt := buildContext(chunks)
	var result *interfaces.ExtractionResult
	err = common.Retry(ctx, w.retry, func() error {
		r, ferr := w.generative.Extract(ctx, interfaces.ExtractionRequest{
			IndicatorCode: def.Code,
			ParameterName: def.ParameterName,
			Unit:          def.Unit,
			Pillar:        string(def.Pillar),
			Description:   def.Description,
			Context:       prompt,
			Temperature:   w.temperature,
		})
		if ferr != nil {
			return ferr
		}
		result = r
		return nil
	})
	if err != nil {
		// Per-indicator LLM failure never aborts the batch: record a
		// low-confidence row and move on.
		w.log.Warn().Err(err).Str("indicator", def.Code).Msg("extraction: llm chain failed after retries")
		base.ExtractedValue = ""
		base.Confidence = 0
		base.Reasoning = "extraction failed: " + err.Error()
		return base, nil
	}

	base.ExtractedValue = result.ExtractedValue
	base.NumericValue = result.NumericValue
	if result.Unit != "" {
		base.Unit = result.Unit
	}
	base.Confidence = result.Confidence
	base.SourcePages = result.SourcePages
	base.SourceChunks = result.SourceChunks
	base.Reasoning = result.Reasoning
	return base, nil
}

func (w *Worker) triggerScoring(ctx context.Context, companyID int64, year int, defs []models.BRSRIndicatorDefinition) error {
	extracted, err := w.extracted.ForCompanyYear(ctx, companyID, year)
	if err != nil {
		return err
	}
	result := scoring.Score(extracted, defs, w.minScoringConf)

	breakdown, err := scoring.MarshalBreakdown(result.Pillars)
	if err != nil {
		return err
	}
	for _, pb := range result.Pillars {
		if err := w.scores.UpsertPillar(ctx, models.ESGScore{
			CompanyID:  companyID,
			ReportYear: year,
			Pillar:     string(pb.Pillar),
			Score:      pb.Score,
		}); err != nil {
			return err
		}
	}
	return w.scores.UpsertPillar(ctx, models.ESGScore{
		CompanyID:  companyID,
		ReportYear: year,
		Pillar:     models.OverallPillar,
		Score:      result.Overall,
		Breakdown:  breakdown,
	})
}

// parseObjectKey extracts (symbol, year) from the `<SYMBOL>/<YYYY>_...`
// convention, failing fast on anything else.
func parseObjectKey(key string) (string, int, error) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return "", 0, fmt.Errorf("object key %q does not match <SYMBOL>/<YYYY>_... convention", key)
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, fmt.Errorf("object key %q has unparseable year: %w", key, err)
	}
	return m[1], year, nil
}

// buildSearchQuery follows the "{parameter_name} {measurement_unit}
// {keywords-from-description}" template.
func buildSearchQuery(def models.BRSRIndicatorDefinition) string {
	keywords := firstWords(def.Description, 8)
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", def.ParameterName, def.Unit, keywords))
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// buildContext formats retrieved chunks annotated with page and chunk
// index, the citation surface the LLM's source_pages/source_chunks answer
// is checked against.
func buildContext(chunks []models.DocumentEmbedding) string {
	var b strings.Builder
	for _, c := range chunks {
		fmt.Fprintf(&b, "[page %d, chunk %d]\n%s\n\n", c.PageNumber, c.ChunkIndex, c.ChunkText)
	}
	return b.String()
}

func groupByAttribute(defs []models.BRSRIndicatorDefinition) map[int][]models.BRSRIndicatorDefinition {
	grouped := make(map[int][]models.BRSRIndicatorDefinition)
	for _, d := range defs {
		grouped[d.Attribute] = append(grouped[d.Attribute], d)
	}
	return grouped
}

func sortedAttributes(grouped map[int][]models.BRSRIndicatorDefinition) []int {
	attrs := make([]int, 0, len(grouped))
	for a := range grouped {
		attrs = append(attrs, a)
	}
	for i := 1; i < len(attrs); i++ {
		for j := i; j > 0 && attrs[j-1] > attrs[j]; j-- {
			attrs[j-1], attrs[j] = attrs[j], attrs[j-1]
		}
	}
	return attrs
}
