// Package embeddings implements component C: download a filing PDF,
// extract and chunk its text, embed each chunk, store the vectors, and fan
// out to the extraction worker.
package embeddings

import (
	"context"
	"io"

	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// Worker turns one downloaded filing into stored, searchable chunk
// embeddings. One instance is shared across all deliveries on the
// embedding-tasks queue.
type Worker struct {
	store        interfaces.ObjectStore
	embedder     interfaces.EmbeddingClient
	broker       interfaces.BrokerPublisher
	embeddings   *db.EmbeddingsRepo
	ingestion    *db.IngestionRepo
	catalog      *db.CatalogRepo
	retry        common.RetryPolicy
	chunkSize    int
	chunkOverlap int
	batchSize    int
	log          arbor.ILogger
}

func NewWorker(store interfaces.ObjectStore, embedder interfaces.EmbeddingClient, broker interfaces.BrokerPublisher, embeddings *db.EmbeddingsRepo, ingestion *db.IngestionRepo, catalog *db.CatalogRepo, chunkSize, chunkOverlap, batchSize int) *Worker {
	return &Worker{
		store:        store,
		embedder:     embedder,
		broker:       broker,
		embeddings:   embeddings,
		ingestion:    ingestion,
		catalog:      catalog,
		retry:        common.DefaultRetryPolicy(),
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		batchSize:    batchSize,
		log:          common.GetLogger(),
	}
}

// ProcessObjectKey runs the full download-chunk-embed-store-publish
// pipeline for one object key. Returning a nil error acks the delivery;
// any error nacks it without requeue, since a bad PDF will never parse
// differently on redelivery.
func (w *Worker) ProcessObjectKey(ctx context.Context, objectKey string) error {
	if exists, err := w.embeddings.ExistsForObjectKey(ctx, objectKey); err != nil {
		return err
	} else if exists {
		w.log.Info().Str("object_key", objectKey).Msg("embeddings: already embedded, skipping")
		return nil
	}

	meta, err := w.ingestion.ByObjectKey(ctx, objectKey)
	if err != nil {
		return err
	}
	if meta == nil {
		return common.Wrap(common.PermanentInput, "embeddings: process", errObjectNotIngested(objectKey))
	}
	company, err := w.catalog.ByID(ctx, meta.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return common.Wrap(common.PermanentInput, "embeddings: process", errObjectNotIngested(objectKey))
	}

	body, err := w.download(ctx, objectKey)
	if err != nil {
		return err
	}

	pages, err := extractPages(body, w.log)
	if err != nil {
		return common.Wrap(common.PermanentInput, "embeddings: extract pdf", err)
	}
	if len(pages) == 0 {
		w.log.Warn().Str("object_key", objectKey).Msg("embeddings: no pages extracted, skipping")
		return nil
	}

	chunks := splitPages(pages, w.chunkSize, w.chunkOverlap)
	if len(chunks) == 0 {
		w.log.Warn().Str("object_key", objectKey).Msg("embeddings: no chunks produced, skipping")
		return nil
	}

	rows, err := w.embedAll(ctx, objectKey, company.Name, meta.ReportYear, chunks)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		w.log.Warn().Str("object_key", objectKey).Msg("embeddings: all chunks failed embedding, skipping")
		return nil
	}

	if err := w.embeddings.BulkInsert(ctx, rows); err != nil {
		return err
	}

	if err := w.broker.Publish(ctx, "extraction-tasks", []byte(objectKey)); err != nil {
		// Non-fatal: embeddings are already durably stored. A redelivery of
		// this key stops at the idempotency gate above without publishing,
		// so extraction is then only reached by a manual replay (for
		// example the trigger-processing endpoint).
		w.log.Warn().Err(err).Str("object_key", objectKey).Msg("embeddings: publish to extraction-tasks failed")
	}
	return nil
}

func (w *Worker) download(ctx context.Context, objectKey string) ([]byte, error) {
	var body []byte
	err := common.Retry(ctx, w.retry, func() error {
		rc, ferr := w.store.Get(ctx, objectKey)
		if ferr != nil {
			return ferr
		}
		defer rc.Close()
		b, rerr := io.ReadAll(rc)
		if rerr != nil {
			return common.Wrap(common.Transient, "embeddings: read object body", rerr)
		}
		body = b
		return nil
	})
	return body, err
}

// embedAll batches chunk texts per w.batchSize, embeds each batch with
// retry, and drops any chunk whose embedding came back nil (dimension
// mismatch, already logged inside the embedding client) rather than
// failing the whole document.
func (w *Worker) embedAll(ctx context.Context, objectKey, companyName string, reportYear int, chunks []chunk) ([]models.DocumentEmbedding, error) {
	var rows []models.DocumentEmbedding
	for start := 0; start < len(chunks); start += w.batchSize {
		end := start + w.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]
		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.text
		}

		var vectors [][]float32
		err := common.Retry(ctx, w.retry, func() error {
			v, ferr := w.embedder.Embed(ctx, texts)
			if ferr != nil {
				return ferr
			}
			vectors = v
			return nil
		})
		if err != nil {
			return nil, err
		}

		for i, c := range batch {
			if i >= len(vectors) || vectors[i] == nil {
				w.log.Warn().Str("object_key", objectKey).Int("page", c.pageNumber).Int("chunk", c.chunkIndex).Msg("embeddings: dropping chunk with no embedding")
				continue
			}
			rows = append(rows, models.DocumentEmbedding{
				ObjectKey:   objectKey,
				CompanyName: companyName,
				ReportYear:  reportYear,
				PageNumber:  c.pageNumber,
				ChunkIndex:  c.chunkIndex,
				Embedding:   vectors[i],
				ChunkText:   c.text,
			})
		}
	}
	return rows, nil
}

func errObjectNotIngested(objectKey string) error {
	return &objectNotIngestedError{objectKey: objectKey}
}

type objectNotIngestedError struct{ objectKey string }

func (e *objectNotIngestedError) Error() string {
	return "embeddings: no ingestion record for object key " + e.objectKey
}
