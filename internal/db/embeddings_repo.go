package db

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// EmbeddingsRepo persists document_embeddings rows and serves the pgvector
// kNN lookup component D's retrieval step uses.
type EmbeddingsRepo struct{ db *DB }

func NewEmbeddingsRepo(d *DB) *EmbeddingsRepo { return &EmbeddingsRepo{db: d} }

// BulkInsert writes every chunk of a document's embedding batch in one
// transaction; identity is (object_key, page_number, chunk_index), so a
// re-run of the same document is a no-op on conflict.
func (r *EmbeddingsRepo) BulkInsert(ctx context.Context, chunks []models.DocumentEmbedding) error {
	if len(chunks) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return wrapQuery("embeddings begin", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range chunks {
		_, err := tx.Exec(ctx, `
			INSERT INTO document_embeddings (object_key, company_name, report_year, page_number, chunk_index, embedding, chunk_text)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (object_key, page_number, chunk_index) DO NOTHING`,
			c.ObjectKey, c.CompanyName, c.ReportYear, c.PageNumber, c.ChunkIndex, pgvector.NewVector(c.Embedding), c.ChunkText,
		)
		if err != nil {
			return wrapQuery("embeddings insert chunk", err)
		}
	}
	return wrapQuery("embeddings commit", tx.Commit(ctx))
}

// ExistsForObjectKey reports whether any chunk of object key has already
// been embedded, the idempotency gate component C checks before redoing
// PDF extraction and embedding work.
func (r *EmbeddingsRepo) ExistsForObjectKey(ctx context.Context, objectKey string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM document_embeddings WHERE object_key = $1)`, objectKey).Scan(&exists)
	return exists, wrapQuery("embeddings exists", err)
}

// NearestNeighbors returns the topK chunks for companyName/reportYear
// closest to query by cosine distance, component D's retrieval step.
func (r *EmbeddingsRepo) NearestNeighbors(ctx context.Context, companyName string, reportYear, topK int, query []float32) ([]models.DocumentEmbedding, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT object_key, company_name, report_year, page_number, chunk_index, chunk_text
		FROM document_embeddings
		WHERE company_name = $1 AND report_year = $2
		ORDER BY embedding <=> $3
		LIMIT $4`,
		companyName, reportYear, pgvector.NewVector(query), topK,
	)
	if err != nil {
		return nil, wrapQuery("embeddings knn", err)
	}
	defer rows.Close()

	var out []models.DocumentEmbedding
	for rows.Next() {
		var e models.DocumentEmbedding
		if err := rows.Scan(&e.ObjectKey, &e.CompanyName, &e.ReportYear, &e.PageNumber, &e.ChunkIndex, &e.ChunkText); err != nil {
			return nil, wrapQuery("embeddings scan", err)
		}
		out = append(out, e)
	}
	return out, wrapQuery("embeddings rows", rows.Err())
}
