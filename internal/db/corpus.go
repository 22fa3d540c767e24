package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"profanity/internal/models"
)

// CorpusRow is a corpus entry together with its embedding.
type CorpusRow struct {
	Entry     models.CorpusEntry
	Embedding []float32
}

// UpsertCorpusEntries inserts or replaces corpus rows in one batch.
func (d *DB) UpsertCorpusEntries(ctx context.Context, rows []CorpusRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO corpus_entries (id, text, embedding)
		VALUES ($1, $2, $3::vector)
		ON CONFLICT (id) DO UPDATE
		SET text = EXCLUDED.text, embedding = EXCLUDED.embedding, updated_at = now()
	`

	batch := &pgx.Batch{}
	for _, row := range rows {
		if len(row.Embedding) == 0 {
			return fmt.Errorf("corpus entry %s: %w", row.Entry.ID, ErrEmptyEmbedding)
		}
		batch.Queue(query, row.Entry.ID, row.Entry.Text, vectorLiteral(row.Embedding))
	}

	results := d.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, row := range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert corpus entry %s: %w", row.Entry.ID, mapVectorError(err))
		}
	}
	return nil
}

// NearestCorpusEntries returns the limit closest entries by cosine distance.
// Scores are mapped to [0,1] as 1 - distance/2.
func (d *DB) NearestCorpusEntries(ctx context.Context, embedding []float32, limit int) ([]models.CorpusMatch, error) {
	if len(embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}

	query := `
		SELECT id, text, 1 - (embedding <=> $1::vector) / 2 AS score
		FROM corpus_entries
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, vectorLiteral(embedding), limit)
	if err != nil {
		return nil, mapVectorError(err)
	}
	defer rows.Close()

	var matches []models.CorpusMatch
	for rows.Next() {
		var m models.CorpusMatch
		if err := rows.Scan(&m.ID, &m.Text, &m.Score); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapVectorError(err)
	}
	return matches, nil
}

// CountCorpusEntries returns the number of stored entries.
func (d *DB) CountCorpusEntries(ctx context.Context) (int64, error) {
	var n int64
	err := d.Pool.QueryRow(ctx, `SELECT count(*) FROM corpus_entries`).Scan(&n)
	return n, err
}

// vectorLiteral formats v in pgvector's text input format, e.g. [0.1,0.2].
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.Grow(len(v) * 8)
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// mapVectorError turns pgvector's dimension mismatch into ErrEmbeddingDimension.
func mapVectorError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22000" && strings.Contains(pgErr.Message, "dimensions") {
		return fmt.Errorf("%w: %s", ErrEmbeddingDimension, pgErr.Message)
	}
	return err
}
