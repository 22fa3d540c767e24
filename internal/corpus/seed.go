// Package corpus loads the reference corpus of known-profane strings into
// the vector index.
package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"profanity/internal/index"
	"profanity/internal/models"
)

// DefaultBatchSize is the number of rows sent per upsert.
const DefaultBatchSize = 30

// ErrMissingTextColumn is returned when the CSV header has no "text" column.
var ErrMissingTextColumn = errors.New("csv header has no text column")

// Stats summarises one seeding run.
type Stats struct {
	RunID      string
	Rows       int
	Upserted   int
	Skipped    int
	Duplicates int
	Batches    int
}

// Seeder upserts CSV rows into an index in fixed-size batches.
type Seeder struct {
	index     index.Upserter
	batchSize int
	logger    *slog.Logger
}

// NewSeeder creates a seeder. A non-positive batch size uses DefaultBatchSize.
func NewSeeder(idx index.Upserter, batchSize int, logger *slog.Logger) *Seeder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{index: idx, batchSize: batchSize, logger: logger}
}

// SeedCSV reads rows from r and upserts rows [start, start+limit). Row
// numbers count data rows from zero and become entry IDs. limit <= 0 reads
// to the end. Blank rows and repeats of an earlier row (ignoring case) are
// skipped but keep their row number.
func (s *Seeder) SeedCSV(ctx context.Context, r io.Reader, start, limit int) (Stats, error) {
	stats := Stats{RunID: uuid.NewString()}
	log := s.logger.With("run_id", stats.RunID)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return stats, ErrMissingTextColumn
		}
		return stats, fmt.Errorf("read csv header: %w", err)
	}
	col := textColumn(header)
	if col < 0 {
		return stats, ErrMissingTextColumn
	}

	seen := dedupe{}
	batch := make([]models.CorpusEntry, 0, s.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.index.Upsert(ctx, batch); err != nil {
			return fmt.Errorf("upsert batch %d: %w", stats.Batches+1, err)
		}
		stats.Batches++
		stats.Upserted += len(batch)
		log.Info("upserted batch", "batch", stats.Batches, "rows", len(batch))
		batch = batch[:0]
		return nil
	}

	for row := 0; limit <= 0 || row < start+limit; row++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read csv row %d: %w", row, err)
		}
		if row < start {
			continue
		}
		stats.Rows++

		var text string
		if col < len(record) {
			text = strings.TrimSpace(record[col])
		}
		if text == "" {
			stats.Skipped++
			continue
		}
		dup, err := seen.seen(text)
		if err != nil {
			return stats, err
		}
		if dup {
			stats.Duplicates++
			continue
		}

		batch = append(batch, models.CorpusEntry{ID: strconv.Itoa(row), Text: text})
		if len(batch) == s.batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}
	log.Info("seeding finished", "rows", stats.Rows, "upserted", stats.Upserted, "skipped", stats.Skipped, "duplicates", stats.Duplicates)
	return stats, nil
}

func textColumn(header []string) int {
	for i, h := range header {
		// tolerate a UTF-8 BOM on the first column
		h = strings.TrimPrefix(h, "\uFEFF")
		if strings.EqualFold(strings.TrimSpace(h), "text") {
			return i
		}
	}
	return -1
}
