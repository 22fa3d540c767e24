package corpus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"profanity/internal/models"
	"profanity/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeedCSV(t *testing.T) {
	const data = "text\nalpha\nbeta\n\" \"\ngamma\ndelta\nepsilon\n"

	tests := []struct {
		name        string
		batch       int
		start       int
		limit       int
		wantIDs     []string
		wantBatches int
		wantSkipped int
	}{
		{
			name:        "all rows",
			batch:       2,
			wantIDs:     []string{"0", "1", "3", "4", "5"},
			wantBatches: 3,
			wantSkipped: 1,
		},
		{
			name:        "range",
			batch:       30,
			start:       1,
			limit:       3,
			wantIDs:     []string{"1", "3"},
			wantBatches: 1,
			wantSkipped: 1,
		},
		{
			name:        "start past end",
			batch:       30,
			start:       100,
			wantBatches: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := testutil.NewStaticIndex(nil)
			s := NewSeeder(idx, tt.batch, quietLogger())

			stats, err := s.SeedCSV(context.Background(), strings.NewReader(data), tt.start, tt.limit)
			if err != nil {
				t.Fatalf("SeedCSV() error = %v", err)
			}
			if stats.Batches != tt.wantBatches {
				t.Errorf("Batches = %d, want %d", stats.Batches, tt.wantBatches)
			}
			if stats.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %d, want %d", stats.Skipped, tt.wantSkipped)
			}
			if stats.RunID == "" {
				t.Error("RunID is empty")
			}

			var ids []string
			for _, batch := range idx.Upserts() {
				for _, e := range batch {
					ids = append(ids, e.ID)
				}
			}
			if strings.Join(ids, ",") != strings.Join(tt.wantIDs, ",") {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestSeedCSVTextColumn(t *testing.T) {
	idx := testutil.NewStaticIndex(nil)
	s := NewSeeder(idx, 0, quietLogger())

	data := "\uFEFFid,Text\n7,\"darn, it\"\n"
	if _, err := s.SeedCSV(context.Background(), strings.NewReader(data), 0, 0); err != nil {
		t.Fatalf("SeedCSV() error = %v", err)
	}

	upserts := idx.Upserts()
	want := models.CorpusEntry{ID: "0", Text: "darn, it"}
	if len(upserts) != 1 || len(upserts[0]) != 1 || upserts[0][0] != want {
		t.Errorf("upserts = %+v, want [[%+v]]", upserts, want)
	}
}

func TestSeedCSVErrors(t *testing.T) {
	t.Run("missing text column", func(t *testing.T) {
		s := NewSeeder(testutil.NewStaticIndex(nil), 0, quietLogger())
		_, err := s.SeedCSV(context.Background(), strings.NewReader("word\nx\n"), 0, 0)
		if !errors.Is(err, ErrMissingTextColumn) {
			t.Errorf("error = %v, want ErrMissingTextColumn", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		s := NewSeeder(testutil.NewStaticIndex(nil), 0, quietLogger())
		_, err := s.SeedCSV(context.Background(), strings.NewReader(""), 0, 0)
		if !errors.Is(err, ErrMissingTextColumn) {
			t.Errorf("error = %v, want ErrMissingTextColumn", err)
		}
	})

	t.Run("upsert failure", func(t *testing.T) {
		boom := errors.New("boom")
		idx := testutil.NewStaticIndex(nil)
		idx.UpsertErr = boom
		s := NewSeeder(idx, 1, quietLogger())
		_, err := s.SeedCSV(context.Background(), strings.NewReader("text\na\n"), 0, 0)
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want boom", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := NewSeeder(testutil.NewStaticIndex(nil), 0, quietLogger())
		_, err := s.SeedCSV(ctx, strings.NewReader("text\na\n"), 0, 0)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestSeedCSVSkipsDuplicates(t *testing.T) {
	idx := testutil.NewStaticIndex(nil)
	s := NewSeeder(idx, 0, quietLogger())

	stats, err := s.SeedCSV(context.Background(), strings.NewReader("text\ndarn\nheck\nDARN\ndarn\n"), 0, 0)
	if err != nil {
		t.Fatalf("SeedCSV() error = %v", err)
	}
	if stats.Upserted != 2 || stats.Duplicates != 2 {
		t.Errorf("Upserted = %d, Duplicates = %d; want 2, 2", stats.Upserted, stats.Duplicates)
	}
	upserts := idx.Upserts()
	if len(upserts) != 1 || upserts[0][1].ID != "1" {
		t.Errorf("upserts = %+v", upserts)
	}
}

func TestTextHash(t *testing.T) {
	a, err := textHash("Darn")
	if err != nil {
		t.Fatalf("textHash() error = %v", err)
	}
	b, _ := textHash("darn")
	c, _ := textHash("heck")
	if a != b {
		t.Error("hash should ignore case")
	}
	if a == c {
		t.Error("distinct texts share a hash")
	}
}
