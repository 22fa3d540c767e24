package pgvector

import (
	"context"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/embeddings"

	"profanity/internal/models"
	"profanity/internal/testutil"
)

// letterEmbeddings embeds each text by its first letter, so entries sharing a
// first letter are identical under cosine distance.
func letterEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, 3)
		switch strings.ToLower(text)[0] {
		case 'a':
			vec[0] = 1
		case 'b':
			vec[1] = 1
		default:
			vec[2] = 1
		}
		out[i] = vec
	}
	return out, nil
}

func TestIndexRoundTrip(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	embedder, err := embeddings.NewEmbedder(embeddings.EmbedderClientFunc(letterEmbeddings))
	if err != nil {
		t.Fatalf("NewEmbedder() error = %v", err)
	}
	idx := New(database, embedder)

	if err := idx.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	err = idx.Upsert(ctx, []models.CorpusEntry{
		{ID: "0", Text: "apple"},
		{ID: "1", Text: "banana"},
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := idx.Query(ctx, "avocado", 1)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 || got[0].Text != "apple" {
		t.Fatalf("Query() = %+v, want apple", got)
	}
	if got[0].Score < 0.999 {
		t.Errorf("score = %v, want ~1 for identical vectors", got[0].Score)
	}
}
