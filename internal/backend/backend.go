// Package backend opens the configured vector index.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"profanity/internal/config"
	"profanity/internal/db"
	"profanity/internal/embedding"
	"profanity/internal/index"
	"profanity/internal/index/pgvector"
	"profanity/internal/index/upstash"
)

// OpenIndex builds the index selected by cfg.IndexBackend. The returned
// close function releases backend resources and is never nil.
func OpenIndex(ctx context.Context, cfg *config.Config) (index.Index, func(), error) {
	switch cfg.IndexBackend {
	case config.BackendUpstash, "":
		client, err := upstash.New(upstash.Config{
			URL:        cfg.UpstashURL,
			Token:      cfg.UpstashToken,
			MaxRetries: cfg.IndexMaxRetries,
			Logger:     slog.Default().With("component", "upstash"),
		})
		if err != nil {
			return nil, func() {}, err
		}
		slog.Info("using upstash vector index", "max_retries", cfg.IndexMaxRetries)
		return client, func() {}, nil

	case config.BackendPgvector:
		embedder, err := embedding.NewOpenAI(embedding.OpenAIConfig{
			BaseURL:    cfg.EmbeddingBaseURL,
			APIKey:     cfg.EmbeddingAPIKey,
			Model:      cfg.EmbeddingModel,
			MaxRetries: cfg.IndexMaxRetries,
		})
		if err != nil {
			return nil, func() {}, err
		}

		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			database.Close()
			return nil, func() {}, fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Info("using pgvector index", "model", cfg.EmbeddingModel)
		return pgvector.New(database, embedder), database.Close, nil

	default:
		return nil, func() {}, fmt.Errorf("unknown index backend %q", cfg.IndexBackend)
	}
}
