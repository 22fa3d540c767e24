package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/viant/afs"

	"profanity/internal/backend"
	"profanity/internal/config"
	"profanity/internal/corpus"
)

func main() {
	file := flag.String("file", "pre-swears.csv", "CSV file path or URL with a text column")
	batch := flag.Int("batch", corpus.DefaultBatchSize, "rows per upsert")
	start := flag.Int("start", 0, "first data row to load")
	limit := flag.Int("limit", 0, "number of rows to load, 0 for all")
	flag.Parse()

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	idx, closeIndex, err := backend.OpenIndex(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open vector index: %v", err)
	}
	defer closeIndex()

	f, err := afs.New().OpenURL(ctx, *file)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *file, err)
	}
	defer f.Close()

	stats, err := corpus.NewSeeder(idx, *batch, nil).SeedCSV(ctx, f, *start, *limit)
	if err != nil {
		log.Fatalf("Seeding failed after %d rows: %v", stats.Upserted, err)
	}
	log.Printf("Seeded %d rows in %d batches (%d blank rows skipped)", stats.Upserted, stats.Batches, stats.Skipped)
}
