package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/joho/godotenv"

	"profanity/internal/backend"
	"profanity/internal/config"
	"profanity/internal/jobs"
	"profanity/internal/metrics"
	"profanity/internal/pipeline"
	"profanity/internal/server"
	"profanity/internal/similarity"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.GopsEnabled {
		if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
			log.Printf("gops: %v", err)
		}
	}

	yamlCfg, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	opts := yamlCfg.PipelineOptions(cfg)

	// Initialize vector index
	idx, closeIndex, err := backend.OpenIndex(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open vector index: %v", err)
	}
	defer closeIndex()

	metrics.Init()

	checker := pipeline.New(similarity.NewScorer(idx), opts, logger)

	srv := server.New(cfg)
	srv.RegisterRoutes(checker, idx, logger)

	// Background index probe
	prober := jobs.NewIndexProber(idx, cfg.IndexProbeInterval, logger)
	go prober.Start(ctx)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (backend: %s, allowed words: %d)", cfg.ServerAddr, cfg.IndexBackend, checker.AllowedWords())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(10 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
