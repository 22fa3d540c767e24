package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Index backends.
const (
	BackendUpstash  = "upstash"
	BackendPgvector = "pgvector"
)

// Config holds all process configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr   string
	CORSOrigins  string // Comma-separated allowed origins, "*" for any
	RateLimitMax int    // Requests per minute per IP
	RedisURL     string // Limiter storage; in-memory when empty

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Vector index
	IndexBackend       string // "upstash" or "pgvector"
	UpstashURL         string
	UpstashToken       string
	IndexMaxRetries    int
	IndexProbeInterval time.Duration

	// pgvector backend
	DatabaseURL      string
	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string

	// Scoring
	ScoreTimeout     time.Duration // Per-unit lookup timeout
	ScoreConcurrency int           // Max in-flight lookups per check

	// YAML overlay with filter, chunking and threshold settings
	ConfigFile string

	// Diagnostics
	GopsEnabled bool // Start the gops agent
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),
		RedisURL:     getEnv("REDIS_URL", ""),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),

		IndexBackend:       getEnv("INDEX_BACKEND", BackendUpstash),
		UpstashURL:         getEnv("UPSTASH_VECTOR_URL", ""),
		UpstashToken:       getEnv("UPSTASH_VECTOR_TOKEN", ""),
		IndexMaxRetries:    getEnvInt("INDEX_MAX_RETRIES", 2),
		IndexProbeInterval: getEnvDuration("INDEX_PROBE_INTERVAL", 30*time.Second),

		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/profanity?sslmode=disable"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),

		ScoreTimeout:     getEnvDuration("SCORE_TIMEOUT", 5*time.Second),
		ScoreConcurrency: getEnvInt("SCORE_CONCURRENCY", 16),

		ConfigFile: getEnv("CONFIG_FILE", "config.yaml"),

		GopsEnabled: getEnv("GOPS_ENABLED", "") != "",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
