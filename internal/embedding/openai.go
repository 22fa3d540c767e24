// Package embedding builds the client-side embedder used by index backends
// that do not embed server side.
package embedding

import (
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"
)

// OpenAIConfig configures an OpenAI-compatible embeddings provider.
type OpenAIConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration // per HTTP attempt
	MaxRetries int
	BatchSize  int
}

// NewOpenAI returns an embedder that calls POST {BaseURL}/embeddings.
// The API key is required; it is never read from the environment here.
func NewOpenAI(cfg OpenAIConfig) (embeddings.Embedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing embeddings API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithEmbeddingModel(cfg.Model),
		openai.WithHTTPClient(newHTTPClient(cfg)),
	)
	if err != nil {
		return nil, err
	}

	var opts []embeddings.Option
	if cfg.BatchSize > 0 {
		opts = append(opts, embeddings.WithBatchSize(cfg.BatchSize))
	}
	return embeddings.NewEmbedder(llm, opts...)
}

func newHTTPClient(cfg OpenAIConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = timeout
	rc.RetryMax = max(cfg.MaxRetries, 0)
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil
	// hand the final response back so the provider's error message survives
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc.StandardClient()
}
