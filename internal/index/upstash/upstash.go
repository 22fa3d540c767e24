// Package upstash adapts an Upstash Vector index that embeds text server
// side to the index contract.
package upstash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	vector "github.com/upstash/vector-go"

	"profanity/internal/models"
)

var ErrMalformedResponse = errors.New("upstash: malformed response")

const (
	defaultTimeout = 10 * time.Second
	minRetryWait   = 200 * time.Millisecond
	maxRetryWait   = 5 * time.Second
)

// Config configures the client.
type Config struct {
	URL        string
	Token      string
	Timeout    time.Duration // per HTTP attempt
	MaxRetries int
	Logger     *slog.Logger // retry logging, optional
}

// Client talks to a single Upstash Vector index.
type Client struct {
	index *vector.Index
}

// New creates a client. URL and token are required.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.Token == "" {
		return nil, errors.New("upstash: url and token are required")
	}
	return &Client{
		index: vector.NewIndexWith(vector.Options{
			Url:    cfg.URL,
			Token:  cfg.Token,
			Client: newHTTPClient(cfg),
		}),
	}, nil
}

// newHTTPClient retries network errors, 429 and 5xx. Retry-After is
// honoured up to maxRetryWait.
func newHTTPClient(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = timeout
	rc.RetryMax = retries
	rc.RetryWaitMin = minRetryWait
	rc.RetryWaitMax = maxRetryWait
	rc.Backoff = backoff
	rc.Logger = nil
	if cfg.Logger != nil {
		rc.Logger = cfg.Logger
	}
	return rc.StandardClient()
}

func backoff(min, max time.Duration, attempt int, resp *http.Response) time.Duration {
	return clampWait(retryablehttp.DefaultBackoff(min, max, attempt, resp), max)
}

func clampWait(d, max time.Duration) time.Duration {
	if d > max {
		return max
	}
	if d < 0 {
		return 0
	}
	return d
}

// Query returns the topK nearest entries for text. Each hit must carry its
// source text in metadata.text.
func (c *Client) Query(ctx context.Context, text string, topK int) ([]models.CorpusMatch, error) {
	if topK <= 0 {
		topK = 1
	}
	scores, err := call(ctx, func() ([]vector.VectorScore, error) {
		return c.index.QueryData(vector.QueryData{
			Data:            text,
			TopK:            topK,
			IncludeMetadata: true,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("upstash query: %w", err)
	}

	matches := make([]models.CorpusMatch, 0, len(scores))
	for _, s := range scores {
		matchText, ok := s.Metadata["text"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: match %s has no metadata text", ErrMalformedResponse, s.Id)
		}
		matches = append(matches, models.CorpusMatch{
			ID:    s.Id,
			Text:  matchText,
			Score: float64(s.Score),
		})
	}
	return matches, nil
}

// Upsert stores entries, letting Upstash embed each entry's text.
func (c *Client) Upsert(ctx context.Context, entries []models.CorpusEntry) error {
	if len(entries) == 0 {
		return nil
	}
	records := make([]vector.UpsertData, len(entries))
	for i, e := range entries {
		records[i] = vector.UpsertData{
			Id:       e.ID,
			Data:     e.Text,
			Metadata: map[string]any{"text": e.Text},
		}
	}
	_, err := call(ctx, func() (struct{}, error) {
		return struct{}{}, c.index.UpsertDataMany(records)
	})
	if err != nil {
		return fmt.Errorf("upstash upsert: %w", err)
	}
	return nil
}

// Ping fetches index info.
func (c *Client) Ping(ctx context.Context) error {
	_, err := call(ctx, c.index.Info)
	if err != nil {
		return fmt.Errorf("upstash info: %w", err)
	}
	return nil
}

// call runs a context-less SDK request and returns early when ctx ends.
// The abandoned request is still bounded by the HTTP timeout and retry budget.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.v, r.err
	}
}
