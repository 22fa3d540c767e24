package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"profanity/internal/config"
	"profanity/internal/models"
	"profanity/internal/pipeline"
	"profanity/internal/similarity"
	"profanity/internal/testutil"
)

func newTestServer(t *testing.T, rateLimit int, idx *testutil.StaticIndex) *Server {
	t.Helper()
	cfg := &config.Config{
		CORSOrigins:  "*",
		RateLimitMax: rateLimit,
	}
	s := New(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker := pipeline.New(similarity.NewScorer(idx), pipeline.DefaultOptions(), logger)
	s.RegisterRoutes(checker, idx, logger)
	return s
}

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body models.MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Message
}

func TestCheckEndToEnd(t *testing.T) {
	idx := testutil.NewStaticIndex(map[string]testutil.Hit{
		"hello": {Text: "hell", Score: 0.95},
		"world": {Text: "word", Score: 0.10},
	})
	s := newTestServer(t, 100, idx)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hello world"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["isProfane"] != true || got["score"] != 0.95 || got["text"] != "hell" {
		t.Errorf("body = %v", got)
	}
	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestHelloWorld(t *testing.T) {
	s := newTestServer(t, 100, testutil.NewStaticIndex(nil))

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/helloworld", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if msg := decodeMessage(t, resp); msg != "Hello World" {
		t.Errorf("message = %q, want Hello World", msg)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	s := newTestServer(t, 100, testutil.NewStaticIndex(nil))

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		t.Errorf("content type = %q, want JSON", resp.Header.Get(fiber.HeaderContentType))
	}
	if msg := decodeMessage(t, resp); msg == "" {
		t.Error("empty error message")
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, 2, testutil.NewStaticIndex(nil))

	for i := 0; i < 2; i++ {
		resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/helloworld", nil))
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, resp.StatusCode)
		}
	}

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/helloworld", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if msg := decodeMessage(t, resp); !strings.Contains(msg, "Rate limit exceeded") {
		t.Errorf("message = %q", msg)
	}

	// Probes are never limited
	resp, err = s.App.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, 100, testutil.NewStaticIndex(nil))

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("metrics output missing go runtime collectors")
	}
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"*", "*"},
		{"", "*"},
		{"https://a.example, https://b.example", "https://a.example|https://b.example"},
		{" ,https://a.example,", "https://a.example"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := strings.Join(splitOrigins(tt.in), "|"); got != tt.want {
				t.Errorf("splitOrigins(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildTLSConfig(t *testing.T) {
	t.Run("tls only", func(t *testing.T) {
		tc, err := buildTLSConfig(&config.Config{TLSEnabled: true})
		if err != nil {
			t.Fatalf("buildTLSConfig() error = %v", err)
		}
		if tc.ClientCAs != nil {
			t.Error("ClientCAs set without a CA file")
		}
	})

	t.Run("missing ca file", func(t *testing.T) {
		_, err := buildTLSConfig(&config.Config{TLSEnabled: true, TLSCAFile: filepath.Join(t.TempDir(), "missing.pem")})
		if err == nil {
			t.Fatal("expected error for missing CA file")
		}
	})

	t.Run("invalid ca file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ca.pem")
		if err := os.WriteFile(path, []byte("not a certificate"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := buildTLSConfig(&config.Config{TLSEnabled: true, TLSCAFile: path})
		if err == nil {
			t.Fatal("expected error for invalid CA file")
		}
	})
}
