package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"profanity/internal/index"
	"profanity/internal/metrics"
)

// IndexProber periodically pings the vector index and publishes its state.
type IndexProber struct {
	pinger   index.Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu   sync.RWMutex
	up   bool
	seen bool
}

// NewIndexProber creates a new prober.
func NewIndexProber(pinger index.Pinger, interval time.Duration, logger *slog.Logger) *IndexProber {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	timeout := interval / 2
	if timeout > 10*time.Second {
		timeout = 10 * time.Second
	}
	return &IndexProber{
		pinger:   pinger,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start begins the background probe loop. It blocks until ctx is done.
func (p *IndexProber) Start(ctx context.Context) {
	p.logger.Info("index prober started", "interval", p.interval)

	// Run immediately on start
	p.probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("index prober stopped")
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

// isUp reports the result of the last probe.
func (p *IndexProber) isUp() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.up
}

func (p *IndexProber) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.pinger.Ping(pctx)
	if err != nil && ctx.Err() != nil {
		// shutting down
		return
	}
	up := err == nil

	p.mu.Lock()
	changed := !p.seen || p.up != up
	p.up, p.seen = up, true
	p.mu.Unlock()

	metrics.SetIndexUp(up)

	if !changed {
		return
	}
	if up {
		p.logger.Info("vector index reachable")
	} else {
		p.logger.Warn("vector index unreachable", "error", err)
	}
}
