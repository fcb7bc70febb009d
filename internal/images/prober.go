package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"farmdir/internal/eventbus"
)

// Prober checks whether image URLs load, publishing an ImageProbedEvent
// for each. Every URL is probed at most once per Prober.
type Prober struct {
	client      *http.Client
	bus         eventbus.EventBus
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// NewProber creates a prober. bus may be nil when only return values are
// of interest.
func NewProber(bus eventbus.EventBus, concurrency int, timeout time.Duration, logger *slog.Logger) *Prober {
	if concurrency < 1 {
		concurrency = 4
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		client:      &http.Client{},
		bus:         bus,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger.With("component", "images"),
		seen:        make(map[string]bool),
	}
}

// Probe checks every URL not probed before and blocks until done or ctx is
// cancelled. It returns the outcome for the URLs it probed.
func (p *Prober) Probe(ctx context.Context, urls []string) map[string]bool {
	pending := p.claim(urls)
	results := make(map[string]bool, len(pending))
	if len(pending) == 0 {
		return results
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, u := range pending {
		g.Go(func() error {
			err := p.check(ctx, u)
			if ctx.Err() != nil {
				// Shutting down; allow a later session to probe again
				p.release(u)
				return nil
			}
			ok := err == nil
			if !ok {
				p.logger.Debug("image failed to load", "url", u, "error", err)
			}
			mu.Lock()
			results[u] = ok
			mu.Unlock()
			if p.bus != nil {
				p.bus.Publish(eventbus.ImageProbedEvent{URL: u, OK: ok, Err: err})
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Prober) claim(urls []string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, u := range urls {
		if u == "" || p.seen[u] {
			continue
		}
		p.seen[u] = true
		out = append(out, u)
	}
	return out
}

func (p *Prober) release(u string) {
	p.mu.Lock()
	delete(p.seen, u)
	p.mu.Unlock()
}

func (p *Prober) check(ctx context.Context, u string) error {
	if strings.HasPrefix(u, "data:") {
		return nil
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("unsupported image url %q", u)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.request(ctx, http.MethodHead, u)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = p.request(ctx, http.MethodGet, u)
	}
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("image %s: status %d", u, status)
	}
	return nil
}

func (p *Prober) request(ctx context.Context, method, u string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create image request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, nil
}
