package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lieblius/docmirror/internal/core/ports/driven"
	"github.com/lieblius/docmirror/internal/logger"
)

// Options configures the fetch client.
type Options struct {
	// Attempts is the total number of delivery attempts per document.
	// Default: 3
	Attempts int

	// Backoff is the delay before the first retry; it doubles on each
	// further retry (1s, 2s, 4s, ...).
	// Default: 1s
	Backoff time.Duration

	// Timeout for individual requests.
	// Default: 30s
	Timeout time.Duration

	// UserAgent is sent on every request.
	UserAgent string
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Attempts:  3,
		Backoff:   time.Second,
		Timeout:   30 * time.Second,
		UserAgent: "docmirror/1.0",
	}
}

// Ensure Client implements the interface.
var _ driven.Fetcher = (*Client)(nil)

// Client downloads single documents with retry, backoff and shared
// rate limiting.
type Client struct {
	hc   *http.Client
	gate driven.AdmissionGate
	opts Options

	// sleep is replaced in tests to observe backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a fetch client issuing requests through gate.
func NewClient(gate driven.AdmissionGate, opts Options) *Client {
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultOptions().Attempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultOptions().Backoff
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}

	return &Client{
		hc:    &http.Client{Timeout: opts.Timeout},
		gate:  gate,
		opts:  opts,
		sleep: sleepContext,
	}
}

// Fetch downloads the document at url and returns its raw bytes.
//
// Transient failures are retried up to the attempt budget with
// exponential backoff; permanent failures return immediately without
// consuming the budget. Every attempt acquires a gate admission
// before issuing the request.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.opts.Attempts; attempt++ {
		if attempt > 0 {
			delay := c.opts.Backoff << (attempt - 1)
			logger.Debug("Retrying %s in %s (attempt %d/%d)", url, delay, attempt+1, c.opts.Attempts)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := c.gate.Wait(ctx); err != nil {
			return nil, err
		}

		data, err := c.do(ctx, url)
		if err == nil {
			return data, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("fetch failed after %d attempts: %w", c.opts.Attempts, lastErr)
}

// do performs one GET attempt.
func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// sleepContext waits for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
