package index

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lieblius/docmirror/internal/core/domain"
	"github.com/lieblius/docmirror/internal/core/ports/driven"
	"github.com/lieblius/docmirror/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.IndexSource = (*Fetcher)(nil)

// Fetcher retrieves the document index and tracks its snapshot.
type Fetcher struct {
	hc           *http.Client
	indexURL     string
	snapshotPath string
	userAgent    string
}

// NewFetcher creates an index fetcher. The snapshot at snapshotPath
// holds the last-seen index content and is replaced only on change.
func NewFetcher(indexURL, snapshotPath, userAgent string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		hc:           &http.Client{Timeout: timeout},
		indexURL:     indexURL,
		snapshotPath: snapshotPath,
		userAgent:    userAgent,
	}
}

// Check fetches the index and compares it to the stored snapshot.
//
// Any fetch failure wraps domain.ErrIndexUnavailable: without the
// index there is no target list and the run must abort. The snapshot
// is rewritten only when the content differs, so a byte-identical
// re-fetch never looks like a change on the next run.
func (f *Fetcher) Check(ctx context.Context) (*driven.IndexResult, error) {
	logger.Info("Fetching index: %s", f.indexURL)

	data, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}

	prev, err := os.ReadFile(f.snapshotPath)
	changed := err != nil || !bytes.Equal(prev, data)

	if changed {
		if err := f.persist(data); err != nil {
			return nil, fmt.Errorf("persist snapshot: %w", err)
		}
		logger.Info("Index content changed, snapshot updated")
	} else {
		logger.Debug("Index content unchanged")
	}

	entries := Parse(data)
	logger.Info("Found %d document URLs", len(entries))

	return &driven.IndexResult{Changed: changed, Entries: entries}, nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrIndexUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	return data, nil
}

// persist atomically replaces the snapshot: written to a temp file in
// the same directory, then renamed into place.
func (f *Fetcher) persist(data []byte) error {
	dir := filepath.Dir(f.snapshotPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), f.snapshotPath)
}
