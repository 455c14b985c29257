package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lieblius/docmirror/internal/core/domain"
)

const indexBody = "## Docs\n\n- [Intro](https://docs.example.com/en/docs/intro)\n"

func newIndexServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckFirstRunIsChange(t *testing.T) {
	srv := newIndexServer(t, indexBody, http.StatusOK)
	snapshot := filepath.Join(t.TempDir(), "llms.txt")
	f := NewFetcher(srv.URL, snapshot, "docmirror/test", 0)

	result, err := f.Check(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Changed)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "docs/intro.md", result.Entries[0].LocalPath)

	stored, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	assert.Equal(t, indexBody, string(stored))
}

func TestCheckUnchangedDoesNotRewriteSnapshot(t *testing.T) {
	srv := newIndexServer(t, indexBody, http.StatusOK)
	snapshot := filepath.Join(t.TempDir(), "llms.txt")
	require.NoError(t, os.WriteFile(snapshot, []byte(indexBody), 0o644))

	// Backdate the snapshot so any rewrite would be visible.
	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, os.Chtimes(snapshot, past, past))

	f := NewFetcher(srv.URL, snapshot, "", 0)
	result, err := f.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Changed)

	info, err := os.Stat(snapshot)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Before(past.Add(time.Minute)),
		"snapshot must not be rewritten when content is unchanged")
}

func TestCheckChangedReplacesSnapshot(t *testing.T) {
	srv := newIndexServer(t, indexBody, http.StatusOK)
	snapshot := filepath.Join(t.TempDir(), "llms.txt")
	require.NoError(t, os.WriteFile(snapshot, []byte("old content\n"), 0o644))

	f := NewFetcher(srv.URL, snapshot, "", 0)
	result, err := f.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Changed)

	stored, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	assert.Equal(t, indexBody, string(stored))
}

func TestCheckServerErrorIsFatal(t *testing.T) {
	srv := newIndexServer(t, "", http.StatusInternalServerError)
	f := NewFetcher(srv.URL, filepath.Join(t.TempDir(), "llms.txt"), "", 0)

	_, err := f.Check(context.Background())
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestCheckUnreachableServerIsFatal(t *testing.T) {
	srv := newIndexServer(t, "", http.StatusOK)
	url := srv.URL
	srv.Close()

	f := NewFetcher(url, filepath.Join(t.TempDir(), "llms.txt"), "", time.Second)
	_, err := f.Check(context.Background())
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestCheckSendsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte(indexBody))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, filepath.Join(t.TempDir(), "llms.txt"), "docmirror/test", 0)
	_, err := f.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "docmirror/test", ua)
}
