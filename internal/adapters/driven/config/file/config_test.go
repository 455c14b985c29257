package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docmirror.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultIndexURL, cfg.IndexURL)
	assert.Equal(t, 5.0, cfg.RequestsPerSecond)
	assert.Equal(t, time.Hour, cfg.FreshnessWindow())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
index_url = "https://docs.example.com/llms.txt"
requests_per_second = 2.5
freshness_hours = 0.5
workers = 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.com/llms.txt", cfg.IndexURL)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, 30*time.Minute, cfg.FreshnessWindow())
	assert.Equal(t, 4, cfg.Workers)

	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultMirrorDir, cfg.MirrorDir)
	assert.Equal(t, DefaultRetryAttempts, cfg.RetryAttempts)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero rate", content: "requests_per_second = 0\n"},
		{name: "negative window", content: "freshness_hours = -1\n"},
		{name: "empty index url", content: `index_url = ""` + "\n"},
		{name: "zero workers", content: "workers = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "not = [valid\n"))
	assert.Error(t, err)
}
