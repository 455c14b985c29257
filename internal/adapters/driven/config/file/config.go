package file

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultIndexURL          = "https://docs.anthropic.com/llms.txt"
	DefaultMirrorDir         = "docs"
	DefaultSnapshotPath      = "llms.txt"
	DefaultBackupDir         = "."
	DefaultRequestsPerSecond = 5.0
	DefaultFreshnessHours    = 1.0
	DefaultWorkers           = 8
	DefaultRetryAttempts     = 3
)

// Config is the externally tunable surface of the mirror engine.
type Config struct {
	// IndexURL is the well-known index resource.
	IndexURL string `toml:"index_url"`

	// MirrorDir is the root of the local mirror tree.
	MirrorDir string `toml:"mirror_dir"`

	// SnapshotPath holds the last-fetched index content.
	SnapshotPath string `toml:"snapshot_path"`

	// BackupDir receives timestamped backup archives.
	BackupDir string `toml:"backup_dir"`

	// RequestsPerSecond is the outbound throughput ceiling shared by
	// all concurrent downloads.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// FreshnessHours is the staleness window for cached files.
	FreshnessHours float64 `toml:"freshness_hours"`

	// Workers is the size of the download worker pool.
	Workers int `toml:"workers"`

	// RetryAttempts is the total delivery attempts per document.
	RetryAttempts int `toml:"retry_attempts"`

	// UserAgent overrides the default request User-Agent.
	UserAgent string `toml:"user_agent"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		IndexURL:          DefaultIndexURL,
		MirrorDir:         DefaultMirrorDir,
		SnapshotPath:      DefaultSnapshotPath,
		BackupDir:         DefaultBackupDir,
		RequestsPerSecond: DefaultRequestsPerSecond,
		FreshnessHours:    DefaultFreshnessHours,
		Workers:           DefaultWorkers,
		RetryAttempts:     DefaultRetryAttempts,
	}
}

// Load reads configuration from path. A missing file is not an
// error: defaults apply. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FreshnessWindow returns the staleness window as a duration.
func (c Config) FreshnessWindow() time.Duration {
	return time.Duration(c.FreshnessHours * float64(time.Hour))
}

func (c Config) validate() error {
	if c.IndexURL == "" {
		return errors.New("config: index_url must not be empty")
	}
	if c.MirrorDir == "" {
		return errors.New("config: mirror_dir must not be empty")
	}
	if c.RequestsPerSecond <= 0 {
		return errors.New("config: requests_per_second must be positive")
	}
	if c.FreshnessHours <= 0 {
		return errors.New("config: freshness_hours must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.RetryAttempts <= 0 {
		return errors.New("config: retry_attempts must be positive")
	}
	return nil
}
