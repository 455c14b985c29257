package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lieblius/docmirror/internal/adapters/driven/config/file"
	"github.com/lieblius/docmirror/internal/adapters/driven/httpfetch"
	"github.com/lieblius/docmirror/internal/adapters/driven/index"
	storagefs "github.com/lieblius/docmirror/internal/adapters/driven/storage/fs"
	"github.com/lieblius/docmirror/internal/core/domain"
	"github.com/lieblius/docmirror/internal/core/ports/driving"
	"github.com/lieblius/docmirror/internal/core/services"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initial build of the mirror",
	Long: `Fetches the document index and downloads every document.
If the index content changed and a mirror already exists, the mirror
is archived to a timestamped backup and rebuilt from scratch.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMirror(cmd, domain.ModeInit)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an existing mirror",
	Long: `Refreshes an existing mirror: recently-downloaded files are
skipped, stale files are re-fetched and missing files are downloaded.
Never rebuilds the mirror.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMirror(cmd, domain.ModeUpdate)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(updateCmd)
}

func runMirror(cmd *cobra.Command, mode domain.Mode) error {
	cfg, err := file.Load(cfgPath)
	if err != nil {
		return err
	}

	mirror := newMirror(cfg)
	cmd.Printf("Starting %s run...\n", mode)

	report, err := runWithProgress(context.Background(), cmd, mirror, mode)
	if err != nil {
		return fmt.Errorf("%s run failed: %w", mode, err)
	}

	printReport(cmd, report)
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", report.Failed, report.Total())
	}
	return nil
}

// newMirror builds the engine from configuration. The gate and the
// transport client are created here, once per run, and passed down;
// no component reaches for ambient state.
func newMirror(cfg file.Config) driving.Mirror {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "docmirror/" + version
	}

	opts := httpfetch.DefaultOptions()
	opts.Attempts = cfg.RetryAttempts
	opts.UserAgent = userAgent

	gate := httpfetch.NewGate(cfg.RequestsPerSecond)
	fetcher := httpfetch.NewClient(gate, opts)
	idx := index.NewFetcher(cfg.IndexURL, cfg.SnapshotPath, userAgent, 0)
	store := storagefs.NewStore(cfg.MirrorDir)
	archiver := storagefs.NewArchiver(cfg.MirrorDir, cfg.BackupDir)
	policy := domain.NewFreshnessPolicy(cfg.FreshnessWindow())

	return services.NewMirrorOrchestrator(idx, fetcher, store, archiver, policy, cfg.Workers)
}

// runWithProgress runs the mirror while displaying progress updates.
func runWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	mirror driving.Mirror,
	mode domain.Mode,
) (*domain.Report, error) {
	type outcome struct {
		report *domain.Report
		err    error
	}

	done := make(chan outcome, 1)
	go func() {
		report, err := mirror.Run(ctx, mode)
		done <- outcome{report: report, err: err}
	}()

	// Poll status every 500ms.
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case o := <-done:
			if lastCount > 0 {
				cmd.Println()
			}
			return o.report, o.err
		case <-ticker.C:
			if status := mirror.Status(); status.Running && status.Processed > lastCount {
				cmd.Printf("\rProcessing... %d documents", status.Processed)
				lastCount = status.Processed
			}
		}
	}
}

func printReport(cmd *cobra.Command, report *domain.Report) {
	cmd.Printf("%s complete: %d written, %d skipped, %d failed (%.1fs)\n",
		report.Mode, report.Written, report.Skipped, report.Failed, report.Elapsed.Seconds())

	for _, f := range report.Failures {
		cmd.Printf("  failed: %s: %v\n", f.URL, f.Err)
	}
}
