package driving

import (
	"context"

	"github.com/lieblius/docmirror/internal/core/domain"
)

// Mirror runs the download-orchestration engine.
type Mirror interface {
	// Run executes one mirror run in the given mode and returns the
	// aggregate report. A nil error with report.Failed > 0 is a
	// partial failure: the run completed but some documents could
	// not be fetched.
	Run(ctx context.Context, mode domain.Mode) (*domain.Report, error)

	// Status returns progress for the active run, or an idle status
	// when nothing is running.
	Status() *RunStatus
}

// RunStatus is a point-in-time snapshot of run progress.
type RunStatus struct {
	Running   bool
	Mode      domain.Mode
	Processed int
	Failed    int
}
