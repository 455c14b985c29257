package domain

import "time"

// Mode selects how a mirror run treats the existing mirror.
type Mode string

// Available run modes.
const (
	// ModeInit is the initial build: every document is fetched with
	// force, and a changed index triggers a backup-and-clean rebuild.
	ModeInit Mode = "init"

	// ModeUpdate refreshes an existing mirror: fresh files are
	// skipped, missing files are forced, and no rebuild ever occurs.
	ModeUpdate Mode = "update"
)

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	return m == ModeInit || m == ModeUpdate
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Outcome is the per-descriptor result of one dispatch.
type Outcome int

// Dispatch outcomes.
const (
	// OutcomeWritten means content was downloaded and written.
	OutcomeWritten Outcome = iota

	// OutcomeSkipped means the local copy was still fresh.
	OutcomeSkipped

	// OutcomeFailed means the document permanently failed after
	// exhausting its retry budget.
	OutcomeFailed
)

// String returns the string representation.
func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of dispatching one descriptor.
// Results are aggregated into a Report and never persisted.
type Result struct {
	Descriptor Descriptor
	Outcome    Outcome
	Kind       ContentKind
	Err        error
}

// Failure names one permanently failed document so a later update run
// can retry just the gaps.
type Failure struct {
	URL  string
	Path string
	Err  error
}

// Report is the aggregate summary of one mirror run.
type Report struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	// Mode is the run mode that produced this report.
	Mode Mode

	// Started is when the run began.
	Started time.Time

	// Elapsed is the total run duration, set by Complete.
	Elapsed time.Duration

	// Rebuilt is true when the run archived and cleared the mirror.
	Rebuilt bool

	Written int
	Skipped int
	Failed  int

	// Failures lists every permanently failed document.
	Failures []Failure
}

// Add records one dispatch result.
func (r *Report) Add(res Result) {
	switch res.Outcome {
	case OutcomeWritten:
		r.Written++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
		r.Failures = append(r.Failures, Failure{
			URL:  res.Descriptor.URL,
			Path: res.Descriptor.LocalPath,
			Err:  res.Err,
		})
	}
}

// Total returns the number of descriptors the run resolved.
func (r *Report) Total() int {
	return r.Written + r.Skipped + r.Failed
}

// Complete stamps the run duration.
func (r *Report) Complete(now time.Time) {
	r.Elapsed = now.Sub(r.Started)
}
