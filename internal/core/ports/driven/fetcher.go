package driven

import "context"

// Fetcher delivers the content of one remote document.
//
// Implementations own the retry policy: transient failures (rate
// limiting, timeouts, connection resets) are retried with backoff,
// permanent failures are returned immediately. A returned error is
// always final for that document.
type Fetcher interface {
	// Fetch downloads the document at url and returns its raw bytes.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AdmissionGate bounds the sustained rate of outbound requests.
// One gate instance is shared across all concurrent fetches in a run,
// so the effective rate is global, not per-task.
type AdmissionGate interface {
	// Wait blocks until the next request may be issued.
	Wait(ctx context.Context) error
}
