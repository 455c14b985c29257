package domain

import "time"

// DefaultFreshnessWindow is how long a downloaded file is treated as
// up to date without re-fetching.
const DefaultFreshnessWindow = time.Hour

// FreshnessPolicy decides whether a local file needs re-downloading.
// It is a staleness cache keyed by wall-clock age, not content hash:
// a window of potential staleness is traded for zero round-trip cost
// on recently-fetched files.
type FreshnessPolicy struct {
	// Window is the maximum age before a file is considered stale.
	Window time.Duration
}

// NewFreshnessPolicy returns a policy with the given window, falling
// back to DefaultFreshnessWindow when the window is not positive.
func NewFreshnessPolicy(window time.Duration) FreshnessPolicy {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	return FreshnessPolicy{Window: window}
}

// ShouldFetch reports whether a download is required.
// Force always fetches; otherwise a file is fetched when absent or
// older than the window.
func (p FreshnessPolicy) ShouldFetch(exists bool, age time.Duration, force bool) bool {
	if force {
		return true
	}
	if !exists {
		return true
	}
	return age >= p.Window
}
