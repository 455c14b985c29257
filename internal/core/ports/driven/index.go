package driven

import (
	"context"

	"github.com/lieblius/docmirror/internal/core/domain"
)

// IndexResult is the outcome of one index check.
type IndexResult struct {
	// Changed is true when the fetched index differs byte-for-byte
	// from the persisted snapshot (or no snapshot existed yet).
	Changed bool

	// Entries are the parsed document descriptors, in index order.
	Entries []domain.Descriptor
}

// IndexSource retrieves the authoritative document index.
//
// Check fetches the index, compares it to the last persisted snapshot
// and replaces the snapshot only when the content differs. A fetch
// failure wraps domain.ErrIndexUnavailable and is fatal for the run.
type IndexSource interface {
	Check(ctx context.Context) (*IndexResult, error)
}
