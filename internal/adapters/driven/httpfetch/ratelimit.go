package httpfetch

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/lieblius/docmirror/internal/core/ports/driven"
)

// DefaultRequestsPerSecond is the default throughput ceiling.
const DefaultRequestsPerSecond = 5

// Ensure Gate implements the interface.
var _ driven.AdmissionGate = (*Gate)(nil)

// Gate enforces the maximum sustained request rate for a run.
// One instance is shared by every concurrent fetch, so the ceiling is
// global regardless of worker count. Burst is fixed at one admission:
// requests are paced, not batched.
type Gate struct {
	limiter *rate.Limiter
}

// NewGate creates a gate admitting perSecond operations per second.
// perSecond <= 0 selects DefaultRequestsPerSecond.
func NewGate(perSecond float64) *Gate {
	if perSecond <= 0 {
		perSecond = DefaultRequestsPerSecond
	}
	return &Gate{limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// Wait blocks until the next request may be issued.
func (g *Gate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}
