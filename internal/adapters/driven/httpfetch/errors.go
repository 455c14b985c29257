package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpfetch: unexpected status %d for %s", e.Code, e.URL)
}

// Transient reports whether the status is worth retrying.
// Rate limiting (429) and server errors are transient; other client
// errors (404 and friends) are permanent.
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// IsTransient classifies an error for the retry loop.
//
// Transient: 429 and 5xx statuses, transport failures (timeouts,
// connection resets) and truncated bodies. Permanent: other statuses
// and context cancellation.
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Transient()
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF)
}
