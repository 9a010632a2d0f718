// Package probe checks whether a link target answers HTTP.
package probe

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 5 * time.Second

// HTTPChecker probes URLs with a HEAD request. Redirects are not followed;
// any status in 200..399 counts as up.
type HTTPChecker struct {
	client *http.Client
}

// NewHTTPChecker returns a checker with the given per-request timeout.
// A non-positive timeout selects DefaultTimeout.
func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{client: &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

// Check reports whether url responded with a non-error status.
func (c *HTTPChecker) Check(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
