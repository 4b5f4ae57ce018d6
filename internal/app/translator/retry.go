package translator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// backoff is the retry schedule for one paragraph: exponential doubling
// starting at base, capped at max delay, at most maxAttempts calls total.
type backoff struct {
	attempt     int
	maxAttempts int
	base        time.Duration
	cap         time.Duration
}

func newBackoff(maxAttempts int, base, cap time.Duration) *backoff {
	return &backoff{maxAttempts: maxAttempts, base: base, cap: cap}
}

// Next returns the delay before the next attempt, or false when the
// attempt budget is exhausted. The first call returns the base delay.
func (b *backoff) Next() (time.Duration, bool) {
	// attempt counts completed calls; one initial call plus retries.
	if b.attempt >= b.maxAttempts-1 {
		return 0, false
	}

	d := b.base
	for i := 0; i < b.attempt; i++ {
		d *= 2
		if d >= b.cap {
			d = b.cap
			break
		}
	}
	b.attempt++

	return d, true
}

// isTransient reports whether a completion error is worth retrying:
// rate limiting, server-side failures, request timeouts. Everything else
// (auth errors, invalid requests, cancellation of the whole run) fails
// the paragraph immediately.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusRequestTimeout:
			return true
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return true
		case apiErr.StatusCode >= 500:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// describeErr renders a completer error for logs and wrapping. SDK errors
// can arrive without their HTTP request/response attached (the transport
// failed before a response was read), and their own Error method nil-derefs
// on those, so they are summarized from the status code instead.
func describeErr(err error) string {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && (apiErr.Request == nil || apiErr.Response == nil) {
		return fmt.Sprintf("api error: status %d", apiErr.StatusCode)
	}
	return err.Error()
}
