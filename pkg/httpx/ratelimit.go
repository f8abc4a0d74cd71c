package httpx

import (
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the client-side throttle applied to outgoing API
// calls.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// APILimit stays under the platform's documented 30 requests per second per
// IP. Override with: RATELIMIT_API_REQUESTS, RATELIMIT_API_WINDOW_SEC,
// RATELIMIT_API_BURST
var APILimit = RateLimitConfig{
	RequestsPerWindow: 25,
	Window:            time.Second,
	Burst:             5,
}

func init() {
	APILimit = ParseRateLimitFromEnv("API", APILimit)
}

// ParseRateLimitFromEnv reads rate limit configuration from environment variables.
// Environment variables follow the pattern: RATELIMIT_{prefix}_{field}
// For example: RATELIMIT_API_REQUESTS, RATELIMIT_API_WINDOW_SEC, RATELIMIT_API_BURST
func ParseRateLimitFromEnv(prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	config := defaultConfig

	if val := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); val != "" {
		if requests, err := strconv.Atoi(val); err == nil && requests > 0 {
			config.RequestsPerWindow = requests
		}
	}

	if val := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); val != "" {
		if windowSec, err := strconv.Atoi(val); err == nil && windowSec > 0 {
			config.Window = time.Duration(windowSec) * time.Second
		}
	}

	if val := os.Getenv("RATELIMIT_" + prefix + "_BURST"); val != "" {
		if burst, err := strconv.Atoi(val); err == nil && burst > 0 {
			config.Burst = burst
		}
	}

	return config
}

// Limit converts the config into a token bucket rate.
func (c RateLimitConfig) Limit() rate.Limit {
	if c.RequestsPerWindow <= 0 || c.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(c.RequestsPerWindow) / c.Window.Seconds())
}

// ThrottledTransport blocks each request until the limiter grants a token.
// Pause lets callers honor server-issued backoff instructions: no request is
// sent before the pause expires.
type ThrottledTransport struct {
	Base    http.RoundTripper
	limiter *rate.Limiter

	mu         sync.Mutex
	pauseUntil time.Time
}

// NewThrottledTransport wraps base (http.DefaultTransport when nil).
func NewThrottledTransport(base http.RoundTripper, config RateLimitConfig) *ThrottledTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	burst := max(config.Burst, 1)

	return &ThrottledTransport{
		Base:    base,
		limiter: rate.NewLimiter(config.Limit(), burst),
	}
}

// Pause holds back every request for at least d.
func (t *ThrottledTransport) Pause(d time.Duration) {
	if d <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if until := time.Now().Add(d); until.After(t.pauseUntil) {
		t.pauseUntil = until
	}
}

func (t *ThrottledTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	t.mu.Lock()
	wait := time.Until(t.pauseUntil)
	t.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	return t.Base.RoundTrip(r)
}

// RetryAfter parses the Retry-After header in its delay-seconds form.
// Returns 0 when absent or malformed.
func RetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	val := resp.Header.Get("Retry-After")
	if val == "" {
		return 0
	}

	secs, err := strconv.Atoi(val)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
