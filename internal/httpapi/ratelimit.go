package httpapi

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// buckets is a per-IP token bucket set. Refill happens lazily on each
// request, so idle entries only cost memory, not a goroutine.
type buckets struct {
	rate  float64 // tokens per second
	burst float64

	mu sync.Mutex
	m  map[string]*bucket
}

type bucket struct {
	tokens float64
	last   time.Time
}

func (b *buckets) allow(key string) bool {
	now := time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()

	bk := b.m[key]
	if bk == nil {
		bk = &bucket{tokens: b.burst, last: now}
		b.m[key] = bk
	}
	bk.tokens += now.Sub(bk.last).Seconds() * b.rate
	if bk.tokens > b.burst {
		bk.tokens = b.burst
	}
	bk.last = now

	if bk.tokens < 1 {
		return false
	}
	bk.tokens--
	return true
}

// rateLimit limits by client IP. reqPerMin <= 0 disables it.
func rateLimit(reqPerMin, burst int) func(http.Handler) http.Handler {
	if reqPerMin <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	b := &buckets{
		rate:  float64(reqPerMin) / 60.0,
		burst: float64(burst),
		m:     make(map[string]*bucket),
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !b.allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	// honor X-Forwarded-For if behind a proxy
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
