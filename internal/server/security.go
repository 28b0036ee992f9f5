package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/osse101/GibLife_Go/internal/clock"
	"github.com/osse101/GibLife_Go/internal/logger"
	"github.com/osse101/GibLife_Go/internal/metrics"
)

// clientWindow counts one client's traffic inside a fixed window
type clientWindow struct {
	start      time.Time
	requests   int
	failedAuth int
}

// ClientGuard rate limits clients by IP and raises an alert when a client
// keeps failing admin authentication. Counters reset per client once
// RateLimitWindow has passed since that client's first request.
type ClientGuard struct {
	clock   clock.Clock
	limit   int
	window  time.Duration
	proxies []netip.Prefix

	mu        sync.Mutex
	clients   map[string]*clientWindow
	lastSweep time.Time
}

// NewClientGuard creates a guard. Trusted proxies may be single addresses or
// CIDR prefixes; entries that parse as neither are logged and ignored.
func NewClientGuard(clk clock.Clock, trustedProxies []string) *ClientGuard {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &ClientGuard{
		clock:     clk,
		limit:     RateLimitRequests,
		window:    RateLimitWindow,
		proxies:   parseProxies(trustedProxies),
		clients:   make(map[string]*clientWindow),
		lastSweep: clk.Now(),
	}
}

func parseProxies(entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(a.Unmap(), a.Unmap().BitLen()))
			continue
		}
		slog.Warn(LogMsgBadTrustedProxy, "entry", e)
	}
	return prefixes
}

// windowFor returns the live window for ip. Caller holds mu.
func (g *ClientGuard) windowFor(ip string, now time.Time) *clientWindow {
	if now.Sub(g.lastSweep) > g.window {
		for k, w := range g.clients {
			if now.Sub(w.start) > g.window {
				delete(g.clients, k)
			}
		}
		g.lastSweep = now
	}

	w, ok := g.clients[ip]
	if !ok || now.Sub(w.start) > g.window {
		w = &clientWindow{start: now}
		g.clients[ip] = w
	}
	return w
}

// Allow counts a request from ip and reports whether it is within the limit
func (g *ClientGuard) Allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.windowFor(ip, g.clock.Now())
	w.requests++
	if w.requests <= g.limit {
		return true
	}
	if w.requests == g.limit+1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "limit", g.limit, "window", g.window)
	}
	return false
}

// FailedAuth counts a rejected admin request from ip and returns the count
// in the current window
func (g *ClientGuard) FailedAuth(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.windowFor(ip, g.clock.Now())
	w.failedAuth++
	if w.failedAuth == FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", w.failedAuth)
	}
	return w.failedAuth
}

// ClientIP returns the address of the client behind r. X-Forwarded-For is
// only honoured when the direct peer is a trusted proxy, and then the
// rightmost hop is used since that is the one the proxy saw.
func (g *ClientGuard) ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	peer, err := netip.ParseAddr(host)
	if err != nil || !g.trusted(peer.Unmap()) {
		return host
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return host
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

func (g *ClientGuard) trusted(addr netip.Addr) bool {
	for _, p := range g.proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// RateLimitMiddleware answers 429 once a client exceeds RateLimitRequests in
// RateLimitWindow
func RateLimitMiddleware(guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(guard.ClientIP(r)) {
				metrics.HTTPRequestsRejected.WithLabelValues(metrics.RejectRateLimited).Inc()
				w.Header().Set(HeaderRetryAfter, retryAfterSeconds)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware guards the admin routes with the API key. An empty key
// locks them entirely.
func AuthMiddleware(apiKey string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderAPIKey)
			if apiKey != "" && subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := guard.ClientIP(r)
			count := guard.FailedAuth(ip)
			metrics.HTTPRequestsRejected.WithLabelValues(metrics.RejectUnauthorized).Inc()
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"path", r.URL.Path,
				"has_key", provided != "",
				"failures_in_window", count)

			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				http.Error(w, ErrMsgBodyTooLarge, http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the browser hardening headers. The content
// policy allows the embedded client and its same-origin API and streams.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentTypeOptions, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueDeny)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			if !strings.HasPrefix(r.URL.Path, swaggerPrefix) {
				h.Set(HeaderContentSecurityPolicy, HeaderValueContentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}
