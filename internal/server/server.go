package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/GibLife_Go/internal/clock"
	"github.com/osse101/GibLife_Go/internal/handler"
	"github.com/osse101/GibLife_Go/internal/logger"
	"github.com/osse101/GibLife_Go/internal/metrics"
	"github.com/osse101/GibLife_Go/internal/session"
	"github.com/osse101/GibLife_Go/internal/sse"
	"github.com/osse101/GibLife_Go/internal/transport/ws"
	"github.com/osse101/GibLife_Go/internal/web"
)

// Options wires the server to the running game
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	AllowedOrigins []string

	Sessions session.Service
	Catalog  handler.CatalogSource
	Hub      *sse.Hub
	WS       *ws.Server
	Clock    clock.Clock // nil uses the wall clock
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the full route tree. Exposed so tests can drive it
// through httptest without a listener.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	guard := NewClientGuard(opts.Clock, opts.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(guard))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(
		handler.ReadinessCheck{Name: "sessions", Checker: opts.Sessions},
		handler.ReadinessCheck{Name: "catalog", Checker: handler.CatalogHealth(opts.Catalog)},
	))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	sessions := handler.NewSessionHandler(opts.Sessions)

	r.Route("/api/v1", func(r chi.Router) {
		// Streams stay uncompressed; gzip buffers would hold back events.
		r.Get("/events", sse.Handler(opts.Hub, opts.Sessions))
		if opts.WS != nil {
			r.Get("/ws", opts.WS.Handler())
		}

		r.Group(func(r chi.Router) {
			r.Use(gzipMiddleware)

			r.Get("/catalog", handler.HandleGetCatalog(opts.Catalog))

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", sessions.HandleCreate)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", sessions.HandleGet)
					r.Delete("/", sessions.HandleDelete)
					r.Post("/wallet/connect", sessions.HandleConnectWallet)
					r.Post("/wallet/disconnect", sessions.HandleDisconnectWallet)
					r.Post("/action", sessions.HandlePrimaryAction)
					r.Post("/tasks", sessions.HandleStartTask)
					r.Post("/menu", sessions.HandleNavigateMenu)
					r.Post("/store", sessions.HandleStore)
					r.Post("/skills", sessions.HandleSkills)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(AuthMiddleware(opts.APIKey, guard))

				r.Post("/catalog/reload", handler.HandleReloadCatalog(opts.Catalog))
				r.Get("/sessions", handler.HandleListSessions(opts.Sessions))
				r.Delete("/sessions/{id}", handler.HandleDeleteSession(opts.Sessions))
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Browser client
	r.With(gzipMiddleware).Handle("/*", web.Handler())

	return cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", HeaderAPIKey},
	}).Handler(r)
}

func gzipMiddleware(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach Flush and Hijack on the
// underlying writer for SSE and WebSocket routes.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		// Upgrades need the raw writer for Hijack
		if isUpgrade(r) {
			next.ServeHTTP(w, r)
			log.Info(LogMsgRequestCompleted,
				"method", r.Method,
				"path", r.URL.Path,
				"status", http.StatusSwitchingProtocols,
				"duration_ms", time.Since(start).Milliseconds())
			return
		}

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

func redactHeaders(h http.Header) http.Header {
	sanitized := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			sanitized[k] = []string{RedactedValue}
		} else {
			sanitized[k] = v
		}
	}
	return sanitized
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
