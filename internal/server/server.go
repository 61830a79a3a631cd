package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/MawRitual_Go/internal/database"
	"github.com/osse101/MawRitual_Go/internal/eventlog"
	"github.com/osse101/MawRitual_Go/internal/handler"
	"github.com/osse101/MawRitual_Go/internal/logger"
	"github.com/osse101/MawRitual_Go/internal/metrics"
	"github.com/osse101/MawRitual_Go/internal/ritual"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
}

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	ritualService   ritual.Service
	eventlogService eventlog.Service
}

// NewServer creates a new Server instance. dbPool is nil for the memory backend.
func NewServer(opts Options, dbPool database.Pool, ritualService ritual.Service, eventlogService eventlog.Service) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, ritualService, eventlogService),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:          dbPool,
		ritualService:   ritualService,
		eventlogService: eventlogService,
	}
}

// NewRouter builds the chi router with the middleware stack and every route
func NewRouter(opts Options, dbPool database.Pool, ritualService ritual.Service, eventlogService eventlog.Service) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	proxies := ParseTrustedProxies(opts.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(RateLimitMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, ritualService))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())

	ritualHandler := handler.NewRitualHandler(ritualService)
	adminHandler := handler.NewAdminHandler(ritualService)
	eventsHandler := handler.NewEventsHandler(eventlogService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/ritual", func(r chi.Router) {
			r.Post("/sacrifice", ritualHandler.HandleSacrifice)
			r.Post("/cosmetic", ritualHandler.HandleCosmetic)
			r.Post("/convert", ritualHandler.HandleConvert)

			r.Get("/pool/{kind}", ritualHandler.HandleGetPool)
			r.Get("/odds/{kind}", ritualHandler.HandleGetOdds)
			r.Get("/success-config/{tier}", ritualHandler.HandleGetSuccessConfig)
			r.Get("/preview", ritualHandler.HandlePreview)
			r.Get("/balances", ritualHandler.HandleGetBalances)
			r.Get("/events", eventsHandler.HandleGetEvents)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/pool", adminHandler.HandleSetPool)
			r.Post("/cooldown", adminHandler.HandleSetCooldown)
			r.Post("/conversion", adminHandler.HandleSetConversion)
			r.Post("/supply-cap", adminHandler.HandleSetSupplyCap)
			r.Post("/pause", adminHandler.HandleSetPaused)
			r.Post("/success-config", adminHandler.HandleSetSuccessConfig)
			r.Post("/ritual", adminHandler.HandleSetRitual)
			r.Get("/state", adminHandler.HandleGetState)
		})
	})

	return r
}

// statusWriter keeps the status the handler wrote for the completion log
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func isProbePath(path string) bool {
	for _, p := range ProbePaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// redactHeaders copies h with credentials replaced by RedactedValue
func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// requestID reuses a caller supplied UUID so a client can correlate its own
// logs, and mints one otherwise.
func requestID(r *http.Request) string {
	if id := r.Header.Get(HeaderRequestID); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return logger.GenerateRequestID()
}

// loggingMiddleware tags the request context with a request id, echoes it in
// X-Request-ID and logs start and completion. Probe endpoints are not logged.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isProbePath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		id := requestID(r)
		w.Header().Set(HeaderRequestID, id)

		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx).With("method", r.Method, "path", r.URL.Path)

		log.Info(LogMsgRequestStarted,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"duration", elapsed)
	})
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
