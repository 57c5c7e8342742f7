// Package server provides the HTTP REST API for the recruitment dashboards.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/recruit-stats/internal/server/middleware"
	"github.com/jonathan/recruit-stats/internal/server/ratelimit"
	"github.com/jonathan/recruit-stats/internal/stats"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/jonathan/recruit-stats/internal/server/docs" // registers the OpenAPI document
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	dashboard   *stats.Dashboard
	pinger      Pinger
	rateLimiter ratelimit.Checker
	jwtService  *JWTService
	log         logrus.FieldLogger
}

// Config holds server configuration
type Config struct {
	Port    string
	Options stats.Options
}

// New creates a server reading dashboard figures from store. limiter may be
// nil to disable rate limiting.
func New(cfg Config, store stats.Store, jwtService *JWTService, limiter ratelimit.Checker, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if limiter == nil {
		limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}

	s := &Server{
		dashboard:   stats.NewDashboard(store, cfg.Options),
		rateLimiter: limiter,
		jwtService:  jwtService,
		log:         log,
	}
	if p, ok := store.(Pinger); ok {
		s.pinger = p
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.withRateLimit(s.withLogging(s.withCORS(s.routes())))
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	admin := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireRole(stats.RoleAdmin)(h))
	}
	recruiter := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireRole(stats.RoleRecruiter)(h))
	}

	// Administrator dashboard (global scope)
	mux.Handle("GET /admin/stats", admin(s.handleAdminStats))
	mux.Handle("GET /admin/candidates/by-department", admin(s.handleAdminBreakdown(stats.Candidates, stats.Department)))
	mux.Handle("GET /admin/candidates/by-education", admin(s.handleAdminBreakdown(stats.Candidates, stats.EducationLevel)))
	mux.Handle("GET /admin/candidates/by-month", admin(s.handleAdminCandidatesByMonth))
	mux.Handle("GET /admin/offers/by-department", admin(s.handleAdminBreakdown(stats.Offers, stats.Department)))
	mux.Handle("GET /admin/interviews/by-status", admin(s.handleAdminBreakdown(stats.Interviews, stats.Status)))
	mux.Handle("GET /admin/trends/{entity}", admin(s.handleAdminTrend))

	// Recruiter dashboard (scoped to the caller's offers)
	mux.Handle("GET /recruiter/stats", recruiter(s.handleRecruiterStats))
	mux.Handle("GET /recruiter/candidates/by-department", recruiter(s.handleRecruiterBreakdown(stats.Candidates, stats.Department)))
	mux.Handle("GET /recruiter/candidates/by-education", recruiter(s.handleRecruiterBreakdown(stats.Candidates, stats.EducationLevel)))
	mux.Handle("GET /recruiter/candidates/by-title", recruiter(s.handleRecruiterBreakdown(stats.Candidates, stats.JobTitle)))
	mux.Handle("GET /recruiter/candidates/by-month", recruiter(s.handleRecruiterCandidatesByMonth))
	mux.Handle("GET /recruiter/offers/by-department", recruiter(s.handleRecruiterBreakdown(stats.Offers, stats.Department)))
	mux.Handle("GET /recruiter/interviews/by-status", recruiter(s.handleRecruiterBreakdown(stats.Interviews, stats.Status)))
	mux.Handle("GET /recruiter/offers", recruiter(s.handleRecruiterOffers))
	mux.Handle("GET /recruiter/interviews/upcoming", recruiter(s.handleRecruiterUpcoming))
	mux.Handle("GET /recruiter/interviews/calendar", recruiter(s.handleRecruiterCalendar))

	return mux
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()

	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their request budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			s.log.WithError(err).Warn("health check: database unreachable")
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to its status and logs server-side failures.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("dashboard query failed")
	}
	s.errorResponse(w, status, publicMessage(err))
}

// extractClientID identifies the client by the IP in RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.WithFields(logrus.Fields{
		"client": s.extractClientID(r),
		"path":   r.URL.Path,
		"limit":  info.Limit,
	}).Warn("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
