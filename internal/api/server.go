package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"studyplan/internal/availability"
	"studyplan/internal/cache"
	"studyplan/internal/models"
)

// Store is the persistence surface the API needs.
type Store interface {
	ListCommitments(ctx context.Context) ([]models.Commitment, error)
	CreateCommitment(ctx context.Context, c *models.Commitment) (int64, error)
	DeleteCommitment(ctx context.Context, id int64) error
	ListAbsences(ctx context.Context) ([]models.Absence, error)
	CreateAbsence(ctx context.Context, a *models.Absence) (int64, error)
	DeleteAbsence(ctx context.Context, id int64) error
	GetPreferences(ctx context.Context) (models.Preferences, error)
	SetPreferences(ctx context.Context, p *models.Preferences) error
}

// Config holds the server's tunables.
type Config struct {
	WeekStart       time.Weekday
	RateLimitPerSec int
	RateLimitBurst  int
}

// Server is the JSON HTTP API over the availability engine and its store.
type Server struct {
	store    Store
	scanner  *availability.Scanner
	cache    *cache.Cache
	cfg      Config
	logger   *zerolog.Logger
	mux      *http.ServeMux
	limiters *visitorLimiters
}

// New creates the API server. cache may be nil to disable caching.
func New(store Store, scanner *availability.Scanner, c *cache.Cache, cfg Config, logger *zerolog.Logger) *Server {
	if cfg.RateLimitPerSec <= 0 {
		cfg.RateLimitPerSec = 10
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 20
	}

	s := &Server{
		store:   store,
		scanner: scanner,
		cache:   c,
		cfg:     cfg,
		logger:  logger,
		mux:     http.NewServeMux(),
		limiters: &visitorLimiters{
			rps:      rate.Limit(cfg.RateLimitPerSec),
			burst:    cfg.RateLimitBurst,
			visitors: make(map[string]*rate.Limiter),
		},
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/availability", s.handleAvailability)
	s.mux.HandleFunc("/api/availability/export", s.handleAvailabilityExport)
	s.mux.HandleFunc("/api/commitments", s.handleCommitments)
	s.mux.HandleFunc("/api/commitments/", s.handleCommitmentByID)
	s.mux.HandleFunc("/api/absences", s.handleAbsences)
	s.mux.HandleFunc("/api/absences/", s.handleAbsenceByID)
	s.mux.HandleFunc("/api/preferences", s.handlePreferences)

	return s
}

// Handler returns the server's handler chain: rate limiting, request IDs
// and request logging around the route mux.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.withRateLimit(s.mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// visitorLimiters keeps one token bucket per client IP.
type visitorLimiters struct {
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	visitors map[string]*rate.Limiter
}

func (v *visitorLimiters) get(ip string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()
	lim, ok := v.visitors[ip]
	if !ok {
		lim = rate.NewLimiter(v.rps, v.burst)
		v.visitors[ip] = lim
	}
	return lim
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiters.get(ip).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
