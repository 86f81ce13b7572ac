// Package httpapi exposes the water-level API plus health, readiness, and
// metrics endpoints. The water-level routes always answer 200: upstream
// failures surface as flagged simulated data, never as HTTP errors.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moriverguide/river-conditions-service/internal/adapter/history"
	"github.com/moriverguide/river-conditions-service/internal/aggregator"
	"github.com/moriverguide/river-conditions-service/internal/domain"
)

// cdnCacheControl is applied to the water-level route family so a fronting
// reverse proxy can cache responses independently of the in-process cache.
const cdnCacheControl = "s-maxage=3600, stale-while-revalidate=86400"

// Default and maximum lookback for the history endpoint, in hours.
const (
	defaultHistoryHours = 72
	maxHistoryHours     = 168
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// WaterLevelSource provides the classified per-river readings.
type WaterLevelSource interface {
	ReadinessChecker
	WaterLevels(ctx context.Context) map[string]aggregator.RiverConditions
	RiverDetail(ctx context.Context, riverID string) (aggregator.RiverConditions, bool)
}

// HistoryReader serves persisted readings. Nil disables the history route.
type HistoryReader interface {
	RiverHistory(ctx context.Context, riverID string, since time.Time) ([]history.Reading, error)
}

// Server exposes the water-level API over HTTP.
type Server struct {
	httpServer *http.Server
	levels     WaterLevelSource
	history    HistoryReader
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes registered. history
// may be nil when persistence is disabled.
func NewServer(addr string, levels WaterLevelSource, historyReader HistoryReader, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		levels:  levels,
		history: historyReader,
		logger:  logger,
	}

	mux.HandleFunc("GET /api/water-levels", s.handleWaterLevels)
	mux.HandleFunc("GET /api/water-levels/{river}", s.handleRiverDetail)
	mux.HandleFunc("GET /api/water-levels/{river}/history", s.handleRiverHistory)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(levels))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleWaterLevels(w http.ResponseWriter, r *http.Request) {
	data := s.levels.WaterLevels(r.Context())
	w.Header().Set("Cache-Control", cdnCacheControl)
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleRiverDetail(w http.ResponseWriter, r *http.Request) {
	riverID := r.PathValue("river")
	rc, ok := s.levels.RiverDetail(r.Context(), riverID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown river: " + riverID})
		return
	}
	w.Header().Set("Cache-Control", cdnCacheControl)
	writeJSON(w, http.StatusOK, rc)
}

func (s *Server) handleRiverHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reading history is not enabled"})
		return
	}
	riverID := r.PathValue("river")
	if _, ok := domain.RiverByID(riverID); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown river: " + riverID})
		return
	}

	hours := defaultHistoryHours
	if v := r.URL.Query().Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryHours {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "hours must be an integer between 1 and " + strconv.Itoa(maxHistoryHours),
			})
			return
		}
		hours = n
	}

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	readings, err := s.history.RiverHistory(r.Context(), riverID, since)
	if err != nil {
		s.logger.Error("river history query failed", "river", riverID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	if readings == nil {
		readings = []history.Reading{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"river":    riverID,
		"hours":    hours,
		"readings": readings,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
