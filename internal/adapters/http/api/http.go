// Package api serves the operator endpoint: metrics, a session snapshot and
// a manual reset.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/pacer/internal/domain/types"
	"github.com/okian/pacer/pkg/logger"
	"github.com/okian/pacer/pkg/metrics"
)

// HTTP server timeouts.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Session is what the handlers need from the running session.
type Session interface {
	Stats() types.SessionStats
	Reset(ctx context.Context)
}

// Server wires HTTP routes for the operator endpoint.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	resetHandler  *ResetHandler
	logger        logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(session Session, opts ...Option) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(metrics.GetRegistry()),
		statsHandler:  NewStatsHandler(session),
		resetHandler:  NewResetHandler(session),
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("api")
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz", s.logger))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats", s.logger))
	mux.HandleFunc("/reset", MetricsMiddleware(s.resetHandler.HandleReset, "reset", s.logger))
}

// Serve runs the endpoint on addr until ctx is cancelled, then shuts it down.
func (s *Server) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.Register(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "starting operator endpoint", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Join(ErrServe, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(ErrServe, err)
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
