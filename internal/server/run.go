package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iwvelando/inflation-estimator/internal/estimate"
	"github.com/iwvelando/inflation-estimator/pkg/constants"
	"go.uber.org/zap"
)

// Server wraps an http.Server configured for the estimator.
type Server struct {
	logger  *zap.Logger
	http    *http.Server
	limiter *RateLimiter
}

// New builds a Server from cfg. A zero RateLimit.Requests disables rate limiting.
func New(cfg *Config, logger *zap.Logger, service *estimate.Service, version string) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *RateLimiter
	if cfg.RateLimit.Requests > 0 {
		limiter = NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	handler := NewHandler(logger, service, Options{
		MaxBodySize: cfg.BodySizeBytes(),
		Version:     version,
		Limiter:     limiter,
	})

	return &Server{
		logger:  logger,
		limiter: limiter,
		http: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting inflation estimator server",
			zap.String("op", "server.Run"),
			zap.String("address", s.http.Addr),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		s.stopLimiter()
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", zap.String("op", "server.Run"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	defer s.stopLimiter()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) stopLimiter() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
