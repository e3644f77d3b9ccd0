package webhook

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonny/ranobe-bot/internal/adapter/inbound/webhook/middleware"
	"github.com/jonny/ranobe-bot/internal/metrics"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	PublicKey       ed25519.PublicKey
}

// Server wraps an HTTP server with graceful shutdown support.
type Server struct {
	cfg     ServerConfig
	handler *Handler
	metrics *metrics.Metrics
	logger  *slog.Logger
	srv     *http.Server
}

// NewServer creates a new Server with the given config and interaction handler.
func NewServer(cfg ServerConfig, handler *Handler, m *metrics.Metrics, logger *slog.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		cfg:     cfg,
		handler: handler,
		metrics: m,
		logger:  logger,
	}
}

// SetupRoutes builds and returns an http.Handler with all middleware applied.
// Route layout:
//
//	POST /interactions  - Interaction receiver
//
// Signature verification wraps the whole mux, so any route added later is
// gated as well.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /interactions", s.handler)

	// Apply middleware stack (outermost = first to execute):
	//   BodyReader -> Logging -> SecurityHeaders -> SignatureGate
	var h http.Handler = mux
	h = middleware.SignatureGate(s.cfg.PublicKey, s.metrics)(h)
	h = middleware.SecurityHeaders(h)
	h = middleware.NewLoggingMiddleware(s.logger)(h)
	h = middleware.BodyReader(h)

	return h
}

// Start starts the HTTP server and blocks until ctx is cancelled, then performs
// a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.SetupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("interaction server listening", "port", s.cfg.Port)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("interaction server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
