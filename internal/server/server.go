package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/expenseflow/spaserver/internal/config"
)

// Server owns the listening HTTP server and its lifecycle. The listener can
// be injected for tests; otherwise Start binds the configured address.
type Server struct {
	httpSrv  *http.Server
	listener net.Listener
	errCh    chan error
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithListener injects a pre-bound listener, typically an ephemeral-port
// listener in tests. When set, the configured port is ignored.
func WithListener(ln net.Listener) Option {
	return func(s *Server) {
		s.listener = ln
	}
}

// New builds a Server around the given handler using the shared timeout
// constants.
func New(cfg *config.Config, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		httpSrv: &http.Server{
			Addr:           fmt.Sprintf(":%d", cfg.Port),
			Handler:        handler,
			ReadTimeout:    config.ServerReadTimeout,
			WriteTimeout:   config.ServerWriteTimeout,
			IdleTimeout:    config.ServerIdleTimeout,
			MaxHeaderBytes: config.ServerMaxHeaderBytes,
		},
		errCh: make(chan error, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start binds the listener (unless one was injected) and begins serving in
// the background. Binding happens synchronously so address-in-use errors are
// reported here rather than from the serve goroutine.
func (s *Server) Start() error {
	if s.listener == nil {
		ln, err := net.Listen("tcp", s.httpSrv.Addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.httpSrv.Addr, err)
		}
		s.listener = ln
	}

	slog.Info("server listening", "addr", s.listener.Addr().String())

	go func() {
		if err := s.httpSrv.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			s.errCh <- err
		}
		close(s.errCh)
	}()

	return nil
}

// Addr returns the bound address. Only valid after Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpSrv.Addr
	}
	return s.listener.Addr().String()
}

// Err reports a serve failure, if any, once the serve loop has exited.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Stop shuts the server down gracefully, honoring the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
