package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server runs the HTTP front end.
type Server struct {
	httpServer *http.Server
	log        catalogd.Logger
}

// New creates a Server listening on addr and routing to svc. Panics if
// svc or log is nil.
func New(addr string, svc *Service, log catalogd.Logger) *Server {
	if svc == nil {
		panic("svc cannot be nil")
	}
	if log == nil {
		panic("log cannot be nil")
	}
	if addr == "" {
		addr = catalogd.DefaultListenAddr
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", svc.handleCatalog)
	mux.HandleFunc("GET /healthz", svc.handleHealthz)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           withMiddleware(mux, log),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		log: log,
	}
}

// Handler returns the fully wired HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully with a
// bounded drain. It returns nil on clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
