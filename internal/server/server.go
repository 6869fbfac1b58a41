// Package server exposes the export over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ukaji3/imgsheet-go/internal/config"
	"github.com/ukaji3/imgsheet-go/internal/ui"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet"
)

const shutdownTimeout = 15 * time.Second

// Server is the HTTP export service.
type Server struct {
	cfg        *config.Config
	router     *chi.Mux
	httpServer *http.Server
	logger     *slog.Logger
	board      *ui.Board
	prefs      *ui.Preferences
	opts       imgsheet.Options
}

// New creates a server with its routes registered. board and prefs are
// shared with the caller so notifications raised elsewhere show up too.
func New(cfg *config.Config, logger *slog.Logger, board *ui.Board, prefs *ui.Preferences) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		logger: logger,
		board:  board,
		prefs:  prefs,
		opts: imgsheet.Options{
			Logger:     logger,
			FilePrefix: cfg.Output.FilePrefix,
		},
	}

	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(requestLogger(logger))
	s.router.Use(chimiddleware.Recoverer)

	s.routes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/export", s.handleExport)

		r.Get("/toasts", s.handleListToasts)
		r.Delete("/toasts/{id}", s.handleDismissToast)

		r.Get("/theme", s.handleGetTheme)
		r.Post("/theme/toggle", s.handleToggleTheme)
	})
}

// ServeHTTP lets the server be used directly as a handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", slog.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight exports to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}
