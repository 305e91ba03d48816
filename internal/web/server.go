package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"crystalview/internal/config"
	"crystalview/internal/viewer"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

// Options configure a Server.
type Options struct {
	DefaultID string
	Materials []config.Material
	Logger    *zap.Logger
}

// Server is the HTTP front-end of the viewer.
type Server struct {
	ev        *viewer.Evaluator
	defaultID string
	materials []config.Material
	logger    *zap.Logger
	policy    *bluemonday.Policy
	tmpl      *template.Template
	router    *chi.Mux
}

// New builds a Server and its routes.
func New(ev *viewer.Evaluator, opts Options) *Server {
	s := &Server{
		ev:        ev,
		defaultID: opts.DefaultID,
		materials: opts.Materials,
		logger:    opts.Logger,
		policy:    bluemonday.StrictPolicy(),
		tmpl:      template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.defaultID == "" {
		s.defaultID = config.DefaultMaterial
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/structures", func(r chi.Router) {
		r.Get("/{id}", s.handleStructure)
	})
	s.router = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
