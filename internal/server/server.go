// Package server is the web visualiser. It owns one search session at a time
// and steps it on request or over a websocket stream.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/metrics"
	rnd "github.com/pdrpinto/gridastar/internal/render"
	"github.com/pdrpinto/gridastar/internal/scenario"
)

//go:embed static/index.html
var static embed.FS

// ErrNoSession is returned when stepping before /api/init.
var ErrNoSession = errors.New("engine not initialized")

// Server serves the visualiser API.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	validate *validator.Validate
	router   chi.Router

	mu      sync.Mutex
	session *session
}

type session struct {
	problem  scenario.Problem
	stepper  *astar.Stepper
	canvas   *rnd.Canvas
	observed bool
}

// New wires routes, validation and a private metrics registry.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  metrics.New(registry),
		validate: validator.New(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/", s.handleIndex)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get("/ws", s.handleStream)
	r.Route("/api", func(r chi.Router) {
		r.Post("/init", s.handleInit)
		r.Post("/next", s.handleNext)
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/frame.png", s.handleFrame)
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Serve accepts connections on ln until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// ListenAndServe binds cfg.Server.Addr, falling back to a random local port
// when it is taken.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		s.logger.Warn("address unavailable, using a random port", "addr", s.cfg.Server.Addr, "error", err)
		if ln, err = net.Listen("tcp", "127.0.0.1:0"); err != nil {
			return err
		}
	}
	s.logger.Info("visualiser listening", "url", "http://"+ln.Addr().String())
	return s.Serve(ctx, ln)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index.html not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// start replaces the current session.
func (s *Server) start(p scenario.Problem, opts []astar.Option) (*session, error) {
	stepper, err := astar.NewStepper(p.Grid, p.Start, p.End, opts...)
	if err != nil {
		return nil, err
	}
	sess := &session{
		problem: p,
		stepper: stepper,
		canvas:  rnd.NewCanvas(p.Grid, p.Start, p.End),
	}
	sess.canvas.Apply(stepper.DrainDirty())

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return sess, nil
}

// advance steps the current session up to count times and returns what
// changed.
func (s *Server) advance(count int) (StepResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return StepResponse{}, ErrNoSession
	}
	sess := s.session

	var dirty []astar.DirtyNode
	for i := 0; i < count && !sess.stepper.IsDone(); i++ {
		if _, err := sess.stepper.Step(); err != nil {
			return StepResponse{}, err
		}
		s.metrics.Steps.Inc()
		dirty = append(dirty, sess.stepper.DrainDirty()...)
	}
	sess.canvas.Apply(dirty)

	if sess.stepper.IsDone() && !sess.observed {
		sess.observed = true
		s.metrics.ObserveSearch(sess.stepper.Outcome(), sess.stepper.Result())
	}

	snap := sess.stepper.Snapshot()
	return StepResponse{
		Step:    snap.StepIndex,
		Current: snap.Current,
		Outcome: snap.Outcome,
		Done:    snap.Done,
		Dirty:   dirty,
		Path:    snap.Path,
	}, nil
}
