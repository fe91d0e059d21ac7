// Package server serves the static site directory for local development.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/scholarsite/internal/livereload"
)

// Config holds server configuration.
type Config struct {
	Port     int
	SiteDir  string // directory containing index.html and publications.html
	DataDir  string // directory served under /data/; defaults to SiteDir/data
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server serves the site, its data documents and, when a hub is attached,
// the live-reload websocket.
type Server struct {
	cfg        Config
	hub        *livereload.Hub
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. hub may be nil to disable live reload.
func New(cfg Config, hub *livereload.Hub, logger *slog.Logger) *Server {
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(cfg.SiteDir, "data")
	}
	s := &Server{cfg: cfg, hub: hub, logger: logger.With("component", "server")}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.hub != nil {
		r.Get(livereload.Path, s.hub.ServeHTTP)
	}

	data := http.StripPrefix("/data/", http.FileServer(http.Dir(s.cfg.DataDir)))
	r.With(noCache).Get("/data/*", data.ServeHTTP)

	r.Get("/*", s.serveSite)
	return r
}

// noCache keeps browsers from holding on to edited files during development.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) serveSite(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	if strings.HasSuffix(r.URL.Path, "/") {
		name = path.Join(name, "index.html")
	}
	file := filepath.Join(s.cfg.SiteDir, filepath.FromSlash(name))

	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		// Directory listings are never served.
		http.NotFound(w, r)
		return
	}

	if s.hub != nil && strings.HasSuffix(name, ".html") {
		s.serveInjected(w, r, file)
		return
	}
	http.ServeFile(w, r, file)
}

func (s *Server) serveInjected(w http.ResponseWriter, r *http.Request, file string) {
	body, err := os.ReadFile(file)
	if err != nil {
		s.logger.Error("reading page", "path", file, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if r.Method == http.MethodHead {
		return
	}
	w.Write(livereload.Inject(body))
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured port and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("serving site", "addr", ln.Addr().String(), "site_dir", s.cfg.SiteDir, "live_reload", s.hub != nil)
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	return s.httpServer.Shutdown(ctx)
}
