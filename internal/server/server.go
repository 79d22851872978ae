// Package server provides the HTTP server and routing for the fraud
// operations API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/config"
	"github.com/aegisops/aegis/internal/refresh"
	"github.com/aegisops/aegis/internal/reliability"
	"github.com/aegisops/aegis/internal/snapshot"
	accountshandlers "github.com/aegisops/aegis/internal/modules/accounts/handlers"
	alertshandlers "github.com/aegisops/aegis/internal/modules/alerts/handlers"
	compliancehandlers "github.com/aegisops/aegis/internal/modules/compliance/handlers"
	dashboardhandlers "github.com/aegisops/aegis/internal/modules/dashboard/handlers"
	graphhandlers "github.com/aegisops/aegis/internal/modules/graph/handlers"
	riskhandlers "github.com/aegisops/aegis/internal/modules/risk/handlers"
	scenarioshandlers "github.com/aegisops/aegis/internal/modules/scenarios/handlers"
	settingshandlers "github.com/aegisops/aegis/internal/modules/settings/handlers"
	signalshandlers "github.com/aegisops/aegis/internal/modules/signals/handlers"
	"github.com/aegisops/aegis/internal/source"
)

// Handlers bundles the per-module HTTP handlers mounted by the server.
type Handlers struct {
	Dashboard  *dashboardhandlers.Handler
	Alerts     *alertshandlers.Handler
	Risk       *riskhandlers.Handler
	Accounts   *accountshandlers.Handler
	Compliance *compliancehandlers.Handler
	Scenarios  *scenarioshandlers.Handler
	Graph      *graphhandlers.Handler
	Signals    *signalshandlers.Handler
	Settings   *settingshandlers.Handler
}

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Config    *config.Config
	Store     *snapshot.Store
	Selector  *source.Selector
	Refresher *refresh.Refresher
	Backup    *reliability.BackupService // nil when backups are disabled
	Handlers  Handlers
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    Config
}

// New creates the server with middleware and all routes mounted.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !s.cfg.Config.DevMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	systemHandlers := NewSystemHandlers(s.cfg.Store, s.cfg.Selector, s.cfg.Refresher, s.log)

	s.router.Get("/health", systemHandlers.HandleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/dashboard", s.cfg.Handlers.Dashboard.Routes)
		r.Route("/fraud", s.cfg.Handlers.Alerts.Routes)
		r.Route("/risk", s.cfg.Handlers.Risk.Routes)
		r.Route("/accounts", s.cfg.Handlers.Accounts.Routes)
		r.Route("/compliance", s.cfg.Handlers.Compliance.Routes)
		r.Route("/scenarios", s.cfg.Handlers.Scenarios.Routes)
		r.Route("/graph", s.cfg.Handlers.Graph.Routes)
		r.Route("/signals", s.cfg.Handlers.Signals.Routes)
		r.Route("/settings", s.cfg.Handlers.Settings.Routes)

		r.Route("/system", func(r chi.Router) {
			r.Get("/info", systemHandlers.HandleSystemInfo)
			r.Post("/refresh", systemHandlers.HandleTriggerRefresh)

			if s.cfg.Backup != nil {
				backupHandlers := NewBackupHandlers(s.cfg.Backup, s.log)
				r.Get("/backups", backupHandlers.HandleListBackups)
				r.Post("/backups", backupHandlers.HandleTriggerBackup)
			}
		})
	})
}

// loggingMiddleware logs each request at debug level.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("Request handled")
	})
}

// Router exposes the router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains connections and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
