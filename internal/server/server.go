// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes. It decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (cmd/server and tests share the same wiring)
// - Clean (main.go stays minimal — just "read config, start the server")
//
// DEPENDENCY INJECTION FLOW:
// main.go creates: config + logger → passed to Server
// Server.New() creates: sqlite.DB → services → handlers
//
// This is the "composition root" pattern — all dependencies are wired in
// one place rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/muaz-405/DevQuest/internal/auth"
	"github.com/muaz-405/DevQuest/internal/handler"
	"github.com/muaz-405/DevQuest/internal/middleware"
	sqliteRepo "github.com/muaz-405/DevQuest/internal/repository/sqlite"
	"github.com/muaz-405/DevQuest/internal/service"
)

// Config holds server configuration.
// Using a struct (instead of individual parameters) makes it easy to add
// options without changing function signatures.
type Config struct {
	Port        int
	DatabaseURL string // SQLite DSN, e.g. "data/devquest.db" or ":memory:"
	JWTSecret   string
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection. When the server shuts down we
// must close it to flush the WAL and release the file lock; that happens
// in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server, opens the database, and runs the bootstrap.
//
// The bootstrap is part of startup on purpose: a fresh deployment gets its
// schema and seed data before the first request arrives, and a restart
// against an existing database is a no-op (the bootstrap probes first).
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	passwords := auth.NewPasswordService()

	if err := db.Bootstrap(context.Background(), passwords); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrapping database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(passwords); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router so tests can drive the full stack through
// httptest without opening a real listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's database connection. Start() does this
// itself; Close exists for callers (tests) that never call Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// POST /api/register               → create account, set token cookie
// POST /api/login                  → verify credentials, set token cookie
// POST /api/logout                 → clear token cookie
// GET  /api/user                   → current user           [auth]
// GET  /api/users/{id}/profile     → public profile
// PUT  /api/profile                → update own profile     [auth]
// GET  /api/categories             → seeded category catalog
// GET  /api/badges                 → seeded badge catalog
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID — assigns a unique ID to each request (for tracing)
// 2. RealIP — extracts the real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
func (s *Server) setupRoutes(passwords *auth.PasswordService) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// DEPENDENCY CHAIN:
	//   s.db (sqlite.DB) implements the repository interfaces
	//   services receive the interfaces, handlers receive the services.
	// The handler never touches the database; the service never touches HTTP.
	authService := service.NewAuthService(s.db, passwords, tokens, s.logger)
	profileService := service.NewProfileService(s.db, s.logger)
	catalogService := service.NewCatalogService(s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/users/{id}/profile", profileHandler.HandleGetProfile)
		r.Get("/categories", catalogHandler.HandleListCategories)
		r.Get("/badges", catalogHandler.HandleListBadges)

		// Routes that require a valid token cookie
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/user", authHandler.HandleCurrentUser)
			r.Put("/profile", profileHandler.HandleUpdateProfile)
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DatabaseURL),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
