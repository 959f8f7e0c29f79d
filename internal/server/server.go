// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: New builds every dependency in one place
// and hands each layer only what it needs.
//
//	sqlite.DB ─┬─> ProductService ─> ProductHandler
//	           └─> SeedService ─────> SeedHandler
//	upstream clients + PasswordService ─┘
//
// The Server owns the database connection. Everything else borrows it and
// it is closed once, when Start returns.
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
	"github.com/go-chi/cors"

	"github.com/sakif/storefront-api/internal/auth"
	"github.com/sakif/storefront-api/internal/handler"
	"github.com/sakif/storefront-api/internal/middleware"
	sqliteRepo "github.com/sakif/storefront-api/internal/repository/sqlite"
	"github.com/sakif/storefront-api/internal/service"
	"github.com/sakif/storefront-api/internal/upstream"
)

// Config holds server configuration.
type Config struct {
	Port   int
	DBPath string // path to the SQLite database file, or ":memory:"

	// Base URLs of the seeding sources.
	RandomUserURL string
	CatalogURL    string
	// UpstreamTimeout bounds each outbound call. Zero means no timeout.
	UpstreamTimeout time.Duration

	// BcryptCost is the work factor for hashing seeded passwords.
	// Zero selects auth.DefaultCost.
	BcryptCost int
}

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, applies migrations and wires every route.
//
// Any error here means the service must not start: the caller should log
// it and exit without listening.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTES:
// GET /                   → liveness text
// GET /healthz            → database readiness
// GET /generate-users     → seed random users
// GET /generate-products  → seed the catalog
// GET /products           → list all products
// GET /products/search    → substring search (?q=)
// GET /products/{id}      → one product
//
// chi matches the static /products/search before the {id} pattern.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	passwords, err := auth.NewPasswordService(s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("creating password service: %w", err)
	}

	// Zero UpstreamTimeout leaves http.Client unbounded. No retries either way.
	httpClient := &http.Client{Timeout: s.config.UpstreamTimeout}

	seedService := service.NewSeedService(
		s.db,
		s.db,
		upstream.NewRandomUserClient(s.config.RandomUserURL, httpClient),
		upstream.NewCatalogClient(s.config.CatalogURL, httpClient),
		passwords,
		s.logger,
	)
	productService := service.NewProductService(s.db, s.logger)

	healthHandler := handler.NewHealthHandler(s.db, s.logger)
	seedHandler := handler.NewSeedHandler(seedService, s.logger)
	productHandler := handler.NewProductHandler(productService, s.logger)

	s.router.Get("/", healthHandler.HandleRoot)
	s.router.Get("/healthz", healthHandler.HandleReady)

	s.router.Get("/generate-users", seedHandler.HandleGenerateUsers)
	s.router.Get("/generate-products", seedHandler.HandleGenerateProducts)

	s.router.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.HandleList)
		r.Get("/search", productHandler.HandleSearch)
		r.Get("/{id}", productHandler.HandleGetByID)
	})

	return nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection. Start calls it on the way out;
// callers that never Start (tests) call it directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for up
// to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // seeding waits on third-party APIs
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
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
