package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edunari/marketplace-api/internal/catalog"
	"github.com/edunari/marketplace-api/internal/config"
	"github.com/edunari/marketplace-api/internal/handlers"
	"github.com/edunari/marketplace-api/internal/middleware"
	"github.com/edunari/marketplace-api/internal/repository"
	"github.com/edunari/marketplace-api/internal/service"
	"github.com/edunari/marketplace-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting edunari marketplace api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"data_dir", cfg.Data.Dir,
		"log_level", cfg.LogLevel,
	)

	// Initialize catalog loader and warm the cache
	loader := catalog.NewLoader(cfg.Data.Dir, time.Duration(cfg.Data.CacheTTL)*time.Second, log)

	ctx := context.Background()
	cat, err := loader.Load(ctx)
	if err != nil {
		log.Error("failed to load catalog data", "error", err)
		os.Exit(1)
	}
	log.Info("catalog data loaded",
		"listings", len(cat.Listings),
		"businesses", len(cat.Businesses),
	)

	// Initialize repositories
	userRepo, err := repository.NewCSVUserRepository(cfg.Data.Dir, log)
	if err != nil {
		log.Error("failed to initialize user repository", "error", err)
		os.Exit(1)
	}
	pioneerRepo := repository.NewCSVPioneerRepository(cfg.Data.Dir, log)

	// Initialize services
	catalogService := service.NewCatalogService(loader)
	authService := service.NewAuthService(userRepo)
	pioneerService := service.NewPioneerService(pioneerRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	catalogHandler := handlers.NewCatalogHandler(catalogService, log)
	authHandler := handlers.NewAuthHandler(authService, log)
	pioneerHandler := handlers.NewPioneerHandler(pioneerService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Get("/status", catalogHandler.Status)
		r.Get("/search", catalogHandler.Search)
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/services", catalogHandler.ListServices)
		r.Get("/entrepreneurs", catalogHandler.ListEntrepreneurs)

		// Auth endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Get("/auth/check-user", authHandler.CheckUser)
		r.Get("/auth/profile", authHandler.Profile)

		// Pioneer endpoints
		r.Post("/pioneers", pioneerHandler.Register)
		r.With(middleware.APIKeyAuth(cfg.Auth)).Get("/pioneers", pioneerHandler.List)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
