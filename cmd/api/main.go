package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rushi-mungse/product-microservice/internal/auth"
	"github.com/rushi-mungse/product-microservice/internal/config"
	"github.com/rushi-mungse/product-microservice/internal/database"
	"github.com/rushi-mungse/product-microservice/internal/handlers"
	"github.com/rushi-mungse/product-microservice/internal/logger"
	"github.com/rushi-mungse/product-microservice/internal/repository"
	"github.com/rushi-mungse/product-microservice/internal/routes"
	"github.com/rushi-mungse/product-microservice/internal/services"
	"github.com/rushi-mungse/product-microservice/internal/storage"
	"go.uber.org/zap"
)

func main() {
	// 0. --- Configuration & Logging ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	// Cancelled on SIGINT/SIGTERM. Also stops the JWKS refresh.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. --- Database Connection ---
	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// 2. --- Asset Store & Identity ---
	uploader, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize asset store", zap.Error(err))
	}

	verifier, err := auth.NewJWKSVerifier(ctx, cfg.JWKSURI)
	if err != nil {
		log.Fatal("Failed to initialize JWKS verifier", zap.Error(err), zap.String("jwks_uri", cfg.JWKSURI))
	}

	// --- Application Setup ---
	// Every dependency is injected into the services; there are no package-level singletons.
	app := handlers.New(
		services.NewCategoryService(repository.NewGormCategoryRepository(db)),
		services.NewProductService(repository.NewGormProductRepository(db), uploader),
		log,
	)

	// --- Router Setup ---
	router := routes.SetupRouter(app, verifier, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Catalog service starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down catalog service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Catalog service stopped gracefully")
}
