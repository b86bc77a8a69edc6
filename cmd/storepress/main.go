// Package main is the entry point for the StorePress catalog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storepress/internal/cache"
	"storepress/internal/catalog"
	"storepress/internal/config"
	"storepress/internal/database"
	"storepress/internal/handlers"
	"storepress/internal/router"
	"storepress/internal/storage"
	"storepress/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the catalog cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	catalogCache := cache.NewCatalog(valkeyClient, cfg.CacheListTTL, cfg.CacheDetailTTL)

	// Data stores.
	itemStore := store.NewItemStore(db)
	categoryStore := store.NewCategoryStore(db)

	// Connect to S3-compatible object storage. Creates are rejected
	// without it, but the read surface works fine.
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured, item creation disabled")
	}

	// The catalog service wires the store, cache, and uploader together.
	service := catalog.NewService(itemStore, categoryStore, catalogCache, uploaderOrNil(storageClient))

	catalogHandlers := handlers.NewCatalog(service)

	r := router.New(cfg.JWTSecret, catalogHandlers)

	// WriteTimeout must accommodate multi-file uploads to object storage.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// uploaderOrNil avoids wrapping a nil *storage.Client in a non-nil
// interface value, which would defeat the service's nil uploader check.
func uploaderOrNil(c *storage.Client) catalog.Uploader {
	if c == nil {
		return nil
	}
	return c
}
