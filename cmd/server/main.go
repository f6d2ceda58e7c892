package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajharbinger/football-connector/internal/api"
	"github.com/ajharbinger/football-connector/internal/logger"
	"github.com/ajharbinger/football-connector/internal/middleware"
	"github.com/ajharbinger/football-connector/internal/services"
	"github.com/ajharbinger/football-connector/internal/upstream"
	"github.com/ajharbinger/football-connector/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()
	appLogger := logger.NewSimpleLogger(logger.ParseLevel(cfg.LogLevel))

	if !cfg.HasAPIKey() {
		appLogger.Warn("API_FOOTBALL_KEY is not set, upstream calls will be rejected")
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		appLogger.Fatal("Invalid TRUSTED_PROXIES", err)
	}

	// Add security middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(appLogger))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.MethodValidationMiddleware())

	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware(cfg.RateLimitPerMinute))
	}

	// Add recovery middleware
	r.Use(gin.Recovery())

	// Upstream gateway and services
	client := upstream.NewClient(cfg, appLogger)
	defer client.Close()

	svc := services.NewServices(client, cfg, appLogger)
	api.SetupRoutes(r, svc, client.Health(), cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLogger.Info("Shutdown signal received, draining connections")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", err)
	}
	appLogger.Info("Server stopped")
}
