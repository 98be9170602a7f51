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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seqcls/verdict/internal/adapter/http/router"
	"github.com/seqcls/verdict/internal/infrastructure/config"
	"github.com/seqcls/verdict/internal/infrastructure/logger"
	"github.com/seqcls/verdict/internal/infrastructure/metrics"
	"github.com/seqcls/verdict/internal/infrastructure/model"
	"github.com/seqcls/verdict/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Load model (a failure leaves the service up but degraded)
	state := model.Load(&cfg.Model, log, model.OpenHugot)
	defer func() {
		if err := state.Close(); err != nil {
			log.Warn("Failed to release model", zap.Error(err))
		}
	}()

	m := metrics.New()
	m.SetModelLoaded(state.Loaded())

	inferenceUC := usecase.NewInferenceUsecase(state, m, log)

	// Setup router
	r := router.Setup(inferenceUC, m, log, router.Options{StrictErrors: cfg.Server.StrictErrors})

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server",
			zap.String("address", addr),
			zap.String("device", string(state.Device())),
			zap.Bool("model_loaded", state.Loaded()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
