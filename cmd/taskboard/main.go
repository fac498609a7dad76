// Package main runs the task board server: the HTTP API, the WebSocket
// gateway and the event bus over one record store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/constants"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/common/tracing"
	"github.com/lutfiEmre/todolist/internal/task/repository"
	taskservice "github.com/lutfiEmre/todolist/internal/task/service"
)

func main() {
	configPath := flag.String("config", "", "directory holding config.yaml")
	seedPath := flag.String("seed", "", "YAML board to import into an empty store")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.LoadWithPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.NewLogger(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	logger.SetDefault(log)

	if err := run(cfg, log, *seedPath); err != nil {
		log.Error("Task board stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger, seedPath string) error {
	log.Info("Starting task board...", zap.Bool("tracing", tracing.Enabled()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cleanups []func() error
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			if err := cleanups[i](); err != nil {
				log.Warn("cleanup failed", zap.Error(err))
			}
		}
	}()

	// 3. Record store
	recordStore, cleanup, err := provideStore(ctx, cfg, log, seedPath)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)

	// 4. Event bus
	eventBus, cleanup, err := provideEventBus(cfg, log)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)

	// 5. Board service
	repos := repository.Provide(recordStore, log)
	taskSvc := taskservice.NewService(repos, eventBus, log, cfg.Board)
	log.Info("Task service initialized")

	// 6. WebSocket gateway
	gateway, broadcaster := provideGateway(ctx, taskSvc, eventBus, log)
	cleanups = append(cleanups, func() error {
		broadcaster.Close()
		return nil
	})

	// 7. HTTP server
	router := buildRouter(cfg, log, taskSvc, gateway)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Shutting down task board...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracing shutdown error", zap.Error(err))
	}

	log.Info("Task board stopped")
	return nil
}
