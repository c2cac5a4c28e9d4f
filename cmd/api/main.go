package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/internal/config"
	"github.com/emreacar/nurseshift/internal/handler"
	"github.com/emreacar/nurseshift/pkg/postgres"
	"github.com/emreacar/nurseshift/pkg/utils/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := logging.InitLogger("api")
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadWithEnv()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	database, err := postgres.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.RunMigrations(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	h := handler.NewHandler(cfg, database, logger)
	h.RegisterRoutes()

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      h.Mux,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down cleanly", zap.Error(err))
	}
	logger.Info("Server stopped")
}
