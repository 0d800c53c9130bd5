package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "taskflow.com/taskflow/internal/configs"
	httpapi "taskflow.com/taskflow/internal/http"
	middleware "taskflow.com/taskflow/internal/http/middlewares"
	repository "taskflow.com/taskflow/internal/repositories"
	"taskflow.com/taskflow/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task REST API under /api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := loadConfig()

		storage, closeStorage, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer closeStorage()

		limiter, closeLimiter, err := openLimiter(cfg)
		if err != nil {
			return err
		}
		defer closeLimiter()

		taskService := services.NewTaskService(storage, logger)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		httpapi.Register(e, httpapi.NewHandler(taskService), limiter, logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL, "db_driver", cfg.DatabaseDriver)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", "error", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (config.Config, *slog.Logger) {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}
	return cfg, logger
}

func openStorage(cfg config.Config) (repository.TaskStorage, func(), error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		return repository.NewMemoryTaskRepository(), func() {}, nil
	}

	db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("db handle failed: %w", err)
	}
	return repository.NewTaskRepository(db), func() { _ = sqlDB.Close() }, nil
}

func openLimiter(cfg config.Config) (middleware.Limiter, func(), error) {
	if cfg.RateLimitBackend != config.RateLimitRedis {
		return middleware.NewMemoryLimiter(cfg.RateLimit, time.Minute), func() {}, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return middleware.NewRedisLimiter(client, cfg.RedisKeyPrefix, cfg.RateLimit, time.Minute), client.Close, nil
}
