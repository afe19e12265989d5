// Package cli holds the start-up steps shared by cmd/diario and
// cmd/diario-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"diario/internal/amqp"
	"diario/internal/config"
	applog "diario/internal/log"
	"diario/internal/storage"
)

// SetupLogger builds the process logger at level and makes it the slog default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = (&config.Config{LogLevel: level}).SlogLevel()
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and checks it with validate.
// It exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger, validate func(*config.Config) error) *config.Config {
	cfg := config.Load()
	if err := validate(cfg); err != nil {
		logger.ErrorContext(context.Background(), "Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite migrates and opens the database, exiting on failure.
func InitSQLite(ctx context.Context, logger *applog.Logger, cfg *config.Config) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(ctx, cfg.SQLiteDBPath, cfg.SQLiteMaxOpenConns)
	if err != nil {
		logger.WithComponent(applog.ComponentStorage).ErrorContext(ctx, "Failed to initialize SQLite repository",
			applog.FieldError, err,
			"path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	return repo
}

// InitAMQP connects to the broker, exiting on failure. Callers check
// cfg.AMQPEnabled first.
func InitAMQP(ctx context.Context, logger *applog.Logger, cfg *config.Config) *amqp.Client {
	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.WithComponent(applog.ComponentAMQP).ErrorContext(ctx, "Failed to initialize AMQP client",
			applog.FieldError, err,
			"exchange", cfg.AMQPExchange,
			"queue", cfg.AMQPQueue)
		os.Exit(1)
	}
	return client
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
