package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"diario/internal/cli"
	"diario/internal/config"
	apphttp "diario/internal/http"
	applog "diario/internal/log"
	"diario/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.ErrorContext(context.Background(), "Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	repo := cli.InitSQLite(ctx, logger, cfg)
	defer repo.Close()

	// only a real client goes into the interface; a nil *amqp.Client would not compare equal to nil
	var publisher services.EventPublisher
	if cfg.AMQPEnabled() {
		client := cli.InitAMQP(ctx, logger, cfg)
		defer client.Close()
		publisher = client
		logger.InfoContext(ctx, "Publishing expense events", "exchange", cfg.AMQPExchange)
	} else {
		logger.InfoContext(ctx, "AMQP disabled - no AMQP_URL provided")
	}

	srv, err := apphttp.NewServer(cfg, services.NewExpenseService(repo, publisher), logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build HTTP server", applog.FieldError, err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "Starting diario server",
			"port", cfg.Port,
			"db", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(context.Background(), "Shutting down", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.ErrorContext(context.Background(), "Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.InfoContext(context.Background(), "Server stopped gracefully")
}
