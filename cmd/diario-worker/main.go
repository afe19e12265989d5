package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"diario/internal/cli"
	"diario/internal/config"
	applog "diario/internal/log"
	"diario/internal/services"
	gsheet "diario/internal/sheets/google"
	"diario/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger, (*config.Config).ValidateWorker)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	logger.InfoContext(ctx, "Starting diario-worker", applog.FieldOperation, applog.OpStartup)

	repo := cli.InitSQLite(ctx, logger, cfg)
	defer repo.Close()

	sheetsClient, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, gsheet.Credentials{
		JSON: cfg.GoogleServiceAccountJSON,
		File: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize Google Sheets client", applog.FieldError, err)
		os.Exit(1)
	}

	amqpClient := cli.InitAMQP(ctx, logger, cfg)
	defer amqpClient.Close()

	// the worker only reads; it never publishes
	exporter := worker.NewExportWorker(services.NewExpenseService(repo, nil), sheetsClient)

	if err := exporter.StartupSync(ctx, time.Now()); err != nil {
		// the next event for this month rewrites it anyway
		logger.ErrorContext(ctx, "Startup sync failed", applog.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeExpenseEvents(gctx, exporter.HandleEvent)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(context.Background(), "Message consumption failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.InfoContext(context.Background(), "Worker stopped gracefully")
}
