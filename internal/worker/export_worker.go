package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"diario/internal/amqp"
	"diario/internal/core"
	"diario/internal/services"
	"diario/internal/sheets"
)

// ExportWorker keeps spreadsheet month tabs in step with SQLite. Each event
// triggers a full rewrite of the affected month, so replays are harmless.
type ExportWorker struct {
	expenses *services.ExpenseService
	sheets   sheets.MonthWriter
}

func NewExportWorker(expenses *services.ExpenseService, writer sheets.MonthWriter) *ExportWorker {
	return &ExportWorker{
		expenses: expenses,
		sheets:   writer,
	}
}

// HandleEvent rewrites the month the event's expense belongs to.
func (w *ExportWorker) HandleEvent(ctx context.Context, evt *amqp.ExpenseEvent) error {
	slog.InfoContext(ctx, "Processing expense event",
		"event_id", evt.EventID,
		"type", evt.Type,
		"id", evt.ID,
		"entry_date", evt.EntryDate)

	month, err := core.MonthBounds(evt.EntryDate)
	if err != nil {
		// not retryable; requeueing would loop forever
		slog.ErrorContext(ctx, "Event carries an invalid date, skipping",
			"event_id", evt.EventID,
			"entry_date", evt.EntryDate,
			"error", err)
		return nil
	}
	return w.ExportMonth(ctx, month)
}

// ExportMonth reloads month from storage and replaces its tab.
func (w *ExportWorker) ExportMonth(ctx context.Context, month core.Month) error {
	lines, err := w.expenses.MonthLines(ctx, month)
	if err != nil {
		return fmt.Errorf("load %s: %w", month.Label, err)
	}
	if err := w.sheets.WriteMonth(ctx, month, lines); err != nil {
		return fmt.Errorf("write %s: %w", month.Label, err)
	}
	slog.InfoContext(ctx, "Exported month", "month", month.Label, "rows", len(lines))
	return nil
}

// StartupSync rewrites the month containing now, covering events missed
// while the worker was down.
func (w *ExportWorker) StartupSync(ctx context.Context, now time.Time) error {
	month := core.MonthOf(now)
	if err := w.ExportMonth(ctx, month); err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	return nil
}
