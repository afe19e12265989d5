package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"diario/internal/amqp"
	"diario/internal/core"
	"diario/internal/services"
	"diario/internal/sheets/memory"
	"diario/internal/storage"
)

func newTestWorker(t *testing.T) (*ExportWorker, *services.ExpenseService, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "expenses.db"), 1)
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	svc := services.NewExpenseService(repo, nil)
	store := memory.New()
	return NewExportWorker(svc, store), svc, store
}

func TestExportWorker_HandleEvent(t *testing.T) {
	w, svc, store := newTestWorker(t)
	ctx := context.Background()

	milk, err := svc.AddExpense(ctx, services.AddExpenseInput{EntryDate: "2025-10-05", ItemName: "Milk", ItemType: "liquid", Quantity: "2", UnitPrice: "1.5"})
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	if _, err := svc.AddExpense(ctx, services.AddExpenseInput{EntryDate: "2025-10-01", ItemName: "Rent", ItemType: "fixed", UnitPrice: "500"}); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	if _, err := svc.AddExpense(ctx, services.AddExpenseInput{EntryDate: "2025-11-01", ItemName: "Other", ItemType: "solid", UnitPrice: "1"}); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	if err := w.HandleEvent(ctx, amqp.NewExpenseEvent(amqp.EventCreated, milk.ID, milk.EntryDate)); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	rows, ok := store.Tab("October 2025")
	if !ok {
		t.Fatal("October tab not written")
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %v, want header plus two", rows)
	}
	if rows[1][1] != "Rent" || rows[2][1] != "Milk" || rows[2][5] != "3.0" {
		t.Errorf("rows = %v", rows)
	}
	if _, ok := store.Tab("November 2025"); ok {
		t.Error("November should not be touched")
	}

	// a delete event rewrites the month without the row
	if _, err := svc.DeleteExpense(ctx, milk.ID); err != nil {
		t.Fatalf("DeleteExpense() error = %v", err)
	}
	if err := w.HandleEvent(ctx, amqp.NewExpenseEvent(amqp.EventDeleted, milk.ID, milk.EntryDate)); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if rows, _ := store.Tab("October 2025"); len(rows) != 2 {
		t.Errorf("rows after delete = %v", rows)
	}
}

func TestExportWorker_InvalidDateIsDropped(t *testing.T) {
	w, _, store := newTestWorker(t)
	err := w.HandleEvent(context.Background(), &amqp.ExpenseEvent{EventID: "x", Type: amqp.EventCreated, ID: 1, EntryDate: "garbage"})
	if err != nil {
		t.Fatalf("HandleEvent() error = %v, want nil", err)
	}
	if store.Writes() != 0 {
		t.Error("nothing should be written")
	}
}

type failingWriter struct{}

func (failingWriter) WriteMonth(context.Context, core.Month, []core.Line) error {
	return errors.New("quota exceeded")
}

func TestExportWorker_WriterFailureIsReturned(t *testing.T) {
	_, svc, _ := newTestWorker(t)
	w := NewExportWorker(svc, failingWriter{})
	err := w.HandleEvent(context.Background(), amqp.NewExpenseEvent(amqp.EventCreated, 1, "2025-10-05"))
	if err == nil {
		t.Fatal("HandleEvent() succeeded, want error so the event is requeued")
	}
}

func TestExportWorker_StartupSync(t *testing.T) {
	w, _, store := newTestWorker(t)
	if err := w.StartupSync(context.Background(), time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("StartupSync() error = %v", err)
	}
	rows, ok := store.Tab("February 2024")
	if !ok || len(rows) != 1 {
		t.Errorf("rows = %v, ok = %v; want header only", rows, ok)
	}
}
