package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"diario/internal/core"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by GetExpense for an unknown id.
var ErrNotFound = errors.New("expense not found")

// DefaultMaxOpenConns bounds the pool when the caller passes zero.
const DefaultMaxOpenConns = 4

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

func dsn(dbPath string) string {
	return dbPath + "?_pragma=busy_timeout(5000)"
}

// NewSQLiteRepository opens dbPath, creating its directory if needed, and
// migrates the schema before returning.
func NewSQLiteRepository(ctx context.Context, dbPath string, maxOpenConns int) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := RunMigrations(ctx, dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if maxOpenConns <= 0 {
		maxOpenConns = DefaultMaxOpenConns
	}
	db.SetMaxOpenConns(maxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks that the database still answers.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ExpensesForDate returns the expenses recorded on date, newest first, with
// their unrounded total.
func (r *SQLiteRepository) ExpensesForDate(ctx context.Context, date string) ([]core.Expense, decimal.Decimal, error) {
	rows, err := r.queries.ListExpensesByDate(ctx, date)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list expenses for %s: %w", date, err)
	}
	expenses := toCoreExpenses(rows)
	return expenses, core.Sum(expenses), nil
}

// ExpensesForRange returns expenses with start <= entry_date <= end, ordered
// by date then id, both descending, with their unrounded total.
func (r *SQLiteRepository) ExpensesForRange(ctx context.Context, start, end string) ([]core.Expense, decimal.Decimal, error) {
	rows, err := r.queries.ListExpensesByRange(ctx, ListExpensesByRangeParams{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list expenses %s..%s: %w", start, end, err)
	}
	expenses := toCoreExpenses(rows)
	return expenses, core.Sum(expenses), nil
}

// MonthTotal sums every expense, fixed costs included, in the calendar month
// containing date. The sum runs in decimal so large rows cannot overflow it.
// The result is rounded to 2 decimals.
func (r *SQLiteRepository) MonthTotal(ctx context.Context, date string) (decimal.Decimal, error) {
	month, err := core.MonthBounds(date)
	if err != nil {
		return decimal.Zero, err
	}
	_, total, err := r.ExpensesForRange(ctx, month.StartDate(), month.EndDate())
	if err != nil {
		return decimal.Zero, fmt.Errorf("month total for %s: %w", month.Label, err)
	}
	return core.Round2(total), nil
}

// MonthBoundsAndLabel is core.MonthBounds exposed next to the queries that use it.
func (r *SQLiteRepository) MonthBoundsAndLabel(date string) (core.Month, error) {
	return core.MonthBounds(date)
}

// MonthExpenses returns the month's rows oldest first, the order exports use.
func (r *SQLiteRepository) MonthExpenses(ctx context.Context, month core.Month) ([]core.Expense, error) {
	rows, err := r.queries.ListExpensesByRangeOldestFirst(ctx, ListExpensesByRangeOldestFirstParams{
		StartDate: month.StartDate(),
		EndDate:   month.EndDate(),
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses for %s: %w", month.Label, err)
	}
	return toCoreExpenses(rows), nil
}

// CreateExpense inserts e and returns it with the assigned id and creation time.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	row, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		EntryDate: e.EntryDate,
		ItemName:  e.ItemName,
		ItemType:  e.ItemType.String(),
		Quantity:  e.Quantity,
		UnitPrice: e.UnitPrice,
		CreatedAt: r.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", row.ID,
		"entry_date", row.EntryDate,
		"item_type", row.ItemType)

	return toCoreExpense(row), nil
}

// DeleteExpense removes the expense with id. It reports whether a row was
// removed; a missing id is not an error.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	n, err := r.queries.DeleteExpense(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return toCoreExpense(row), nil
}

// Count returns the number of stored expenses.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountExpenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

func toCoreExpenses(rows []Expense) []core.Expense {
	out := make([]core.Expense, len(rows))
	for i, row := range rows {
		out[i] = toCoreExpense(row)
	}
	return out
}

func toCoreExpense(row Expense) core.Expense {
	// rows written by older versions may carry a non-RFC3339 timestamp; keep the zero time then
	createdAt, _ := time.Parse(time.RFC3339Nano, row.CreatedAt)
	return core.Expense{
		ID:        row.ID,
		EntryDate: row.EntryDate,
		ItemName:  row.ItemName,
		ItemType:  core.ItemType(row.ItemType),
		Quantity:  row.Quantity,
		UnitPrice: row.UnitPrice,
		CreatedAt: createdAt,
	}
}
