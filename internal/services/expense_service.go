package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"diario/internal/amqp"
	"diario/internal/core"
	"diario/internal/storage"

	"github.com/shopspring/decimal"
)

// EventPublisher announces committed changes. Implemented by *amqp.Client.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, evt *amqp.ExpenseEvent) error
}

// ExpenseService applies the input rules on top of the SQLite repository and
// optionally publishes change events.
type ExpenseService struct {
	storage   *storage.SQLiteRepository
	publisher EventPublisher
}

// NewExpenseService returns a service; publisher may be nil.
func NewExpenseService(storage *storage.SQLiteRepository, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		storage:   storage,
		publisher: publisher,
	}
}

// AddExpenseInput carries raw form values. Quantity and UnitPrice are strings
// so that an omitted field can be told apart from zero.
type AddExpenseInput struct {
	EntryDate string
	ItemName  string
	ItemType  string
	Quantity  string
	UnitPrice string
}

// AddExpense validates in and stores it.
func (s *ExpenseService) AddExpense(ctx context.Context, in AddExpenseInput) (core.Expense, error) {
	e, err := buildExpense(in)
	if err != nil {
		return core.Expense{}, err
	}

	created, err := s.storage.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventCreated, created.ID, created.EntryDate))
	return created, nil
}

func buildExpense(in AddExpenseInput) (core.Expense, error) {
	date, err := core.NormalizeDate(in.EntryDate)
	if err != nil {
		return core.Expense{}, err
	}

	itemType := core.ParseItemType(in.ItemType)
	if !itemType.Valid() {
		return core.Expense{}, core.ErrInvalidItemType
	}

	quantity, present, err := core.ParseAmount(in.Quantity)
	if err != nil {
		return core.Expense{}, err
	}
	if !present {
		if !itemType.QuantityOptional() {
			return core.Expense{}, core.ErrQuantityRequired
		}
		quantity = 1.0
	}

	price, present, err := core.ParseAmount(in.UnitPrice)
	if err != nil {
		return core.Expense{}, err
	}
	if !present {
		return core.Expense{}, core.ErrUnitPriceRequired
	}

	e := core.Expense{
		EntryDate: date,
		ItemName:  strings.TrimSpace(in.ItemName),
		ItemType:  itemType,
		Quantity:  quantity,
		UnitPrice: price,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	// the line total must stay a float64 for the JSON and CSV views
	if math.IsInf(quantity*price, 0) {
		return core.Expense{}, core.ErrInvalidNumber
	}
	return e, nil
}

// DeleteExpense removes id and reports whether a row went away. Unknown ids
// are ignored.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	// looked up first only to address the event; absence is fine
	existing, lookupErr := s.storage.GetExpense(ctx, id)
	if lookupErr != nil && !errors.Is(lookupErr, storage.ErrNotFound) {
		return false, fmt.Errorf("look up expense: %w", lookupErr)
	}

	removed, err := s.storage.DeleteExpense(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	if !removed {
		slog.DebugContext(ctx, "Delete of unknown expense ignored", "id", id)
		return false, nil
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventDeleted, id, existing.EntryDate))
	return true, nil
}

// DayView is everything the daily page shows.
type DayView struct {
	Date       string
	PrevDate   string
	NextDate   string
	Summary    core.DaySummary
	Month      core.Month
	MonthTotal decimal.Decimal
}

// DayView normalizes rawDate and loads that day plus its month total.
func (s *ExpenseService) DayView(ctx context.Context, rawDate string) (DayView, error) {
	date, err := core.NormalizeDate(rawDate)
	if err != nil {
		return DayView{}, err
	}

	items, _, err := s.storage.ExpensesForDate(ctx, date)
	if err != nil {
		return DayView{}, fmt.Errorf("load day: %w", err)
	}
	monthTotal, err := s.storage.MonthTotal(ctx, date)
	if err != nil {
		return DayView{}, fmt.Errorf("load month total: %w", err)
	}
	month, err := s.storage.MonthBoundsAndLabel(date)
	if err != nil {
		return DayView{}, err
	}
	prev, err := core.ShiftDate(date, -1)
	if err != nil {
		return DayView{}, err
	}
	next, err := core.ShiftDate(date, 1)
	if err != nil {
		return DayView{}, err
	}

	return DayView{
		Date:       date,
		PrevDate:   prev,
		NextDate:   next,
		Summary:    core.Partition(items),
		Month:      month,
		MonthTotal: monthTotal,
	}, nil
}

// DayItems returns the normalized date, its lines newest first and the
// rounded day total.
func (s *ExpenseService) DayItems(ctx context.Context, rawDate string) (string, []core.Line, decimal.Decimal, error) {
	date, err := core.NormalizeDate(rawDate)
	if err != nil {
		return "", nil, decimal.Zero, err
	}
	items, total, err := s.storage.ExpensesForDate(ctx, date)
	if err != nil {
		return "", nil, decimal.Zero, fmt.Errorf("load day: %w", err)
	}
	lines := make([]core.Line, len(items))
	for i, e := range items {
		lines[i] = core.NewLine(e)
	}
	return date, lines, core.Round2(total), nil
}

// DayTotal returns the normalized date and its rounded total.
func (s *ExpenseService) DayTotal(ctx context.Context, rawDate string) (string, decimal.Decimal, error) {
	date, err := core.NormalizeDate(rawDate)
	if err != nil {
		return "", decimal.Zero, err
	}
	_, total, err := s.storage.ExpensesForDate(ctx, date)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("load day: %w", err)
	}
	return date, core.Round2(total), nil
}

// MonthExport returns the month containing rawDate and its rows oldest first.
func (s *ExpenseService) MonthExport(ctx context.Context, rawDate string) (core.Month, []core.Line, error) {
	date, err := core.NormalizeDate(rawDate)
	if err != nil {
		return core.Month{}, nil, err
	}
	month, err := s.storage.MonthBoundsAndLabel(date)
	if err != nil {
		return core.Month{}, nil, err
	}
	return s.monthLines(ctx, month)
}

// MonthLines loads an already resolved month.
func (s *ExpenseService) MonthLines(ctx context.Context, month core.Month) ([]core.Line, error) {
	_, lines, err := s.monthLines(ctx, month)
	return lines, err
}

func (s *ExpenseService) monthLines(ctx context.Context, month core.Month) (core.Month, []core.Line, error) {
	items, err := s.storage.MonthExpenses(ctx, month)
	if err != nil {
		return core.Month{}, nil, fmt.Errorf("load month: %w", err)
	}
	lines := make([]core.Line, len(items))
	for i, e := range items {
		lines[i] = core.NewLine(e)
	}
	return month, lines, nil
}

// Ready reports whether storage answers.
func (s *ExpenseService) Ready(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

func (s *ExpenseService) publish(ctx context.Context, evt *amqp.ExpenseEvent) {
	if s.publisher == nil {
		return
	}
	// the row is committed; a lost event only delays the mirror
	if err := s.publisher.PublishExpenseEvent(ctx, evt); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"event_id", evt.EventID,
			"type", evt.Type,
			"id", evt.ID,
			"error", err)
	}
}
