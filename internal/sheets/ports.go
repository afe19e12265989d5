package sheets

import (
	"context"

	"diario/internal/core"
)

// MonthWriter mirrors one month of expenses to an external spreadsheet.
// WriteMonth replaces whatever the month's tab held before.
type MonthWriter interface {
	WriteMonth(ctx context.Context, month core.Month, lines []core.Line) error
}
