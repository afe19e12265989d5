package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// legacyShape describes how a pre-versioning expenses table differs from the current one.
type legacyShape struct {
	monthColumn bool // entry_month instead of entry_date
	narrowCheck bool // item_type CHECK without 'fixed'
}

func (s legacyShape) needsRebuild() bool {
	return s.monthColumn || s.narrowCheck
}

const createStagingTable = `CREATE TABLE expenses_new (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entry_date TEXT NOT NULL,
    item_name TEXT NOT NULL,
    item_type TEXT NOT NULL CHECK(item_type IN ('liquid','solid','utility','fixed')),
    quantity REAL NOT NULL CHECK(quantity >= 0),
    unit_price REAL NOT NULL CHECK(unit_price >= 0),
    created_at TEXT NOT NULL
)`

const copyFromMonthShape = `INSERT INTO expenses_new (id, entry_date, item_name, item_type, quantity, unit_price, created_at)
SELECT id, substr(entry_month || '-01', 1, 10), item_name, item_type, quantity, unit_price, created_at
FROM expenses`

const copyUnchanged = `INSERT INTO expenses_new (id, entry_date, item_name, item_type, quantity, unit_price, created_at)
SELECT id, entry_date, item_name, item_type, quantity, unit_price, created_at
FROM expenses`

// adoptLegacySchema rewrites an expenses table created before schema
// versioning into the current shape. It must run before the migrate driver
// creates schema_migrations, since that table is what marks a database as
// versioned.
func adoptLegacySchema(ctx context.Context, db *sql.DB) error {
	versioned, err := tableExists(ctx, db, "schema_migrations")
	if err != nil {
		return err
	}
	if versioned {
		return nil
	}

	shape, found, err := inspectExpensesTable(ctx, db)
	if err != nil {
		return err
	}
	if !found || !shape.needsRebuild() {
		return nil
	}

	defer func() {
		if _, err := db.ExecContext(context.WithoutCancel(ctx), "DROP TABLE IF EXISTS expenses_new"); err != nil {
			slog.WarnContext(ctx, "Failed to drop staging table", "error", err)
		}
	}()

	slog.InfoContext(ctx, "Rebuilding legacy expenses table",
		"month_column", shape.monthColumn,
		"narrow_check", shape.narrowCheck)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin legacy rebuild: %w", err)
	}
	defer tx.Rollback()

	copyStmt := copyUnchanged
	if shape.monthColumn {
		copyStmt = copyFromMonthShape
	}

	steps := []struct {
		name string
		stmt string
	}{
		{"drop leftover staging table", "DROP TABLE IF EXISTS expenses_new"},
		{"create staging table", createStagingTable},
		{"copy rows", copyStmt},
		{"drop legacy table", "DROP TABLE expenses"},
		{"rename staging table", "ALTER TABLE expenses_new RENAME TO expenses"},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.stmt); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit legacy rebuild: %w", err)
	}
	return nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("look up table %s: %w", name, err)
	}
	return n > 0, nil
}

func inspectExpensesTable(ctx context.Context, db *sql.DB) (legacyShape, bool, error) {
	var tableSQL sql.NullString
	err := db.QueryRowContext(ctx,
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'expenses'").Scan(&tableSQL)
	if err == sql.ErrNoRows {
		return legacyShape{}, false, nil
	}
	if err != nil {
		return legacyShape{}, false, fmt.Errorf("read expenses table definition: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info('expenses')")
	if err != nil {
		return legacyShape{}, false, fmt.Errorf("read expenses columns: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return legacyShape{}, false, fmt.Errorf("scan expenses column: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return legacyShape{}, false, fmt.Errorf("read expenses columns: %w", err)
	}

	ddl := tableSQL.String
	return legacyShape{
		monthColumn: columns["entry_month"] && !columns["entry_date"],
		narrowCheck: strings.Contains(ddl, "CHECK") && !strings.Contains(ddl, "'fixed'"),
	}, true, nil
}
