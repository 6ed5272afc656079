package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kharcha/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists expense rows in a single-file SQLite database.
// Every operation checks a dedicated connection out of the pool and releases
// it before returning; SQLite's own transactional guarantees cover concurrent
// readers and writers, no application-level locking.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping implements ports.Pinger.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Append implements ports.ExpenseWriter.
func (r *SQLiteRepository) Append(ctx context.Context, e core.Expense) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx,
		`INSERT INTO expenses (date, category, amount, note, payment_method) VALUES (?, ?, ?, ?, ?)`,
		e.Date.ISO(), e.Category, e.Amount, nullIfEmpty(e.Note), nullIfEmpty(e.Payment))
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"date", e.Date.ISO(),
		"category", e.Category,
		"amount", e.Amount)

	return id, nil
}

// Delete implements ports.ExpenseWriter. A missing id is a silent no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil {
		slog.InfoContext(ctx, "Expense deleted", "id", id, "rows", n)
	}
	return nil
}

// ListExpenses implements ports.ExpenseLister. Rows come back newest date
// first; same-day entries show most-recently-created first.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx,
		`SELECT id, date, category, amount, note, payment_method FROM expenses ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			date    string
			note    sql.NullString
			payment sql.NullString
		)
		if err := rows.Scan(&e.ID, &date, &e.Category, &e.Amount, &note, &payment); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		e.Date = d
		e.Note = note.String
		e.Payment = payment.String
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// TotalAll implements ports.TotalsReader.
func (r *SQLiteRepository) TotalAll(ctx context.Context) (float64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses`)
}

// TotalForDate implements ports.TotalsReader.
func (r *SQLiteRepository) TotalForDate(ctx context.Context, d core.Date) (float64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date = ?`, d.ISO())
}

// TotalForMonth implements ports.TotalsReader.
func (r *SQLiteRepository) TotalForMonth(ctx context.Context, d core.Date) (float64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE strftime('%Y-%m', date) = ?`, d.YearMonth())
}

func (r *SQLiteRepository) sum(ctx context.Context, query string, args ...any) (float64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var total float64
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
