package ports

import (
	"context"

	"kharcha/internal/core"
)

// Ports for the storage adapter consumed by the HTTP layer.
type (
	ExpenseWriter interface {
		// Append inserts one expense and returns the assigned id.
		Append(ctx context.Context, e core.Expense) (id int64, err error)

		// Delete removes the expense with the given id. Deleting an id that
		// does not exist is a no-op, not an error.
		Delete(ctx context.Context, id int64) error
	}

	ExpenseLister interface {
		// ListExpenses returns every expense, newest date first, ties broken
		// by id descending.
		ListExpenses(ctx context.Context) ([]core.Expense, error)
	}

	// TotalsReader provides the SUM aggregations for the ledger page.
	TotalsReader interface {
		TotalAll(ctx context.Context) (float64, error)
		TotalForDate(ctx context.Context, d core.Date) (float64, error)
		TotalForMonth(ctx context.Context, d core.Date) (float64, error)
	}

	// Pinger reports whether the backing store is reachable.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
