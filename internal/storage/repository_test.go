package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"kharcha/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustAppend(t *testing.T, repo *SQLiteRepository, e core.Expense) int64 {
	t.Helper()
	id, err := repo.Append(context.Background(), e)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	return id
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "expenses.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	repo.Close()

	// Reopening an already migrated database must not fail.
	repo, err = NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	repo.Close()
}

func TestAppendAssignsUniqueIDs(t *testing.T) {
	repo := newTestRepo(t)

	id1 := mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 1, 1), Category: "milk", Amount: 30})
	id2 := mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 1, 1), Category: "milk", Amount: 30})
	if id2 <= id1 {
		t.Fatalf("ids should be monotonically assigned: %d then %d", id1, id2)
	}
}

func TestListOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 1, 1), Category: "milk", Amount: 10})
	newer := mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 1, 2), Category: "milk", Amount: 20})
	sameDayFirst := mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 1, 3), Category: "milk", Amount: 30})
	sameDaySecond := mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 1, 3), Category: "milk", Amount: 40})

	got, err := repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got))
	}

	// Newest date first; same-day ties newest id first.
	wantOrder := []int64{sameDaySecond, sameDayFirst, newer, older}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Fatalf("position %d: expected id %d, got %d", i, want, got[i].ID)
		}
	}
}

func TestTotals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Empty table sums to zero everywhere.
	for name, f := range map[string]func() (float64, error){
		"all":   func() (float64, error) { return repo.TotalAll(ctx) },
		"date":  func() (float64, error) { return repo.TotalForDate(ctx, core.NewDate(2024, 5, 1)) },
		"month": func() (float64, error) { return repo.TotalForMonth(ctx, core.NewDate(2024, 5, 1)) },
	} {
		total, err := f()
		if err != nil {
			t.Fatalf("%s total on empty table: %v", name, err)
		}
		if total != 0 {
			t.Fatalf("%s total on empty table = %v, want 0", name, total)
		}
	}

	mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 5, 1), Category: "milk", Amount: 30.5})
	mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 5, 1), Category: "rent", Amount: 8000})
	mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 5, 20), Category: "water", Amount: 20})
	mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 6, 1), Category: "gas", Amount: 900})

	if total, _ := repo.TotalAll(ctx); !almostEqual(total, 8950.5) {
		t.Fatalf("total all = %v", total)
	}
	if total, _ := repo.TotalForDate(ctx, core.NewDate(2024, 5, 1)); !almostEqual(total, 8030.5) {
		t.Fatalf("daily total = %v", total)
	}
	if total, _ := repo.TotalForMonth(ctx, core.NewDate(2024, 5, 15)); !almostEqual(total, 8050.5) {
		t.Fatalf("monthly total = %v", total)
	}
	if total, _ := repo.TotalForMonth(ctx, core.NewDate(2024, 7, 1)); total != 0 {
		t.Fatalf("empty month total = %v, want 0", total)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 5, 1), Category: "milk", Amount: 30})

	// Deleting an id that never existed is a no-op.
	if err := repo.Delete(ctx, 9999); err != nil {
		t.Fatalf("delete missing id: %v", err)
	}
	got, err := repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("row count changed by no-op delete: %d", len(got))
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(got))
	}

	// Deleting the same id again still succeeds.
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if total, _ := repo.TotalAll(ctx); total != 0 {
		t.Fatalf("total after delete = %v", total)
	}
}

func TestOptionalFieldsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustAppend(t, repo, core.Expense{Date: core.NewDate(2024, 5, 1), Category: "milk", Amount: 30})
	mustAppend(t, repo, core.Expense{
		Date: core.NewDate(2024, 5, 2), Category: "rent", Amount: 8000,
		Note: "may rent", Payment: "upi",
	})

	got, err := repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].Note != "may rent" || got[0].Payment != "upi" {
		t.Fatalf("note/payment lost: %+v", got[0])
	}
	if got[1].Note != "" || got[1].Payment != "" {
		t.Fatalf("absent note/payment should scan empty: %+v", got[1])
	}
}
