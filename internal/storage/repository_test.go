package storage

import (
	"context"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testTransaction(userID int64, date string, cents int64) core.Transaction {
	d, _ := core.ParseDate(date)
	return core.Transaction{
		UserID:   userID,
		Date:     d,
		Category: "Groceries",
		Amount:   core.Money{Cents: cents},
		Type:     core.Expense,
	}
}

func TestCreateAndListTransactions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Insert out of date order; the list must come back ascending.
	if _, err := repo.CreateTransaction(ctx, testTransaction(1, "2024-03-01", 100)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.CreateTransaction(ctx, testTransaction(1, "2024-01-15", 200)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.CreateTransaction(ctx, testTransaction(2, "2024-02-01", 300)); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (user scoping)", len(got))
	}
	if got[0].Date.Key() != "2024-01-15" || got[1].Date.Key() != "2024-03-01" {
		t.Fatalf("order = %s, %s", got[0].Date.Key(), got[1].Date.Key())
	}
	if got[0].ID == 0 {
		t.Fatalf("persisted transaction must carry an assigned id")
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	bad := testTransaction(1, "2024-01-01", 0)
	if _, err := repo.CreateTransaction(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error for zero amount")
	}
}

func TestSoftDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateTransaction(ctx, testTransaction(1, "2024-01-01", 500))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := repo.SoftDeleteTransaction(ctx, id)
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}

	// The row is gone from reads.
	if _, err := repo.GetTransaction(ctx, id); err != ErrNotFound {
		t.Fatalf("get after delete: %v, want ErrNotFound", err)
	}
	got, err := repo.ListTransactions(ctx, 1)
	if err != nil || len(got) != 0 {
		t.Fatalf("list after delete: %d rows, %v", len(got), err)
	}

	// Deleting again is a no-op false, not an error.
	ok, err = repo.SoftDeleteTransaction(ctx, id)
	if err != nil || ok {
		t.Fatalf("second delete = %v, %v", ok, err)
	}
}

func TestTaxFieldsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tr := testTransaction(1, "2024-01-01", 10000)
	tr.Type = core.Income
	tr.TaxWithheld = true
	tr.TaxRate = 20

	id, err := repo.CreateTransaction(ctx, tr)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetTransaction(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.TaxWithheld || got.TaxRate != 20 || got.Type != core.Income {
		t.Fatalf("round trip lost tax fields: %+v", got)
	}
	if got.NetAmount().Cents != 8000 {
		t.Fatalf("net = %d, want 8000", got.NetAmount().Cents)
	}
}

func TestPendingSyncFlow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateTransaction(ctx, testTransaction(1, "2024-01-01", 500))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pending, err := repo.PendingSync(ctx, 10)
	if err != nil || len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v, %v", pending, err)
	}

	if err := repo.MarkSynced(ctx, id); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	pending, err = repo.PendingSync(ctx, 10)
	if err != nil || len(pending) != 0 {
		t.Fatalf("pending after sync = %+v, %v", pending, err)
	}
}
