package worker

import (
	"context"
	"path/filepath"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/sheets/memory"
	"fintrack/internal/storage"
)

func newWorker(t *testing.T) (*SyncWorker, *storage.SQLiteRepository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	store := memory.New()
	return NewSyncWorker(repo, store, store, 10), repo, store
}

func createTransaction(t *testing.T, repo *storage.SQLiteRepository) int64 {
	t.Helper()
	d, _ := core.ParseDate("2026-02-01")
	id, err := repo.CreateTransaction(context.Background(), core.Transaction{
		UserID:   1,
		Date:     d,
		Category: "Groceries",
		Amount:   core.Money{Cents: 4200},
		Type:     core.Expense,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return id
}

func TestHandleSyncMessageExports(t *testing.T) {
	w, repo, store := newWorker(t)
	ctx := context.Background()
	id := createTransaction(t, repo)

	if err := w.HandleMessage(ctx, amqp.NewSyncMessage(id, 1)); err != nil {
		t.Fatalf("handle sync: %v", err)
	}

	exported := store.All()
	if len(exported) != 1 || exported[0].ID != id {
		t.Fatalf("exported = %+v, want transaction %d", exported, id)
	}

	pending, err := repo.PendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after sync = %d, want 0", len(pending))
	}
}

func TestHandleSyncMessageMissingTransaction(t *testing.T) {
	w, _, store := newWorker(t)

	// A transaction deleted before export is not an error.
	if err := w.HandleMessage(context.Background(), amqp.NewSyncMessage(999, 1)); err != nil {
		t.Fatalf("handle sync for missing id: %v", err)
	}
	if len(store.All()) != 0 {
		t.Error("nothing should be exported for a missing transaction")
	}
}

func TestHandleDeleteMessage(t *testing.T) {
	w, repo, store := newWorker(t)
	ctx := context.Background()
	id := createTransaction(t, repo)

	if err := w.HandleMessage(ctx, amqp.NewSyncMessage(id, 1)); err != nil {
		t.Fatalf("handle sync: %v", err)
	}
	if err := w.HandleMessage(ctx, amqp.NewDeleteMessage(id)); err != nil {
		t.Fatalf("handle delete: %v", err)
	}
	if len(store.All()) != 0 {
		t.Error("sheet row should be removed after delete message")
	}
}

func TestHandleUnknownKindDrops(t *testing.T) {
	w, _, _ := newWorker(t)
	msg := &amqp.Message{Kind: "bogus", ID: 1}
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Errorf("unknown kind should be dropped, got %v", err)
	}
}

func TestProcessPendingDrainsBacklog(t *testing.T) {
	w, repo, store := newWorker(t)
	ctx := context.Background()
	createTransaction(t, repo)
	createTransaction(t, repo)

	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if got := len(store.All()); got != 2 {
		t.Errorf("exported = %d, want 2", got)
	}

	// A second pass finds nothing left.
	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if got := len(store.All()); got != 2 {
		t.Errorf("exported after second pass = %d, want 2", got)
	}
}
