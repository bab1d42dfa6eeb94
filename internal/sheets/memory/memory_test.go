package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func sample(id int64) core.Transaction {
	return core.Transaction{
		ID:       id,
		Date:     core.NewDate(2026, 3, 15),
		Category: "Food",
		Amount:   core.Money{Cents: 1250},
		Type:     core.Expense,
	}
}

func TestAppendAndRemove(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, sample(1))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want %q", ref, "mem:1")
	}
	if _, err := s.Append(ctx, sample(2)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if got := len(s.All()); got != 2 {
		t.Fatalf("len(All()) = %d, want 2", got)
	}

	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	all := s.All()
	if len(all) != 1 || all[0].ID != 2 {
		t.Errorf("All() after remove = %+v, want only id 2", all)
	}

	if err := s.Remove(ctx, 99); err != nil {
		t.Errorf("removing unknown id should be a no-op, got %v", err)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()
	tx := sample(1)
	tx.Category = ""
	if _, err := s.Append(context.Background(), tx); err == nil {
		t.Error("expected validation error for empty category")
	}
}
