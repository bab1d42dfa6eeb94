package core

import "testing"

func tx(id int64, tt TransactionType, cents int64) Transaction {
	return Transaction{ID: id, Date: NewDate(2024, 1, 1), Category: "c", Amount: Money{Cents: cents}, Type: tt}
}

func TestLedgerBalanceUsesGrossAmounts(t *testing.T) {
	l := NewLedger()
	withheld := tx(1, Income, 10000)
	withheld.TaxWithheld = true
	withheld.TaxRate = 20
	l.Add(withheld)
	l.Add(tx(2, Expense, 3000))

	// 10000 - 3000, ignoring withholding: the ledger balance is gross.
	if got := l.Balance().Cents; got != 7000 {
		t.Fatalf("balance = %d, want 7000", got)
	}
}

func TestLedgerRemoveRoundTrip(t *testing.T) {
	l := NewLedger()
	l.Add(tx(1, Income, 5000))
	before := l.Balance()

	l.Add(tx(2, Expense, 1200))
	if !l.Remove(2) {
		t.Fatalf("expected removal of id 2")
	}
	if l.Balance() != before {
		t.Fatalf("balance = %d, want %d after round-trip", l.Balance().Cents, before.Cents)
	}
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
}

func TestLedgerRemoveUnknownID(t *testing.T) {
	l := NewLedger()
	l.Add(tx(1, Income, 5000))
	if l.Remove(99) {
		t.Fatalf("expected false for unknown id")
	}
	if l.Balance().Cents != 5000 || l.Len() != 1 {
		t.Fatalf("ledger changed by failed removal")
	}
}

func TestLedgerAllPreservesInsertionOrder(t *testing.T) {
	l := NewLedger()
	l.Add(tx(3, Income, 100))
	l.Add(tx(1, Expense, 200))
	l.Add(tx(2, Income, 300))

	all := l.All()
	wantIDs := []int64{3, 1, 2}
	for i, id := range wantIDs {
		if all[i].ID != id {
			t.Fatalf("position %d: id = %d, want %d", i, all[i].ID, id)
		}
	}

	// Mutation of the returned slice must not leak into the ledger.
	all[0].Amount.Cents = 0
	if l.All()[0].Amount.Cents != 100 {
		t.Fatalf("All returned a view, not a copy")
	}
}

func TestLedgerClear(t *testing.T) {
	l := NewLedger()
	l.Add(tx(1, Income, 5000))
	l.Clear()
	if l.Len() != 0 || l.Balance().Cents != 0 {
		t.Fatalf("clear left len=%d balance=%d", l.Len(), l.Balance().Cents)
	}
}
