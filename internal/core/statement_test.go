package core

import "testing"

func TestBuildStatementUnfiltered(t *testing.T) {
	ts := []Transaction{
		{ID: 1, Date: NewDate(2024, 1, 1), Category: "Pay", Subcategory: "Salary", Amount: Money{Cents: 10000}, Type: Income},
		{ID: 2, Date: NewDate(2024, 1, 2), Category: "Groceries", Subcategory: "Food", Amount: Money{Cents: 4000}, Type: Expense},
	}
	st := BuildStatement(ts, false)
	if !st.WithBalance {
		t.Fatalf("unfiltered statement must carry balance column")
	}
	if len(st.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (no TOTAL row)", len(st.Rows))
	}
	if st.Rows[0].Amount.Cents != 10000 || st.Rows[0].Balance.Cents != 10000 {
		t.Fatalf("row 0: amount=%d balance=%d", st.Rows[0].Amount.Cents, st.Rows[0].Balance.Cents)
	}
	if st.Rows[1].Amount.Cents != -4000 || st.Rows[1].Balance.Cents != 6000 {
		t.Fatalf("row 1: amount=%d balance=%d", st.Rows[1].Amount.Cents, st.Rows[1].Balance.Cents)
	}
	if st.Rows[0].Category != "Pay" {
		t.Fatalf("category missing from unfiltered row")
	}
}

func TestBuildStatementNarrowedAppendsTotal(t *testing.T) {
	ts := []Transaction{
		{ID: 1, Date: NewDate(2024, 1, 1), Category: "Pay", Amount: Money{Cents: 10000}, Type: Income},
		{ID: 2, Date: NewDate(2024, 1, 2), Category: "Pay", Amount: Money{Cents: 4000}, Type: Expense},
	}
	st := BuildStatement(ts, true)
	if st.WithBalance {
		t.Fatalf("narrowed statement must not carry balance column")
	}
	if len(st.Rows) != 3 {
		t.Fatalf("rows = %d, want 2 + TOTAL", len(st.Rows))
	}
	last := st.Rows[2]
	if !last.Total || last.Subcategory != TotalLabel {
		t.Fatalf("trailing row is not the TOTAL row: %+v", last)
	}
	if last.Amount.Cents != 6000 {
		t.Fatalf("TOTAL = %d, want 6000", last.Amount.Cents)
	}
}

func TestBuildStatementNarrowedEmptyHasNoTotal(t *testing.T) {
	st := BuildStatement(nil, true)
	if len(st.Rows) != 0 {
		t.Fatalf("empty narrowed statement must have no rows, got %d", len(st.Rows))
	}
}

func TestBuildStatementUsesNetAmounts(t *testing.T) {
	withheld := Transaction{ID: 1, Date: NewDate(2024, 1, 1), Category: "Pay", Amount: Money{Cents: 10000}, Type: Income, TaxWithheld: true, TaxRate: 20}
	st := BuildStatement([]Transaction{withheld}, false)
	if st.Rows[0].Amount.Cents != 8000 || st.Rows[0].Balance.Cents != 8000 {
		t.Fatalf("withheld income row: amount=%d balance=%d, want 8000", st.Rows[0].Amount.Cents, st.Rows[0].Balance.Cents)
	}
}
