package core

import "testing"

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: 1, Date: NewDate(2024, 1, 1), Category: "Pay", Subcategory: "Salary", Amount: Money{Cents: 10000}, Type: Income},
		{ID: 2, Date: NewDate(2024, 1, 2), Category: "Groceries", Subcategory: "Vegetables", Amount: Money{Cents: 3000}, Type: Expense},
		{ID: 3, Date: NewDate(2024, 1, 3), Category: "Pay", Subcategory: "Bonus", Amount: Money{Cents: 2000}, Type: Income},
		{ID: 4, Date: NewDate(2024, 1, 4), Category: "Groceries", Subcategory: "veggies and fruit", Amount: Money{Cents: 1500}, Type: Expense},
	}
}

func ids(ts []Transaction) []int64 {
	out := make([]int64, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestCriteriaApply(t *testing.T) {
	cases := []struct {
		name string
		c    Criteria
		want []int64
	}{
		{"type only income", Criteria{Type: Income}, []int64{1, 3}},
		{"type only expense", Criteria{Type: Expense}, []int64{2, 4}},
		{"exact category", Criteria{Category: "Pay", Type: Income}, []int64{1, 3}},
		{"category is case sensitive", Criteria{Category: "pay", Type: Income}, nil},
		{"subcategory substring, case insensitive", Criteria{Subcategory: "VEG", Type: Expense}, []int64{2, 4}},
		{"all three predicates", Criteria{Category: "Pay", Subcategory: "bon", Type: Income}, []int64{3}},
		{"no match", Criteria{Category: "Rent", Type: Expense}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.c.Apply(sampleTransactions())
			gotIDs := ids(got)
			if len(gotIDs) != len(tc.want) {
				t.Fatalf("got %v, want %v", gotIDs, tc.want)
			}
			for i := range tc.want {
				if gotIDs[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", gotIDs, tc.want)
				}
			}
		})
	}
}

func TestCriteriaApplyIdempotent(t *testing.T) {
	c := Criteria{Category: "Groceries", Subcategory: "veg", Type: Expense}
	once := c.Apply(sampleTransactions())
	twice := c.Apply(once)
	if len(once) != len(twice) {
		t.Fatalf("idempotence broken: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("idempotence broken at %d", i)
		}
	}
}

func TestCriteriaNarrowed(t *testing.T) {
	cases := []struct {
		c    Criteria
		want bool
	}{
		{Criteria{Type: Income}, false},
		{Criteria{Category: "Pay", Type: Income}, true},
		{Criteria{Subcategory: "veg", Type: Expense}, true},
	}
	for i, tc := range cases {
		if got := tc.c.Narrowed(); got != tc.want {
			t.Fatalf("case %d: narrowed = %v, want %v", i, got, tc.want)
		}
	}
}
