package core

// TotalLabel marks the synthetic trailing row of a narrowed statement.
const TotalLabel = "TOTAL"

// StatementRow is one table row: the transaction's date, its signed net
// amount and the running balance after it. Category and Balance are only
// meaningful when the statement carries them (see Statement.WithBalance).
type StatementRow struct {
	Date        Date
	Category    string
	Subcategory string
	Amount      Money // +net for income, -net for expense
	Balance     Money // signed running balance
	Total       bool  // synthetic TOTAL row, not a transaction
}

// Statement is the tabular running-balance view over an already filtered,
// already ordered transaction sequence.
type Statement struct {
	Rows []StatementRow
	// WithBalance selects the wide "all transactions" layout with category
	// and per-row balance columns. The narrowed layout drops both and ends
	// with a TOTAL row instead.
	WithBalance bool
}

// BuildStatement walks the transactions in the order given, accumulating the
// net-amount running balance. Callers wanting chronological display must
// pass a date-ordered sequence; no sorting happens here.
//
// narrowed selects the filtered layout: no category or balance columns, and
// a trailing TOTAL row carrying the final balance when the sequence is
// non-empty.
func BuildStatement(transactions []Transaction, narrowed bool) Statement {
	st := Statement{
		Rows:        make([]StatementRow, 0, len(transactions)),
		WithBalance: !narrowed,
	}

	var balance int64
	for _, t := range transactions {
		net := t.NetAmount().Cents
		if !t.IsIncome() {
			net = -net
		}
		balance += net

		row := StatementRow{
			Date:        t.Date,
			Subcategory: t.Subcategory,
			Amount:      Money{Cents: net},
		}
		if st.WithBalance {
			row.Category = t.Category
			row.Balance = Money{Cents: balance}
		}
		st.Rows = append(st.Rows, row)
	}

	if narrowed && len(st.Rows) > 0 {
		st.Rows = append(st.Rows, StatementRow{
			Subcategory: TotalLabel,
			Amount:      Money{Cents: balance},
			Total:       true,
		})
	}

	return st
}
