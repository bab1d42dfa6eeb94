package core

// Ledger holds one user's transactions in insertion order together with an
// incrementally maintained balance. The balance is the signed sum of gross
// amounts (income positive, expense negative); it is intentionally not the
// post-tax running balance the statement view shows.
type Ledger struct {
	transactions []Transaction
	balance      int64 // signed cents
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add appends a transaction and updates the balance in O(1).
func (l *Ledger) Add(t Transaction) {
	l.transactions = append(l.transactions, t)
	if t.IsIncome() {
		l.balance += t.Amount.Cents
	} else {
		l.balance -= t.Amount.Cents
	}
}

// Remove deletes the transaction with the given id, reversing its balance
// contribution. Returns false when no such transaction exists.
func (l *Ledger) Remove(id int64) bool {
	for i, t := range l.transactions {
		if t.ID != id {
			continue
		}
		if t.IsIncome() {
			l.balance -= t.Amount.Cents
		} else {
			l.balance += t.Amount.Cents
		}
		l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
		return true
	}
	return false
}

// Balance returns the cached gross-amount balance, signed.
func (l *Ledger) Balance() Money {
	return Money{Cents: l.balance}
}

// All returns the transactions in insertion order. The caller gets a copy;
// mutating it does not affect the ledger.
func (l *Ledger) All() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Clear empties the ledger and resets the balance.
func (l *Ledger) Clear() {
	l.transactions = nil
	l.balance = 0
}
