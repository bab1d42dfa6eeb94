package core

import (
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"
)

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record. Amount is always a
	// positive magnitude; direction comes from Type. ID is zero until the
	// storage layer assigns one.
	Transaction struct {
		ID          int64
		UserID      int64
		Date        Date
		Category    string
		Subcategory string
		Amount      Money
		Type        TransactionType
		TaxWithheld bool
		TaxRate     float64 // percentage, meaningful only for withheld income
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyCategory = errors.New("empty category")
)

func (tt TransactionType) Valid() bool {
	return tt == Income || tt == Expense
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Key returns the ISO day key used for grouping.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t Transaction) IsIncome() bool {
	return t.Type == Income
}

// NetAmount returns the amount after tax withholding. Withheld income is
// reduced by TaxRate percent; everything else passes through unchanged.
// A TaxRate outside [0,100] is clamped, not rejected.
func (t Transaction) NetAmount() Money {
	if t.Type != Income || !t.TaxWithheld {
		return t.Amount
	}
	rate := t.TaxRate
	if rate < 0 {
		slog.Warn("Tax rate below 0%, treating as 0%", "tax_rate", t.TaxRate, "transaction_id", t.ID)
		return t.Amount
	}
	if rate > 100 {
		slog.Warn("Tax rate above 100%, treating as 100%", "tax_rate", t.TaxRate, "transaction_id", t.ID)
		return Money{Cents: 0}
	}
	tax := int64(math.Round(float64(t.Amount.Cents) * rate / 100.0))
	return Money{Cents: t.Amount.Cents - tax}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks creation-time invariants. Subcategory may be empty.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
