package tracker

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// User captures the owner of tracked financial data.
type User struct {
	ID    uuid.UUID
	Email *string
}

// Income is a single income record: where the money came from, how much, when.
type Income struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Source string
	Amount decimal.Decimal
	Date   time.Time
}

// Expense mirrors Income with a spending category in place of a source.
type Expense struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Category string
	Amount   decimal.Decimal
	Date     time.Time
}

// Goal is a savings target. Amount tracks current progress toward AmountNeeded.
type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Description  string
	Amount       decimal.Decimal
	AmountNeeded decimal.Decimal
}

// Progress returns the completion ratio in percent. AmountNeeded is
// validated >= 1 before a goal is persisted, so the guard here only
// protects against hand-built values.
func (g Goal) Progress() float64 {
	if g.AmountNeeded.Sign() <= 0 {
		return 0
	}
	q, err := g.Amount.Quo(g.AmountNeeded)
	if err != nil {
		return 0
	}
	f, _ := q.Float64()
	return f * 100
}

// Completed reports whether the goal reached its target. Display-only:
// no state transition is recorded when a goal completes.
func (g Goal) Completed() bool {
	return g.Amount.Cmp(g.AmountNeeded) >= 0
}

// Kind tags a transaction by the list it originated from.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Transaction is the unified read-only view over income and expense
// records. The tag is decided at the point of combining the two lists;
// transactions are never persisted.
type Transaction struct {
	ID     uuid.UUID
	Kind   Kind
	Label  string // income source or expense category
	Amount decimal.Decimal
	Date   time.Time
}
