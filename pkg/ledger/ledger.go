package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the write model sent to the shared-expense ledger. Cost is
// always a non-negative magnitude; the ledger records costs, not signed
// cash flow. Details carries the originating transaction id so a committed
// expense can be traced back to its source record.
type Expense struct {
	Cost         decimal.Decimal
	Description  string
	Date         time.Time
	GroupID      int64
	Details      string
	CurrencyCode string
}

// Ledger defines the interface to the external shared-expense system.
type Ledger interface {
	// CreateExpense records a single expense. It is called at most once per
	// accepted transaction and is not retried automatically.
	CreateExpense(ctx context.Context, expense *Expense) error
}
