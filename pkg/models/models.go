package models

import (
	"github.com/shopspring/decimal"
)

// Transaction represents a single record from a Mint transaction export.
// The export is the source of truth; this service only ever reads it. The
// JSON tags follow the export's camelCase field names, of which we consume
// a small subset.
type Transaction struct {
	Id          string          `json:"id"`
	AccountId   string          `json:"accountId,omitempty"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category,omitempty"`
	IsPending   bool            `json:"isPending,omitempty"`
}

// Category is the export's transaction category. Only the name survives
// into this service; everything else in the export is ignored.
type Category struct {
	Name string `json:"name,omitempty"`
}
