package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger entry. Shares is positive for buys and
// negative for sells; Price is the total amount paid or received.
type Transaction struct {
	ID           int64
	UserID       int64
	Symbol       string
	Shares       int64
	Price        decimal.Decimal
	TransactedAt time.Time
}

// IsBuy reports whether the entry records a purchase.
func (t Transaction) IsBuy() bool {
	return t.Shares > 0
}
