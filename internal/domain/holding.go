package domain

import "github.com/shopspring/decimal"

// Holding is a user's current position in one symbol. Shares is always positive
// while the row exists.
type Holding struct {
	ID     int64
	UserID int64
	Symbol string
	Name   string
	Shares int64
	Price  decimal.Decimal
	Total  decimal.Decimal
}
