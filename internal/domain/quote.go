package domain

import "github.com/shopspring/decimal"

// Quote is a point-in-time price for a symbol. It is never persisted.
type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}
