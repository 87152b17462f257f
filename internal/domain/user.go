package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account and its cash position.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Cash         decimal.Decimal
	Total        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
