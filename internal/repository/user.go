package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateBalance(ctx context.Context, id int64, cash, total decimal.Decimal) error
}
