package repository

import (
	"context"
	"errors"

	"finance-tracker/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique constraint rejects an insert.
	ErrAlreadyExists = errors.New("already exists")
)

// HoldingRepository manages the stocks a user currently owns.
type HoldingRepository interface {
	Get(ctx context.Context, userID int64, symbol string) (*domain.Holding, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Holding, error)
	Create(ctx context.Context, holding *domain.Holding) (int64, error)
	Update(ctx context.Context, holding *domain.Holding) error
	Delete(ctx context.Context, userID int64, symbol string) error
}

// TransactionRepository appends to and reads the transaction history.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// Store groups the repositories so a set of writes can share one transaction.
type Store interface {
	Users() UserRepository
	Holdings() HoldingRepository
	Transactions() TransactionRepository
	// WithinTx runs fn against a Store bound to a single database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
