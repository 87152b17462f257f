package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"finance-tracker/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store binds the sqlite repositories to either the database or an open transaction.
type Store struct {
	db           *sql.DB
	inTx         bool
	users        *UserRepository
	holdings     *HoldingRepository
	transactions *TransactionRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db, false)
}

func newStore(db *sql.DB, q querier, inTx bool) *Store {
	return &Store{
		db:           db,
		inTx:         inTx,
		users:        &UserRepository{q: q},
		holdings:     &HoldingRepository{q: q},
		transactions: &TransactionRepository{q: q},
	}
}

func (s *Store) Users() repository.UserRepository               { return s.users }
func (s *Store) Holdings() repository.HoldingRepository         { return s.holdings }
func (s *Store) Transactions() repository.TransactionRepository { return s.transactions }

func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newStore(s.db, tx, true)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ repository.Store = (*Store)(nil)
