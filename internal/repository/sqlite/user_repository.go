package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

type UserRepository struct {
	q querier
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.q.ExecContext(ctx, `
INSERT INTO users (username, hash, cash, total, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.Cash,
		user.Total,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("user %q: %w", user.Username, repository.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
SELECT id, username, hash, cash, total, created_at, updated_at
FROM users
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
SELECT id, username, hash, cash, total, created_at, updated_at
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE users SET hash = ?, updated_at = ? WHERE id = ?`,
		hash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return expectAffected(res, "user")
}

func (r *UserRepository) UpdateBalance(ctx context.Context, id int64, cash, total decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx, `UPDATE users SET cash = ?, total = ?, updated_at = ? WHERE id = ?`,
		cash, total, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return expectAffected(res, "user")
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Cash,
		&user.Total,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func expectAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, repository.ErrNotFound)
	}
	return nil
}
