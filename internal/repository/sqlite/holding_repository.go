package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

type HoldingRepository struct {
	q querier
}

func (r *HoldingRepository) Get(ctx context.Context, userID int64, symbol string) (*domain.Holding, error) {
	row := r.q.QueryRowContext(ctx, `
SELECT id, user_id, symbol, name, shares, price, total
FROM stocks
WHERE user_id = ? AND symbol = ?`,
		userID, symbol,
	)
	h, err := scanHolding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holding %s: %w", symbol, repository.ErrNotFound)
		}
		return nil, err
	}
	return h, nil
}

func (r *HoldingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Holding, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT id, user_id, symbol, name, shares, price, total
FROM stocks
WHERE user_id = ?
ORDER BY symbol`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holdings: %w", err)
	}
	return holdings, nil
}

func (r *HoldingRepository) Create(ctx context.Context, holding *domain.Holding) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
INSERT INTO stocks (user_id, symbol, name, shares, price, total)
VALUES (?, ?, ?, ?, ?, ?)`,
		holding.UserID,
		holding.Symbol,
		holding.Name,
		holding.Shares,
		holding.Price,
		holding.Total,
	)
	if err != nil {
		return 0, fmt.Errorf("insert holding: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("holding last insert id: %w", err)
	}
	holding.ID = id
	return id, nil
}

func (r *HoldingRepository) Update(ctx context.Context, holding *domain.Holding) error {
	res, err := r.q.ExecContext(ctx, `
UPDATE stocks SET shares = ?, price = ?, total = ?
WHERE user_id = ? AND symbol = ?`,
		holding.Shares,
		holding.Price,
		holding.Total,
		holding.UserID,
		holding.Symbol,
	)
	if err != nil {
		return fmt.Errorf("update holding: %w", err)
	}
	return expectAffected(res, "holding")
}

func (r *HoldingRepository) Delete(ctx context.Context, userID int64, symbol string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM stocks WHERE user_id = ? AND symbol = ?`, userID, symbol)
	if err != nil {
		return fmt.Errorf("delete holding: %w", err)
	}
	return expectAffected(res, "holding")
}

func scanHolding(row interface {
	Scan(dest ...any) error
}) (*domain.Holding, error) {
	var h domain.Holding
	if err := row.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Name, &h.Shares, &h.Price, &h.Total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan holding: %w", err)
	}
	return &h, nil
}
