package sqlite

import (
	"context"
	"fmt"
	"time"

	"finance-tracker/internal/domain"
)

type TransactionRepository struct {
	q querier
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (int64, error) {
	if tx.TransactedAt.IsZero() {
		tx.TransactedAt = time.Now().UTC()
	}
	res, err := r.q.ExecContext(ctx, `
INSERT INTO transactions (user_id, symbol, shares, price, transacted_at)
VALUES (?, ?, ?, ?, ?)`,
		tx.UserID,
		tx.Symbol,
		tx.Shares,
		tx.Price,
		tx.TransactedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction last insert id: %w", err)
	}
	tx.ID = id
	return id, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT id, user_id, symbol, shares, price, transacted_at
FROM transactions
WHERE user_id = ?
ORDER BY transacted_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Symbol, &t.Shares, &t.Price, &t.TransactedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}
