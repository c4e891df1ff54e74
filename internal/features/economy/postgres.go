// Package economy — postgres.go выполняет операции с балансом и журналом в БД.
// Все денежные операции выполняются в транзакциях для целостности данных.
package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/daisy-game/internal/common"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Credit начисляет листики на счёт пользователя.
// Обновление баланса и запись журнала атомарны: либо оба произойдут,
// либо ни одного.
func (r *PostgresRepository) Credit(ctx context.Context, userID, amount int64, kind string, paymentID *string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var newBalance int64
	err = tx.QueryRow(ctx, `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`, userID, amount).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrUserNotFound
		}
		return 0, fmt.Errorf("ошибка начисления: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (user_id, kind, amount, payment_id)
		VALUES ($1, $2, $3, $4)
	`, userID, kind, amount, paymentID)
	if err != nil {
		return 0, fmt.Errorf("ошибка записи журнала: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return newBalance, nil
}

func (r *PostgresRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrUserNotFound
		}
		return 0, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	return balance, nil
}

func (r *PostgresRepository) History(ctx context.Context, userID int64, limit int) ([]*LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, kind, skin_id, amount, payment_id, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения журнала: %w", err)
	}
	defer rows.Close()

	var entries []*LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.SkinID, &e.Amount, &e.PaymentID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования журнала: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
