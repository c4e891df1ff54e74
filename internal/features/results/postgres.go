// Package results — postgres.go выполняет операции с результатами в БД.
package results

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

// Submit списывает ромашку и пишет результат одной транзакцией.
// Списание с условием daisies_left > 0 отсекает гонку двух
// одновременных гаданий на последней ромашке.
func (r *PostgresRepository) Submit(ctx context.Context, userID int64, answer string) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var daisiesLeft int
	err = tx.QueryRow(ctx, `
		UPDATE users
		SET daisies_left = daisies_left - 1, updated_at = NOW()
		WHERE id = $1 AND daisies_left > 0
		RETURNING daisies_left
	`, userID).Scan(&daisiesLeft)
	if errors.Is(err, pgx.ErrNoRows) {
		// Либо нет аккаунта, либо ромашки кончились
		var exists bool
		if checkErr := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID,
		).Scan(&exists); checkErr != nil {
			return 0, fmt.Errorf("ошибка проверки аккаунта: %w", checkErr)
		}
		if !exists {
			return 0, common.ErrUserNotFound
		}
		return 0, common.ErrNoDaisiesLeft
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка списания ромашки: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO results (user_id, answer) VALUES ($1, $2)`,
		userID, answer,
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка записи результата: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка коммита: %w", err)
	}
	return daisiesLeft, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*Result, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, answer, created_at
		FROM results
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения результатов: %w", err)
	}
	defer rows.Close()

	var result []*Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.ID, &res.UserID, &res.Answer, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования результата: %w", err)
		}
		result = append(result, &res)
	}
	return result, rows.Err()
}
