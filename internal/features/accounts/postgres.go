// Package accounts — postgres.go реализует Repository поверх pgxpool.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
package accounts

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

const userColumns = `id, tg_id, username, first_name, last_name, language_code, is_premium,
	balance, referrals_count, current_skin_id, custom_texts, daisies_left, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.TgID, &u.Username, &u.FirstName, &u.LastName, &u.LanguageCode, &u.IsPremium,
		&u.Balance, &u.ReferralsCount, &u.CurrentSkinID, &u.CustomTexts, &u.DaisiesLeft,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetByTgID(ctx context.Context, tgID int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tg_id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, tgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения аккаунта (tg_id=%d): %w", tgID, err)
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения аккаунта (id=%d): %w", id, err)
	}
	return u, nil
}

// Create вставляет новый аккаунт. UNIQUE(tg_id) плюс ON CONFLICT DO NOTHING
// гарантируют ровно один аккаунт на Telegram ID даже при двух одновременных
// первых запросах: проигравший вставку просто перечитывает строку победителя.
func (r *PostgresRepository) Create(ctx context.Context, nu *NewUser) (*User, error) {
	query := `
		INSERT INTO users (tg_id, username, first_name, last_name, language_code, is_premium,
		                   balance, current_skin_id, custom_texts, daisies_left)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tg_id) DO NOTHING
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query,
		nu.TgID, nu.Username, nu.FirstName, nu.LastName, nu.LanguageCode, nu.IsPremium,
		nu.Balance, nu.SkinID, nu.CustomTexts, nu.DaisiesLeft,
	))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ошибка создания аккаунта (tg_id=%d): %w", nu.TgID, err)
	}
	// Конфликт: аккаунт уже создан параллельным запросом
	return r.GetByTgID(ctx, nu.TgID)
}

func (r *PostgresRepository) UpdateCustomTexts(ctx context.Context, userID int64, texts []string) error {
	query := `UPDATE users SET custom_texts = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, userID, texts)
	if err != nil {
		return fmt.Errorf("ошибка обновления текстов: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) ResetDaisies(ctx context.Context, daisies int) error {
	query := `UPDATE users SET daisies_left = $1, updated_at = NOW() WHERE daisies_left <> $1`
	if _, err := r.db.Exec(ctx, query, daisies); err != nil {
		return fmt.Errorf("ошибка сброса ромашек: %w", err)
	}
	return nil
}
