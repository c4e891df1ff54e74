// Package skins — postgres.go выполняет операции каталога и покупок в БД.
// Покупка — транзакция с блокировкой строки аккаунта (FOR UPDATE):
// проверка баланса и списание не могут разъехаться между
// двумя одновременными запросами.
package skins

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/features/economy"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const skinColumns = `id, name, price, color, is_default, created_at`

func scanSkin(row pgx.Row) (*Skin, error) {
	var s Skin
	if err := row.Scan(&s.ID, &s.Name, &s.Price, &s.Color, &s.IsDefault, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Skin, error) {
	rows, err := r.db.Query(ctx, `SELECT `+skinColumns+` FROM skins ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}
	defer rows.Close()

	var catalog []*Skin
	for rows.Next() {
		s, err := scanSkin(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования скина: %w", err)
		}
		catalog = append(catalog, s)
	}
	return catalog, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Skin, error) {
	s, err := scanSkin(r.db.QueryRow(ctx, `SELECT `+skinColumns+` FROM skins WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrSkinNotFound
		}
		return nil, fmt.Errorf("ошибка чтения скина (id=%d): %w", id, err)
	}
	return s, nil
}

func (r *PostgresRepository) GetDefault(ctx context.Context) (*Skin, error) {
	s, err := scanSkin(r.db.QueryRow(ctx, `SELECT `+skinColumns+` FROM skins WHERE is_default LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrSkinNotFound
		}
		return nil, fmt.Errorf("ошибка чтения дефолтного скина: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) OwnedIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT skin_id FROM user_skins WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения владений: %w", err)
	}
	defer rows.Close()

	owned := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования владения: %w", err)
		}
		owned[id] = true
	}
	return owned, rows.Err()
}

func (r *PostgresRepository) Owns(ctx context.Context, userID, skinID int64) (bool, error) {
	var owns bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_skins WHERE user_id = $1 AND skin_id = $2)`,
		userID, skinID,
	).Scan(&owns)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки владения: %w", err)
	}
	return owns, nil
}

// Purchase списывает цену скина и создаёт владение одной транзакцией.
// Строка аккаунта блокируется FOR UPDATE, поэтому параллельная покупка
// того же или другого скина дождётся фиксации и увидит новый баланс.
func (r *PostgresRepository) Purchase(ctx context.Context, userID int64, skin *Skin) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrUserNotFound
		}
		return 0, fmt.Errorf("ошибка получения баланса: %w", err)
	}

	var owns bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_skins WHERE user_id = $1 AND skin_id = $2)`,
		userID, skin.ID,
	).Scan(&owns)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки владения: %w", err)
	}
	if owns {
		return 0, common.ErrAlreadyOwned
	}

	if balance < skin.Price {
		return 0, common.ErrInsufficientBalance
	}

	var newBalance int64
	err = tx.QueryRow(ctx, `
		UPDATE users
		SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`, userID, skin.Price).Scan(&newBalance)
	if err != nil {
		return 0, fmt.Errorf("ошибка списания: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO user_skins (user_id, skin_id) VALUES ($1, $2)`,
		userID, skin.ID,
	)
	if err != nil {
		// UNIQUE(user_id, skin_id): гонка, которую не поймала проверка выше
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, common.ErrAlreadyOwned
		}
		return 0, fmt.Errorf("ошибка создания владения: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (user_id, kind, skin_id, amount)
		VALUES ($1, $2, $3, $4)
	`, userID, economy.KindSkinPurchase, skin.ID, skin.Price)
	if err != nil {
		return 0, fmt.Errorf("ошибка записи журнала: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return newBalance, nil
}

func (r *PostgresRepository) SetCurrent(ctx context.Context, userID, skinID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET current_skin_id = $2, updated_at = NOW() WHERE id = $1`,
		userID, skinID,
	)
	if err != nil {
		return fmt.Errorf("ошибка выбора скина: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrUserNotFound
	}
	return nil
}

// Seed загружает каталог, если таблица пуста. Повторный запуск — no-op.
func (r *PostgresRepository) Seed(ctx context.Context, catalog []Skin) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM skins`).Scan(&count); err != nil {
		return fmt.Errorf("ошибка проверки каталога: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, s := range catalog {
		_, err := tx.Exec(ctx,
			`INSERT INTO skins (name, price, color, is_default) VALUES ($1, $2, $3, $4)`,
			s.Name, s.Price, s.Color, s.IsDefault,
		)
		if err != nil {
			return fmt.Errorf("ошибка загрузки каталога: %w", err)
		}
	}
	return tx.Commit(ctx)
}
