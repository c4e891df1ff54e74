// Package referrals — postgres.go выполняет реферальные операции в БД.
// Применение кода — одна транзакция над двумя аккаунтами: строки
// блокируются в порядке возрастания ID, чтобы встречные применения
// не взаимоблокировались.
package referrals

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

func lockUser(ctx context.Context, tx pgx.Tx, userID int64) (bool, error) {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка блокировки аккаунта (id=%d): %w", userID, err)
	}
	return true, nil
}

// Apply создаёт связь и начисляет бонусы обеим сторонам одной транзакцией.
func (r *PostgresRepository) Apply(ctx context.Context, inviterID, invitedID, inviterBonus, invitedBonus int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем обе строки в порядке возрастания ID
	first, second := inviterID, invitedID
	if first > second {
		first, second = second, first
	}
	for _, userID := range []int64{first, second} {
		found, err := lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !found {
			if userID == inviterID {
				// Пригласившего нет — связь не создаём, бонусы не выдаём
				return common.ErrInviterNotFound
			}
			return common.ErrUserNotFound
		}
	}

	// Приглашённый мог быть приглашён раньше
	var applied bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM referrals WHERE invited_id = $1)`, invitedID,
	).Scan(&applied)
	if err != nil {
		return fmt.Errorf("ошибка проверки реферала: %w", err)
	}
	if applied {
		return common.ErrReferralAlreadyApplied
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO referrals (inviter_id, invited_id, rewarded) VALUES ($1, $2, TRUE)`,
		inviterID, invitedID,
	)
	if err != nil {
		// UNIQUE(invited_id): гонка, которую не поймала проверка выше
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrReferralAlreadyApplied
		}
		return fmt.Errorf("ошибка создания реферала: %w", err)
	}

	// Бонус пригласившему + счётчик рефералов
	_, err = tx.Exec(ctx, `
		UPDATE users
		SET balance = balance + $2, referrals_count = referrals_count + 1, updated_at = NOW()
		WHERE id = $1
	`, inviterID, inviterBonus)
	if err != nil {
		return fmt.Errorf("ошибка начисления пригласившему: %w", err)
	}

	// Бонус приглашённому
	_, err = tx.Exec(ctx, `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
	`, invitedID, invitedBonus)
	if err != nil {
		return fmt.Errorf("ошибка начисления приглашённому: %w", err)
	}

	// Каждое начисление — своя запись журнала
	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (user_id, kind, amount)
		VALUES ($1, $3, $2), ($4, $3, $5)
	`, inviterID, inviterBonus, economy.KindReferralBonus, invitedID, invitedBonus)
	if err != nil {
		return fmt.Errorf("ошибка записи журнала: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListByInviter(ctx context.Context, inviterID int64) ([]*ReferralInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.inviter_id, r.invited_id, r.rewarded, r.created_at,
		       u.id, u.username, u.first_name
		FROM referrals r
		JOIN users u ON u.id = r.invited_id
		WHERE r.inviter_id = $1
		ORDER BY r.created_at DESC
	`, inviterID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения рефералов: %w", err)
	}
	defer rows.Close()

	var result []*ReferralInfo
	for rows.Next() {
		var info ReferralInfo
		err := rows.Scan(
			&info.ID, &info.InviterID, &info.InvitedID, &info.Rewarded, &info.CreatedAt,
			&info.Invited.ID, &info.Invited.Username, &info.Invited.FirstName,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования реферала: %w", err)
		}
		result = append(result, &info)
	}
	return result, rows.Err()
}
