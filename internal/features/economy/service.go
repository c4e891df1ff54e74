// Package economy — service.go содержит бизнес-логику экономики:
// валидация сумм, начисления, история операций.
package economy

import (
	"context"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/common"
)

// Service управляет экономикой игры (листики).
type Service struct {
	repo Repository
}

// NewService создаёт новый сервис экономики.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Credit начисляет листики на счёт пользователя.
// Используется для оплаченных пополнений и реферальных бонусов.
func (s *Service) Credit(ctx context.Context, userID, amount int64, kind string, paymentID *string) (int64, error) {
	if amount <= 0 {
		return 0, common.ErrInvalidAmount
	}

	newBalance, err := s.repo.Credit(ctx, userID, amount, kind, paymentID)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  amount,
		"kind":    kind,
	}).Info("Начисление выполнено")

	return newBalance, nil
}

// GetBalance возвращает текущий баланс пользователя.
func (s *Service) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

// History возвращает последние limit записей журнала.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.History(ctx, userID, limit)
}
