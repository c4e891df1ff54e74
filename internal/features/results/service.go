// Package results — service.go содержит бизнес-логику гаданий.
package results

import (
	"context"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/features/accounts"
)

// Service записывает результаты гаданий и отдаёт историю.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit записывает результат гадания и списывает ромашку дня.
// Текст лепестка ограничен теми же рамками, что и кастомные тексты.
func (s *Service) Submit(ctx context.Context, userID int64, answer string) (int, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0, common.ErrEmptyText
	}
	if utf8.RuneCountInString(answer) > accounts.MaxCustomTextLen {
		return 0, common.ErrTextTooLong
	}

	daisiesLeft, err := s.repo.Submit(ctx, userID, answer)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id":      userID,
		"answer":       answer,
		"daisies_left": daisiesLeft,
	}).Info("Результат гадания записан")
	return daisiesLeft, nil
}

// History возвращает последние limit результатов пользователя.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*Result, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
