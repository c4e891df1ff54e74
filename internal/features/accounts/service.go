// Package accounts — service.go содержит бизнес-логику аккаунтов:
// резолв проверенной личности в аккаунт и работу с кастомными текстами.
package accounts

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/auth"
	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/config"
)

// Service управляет аккаунтами игроков.
type Service struct {
	repo          Repository
	cfg           *config.Config
	defaultSkinID int64 // ID дефолтного скина из каталога (известен после сидинга)
}

// NewService создаёт сервис аккаунтов.
// defaultSkinID — скин, который выставляется новым аккаунтам.
func NewService(repo Repository, cfg *config.Config, defaultSkinID int64) *Service {
	return &Service{repo: repo, cfg: cfg, defaultSkinID: defaultSkinID}
}

// Resolve превращает проверенную личность в аккаунт.
// При первом контакте создаёт аккаунт со стартовым балансом,
// дефолтными текстами и дневным запасом ромашек.
//
// Идемпотентно: два одновременных первых запроса с одним tg_id
// получат один и тот же аккаунт (уникальность обеспечивает БД).
func (s *Service) Resolve(ctx context.Context, identity *auth.Identity) (*User, error) {
	if identity == nil || identity.User == nil {
		return nil, common.ErrMissingUser
	}
	tg := identity.User

	user, err := s.repo.GetByTgID(ctx, tg.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	user, err = s.repo.Create(ctx, &NewUser{
		TgID:         tg.ID,
		Username:     tg.Username,
		FirstName:    tg.FirstName,
		LastName:     tg.LastName,
		LanguageCode: tg.LanguageCode,
		IsPremium:    tg.IsPremium,
		Balance:      s.cfg.EconomyStartingBalance,
		CustomTexts:  DefaultCustomTexts(),
		SkinID:       s.defaultSkinID,
		DaisiesLeft:  s.cfg.DailyFreeDaisies,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": user.ID,
		"tg_id":   user.TgID,
	}).Info("Создан новый аккаунт")

	return user, nil
}

// GetByID возвращает аккаунт по внутреннему ID.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetCustomTexts заменяет кастомные тексты гадания.
// Правила: максимум 3 текста, каждый до 20 символов,
// пустые (после обрезки пробелов) не допускаются.
func (s *Service) SetCustomTexts(ctx context.Context, userID int64, texts []string) error {
	if len(texts) > MaxCustomTexts {
		return common.ErrTooManyTexts
	}
	for _, text := range texts {
		if utf8.RuneCountInString(text) > MaxCustomTextLen {
			return common.ErrTextTooLong
		}
		if strings.TrimSpace(text) == "" {
			return common.ErrEmptyText
		}
	}
	return s.repo.UpdateCustomTexts(ctx, userID, texts)
}

// ResetDailyDaisies выдаёт всем аккаунтам дневной запас бесплатных ромашек.
// Вызывается планировщиком раз в сутки.
func (s *Service) ResetDailyDaisies(ctx context.Context) error {
	return s.repo.ResetDaisies(ctx, s.cfg.DailyFreeDaisies)
}
