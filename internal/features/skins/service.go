// Package skins — service.go содержит бизнес-логику магазина скинов.
package skins

import (
	"context"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/common"
)

// Service управляет магазином скинов.
type Service struct {
	repo Repository
}

// NewService создаёт сервис магазина.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает каталог с флагами владения для пользователя.
// Дефолтный скин считается принадлежащим всем.
func (s *Service) List(ctx context.Context, userID int64) ([]*SkinWithOwned, error) {
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	owned, err := s.repo.OwnedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*SkinWithOwned, 0, len(catalog))
	for _, skin := range catalog {
		result = append(result, &SkinWithOwned{
			Skin:  *skin,
			Owned: owned[skin.ID] || skin.IsDefault,
		})
	}
	return result, nil
}

// Buy покупает скин. Возвращает новый баланс.
//
// Проверки (в этом порядке):
//   - скин существует, иначе ErrSkinNotFound
//   - скин не дефолтный, иначе ErrDefaultSkin
//   - скин ещё не куплен, иначе ErrAlreadyOwned
//   - хватает листиков, иначе ErrInsufficientBalance
//
// Списание, владение и запись журнала коммитятся одной транзакцией.
func (s *Service) Buy(ctx context.Context, userID, skinID int64) (int64, error) {
	skin, err := s.repo.GetByID(ctx, skinID)
	if err != nil {
		return 0, err
	}
	if skin.IsDefault {
		return 0, common.ErrDefaultSkin
	}

	newBalance, err := s.repo.Purchase(ctx, userID, skin)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"skin_id": skinID,
		"price":   skin.Price,
	}).Info("Скин куплен")

	return newBalance, nil
}

// Select выбирает текущий скин аккаунта.
// Не-дефолтный скин должен быть куплен. Журнал не пишется:
// выбор скина — не экономическое событие.
func (s *Service) Select(ctx context.Context, userID, skinID int64) error {
	skin, err := s.repo.GetByID(ctx, skinID)
	if err != nil {
		return err
	}

	if !skin.IsDefault {
		owns, err := s.repo.Owns(ctx, userID, skinID)
		if err != nil {
			return err
		}
		if !owns {
			return common.ErrSkinNotOwned
		}
	}

	return s.repo.SetCurrent(ctx, userID, skinID)
}

// Default возвращает дефолтный скин каталога.
func (s *Service) Default(ctx context.Context) (*Skin, error) {
	return s.repo.GetDefault(ctx)
}

// SeedCatalog загружает стартовый каталог, если он ещё не загружен.
func (s *Service) SeedCatalog(ctx context.Context) error {
	return s.repo.Seed(ctx, DefaultCatalog())
}
