// Package referrals — service.go содержит бизнес-логику реферальной программы.
package referrals

import (
	"context"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/config"
)

// Service применяет реферальные коды и выдаёт бонусы.
type Service struct {
	repo         Repository
	inviterBonus int64
	invitedBonus int64
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:         repo,
		inviterBonus: cfg.ReferralInviterBonus,
		invitedBonus: cfg.ReferralInvitedBonus,
	}
}

// Code возвращает реферальный код аккаунта.
func (s *Service) Code(userID int64) string {
	return FormatCode(userID)
}

// Apply применяет реферальный код к аккаунту invitedID.
// Самоприглашение и повторное применение запрещены.
func (s *Service) Apply(ctx context.Context, invitedID int64, code string) error {
	inviterID, err := ParseCode(code)
	if err != nil {
		return err
	}
	if inviterID == invitedID {
		return common.ErrSelfReferral
	}

	if err := s.repo.Apply(ctx, inviterID, invitedID, s.inviterBonus, s.invitedBonus); err != nil {
		return err
	}

	log.Infof("Реферал применён: пригласивший %d (+%d), приглашённый %d (+%d)",
		inviterID, s.inviterBonus, invitedID, s.invitedBonus)
	return nil
}

// List возвращает рефералов аккаунта.
func (s *Service) List(ctx context.Context, inviterID int64) ([]*ReferralInfo, error) {
	return s.repo.ListByInviter(ctx, inviterID)
}

// InviterBonus — размер бонуса пригласившего.
func (s *Service) InviterBonus() int64 { return s.inviterBonus }

// InvitedBonus — размер бонуса приглашённого.
func (s *Service) InvitedBonus() int64 { return s.invitedBonus }
