// Package referrals — repository.go описывает контракт хранилища рефералов.
package referrals

import "context"

// Repository — операции над реферальными связями.
type Repository interface {
	// Apply атомарно создаёт связь и начисляет бонусы обеим сторонам.
	// Связь, оба начисления, инкремент счётчика рефералов и обе записи
	// журнала коммитятся одной транзакцией: частичное применение —
	// нарушение целостности экономики.
	//
	// Ошибки: common.ErrInviterNotFound (связь при этом НЕ создаётся),
	// common.ErrUserNotFound, common.ErrReferralAlreadyApplied.
	Apply(ctx context.Context, inviterID, invitedID, inviterBonus, invitedBonus int64) error
	// ListByInviter возвращает связи, созданные пригласившим,
	// вместе с карточками приглашённых.
	ListByInviter(ctx context.Context, inviterID int64) ([]*ReferralInfo, error)
}
