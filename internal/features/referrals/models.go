// Package referrals управляет реферальной программой.
// models.go описывает реферальную связь и формат кода.
package referrals

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"serotonyl.ru/daisy-game/internal/common"
)

// Referral — направленная связь «пригласивший → приглашённый».
// На одного приглашённого может существовать максимум одна связь
// (UNIQUE по invited_id), самоприглашение запрещено.
type Referral struct {
	ID        int64     `db:"id"`
	InviterID int64     `db:"inviter_id"` // Кто пригласил
	InvitedID int64     `db:"invited_id"` // Кого пригласили
	Rewarded  bool      `db:"rewarded"`   // Бонусы выданы
	CreatedAt time.Time `db:"created_at"`
}

// InvitedUser — краткая карточка приглашённого для списка рефералов.
type InvitedUser struct {
	ID        int64   `json:"id"`
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
}

// ReferralInfo — связь вместе с карточкой приглашённого.
type ReferralInfo struct {
	Referral
	Invited InvitedUser
}

// CodePrefix — префикс реферального кода. Полный формат: ref<id>.
const CodePrefix = "ref"

// FormatCode собирает реферальный код аккаунта: FormatCode(42) → "ref42".
func FormatCode(inviterID int64) string {
	return fmt.Sprintf("%s%d", CodePrefix, inviterID)
}

// ParseCode извлекает ID пригласившего из кода.
// Неверный префикс или нечисловой суффикс → common.ErrInvalidReferralCode.
func ParseCode(code string) (int64, error) {
	if !strings.HasPrefix(code, CodePrefix) {
		return 0, common.ErrInvalidReferralCode
	}
	inviterID, err := strconv.ParseInt(code[len(CodePrefix):], 10, 64)
	if err != nil || inviterID <= 0 {
		return 0, common.ErrInvalidReferralCode
	}
	return inviterID, nil
}
