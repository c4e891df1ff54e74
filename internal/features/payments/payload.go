// Package payments проводит пополнение баланса через Telegram Payments.
// payload.go — формат служебной нагрузки инвойса.
package payments

import (
	"fmt"
	"strconv"
	"strings"

	"serotonyl.ru/daisy-game/internal/common"
)

// payloadPrefix — префикс нагрузки инвойса пополнения.
// Полный формат: balance_<userID>_<amount>.
const payloadPrefix = "balance"

// FormatPayload собирает нагрузку инвойса: FormatPayload(42, 100) → "balance_42_100".
func FormatPayload(userID, amount int64) string {
	return fmt.Sprintf("%s_%d_%d", payloadPrefix, userID, amount)
}

// ParsePayload извлекает ID аккаунта и сумму из нагрузки инвойса.
// Нагрузка приходит из Telegram как есть, поэтому парсинг строгий:
// любое отклонение от формата → common.ErrInvalidAmount.
func ParsePayload(payload string) (userID, amount int64, err error) {
	parts := strings.Split(payload, "_")
	if len(parts) != 3 || parts[0] != payloadPrefix {
		return 0, 0, common.ErrInvalidAmount
	}

	userID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || userID <= 0 {
		return 0, 0, common.ErrInvalidAmount
	}

	amount, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil || amount <= 0 {
		return 0, 0, common.ErrInvalidAmount
	}

	return userID, amount, nil
}
