// Package economy управляет виртуальной валютой «листики».
// models.go описывает записи журнала экономических событий.
package economy

import "time"

// LedgerEntry — одна запись журнала экономики.
// Журнал append-only: записи никогда не изменяются и не удаляются,
// это аудиторский след, а не источник состояния (баланс живёт на аккаунте).
type LedgerEntry struct {
	ID        int64     `db:"id"`         // ID записи
	UserID    int64     `db:"user_id"`    // Чей счёт затронут
	Kind      string    `db:"kind"`       // Тип события (см. константы ниже)
	SkinID    *int64    `db:"skin_id"`    // Купленный скин (nil для денежных событий)
	Amount    int64     `db:"amount"`     // Сумма в листиках
	PaymentID *string   `db:"payment_id"` // ID платежа Telegram (nil для внутренних событий)
	CreatedAt time.Time `db:"created_at"` // Время события
}

// Допустимые типы записей журнала
const (
	KindBalanceCredit = "balance_credit" // Пополнение баланса (платёж)
	KindSkinPurchase  = "skin_purchase"  // Покупка скина
	KindReferralBonus = "referral_bonus" // Реферальный бонус
)
