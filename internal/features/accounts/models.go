// Package accounts управляет аккаунтами игроков.
// models.go описывает структуру пользователя и константы кастомных текстов.
package accounts

import "time"

// User представляет один аккаунт игрока.
// Создаётся ровно один раз — при первом проверенном запросе с данным tg_id.
type User struct {
	ID             int64     `db:"id"`              // Внутренний ID аккаунта
	TgID           int64     `db:"tg_id"`           // Telegram user ID (уникальный)
	Username       *string   `db:"username"`        // @username (может отсутствовать)
	FirstName      *string   `db:"first_name"`      // Имя
	LastName       *string   `db:"last_name"`       // Фамилия
	LanguageCode   *string   `db:"language_code"`   // Язык клиента Telegram
	IsPremium      bool      `db:"is_premium"`      // Telegram Premium
	Balance        int64     `db:"balance"`         // Листики (всегда >= 0)
	ReferralsCount int       `db:"referrals_count"` // Сколько человек привёл
	CurrentSkinID  int64     `db:"current_skin_id"` // Выбранный скин ромашки
	CustomTexts    []string  `db:"custom_texts"`    // Кастомные тексты гадания (до 3)
	DaisiesLeft    int       `db:"daisies_left"`    // Остаток бесплатных ромашек на сегодня
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Ограничения кастомных текстов гадания
const (
	// MaxCustomTexts — максимум текстов на аккаунт
	MaxCustomTexts = 3
	// MaxCustomTextLen — максимум символов в одном тексте
	MaxCustomTextLen = 20
)

// DefaultCustomTexts — тексты гадания по умолчанию для нового аккаунта.
func DefaultCustomTexts() []string {
	return []string{"любит", "не любит"}
}
