// Package auth проверяет подпись initData от Telegram WebApp.
// models.go описывает структуры проверенной авторизации.
package auth

// TelegramUser — описание пользователя из поля user в initData.
// Опциональные поля Telegram не подставляет, поэтому они указатели:
// отсутствующее значение не превращаем в пустую строку.
type TelegramUser struct {
	ID           int64   `json:"id"`            // Telegram user ID
	Username     *string `json:"username"`      // @username (может отсутствовать)
	FirstName    *string `json:"first_name"`    // Имя
	LastName     *string `json:"last_name"`     // Фамилия
	LanguageCode *string `json:"language_code"` // Язык клиента
	IsPremium    bool    `json:"is_premium"`    // Telegram Premium
}

// Identity — результат успешной проверки подписи initData.
// User может быть nil: подпись валидна, но данных пользователя нет
// (это отдельно отлавливает слой резолва аккаунта).
type Identity struct {
	User     *TelegramUser // Данные пользователя (nil, если поле user отсутствует или битое)
	AuthDate int64         // Unix-время выдачи initData клиентом Telegram
	QueryID  string        // Опциональный query_id для answerWebAppQuery
}
