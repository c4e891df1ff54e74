// Package accounts — repository.go описывает контракт хранилища аккаунтов.
// Интерфейс нужен сервису; боевой вариант на PostgreSQL живёт в postgres.go,
// тесты подставляют in-memory реализацию.
package accounts

import "context"

// NewUser — данные для создания аккаунта при первом контакте.
type NewUser struct {
	TgID         int64
	Username     *string
	FirstName    *string
	LastName     *string
	LanguageCode *string
	IsPremium    bool
	Balance      int64
	CustomTexts  []string
	SkinID       int64
	DaisiesLeft  int
}

// Repository — операции над таблицей users.
type Repository interface {
	// GetByTgID возвращает аккаунт по Telegram ID.
	// Если не найден — common.ErrUserNotFound.
	GetByTgID(ctx context.Context, tgID int64) (*User, error)
	// GetByID возвращает аккаунт по внутреннему ID.
	GetByID(ctx context.Context, id int64) (*User, error)
	// Create создаёт аккаунт. Повторная попытка для того же tg_id
	// (в том числе из параллельного запроса) не ошибка: возвращается
	// уже существующая строка.
	Create(ctx context.Context, nu *NewUser) (*User, error)
	// UpdateCustomTexts атомарно заменяет список кастомных текстов.
	UpdateCustomTexts(ctx context.Context, userID int64, texts []string) error
	// ResetDaisies выставляет всем аккаунтам дневной запас ромашек.
	ResetDaisies(ctx context.Context, daisies int) error
}
