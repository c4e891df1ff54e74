// Package skins — repository.go описывает контракт хранилища скинов.
package skins

import "context"

// Repository — операции над каталогом, владением и выбором скина.
type Repository interface {
	// List возвращает весь каталог в порядке ID.
	List(ctx context.Context) ([]*Skin, error)
	// GetByID возвращает скин или common.ErrSkinNotFound.
	GetByID(ctx context.Context, id int64) (*Skin, error)
	// GetDefault возвращает дефолтный скин каталога.
	GetDefault(ctx context.Context) (*Skin, error)
	// OwnedIDs возвращает множество ID скинов, купленных пользователем.
	OwnedIDs(ctx context.Context, userID int64) (map[int64]bool, error)
	// Owns проверяет владение конкретным скином.
	Owns(ctx context.Context, userID, skinID int64) (bool, error)
	// Purchase атомарно списывает цену, создаёт владение и пишет журнал.
	// Возвращает новый баланс. Ошибки: common.ErrUserNotFound,
	// common.ErrAlreadyOwned, common.ErrInsufficientBalance.
	Purchase(ctx context.Context, userID int64, skin *Skin) (int64, error)
	// SetCurrent выставляет выбранный скин аккаунта.
	SetCurrent(ctx context.Context, userID, skinID int64) error
	// Seed загружает каталог, если он пуст.
	Seed(ctx context.Context, catalog []Skin) error
}
