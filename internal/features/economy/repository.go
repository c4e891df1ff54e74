// Package economy — repository.go описывает контракт хранилища экономики.
package economy

import "context"

// Repository — операции над балансом и журналом.
type Repository interface {
	// Credit атомарно начисляет листики и пишет запись журнала.
	// Возвращает новый баланс. Если аккаунта нет — common.ErrUserNotFound.
	Credit(ctx context.Context, userID, amount int64, kind string, paymentID *string) (int64, error)
	// GetBalance возвращает текущий баланс аккаунта.
	GetBalance(ctx context.Context, userID int64) (int64, error)
	// History возвращает последние limit записей журнала аккаунта.
	History(ctx context.Context, userID int64, limit int) ([]*LedgerEntry, error)
}
