// Package results — repository.go описывает контракт хранилища результатов.
package results

import "context"

// Repository — операции над историей гаданий.
type Repository interface {
	// Submit записывает результат и списывает одну ромашку дня.
	// Списание и запись — одна транзакция; возвращает остаток ромашек.
	// Если ромашек не осталось — common.ErrNoDaisiesLeft, результат не пишется.
	Submit(ctx context.Context, userID int64, answer string) (int, error)
	// ListByUser возвращает последние limit результатов пользователя.
	ListByUser(ctx context.Context, userID int64, limit int) ([]*Result, error)
}
