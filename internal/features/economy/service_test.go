package economy

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/daisy-game/internal/common"
)

// fakeRepo — in-memory реализация Repository для тестов.
type fakeRepo struct {
	mu       sync.Mutex
	balances map[int64]int64
	ledger   []LedgerEntry
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{balances: make(map[int64]int64), nextID: 1}
}

func (f *fakeRepo) Credit(ctx context.Context, userID, amount int64, kind string, paymentID *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.balances[userID]; !ok {
		return 0, common.ErrUserNotFound
	}
	f.balances[userID] += amount
	f.ledger = append(f.ledger, LedgerEntry{
		ID:        f.nextID,
		UserID:    userID,
		Kind:      kind,
		Amount:    amount,
		PaymentID: paymentID,
		CreatedAt: time.Now(),
	})
	f.nextID++
	return f.balances[userID], nil
}

func (f *fakeRepo) GetBalance(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	balance, ok := f.balances[userID]
	if !ok {
		return 0, common.ErrUserNotFound
	}
	return balance, nil
}

func (f *fakeRepo) History(ctx context.Context, userID int64, limit int) ([]*LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*LedgerEntry
	for i := len(f.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if f.ledger[i].UserID == userID {
			entry := f.ledger[i]
			out = append(out, &entry)
		}
	}
	return out, nil
}

const testUserID = int64(7)

func setup(t *testing.T, balance int64) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	repo.balances[testUserID] = balance
	return NewService(repo), repo
}

func TestCredit_Success(t *testing.T) {
	service, repo := setup(t, 100)
	paymentID := "pay_123"

	newBalance, err := service.Credit(context.Background(), testUserID, 50, KindBalanceCredit, &paymentID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), newBalance)

	require.Len(t, repo.ledger, 1)
	assert.Equal(t, KindBalanceCredit, repo.ledger[0].Kind)
	assert.Equal(t, &paymentID, repo.ledger[0].PaymentID)
}

func TestCredit_InvalidAmount(t *testing.T) {
	service, repo := setup(t, 100)

	_, err := service.Credit(context.Background(), testUserID, 0, KindBalanceCredit, nil)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = service.Credit(context.Background(), testUserID, -10, KindBalanceCredit, nil)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	assert.Equal(t, int64(100), repo.balances[testUserID], "баланс не должен меняться")
	assert.Empty(t, repo.ledger)
}

func TestCredit_UserNotFound(t *testing.T) {
	service, _ := setup(t, 100)

	_, err := service.Credit(context.Background(), 999, 50, KindBalanceCredit, nil)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestHistory_LimitClamp(t *testing.T) {
	service, _ := setup(t, 0)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, err := service.Credit(ctx, testUserID, 1, KindReferralBonus, nil)
		require.NoError(t, err)
	}

	history, err := service.History(ctx, testUserID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 20, "нулевой limit заменяется дефолтным")

	history, err = service.History(ctx, testUserID, 200)
	require.NoError(t, err)
	assert.Len(t, history, 20, "слишком большой limit тоже")

	history, err = service.History(ctx, testUserID, 5)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}
