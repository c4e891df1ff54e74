package results

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
	mu      sync.Mutex
	daisies map[int64]int
	results []*Result
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{daisies: make(map[int64]int), nextID: 1}
}

func (f *fakeRepo) Submit(ctx context.Context, userID int64, answer string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	left, ok := f.daisies[userID]
	if !ok {
		return 0, common.ErrUserNotFound
	}
	if left <= 0 {
		return 0, common.ErrNoDaisiesLeft
	}

	f.daisies[userID] = left - 1
	f.results = append(f.results, &Result{
		ID:        f.nextID,
		UserID:    userID,
		Answer:    answer,
		CreatedAt: time.Now(),
	})
	f.nextID++
	return f.daisies[userID], nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Result
	for i := len(f.results) - 1; i >= 0 && len(out) < limit; i-- {
		if f.results[i].UserID == userID {
			out = append(out, f.results[i])
		}
	}
	return out, nil
}

const testUserID = int64(7)

func setup(t *testing.T, daisies int) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	repo.daisies[testUserID] = daisies
	return NewService(repo), repo
}

func TestSubmit_Success(t *testing.T) {
	service, repo := setup(t, 2)

	left, err := service.Submit(context.Background(), testUserID, "любит")
	require.NoError(t, err)
	assert.Equal(t, 1, left)
	require.Len(t, repo.results, 1)
	assert.Equal(t, "любит", repo.results[0].Answer)
}

func TestSubmit_TrimsWhitespace(t *testing.T) {
	service, repo := setup(t, 2)

	_, err := service.Submit(context.Background(), testUserID, "  не любит  ")
	require.NoError(t, err)
	assert.Equal(t, "не любит", repo.results[0].Answer)
}

func TestSubmit_EmptyAnswer(t *testing.T) {
	service, repo := setup(t, 2)

	_, err := service.Submit(context.Background(), testUserID, "   ")
	assert.ErrorIs(t, err, common.ErrEmptyText)
	assert.Equal(t, 2, repo.daisies[testUserID], "ромашка не списывается")
}

func TestSubmit_AnswerTooLong(t *testing.T) {
	service, _ := setup(t, 2)

	// 21 кириллический символ — длина считается в рунах, не в байтах
	_, err := service.Submit(context.Background(), testUserID, "оченьдлинныйтекстслов")
	assert.ErrorIs(t, err, common.ErrTextTooLong)
}

func TestSubmit_NoDaisiesLeft(t *testing.T) {
	service, repo := setup(t, 1)
	ctx := context.Background()

	left, err := service.Submit(ctx, testUserID, "любит")
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	_, err = service.Submit(ctx, testUserID, "не любит")
	assert.ErrorIs(t, err, common.ErrNoDaisiesLeft)
	assert.Len(t, repo.results, 1, "результат без ромашки не пишется")
}

func TestSubmit_ConcurrentLastDaisy(t *testing.T) {
	// Две горутины гадают на последней ромашке: успешна ровно одна.
	service, repo := setup(t, 1)

	const attempts = 5
	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Submit(context.Background(), testUserID, "любит")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successCount++
			} else {
				assert.ErrorIs(t, err, common.ErrNoDaisiesLeft)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successCount)
	assert.Equal(t, 0, repo.daisies[testUserID])
	assert.Len(t, repo.results, 1)
}

func TestHistory_LimitClamp(t *testing.T) {
	service, _ := setup(t, 100)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, err := service.Submit(ctx, testUserID, "любит")
		require.NoError(t, err)
	}

	history, err := service.History(ctx, testUserID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 20, "нулевой limit заменяется дефолтным")

	history, err = service.History(ctx, testUserID, 5)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}
