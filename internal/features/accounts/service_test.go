package accounts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/daisy-game/internal/auth"
	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/config"
)

// fakeRepo — in-memory реализация Repository для тестов.
// Create идемпотентен по tg_id, как и боевая реализация.
type fakeRepo struct {
	mu      sync.Mutex
	byTgID  map[int64]*User
	nextID  int64
	creates int // сколько раз Create реально создал строку
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byTgID: make(map[int64]*User), nextID: 1}
}

func (f *fakeRepo) GetByTgID(ctx context.Context, tgID int64) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byTgID[tgID]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byTgID {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, common.ErrUserNotFound
}

func (f *fakeRepo) Create(ctx context.Context, nu *NewUser) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byTgID[nu.TgID]; ok {
		return existing, nil
	}
	user := &User{
		ID:            f.nextID,
		TgID:          nu.TgID,
		Username:      nu.Username,
		FirstName:     nu.FirstName,
		LastName:      nu.LastName,
		LanguageCode:  nu.LanguageCode,
		IsPremium:     nu.IsPremium,
		Balance:       nu.Balance,
		CurrentSkinID: nu.SkinID,
		CustomTexts:   nu.CustomTexts,
		DaisiesLeft:   nu.DaisiesLeft,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.byTgID[nu.TgID] = user
	f.nextID++
	f.creates++
	return user, nil
}

func (f *fakeRepo) UpdateCustomTexts(ctx context.Context, userID int64, texts []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byTgID {
		if user.ID == userID {
			user.CustomTexts = texts
			return nil
		}
	}
	return common.ErrUserNotFound
}

func (f *fakeRepo) ResetDaisies(ctx context.Context, daisies int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byTgID {
		user.DaisiesLeft = daisies
	}
	return nil
}

func setup(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	cfg := &config.Config{
		EconomyStartingBalance: 100,
		DailyFreeDaisies:       2,
	}
	return NewService(repo, cfg, 1), repo
}

func identityFor(tgID int64) *auth.Identity {
	name := "Владислав"
	return &auth.Identity{
		User:     &auth.TelegramUser{ID: tgID, FirstName: &name},
		AuthDate: time.Now().Unix(),
	}
}

func TestResolve_CreatesNewAccount(t *testing.T) {
	service, repo := setup(t)

	user, err := service.Resolve(context.Background(), identityFor(279058397))
	require.NoError(t, err)

	assert.Equal(t, int64(279058397), user.TgID)
	assert.Equal(t, int64(100), user.Balance, "стартовый баланс из конфига")
	assert.Equal(t, int64(1), user.CurrentSkinID, "дефолтный скин")
	assert.Equal(t, 2, user.DaisiesLeft)
	assert.Equal(t, DefaultCustomTexts(), user.CustomTexts)
	assert.Equal(t, 1, repo.creates)
}

func TestResolve_ExistingAccount(t *testing.T) {
	service, repo := setup(t)
	ctx := context.Background()

	first, err := service.Resolve(ctx, identityFor(279058397))
	require.NoError(t, err)

	second, err := service.Resolve(ctx, identityFor(279058397))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.creates, "аккаунт создаётся ровно один раз")
}

func TestResolve_MissingUser(t *testing.T) {
	service, _ := setup(t)

	_, err := service.Resolve(context.Background(), &auth.Identity{AuthDate: time.Now().Unix()})
	assert.ErrorIs(t, err, common.ErrMissingUser)

	_, err = service.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrMissingUser)
}

func TestResolve_ConcurrentSameTgID(t *testing.T) {
	// Несколько одновременных первых запросов с одним tg_id:
	// все получают один аккаунт, создание происходит один раз.
	service, repo := setup(t)

	const attempts = 10
	var wg sync.WaitGroup
	ids := make([]int64, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, err := service.Resolve(context.Background(), identityFor(279058397))
			if assert.NoError(t, err) {
				ids[i] = user.ID
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, repo.creates)
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestSetCustomTexts(t *testing.T) {
	service, _ := setup(t)
	ctx := context.Background()

	user, err := service.Resolve(ctx, identityFor(1))
	require.NoError(t, err)

	tests := []struct {
		name    string
		texts   []string
		wantErr error
	}{
		{name: "валидные тексты", texts: []string{"любит", "не любит", "поцелует"}},
		{name: "один текст", texts: []string{"да"}},
		{name: "ровно 20 символов", texts: []string{"ромашкаромашкаромаш!"}},
		{name: "четыре текста", texts: []string{"а", "б", "в", "г"}, wantErr: common.ErrTooManyTexts},
		{name: "21 символ", texts: []string{"оченьдлинныйтекстслов"}, wantErr: common.ErrTextTooLong},
		{name: "пустой текст", texts: []string{"любит", "   "}, wantErr: common.ErrEmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.SetCustomTexts(ctx, user.ID, tt.texts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestResetDailyDaisies(t *testing.T) {
	service, repo := setup(t)
	ctx := context.Background()

	user, err := service.Resolve(ctx, identityFor(1))
	require.NoError(t, err)

	repo.mu.Lock()
	repo.byTgID[user.TgID].DaisiesLeft = 0
	repo.mu.Unlock()

	require.NoError(t, service.ResetDailyDaisies(ctx))
	assert.Equal(t, 2, repo.byTgID[user.TgID].DaisiesLeft)
}
