// Package app собирает приложение: база, миграции, сервисы,
// HTTP-сервер и планировщик.
package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/auth"
	"serotonyl.ru/daisy-game/internal/config"
	"serotonyl.ru/daisy-game/internal/db/postgres"
	"serotonyl.ru/daisy-game/internal/features/accounts"
	"serotonyl.ru/daisy-game/internal/features/economy"
	"serotonyl.ru/daisy-game/internal/features/payments"
	"serotonyl.ru/daisy-game/internal/features/referrals"
	"serotonyl.ru/daisy-game/internal/features/results"
	"serotonyl.ru/daisy-game/internal/features/skins"
	"serotonyl.ru/daisy-game/internal/jobs"
	"serotonyl.ru/daisy-game/internal/server"
)

// App — собранное приложение со всеми зависимостями.
type App struct {
	Config    *config.Config
	Pool      *pgxpool.Pool
	Bot       *telego.Bot
	Fiber     *fiber.App
	Scheduler *jobs.Scheduler
}

// New собирает приложение: подключение к БД, миграции, сидинг каталога,
// репозитории, сервисы, обработчики, бот, сервер и планировщик.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	// Репозитории
	accountsRepo := accounts.NewPostgresRepository(pool)
	economyRepo := economy.NewPostgresRepository(pool)
	skinsRepo := skins.NewPostgresRepository(pool)
	referralsRepo := referrals.NewPostgresRepository(pool)
	resultsRepo := results.NewPostgresRepository(pool)

	// Каталог скинов сидится до сервисов: новым аккаунтам нужен
	// ID дефолтного скина.
	skinsSvc := skins.NewService(skinsRepo)
	if err := skinsSvc.SeedCatalog(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка сидинга каталога скинов: %w", err)
	}
	defaultSkin, err := skinsSvc.Default(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("дефолтный скин не найден: %w", err)
	}

	// Telegram-бот для платежей
	bot, err := telego.NewBot(cfg.TelegramBotToken, telego.WithDiscardLogger())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}
	me, err := bot.GetMe(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("бот недоступен: %w", err)
	}
	log.Infof("Бот авторизован: @%s", me.Username)

	// Сервисы
	accountsSvc := accounts.NewService(accountsRepo, cfg, defaultSkin.ID)
	economySvc := economy.NewService(economyRepo)
	referralsSvc := referrals.NewService(referralsRepo, cfg)
	paymentsSvc := payments.NewService(bot, economySvc, cfg)
	resultsSvc := results.NewService(resultsRepo)

	verifier := auth.NewVerifier(cfg.TelegramBotToken)

	fiberApp := server.New(cfg, verifier, accountsSvc, server.Handlers{
		Accounts:  accounts.NewHandler(accountsSvc),
		Economy:   economy.NewHandler(economySvc),
		Skins:     skins.NewHandler(skinsSvc),
		Referrals: referrals.NewHandler(referralsSvc),
		Payments:  payments.NewHandler(paymentsSvc),
		Results:   results.NewHandler(resultsSvc),
	})

	scheduler, err := jobs.NewScheduler(cfg, accountsSvc)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Pool:      pool,
		Bot:       bot,
		Fiber:     fiberApp,
		Scheduler: scheduler,
	}, nil
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.Pool.Close()
}

// runMigrations применяет все миграции схемы по порядку.
// Порядок важен: таблицы с внешними ключами создаются после родительских.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.InitMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, `
			CREATE TABLE IF NOT EXISTS skins (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				price BIGINT NOT NULL CHECK (price >= 0),
				color TEXT NOT NULL DEFAULT '#FFFFFF',
				is_default BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`},
		{2, `
			CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				tg_id BIGINT NOT NULL UNIQUE,
				username TEXT,
				first_name TEXT,
				last_name TEXT,
				language_code TEXT,
				is_premium BOOLEAN NOT NULL DEFAULT FALSE,
				balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
				referrals_count INTEGER NOT NULL DEFAULT 0,
				current_skin_id BIGINT NOT NULL REFERENCES skins(id),
				custom_texts TEXT[] NOT NULL DEFAULT '{}',
				daisies_left INTEGER NOT NULL DEFAULT 0 CHECK (daisies_left >= 0),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`},
		{3, `
			CREATE TABLE IF NOT EXISTS user_skins (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				skin_id BIGINT NOT NULL REFERENCES skins(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (user_id, skin_id)
			)
		`},
		{4, `
			CREATE TABLE IF NOT EXISTS referrals (
				id BIGSERIAL PRIMARY KEY,
				inviter_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				invited_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
				rewarded BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CHECK (inviter_id <> invited_id)
			)
		`},
		{5, `
			CREATE TABLE IF NOT EXISTS ledger_entries (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				kind TEXT NOT NULL,
				skin_id BIGINT REFERENCES skins(id),
				amount BIGINT NOT NULL,
				payment_id TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_ledger_entries_user
				ON ledger_entries (user_id, created_at DESC)
		`},
		{6, `
			CREATE TABLE IF NOT EXISTS results (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				answer TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_results_user
				ON results (user_id, created_at DESC)
		`},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return err
		}
	}

	log.Info("Миграции применены")
	return nil
}
