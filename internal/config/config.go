// Package config загружает конфигурацию приложения из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры,
// godotenv подхватывает .env при локальной разработке.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	// Токен платёжного провайдера (из BotFather → Payments)
	PaymentProviderToken string `envconfig:"PAYMENT_PROVIDER_TOKEN" default:""`

	// --- HTTP сервер ---
	HTTPPort int `envconfig:"HTTP_PORT" default:"8000"`
	// Разрешённые origin'ы для CORS (фронтенд мини-аппа)
	CORSAllowOrigins string        `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"daisyuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"daisy_game"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Economy ---
	EconomyStartingBalance int64 `envconfig:"ECONOMY_STARTING_BALANCE" default:"100"`
	ReferralInviterBonus   int64 `envconfig:"REFERRAL_INVITER_BONUS" default:"50"`
	ReferralInvitedBonus   int64 `envconfig:"REFERRAL_INVITED_BONUS" default:"25"`
	// Минимальная сумма пополнения в рублях
	PaymentMinAmount int64 `envconfig:"PAYMENT_MIN_AMOUNT" default:"10"`

	// --- Игра ---
	// Сколько бесплатных ромашек выдаётся в день
	DailyFreeDaisies int `envconfig:"DAILY_FREE_DAISIES" default:"2"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("некорректный HTTP_PORT: %d", c.HTTPPort)
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.EconomyStartingBalance < 0 {
		return fmt.Errorf("ECONOMY_STARTING_BALANCE не может быть отрицательным")
	}
	if c.ReferralInviterBonus <= 0 || c.ReferralInvitedBonus <= 0 {
		return fmt.Errorf("реферальные бонусы должны быть положительными")
	}
	if c.DailyFreeDaisies <= 0 {
		return fmt.Errorf("DAILY_FREE_DAISIES должен быть > 0")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
// .env загружается в режиме best effort: его отсутствие не ошибка.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
