// Package server собирает HTTP-сервер мини-аппа: fiber-приложение,
// middleware и маршруты API.
package server

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"serotonyl.ru/daisy-game/internal/auth"
	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/config"
	"serotonyl.ru/daisy-game/internal/features/accounts"
	"serotonyl.ru/daisy-game/internal/features/economy"
	"serotonyl.ru/daisy-game/internal/features/payments"
	"serotonyl.ru/daisy-game/internal/features/referrals"
	"serotonyl.ru/daisy-game/internal/features/results"
	"serotonyl.ru/daisy-game/internal/features/skins"
	"serotonyl.ru/daisy-game/internal/server/middleware"
)

// Handlers — все HTTP-обработчики приложения.
type Handlers struct {
	Accounts  *accounts.Handler
	Economy   *economy.Handler
	Skins     *skins.Handler
	Referrals *referrals.Handler
	Payments  *payments.Handler
	Results   *results.Handler
}

// New собирает fiber-приложение с middleware и маршрутами.
func New(cfg *config.Config, verifier *auth.Verifier, accountsSvc *accounts.Service, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "daisy-game",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Telegram-Init-Data",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Уведомление об оплате приходит не от мини-аппа, подписи initData у него нет
	api.Post("/payments/callback", h.Payments.Callback)

	// Всё остальное — только с валидной подписью Telegram
	authorized := api.Use(middleware.TelegramAuth(verifier, accountsSvc))

	authorized.Post("/auth", h.Accounts.Auth)
	authorized.Get("/user/:id", h.Accounts.GetUser)
	authorized.Get("/custom-texts", h.Accounts.GetCustomTexts)
	authorized.Post("/custom-texts", h.Accounts.UpdateCustomTexts)

	authorized.Get("/balance", h.Economy.GetBalance)
	authorized.Get("/balance/history", h.Economy.History)

	authorized.Get("/skins", h.Skins.List)
	authorized.Post("/skins/buy", h.Skins.Buy)
	authorized.Post("/skins/select", h.Skins.Select)

	authorized.Get("/referrals", h.Referrals.List)
	authorized.Post("/referrals/apply", h.Referrals.Apply)

	authorized.Post("/payments/create", h.Payments.Create)

	authorized.Get("/results", h.Results.List)
	authorized.Post("/results", h.Results.Submit)

	return app
}

// errorHandler — последний рубеж: ошибки, дошедшие до fiber
// (паника после recover, 404 по маршруту и т.п.).
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}
	return common.RespondError(c, err)
}

// Addr возвращает адрес прослушивания из конфига.
func Addr(cfg *config.Config) string {
	return fmt.Sprintf(":%d", cfg.HTTPPort)
}
