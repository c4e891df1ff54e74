// Package middleware содержит middleware HTTP-сервера.
// auth.go проверяет подпись Telegram initData и резолвит аккаунт.
package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"serotonyl.ru/daisy-game/internal/auth"
	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/features/accounts"
)

// initDataFromRequest достаёт initData из запроса.
// Фронтенд шлёт его заголовком X-Telegram-Init-Data; поддерживаем
// также схему Authorization "tma <initData>", query-параметр и JSON-тело.
func initDataFromRequest(c *fiber.Ctx) string {
	if data := c.Get("X-Telegram-Init-Data"); data != "" {
		return data
	}
	if authHeader := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(authHeader, "tma ") {
		return strings.TrimPrefix(authHeader, "tma ")
	}
	if data := c.Query("initData"); data != "" {
		return data
	}
	var body struct {
		InitData string `json:"initData"`
	}
	if err := c.BodyParser(&body); err == nil && body.InitData != "" {
		return body.InitData
	}
	return ""
}

// TelegramAuth проверяет подпись initData и кладёт аккаунт в контекст
// запроса под accounts.LocalsUserKey. Запрос без валидной подписи
// дальше по цепочке не проходит.
func TelegramAuth(verifier *auth.Verifier, accountsSvc *accounts.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		initData := initDataFromRequest(c)
		if initData == "" {
			return common.RespondError(c, common.ErrMalformedInitData)
		}

		identity, err := verifier.Verify(initData, time.Now())
		if err != nil {
			return common.RespondError(c, err)
		}

		user, err := accountsSvc.Resolve(c.Context(), identity)
		if err != nil {
			return common.RespondError(c, err)
		}

		c.Locals(accounts.LocalsUserKey, user)
		return c.Next()
	}
}
