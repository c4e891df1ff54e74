// Package common — httperr.go превращает бизнес-ошибки в HTTP-ответы.
// Все обработчики завершают неуспешные ветки через RespondError,
// чтобы коды и формат ответа были одинаковыми во всём API.
package common

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// httpStatuses — соответствие sentinel-ошибок HTTP-кодам.
var httpStatuses = map[error]int{
	// Авторизация
	ErrMalformedInitData: fiber.StatusUnauthorized,
	ErrInvalidSignature:  fiber.StatusUnauthorized,
	ErrExpiredAuth:       fiber.StatusUnauthorized,
	ErrMissingUser:       fiber.StatusUnauthorized,

	// Не найдено
	ErrUserNotFound:    fiber.StatusNotFound,
	ErrSkinNotFound:    fiber.StatusNotFound,
	ErrInviterNotFound: fiber.StatusNotFound,

	// Экономика
	ErrInsufficientBalance:    fiber.StatusPaymentRequired,
	ErrAlreadyOwned:           fiber.StatusConflict,
	ErrReferralAlreadyApplied: fiber.StatusConflict,

	// Валидация
	ErrInvalidAmount:       fiber.StatusBadRequest,
	ErrDefaultSkin:         fiber.StatusBadRequest,
	ErrSkinNotOwned:        fiber.StatusBadRequest,
	ErrTooManyTexts:        fiber.StatusBadRequest,
	ErrTextTooLong:         fiber.StatusBadRequest,
	ErrEmptyText:           fiber.StatusBadRequest,
	ErrInvalidReferralCode: fiber.StatusBadRequest,
	ErrSelfReferral:        fiber.StatusBadRequest,
	ErrNoDaisiesLeft:       fiber.StatusBadRequest,
}

// RespondError отправляет клиенту JSON с ошибкой.
// Бизнес-ошибки отдаются с понятным текстом и своим статусом,
// всё остальное — непрозрачная 500 (инфраструктурные детали не утекают).
func RespondError(c *fiber.Ctx, err error) error {
	for sentinel, status := range httpStatuses {
		if errors.Is(err, sentinel) {
			return c.Status(status).JSON(fiber.Map{"error": sentinel.Error()})
		}
	}

	log.WithError(err).WithField("path", c.Path()).Error("Необработанная ошибка запроса")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "внутренняя ошибка сервера",
	})
}
