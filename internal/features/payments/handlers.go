// Package payments — handlers.go обрабатывает HTTP-запросы платежей.
package payments

import (
	"github.com/gofiber/fiber/v2"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/features/accounts"
)

// Handler обрабатывает HTTP-запросы платежей.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateRequest — тело POST /api/payments/create.
type CreateRequest struct {
	Amount int64 `json:"amount"`
}

// Create — POST /api/payments/create. Выставляет инвойс в чат с ботом.
func (h *Handler) Create(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "неверный формат запроса",
		})
	}

	if err := h.service.CreateInvoice(c.Context(), user.ID, user.TgID, req.Amount); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Инвойс отправлен в чат с ботом",
	})
}

// CallbackRequest — тело POST /api/payments/callback.
// Нагрузка и идентификатор платежа из successful_payment.
type CallbackRequest struct {
	Payload   string `json:"payload"`
	PaymentID string `json:"payment_id"`
}

// Callback — POST /api/payments/callback. Зачисляет успешную оплату.
// Маршрут вне авторизованной группы: уведомление приходит не от мини-аппа.
func (h *Handler) Callback(c *fiber.Ctx) error {
	var req CallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "неверный формат запроса",
		})
	}

	newBalance, err := h.service.ProcessPayment(c.Context(), req.Payload, req.PaymentID)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Оплата зачислена",
		"new_balance": newBalance,
	})
}
