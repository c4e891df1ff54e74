// Package results — handlers.go обрабатывает HTTP-запросы истории гаданий.
package results

import (
	"github.com/gofiber/fiber/v2"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/features/accounts"
)

// Handler обрабатывает HTTP-запросы результатов.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type resultResponse struct {
	ID        int64  `json:"id"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"created_at"`
}

// List — GET /api/results. История гаданий пользователя.
func (h *Handler) List(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	history, err := h.service.History(c.Context(), user.ID, c.QueryInt("limit"))
	if err != nil {
		return common.RespondError(c, err)
	}

	resp := make([]resultResponse, 0, len(history))
	for _, res := range history {
		resp = append(resp, resultResponse{
			ID:        res.ID,
			Answer:    res.Answer,
			CreatedAt: common.FormatDateTime(res.CreatedAt),
		})
	}
	return c.JSON(resp)
}

// SubmitRequest — тело POST /api/results.
type SubmitRequest struct {
	Answer string `json:"answer"`
}

// Submit — POST /api/results. Записывает результат и списывает ромашку.
func (h *Handler) Submit(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "неверный формат запроса",
		})
	}

	daisiesLeft, err := h.service.Submit(c.Context(), user.ID, req.Answer)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":      "Результат записан",
		"daisies_left": daisiesLeft,
	})
}
