// Package referrals — handlers.go обрабатывает HTTP-запросы реферальной программы.
package referrals

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/features/accounts"
)

// Handler обрабатывает HTTP-запросы рефералов.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type invitedResponse struct {
	ID        int64     `json:"id"`
	Username  *string   `json:"username"`
	FirstName *string   `json:"first_name"`
	InvitedAt time.Time `json:"invited_at"`
}

// List — GET /api/referrals. Код аккаунта и список приглашённых.
func (h *Handler) List(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	referrals, err := h.service.List(c.Context(), user.ID)
	if err != nil {
		return common.RespondError(c, err)
	}

	invited := make([]invitedResponse, 0, len(referrals))
	for _, ref := range referrals {
		invited = append(invited, invitedResponse{
			ID:        ref.Invited.ID,
			Username:  ref.Invited.Username,
			FirstName: ref.Invited.FirstName,
			InvitedAt: ref.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"code":          h.service.Code(user.ID),
		"inviter_bonus": h.service.InviterBonus(),
		"invited_bonus": h.service.InvitedBonus(),
		"count":         len(invited),
		"invited":       invited,
	})
}

// ApplyRequest — тело POST /api/referrals/apply.
type ApplyRequest struct {
	Code string `json:"code"`
}

// Apply — POST /api/referrals/apply.
func (h *Handler) Apply(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		// стартовый параметр мини-аппа приходит и query-параметром
		req.Code = c.Query("code")
	}
	if req.Code == "" {
		req.Code = c.Query("code")
	}

	if err := h.service.Apply(c.Context(), user.ID, req.Code); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Реферальный код применён",
		"bonus":   h.service.InvitedBonus(),
	})
}
