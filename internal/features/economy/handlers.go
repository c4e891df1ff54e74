// Package economy — handlers.go обрабатывает HTTP-запросы баланса и истории.
package economy

import (
	"github.com/gofiber/fiber/v2"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/features/accounts"
)

// Handler обрабатывает HTTP-запросы экономики.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetBalance — GET /api/balance.
func (h *Handler) GetBalance(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	balance, err := h.service.GetBalance(c.Context(), user.ID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"balance": balance})
}

// ledgerEntryResponse — запись журнала в API.
type ledgerEntryResponse struct {
	ID        int64   `json:"id"`
	Kind      string  `json:"kind"`
	SkinID    *int64  `json:"skin_id,omitempty"`
	Amount    int64   `json:"amount"`
	PaymentID *string `json:"payment_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// History — GET /api/balance/history. Последние операции по счёту.
func (h *Handler) History(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	entries, err := h.service.History(c.Context(), user.ID, c.QueryInt("limit", 20))
	if err != nil {
		return common.RespondError(c, err)
	}

	resp := make([]ledgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, ledgerEntryResponse{
			ID:        e.ID,
			Kind:      e.Kind,
			SkinID:    e.SkinID,
			Amount:    e.Amount,
			PaymentID: e.PaymentID,
			CreatedAt: common.FormatDateTime(e.CreatedAt),
		})
	}
	return c.JSON(fiber.Map{"entries": resp})
}
