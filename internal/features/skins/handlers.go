// Package skins — handlers.go обрабатывает HTTP-запросы магазина.
package skins

import (
	"github.com/gofiber/fiber/v2"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/features/accounts"
)

// Handler обрабатывает HTTP-запросы скинов.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// skinResponse — скин в API (формат фронтенда).
type skinResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
	Owned     bool   `json:"owned"`
}

// List — GET /api/skins. Каталог с флагами владения.
func (h *Handler) List(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	catalog, err := h.service.List(c.Context(), user.ID)
	if err != nil {
		return common.RespondError(c, err)
	}

	resp := make([]skinResponse, 0, len(catalog))
	for _, s := range catalog {
		color := s.Color
		if color == "" {
			color = "#FFFFFF"
		}
		resp = append(resp, skinResponse{
			ID:        s.ID,
			Name:      s.Name,
			Price:     s.Price,
			Color:     color,
			IsDefault: s.IsDefault,
			Owned:     s.Owned,
		})
	}
	return c.JSON(resp)
}

// BuyRequest — тело POST /api/skins/buy.
type BuyRequest struct {
	SkinID int64 `json:"skin_id"`
}

// Buy — POST /api/skins/buy.
func (h *Handler) Buy(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	var req BuyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "неверный формат запроса",
		})
	}

	newBalance, err := h.service.Buy(c.Context(), user.ID, req.SkinID)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Скин куплен",
		"new_balance": newBalance,
	})
}

// SelectRequest — тело POST /api/skins/select.
type SelectRequest struct {
	SkinID int64 `json:"skin_id"`
}

// Select — POST /api/skins/select.
func (h *Handler) Select(c *fiber.Ctx) error {
	user := accounts.UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	var req SelectRequest
	if err := c.BodyParser(&req); err != nil {
		// фронтенд шлёт skin_id и query-параметром
		req.SkinID = int64(c.QueryInt("skin_id"))
	}
	if req.SkinID == 0 {
		req.SkinID = int64(c.QueryInt("skin_id"))
	}

	if err := h.service.Select(c.Context(), user.ID, req.SkinID); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Скин выбран"})
}
