// Package accounts — handlers.go обрабатывает HTTP-запросы:
// авторизация, профиль, кастомные тексты.
package accounts

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"serotonyl.ru/daisy-game/internal/common"
)

// LocalsUserKey — ключ, под которым middleware авторизации кладёт
// резолвнутый аккаунт в контекст запроса.
const LocalsUserKey = "daisy_user"

// UserFromCtx достаёт аккаунт текущего запроса из контекста.
// Возвращает nil, если запрос не прошёл через middleware авторизации.
func UserFromCtx(c *fiber.Ctx) *User {
	user, _ := c.Locals(LocalsUserKey).(*User)
	return user
}

// UserResponse — представление аккаунта в API (формат фронтенда).
type UserResponse struct {
	ID             int64    `json:"id"`
	TgID           int64    `json:"tg_id"`
	Username       *string  `json:"username"`
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	Balance        int64    `json:"balance"`
	ReferralsCount int      `json:"referrals_count"`
	CurrentSkinID  int64    `json:"current_skin_id"`
	CustomTexts    []string `json:"custom_texts,omitempty"`
	DaisiesLeft    int      `json:"daisies_left"`
}

// ToResponse собирает API-представление аккаунта.
func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		TgID:           u.TgID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Balance:        u.Balance,
		ReferralsCount: u.ReferralsCount,
		CurrentSkinID:  u.CurrentSkinID,
		CustomTexts:    u.CustomTexts,
		DaisiesLeft:    u.DaisiesLeft,
	}
}

// Handler обрабатывает HTTP-запросы аккаунтов.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Auth — POST /api/auth.
// Вся работа (проверка подписи + резолв аккаунта) уже сделана middleware,
// остаётся вернуть профиль.
func (h *Handler) Auth(c *fiber.Ctx) error {
	user := UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}
	return c.JSON(ToResponse(user))
}

// GetUser — GET /api/user/:id. Публичный профиль по внутреннему ID.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return common.RespondError(c, common.ErrUserNotFound)
	}

	user, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}

	resp := ToResponse(user)
	resp.CustomTexts = nil // чужие тексты не показываем
	return c.JSON(resp)
}

// GetCustomTexts — GET /api/custom-texts.
func (h *Handler) GetCustomTexts(c *fiber.Ctx) error {
	user := UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}
	texts := user.CustomTexts
	if len(texts) == 0 {
		texts = DefaultCustomTexts()
	}
	return c.JSON(fiber.Map{"texts": texts})
}

// UpdateCustomTextsRequest — тело POST /api/custom-texts.
type UpdateCustomTextsRequest struct {
	Texts []string `json:"texts"`
}

// UpdateCustomTexts — POST /api/custom-texts.
func (h *Handler) UpdateCustomTexts(c *fiber.Ctx) error {
	user := UserFromCtx(c)
	if user == nil {
		return common.RespondError(c, common.ErrMissingUser)
	}

	var req UpdateCustomTextsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "неверный формат запроса",
		})
	}

	if err := h.service.SetCustomTexts(c.Context(), user.ID, req.Texts); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Тексты обновлены",
		"texts":   req.Texts,
	})
}
