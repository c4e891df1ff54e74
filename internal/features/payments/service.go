// Package payments — service.go выставляет инвойсы и зачисляет оплаты.
package payments

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/common"
	"serotonyl.ru/daisy-game/internal/config"
	"serotonyl.ru/daisy-game/internal/features/economy"
)

// InvoiceSender — часть API Telegram-бота, нужная платежам.
// Вынесена в интерфейс, чтобы в тестах подставлять заглушку вместо *telego.Bot.
type InvoiceSender interface {
	SendInvoice(ctx context.Context, params *telego.SendInvoiceParams) (*telego.Message, error)
}

// Service выставляет инвойсы Telegram Payments и проводит зачисления.
type Service struct {
	bot           InvoiceSender
	economy       *economy.Service
	providerToken string
	minAmount     int64
}

func NewService(bot InvoiceSender, economySvc *economy.Service, cfg *config.Config) *Service {
	return &Service{
		bot:           bot,
		economy:       economySvc,
		providerToken: cfg.PaymentProviderToken,
		minAmount:     cfg.PaymentMinAmount,
	}
}

// CreateInvoice выставляет инвойс пополнения в чат пользователя.
// amount — сумма в рублях, один рубль = один листик.
func (s *Service) CreateInvoice(ctx context.Context, userID, chatID, amount int64) error {
	if amount < s.minAmount {
		return common.ErrInvalidAmount
	}

	_, err := s.bot.SendInvoice(ctx, &telego.SendInvoiceParams{
		ChatID:        telego.ChatID{ID: chatID},
		Title:         "Пополнение баланса",
		Description:   fmt.Sprintf("Пополнение на %d %s", amount, common.PluralizePetals(amount)),
		Payload:       FormatPayload(userID, amount),
		ProviderToken: s.providerToken,
		Currency:      "RUB",
		Prices: []telego.LabeledPrice{
			// Telegram принимает сумму в копейках
			{Label: "Листики", Amount: int(amount) * 100},
		},
	})
	if err != nil {
		return fmt.Errorf("ошибка выставления инвойса: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  amount,
	}).Info("Инвойс выставлен")
	return nil
}

// ProcessPayment зачисляет успешную оплату по нагрузке инвойса.
// paymentID — идентификатор платежа провайдера, пишется в журнал.
func (s *Service) ProcessPayment(ctx context.Context, payload, paymentID string) (int64, error) {
	userID, amount, err := ParsePayload(payload)
	if err != nil {
		return 0, err
	}

	var pid *string
	if paymentID != "" {
		pid = &paymentID
	}

	newBalance, err := s.economy.Credit(ctx, userID, amount, economy.KindBalanceCredit, pid)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id":    userID,
		"amount":     amount,
		"payment_id": paymentID,
	}).Info("Оплата зачислена")
	return newBalance, nil
}

// MinAmount — минимальная сумма пополнения в рублях.
func (s *Service) MinAmount() int64 { return s.minAmount }
