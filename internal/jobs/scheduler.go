// Package jobs запускает фоновые задачи по расписанию.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/config"
	"serotonyl.ru/daisy-game/internal/features/accounts"
)

// Scheduler управляет фоновыми задачами (cron).
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler создаёт планировщик с задачами приложения.
// Сейчас одна задача: в полночь по таймзоне приложения всем аккаунтам
// выдаётся дневной запас бесплатных ромашек.
func NewScheduler(cfg *config.Config, accountsSvc *accounts.Service) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.AppTimezone)
	if err != nil {
		return nil, fmt.Errorf("неизвестная таймзона %q: %w", cfg.AppTimezone, err)
	}

	c := cron.New(cron.WithLocation(location))

	_, err = c.AddFunc("0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := accountsSvc.ResetDailyDaisies(ctx); err != nil {
			log.Errorf("Ошибка выдачи дневных ромашек: %v", err)
			return
		}
		log.Info("Дневные ромашки выданы всем аккаунтам")
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка регистрации задачи: %w", err)
	}

	return &Scheduler{cron: c}, nil
}

// Start запускает планировщик в фоне.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("Планировщик фоновых задач запущен")
}

// Stop останавливает планировщик и дожидается текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик фоновых задач остановлен")
}
