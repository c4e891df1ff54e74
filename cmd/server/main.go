// Сервер мини-аппа «Ромашка»: проверка подписи Telegram, аккаунты,
// экономика листиков, магазин скинов, рефералы и платежи.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/daisy-game/internal/app"
	"serotonyl.ru/daisy-game/internal/config"
	"serotonyl.ru/daisy-game/internal/server"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	level, err := log.ParseLevel(cfg.AppLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка сборки приложения: %v", err)
	}
	defer application.Close()

	application.Scheduler.Start()
	defer application.Scheduler.Stop()

	go func() {
		addr := server.Addr(cfg)
		log.Infof("HTTP-сервер слушает %s", addr)
		if err := application.Fiber.Listen(addr); err != nil {
			log.Fatalf("Ошибка HTTP-сервера: %v", err)
		}
	}()

	// Ждём сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Останавливаемся...")
	if err := application.Fiber.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Errorf("Ошибка остановки HTTP-сервера: %v", err)
	}
	log.Info("Сервер остановлен")
}
