package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"

	"crypto_signal_bot/internal/app/config"
	"crypto_signal_bot/internal/app/di"
	"crypto_signal_bot/internal/app/router"
	"crypto_signal_bot/internal/feature/notify/transport/telegram"
	notifyusecase "crypto_signal_bot/internal/feature/notify/usecase"
	statushandler "crypto_signal_bot/internal/feature/status/transport/handler"
	statususecase "crypto_signal_bot/internal/feature/status/usecase"
	subscriberadapters "crypto_signal_bot/internal/feature/subscriber/adapters"
	subscriberusecase "crypto_signal_bot/internal/feature/subscriber/usecase"
	"crypto_signal_bot/internal/platform/db"
	platformredis "crypto_signal_bot/internal/platform/redis"
	"crypto_signal_bot/internal/platform/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}

	// Redis: optional candle cache, the bot runs fine without it
	var rdb *redisv9.Client
	if cfg.Redis.Host != "" {
		if tmp, err := platformredis.NewClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable, running without candle cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Usecases
	scanUC := di.NewScanUsecase(cfg.Binance, rdb, cfg.RateLimit)
	subRepo := subscriberadapters.NewSubscriberRepository(gdb)
	subUC := subscriberusecase.NewSubscriberUsecase(subRepo, cfg.LookbackDays, cfg.DefaultNotifyTime)
	latest := statususecase.NewLatestScan()

	// Telegram bot and the pieces wired around it
	bot, err := telegram.NewBot(cfg.TelegramToken, subUC, cfg.QuoteCurrency)
	if err != nil {
		log.Fatal("failed to start Telegram bot: ", err)
	}
	notifyUC := notifyusecase.NewNotifyUsecase(scanUC, bot, subUC, latest, cfg.QuoteCurrency)
	sched := scheduler.New(subUC, notifyUC)
	bot.Attach(notifyUC, sched)

	if err := sched.Reload(ctx); err != nil {
		log.Fatal("failed to build schedule: ", err)
	}
	sched.Start()
	defer sched.Stop()

	// Status API
	statusH := statushandler.NewStatusHandler(latest, subUC)
	srv := &http.Server{Addr: cfg.StatusAddr, Handler: router.NewRouter(statusH)}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("status server stopped", "error", err)
		}
	}()
	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("status server shutdown failed", "error", err)
		}
	}()

	slog.Info("bot running", "quote", cfg.QuoteCurrency, "status_addr", cfg.StatusAddr)
	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
