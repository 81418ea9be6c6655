package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"giveaway-bot/internal/bot"
	"giveaway-bot/internal/common/config"
	"giveaway-bot/internal/common/logger"
	giveawayredis "giveaway-bot/internal/features/giveaway/repository/redis"
	giveawayservice "giveaway-bot/internal/features/giveaway/service"
	settingsredis "giveaway-bot/internal/features/settings/repository/redis"
	settingsservice "giveaway-bot/internal/features/settings/service"
	httpapi "giveaway-bot/internal/http"
	"giveaway-bot/internal/platform/ledger"
	"giveaway-bot/internal/platform/telegram"
)

func main() {
	cfg := config.Load()
	logger.Init("giveaway-bot", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	gateway, err := telegram.NewGateway(cfg.Telegram.BotToken, cfg.Telegram.Debug)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Telegram gateway")
	}

	participantLedger, err := ledger.NewS3Ledger(ctx, cfg.Ledger.Bucket, cfg.Ledger.Region, cfg.Ledger.KeyPrefix, cfg.Ledger.PublicBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create participant ledger")
	}

	giveawayRepo := giveawayredis.NewGiveawayRepository(rdb)
	settingsRepo := settingsredis.NewSettingsRepository(rdb)

	settingsSvc := settingsservice.NewSettingsService(settingsRepo, cfg.Giveaway.DefaultWinnersCount, cfg.Giveaway.DefaultWinnersFormat)
	giveawaySvc := giveawayservice.NewGiveawayService(giveawayRepo, gateway, participantLedger, settingsSvc)

	// Recovery check: surface what survived the restart.
	if open, err := giveawayRepo.ListOpen(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to list open giveaways on startup")
	} else {
		logger.Info().Int("open_giveaways", len(open)).Msg("Recovered giveaway state")
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: httpapi.NewRouter(giveawaySvc, cfg.Server.Origin, cfg.Server.AdminToken, cfg.Debug),
	}
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("HTTP API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	dispatcher := bot.New(gateway, giveawaySvc, settingsSvc)
	if err := dispatcher.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Bot stopped with error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := rdb.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Redis client")
	}
}
