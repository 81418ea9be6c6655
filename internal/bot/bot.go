package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"giveaway-bot/internal/common/logger"
	giveawayservice "giveaway-bot/internal/features/giveaway/service"
	settingsservice "giveaway-bot/internal/features/settings/service"
	"giveaway-bot/internal/platform/telegram"
)

const updateTimeout = 30 * time.Second

// Bot receives Telegram updates and dispatches them to the giveaway engine
// and settings service. Per-channel ordering is enforced by the engine, so
// updates are handled concurrently here.
type Bot struct {
	gateway   *telegram.Gateway
	giveaways giveawayservice.GiveawayService
	settings  settingsservice.SettingsService
	log       zerolog.Logger
}

func New(gateway *telegram.Gateway, giveaways giveawayservice.GiveawayService, settings settingsservice.SettingsService) *Bot {
	return &Bot{
		gateway:   gateway,
		giveaways: giveaways,
		settings:  settings,
		log:       logger.With("bot"),
	}
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.gateway.Bot().GetUpdatesChan(cfg)

	b.log.Info().Msg("Bot started")

	for {
		select {
		case <-ctx.Done():
			b.gateway.Bot().StopReceivingUpdates()
			b.log.Info().Msg("Bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(parent context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(parent, updateTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Int("update_id", update.UpdateID).Msg("Panic while handling update")
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.ChannelPost != nil:
		b.handleChannelPost(ctx, update.ChannelPost)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// displayName resolves the best-effort handle for a user: username, then
// personal name, then a fixed placeholder.
func displayName(user *tgbotapi.User) string {
	if user == nil {
		return "anonymous"
	}
	if user.UserName != "" {
		return user.UserName
	}
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name != "" {
		return name
	}
	return "anonymous"
}

func requesterID(user *tgbotapi.User) int64 {
	if user == nil {
		return 0
	}
	return user.ID
}
