package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"giveaway-bot/internal/common/logger"
)

const (
	viewLedgerLabel  = "📊 View Sheet"
	participateLabel = "✨ Participate"
	endedLabel       = "❌ Giveaway Ended"

	// Callback data for the inert ended marker button.
	endedToken = "ended"
)

// Gateway wraps the Telegram Bot API as the engine's messaging collaborator.
// tgbotapi performs its own HTTP handling; ctx parameters are accepted for
// interface symmetry with other collaborators.
type Gateway struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

func NewGateway(token string, debug bool) (*Gateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API client: %w", err)
	}
	bot.Debug = debug

	return &Gateway{
		bot: bot,
		log: logger.With("telegram"),
	}, nil
}

// Bot exposes the underlying client for the update dispatcher.
func (g *Gateway) Bot() *tgbotapi.BotAPI {
	return g.bot
}

func openKeyboard(joinToken, ledgerURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(viewLedgerLabel, ledgerURL),
			tgbotapi.NewInlineKeyboardButtonData(participateLabel, joinToken),
		),
	)
}

func endedKeyboard(ledgerURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(viewLedgerLabel, ledgerURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(endedLabel, endedToken),
		),
	)
}

func (g *Gateway) PostAnnouncement(_ context.Context, channelID int64, text, joinToken, ledgerURL string) (int, error) {
	msg := tgbotapi.NewMessage(channelID, text)
	msg.ReplyMarkup = openKeyboard(joinToken, ledgerURL)

	sent, err := g.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to post announcement: %w", err)
	}
	return sent.MessageID, nil
}

func (g *Gateway) EditAnnouncement(_ context.Context, channelID int64, messageID int, text, joinToken, ledgerURL string) error {
	edit := tgbotapi.NewEditMessageText(channelID, messageID, text)
	keyboard := openKeyboard(joinToken, ledgerURL)
	edit.ReplyMarkup = &keyboard

	if _, err := g.bot.Send(edit); err != nil {
		return fmt.Errorf("failed to edit announcement: %w", err)
	}
	return nil
}

func (g *Gateway) MarkAnnouncementEnded(_ context.Context, channelID int64, messageID int, ledgerURL string) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(channelID, messageID, endedKeyboard(ledgerURL))
	if _, err := g.bot.Send(edit); err != nil {
		return fmt.Errorf("failed to mark announcement ended: %w", err)
	}
	return nil
}

func (g *Gateway) SendMessage(_ context.Context, chatID int64, text string) error {
	if _, err := g.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// AcknowledgeInteraction answers a callback query with a transient toast.
func (g *Gateway) AcknowledgeInteraction(_ context.Context, callbackID, feedback string) error {
	if _, err := g.bot.Request(tgbotapi.NewCallback(callbackID, feedback)); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// DeleteMessage removes a message, e.g. the /run command post.
func (g *Gateway) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := g.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
