package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	giveawayservice "giveaway-bot/internal/features/giveaway/service"
)

const helpText = `🎁 Giveaway bot commands:
/run — start a giveaway (post in your channel)
/draw — close the giveaway and pick winners
/setwinners <n> — how many winners to draw
/setformat <template> — winners line, use {username} and optionally {place}`

func (b *Bot) handleChannelPost(ctx context.Context, post *tgbotapi.Message) {
	channelID := post.Chat.ID

	switch command(post) {
	case "run":
		b.runGiveaway(ctx, post)
	case "draw":
		b.drawGiveaway(ctx, channelID, requesterID(post.From))
	case "setwinners":
		b.setWinners(ctx, channelID, channelID, commandArg(post))
	case "setformat":
		b.setFormat(ctx, channelID, channelID, commandArg(post))
	}
}

func (b *Bot) runGiveaway(ctx context.Context, post *tgbotapi.Message) {
	channelID := post.Chat.ID

	_, err := b.giveaways.Create(ctx, channelID, requesterID(post.From))
	switch {
	case err == giveawayservice.ErrAlreadyActive:
		b.reply(ctx, channelID, "A giveaway is already running in this channel.")
		return
	case err != nil:
		b.log.Error().Err(err).Int64("channel_id", channelID).Msg("Failed to create giveaway")
		b.reply(ctx, channelID, "Could not start the giveaway, please try again.")
		return
	}

	// The announcement replaces the command post.
	if err := b.gateway.DeleteMessage(ctx, channelID, post.MessageID); err != nil {
		b.log.Warn().Err(err).Int64("channel_id", channelID).Msg("Failed to delete /run command message")
	}
}

func (b *Bot) drawGiveaway(ctx context.Context, channelID, requester int64) {
	_, err := b.giveaways.Draw(ctx, channelID, requester)
	switch {
	case err == giveawayservice.ErrNoActiveGiveaway:
		b.reply(ctx, channelID, "No active giveaway.")
	case err == giveawayservice.ErrNoParticipants:
		b.reply(ctx, channelID, "Nobody has joined yet — the giveaway stays open.")
	case err != nil:
		b.log.Error().Err(err).Int64("channel_id", channelID).Msg("Failed to draw giveaway")
		b.reply(ctx, channelID, "Could not complete the draw, please try again.")
	}
	// On success the engine announces the winners itself.
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	giveawayID, ok := giveawayservice.ParseJoinToken(callback.Data)
	if !ok {
		// Inert buttons (e.g. the ended marker) still need an answer to
		// stop the client spinner.
		b.acknowledge(ctx, callback.ID, "")
		return
	}
	if callback.Message == nil {
		b.acknowledge(ctx, callback.ID, "Giveaway not found or expired.")
		return
	}

	channelID := callback.Message.Chat.ID
	userID := callback.From.ID

	_, err := b.giveaways.Join(ctx, channelID, giveawayID, userID, displayName(callback.From))
	switch {
	case err == nil:
		b.acknowledge(ctx, callback.ID, "You have joined!")
	case err == giveawayservice.ErrAlreadyJoined:
		b.acknowledge(ctx, callback.ID, "Already joined.")
	case err == giveawayservice.ErrNoActiveGiveaway:
		b.acknowledge(ctx, callback.ID, "Giveaway not found or expired.")
	default:
		b.log.Error().Err(err).Int64("channel_id", channelID).Int64("user_id", userID).Msg("Join failed")
		b.acknowledge(ctx, callback.ID, "Something went wrong, please try again.")
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch command(msg) {
	case "start", "help":
		b.reply(ctx, chatID, helpText)
		return
	case "draw":
		// Admins may also issue /draw from a linked group.
		b.drawGiveaway(ctx, chatID, userID)
		return
	case "setwinners":
		b.setWinners(ctx, userID, chatID, commandArg(msg))
		return
	case "setformat":
		b.setFormat(ctx, userID, chatID, commandArg(msg))
		return
	}

	// Not a command: maybe the answer to a configuration dialog.
	if reply, handled := b.settings.HandleDialogMessage(ctx, userID, msg.Text); handled {
		b.reply(ctx, chatID, reply)
	}
}

// setWinners stores the winner count for ownerID, or arms the dialog when no
// argument was given.
func (b *Bot) setWinners(ctx context.Context, ownerID, chatID int64, arg string) {
	if arg == "" {
		if err := b.settings.BeginWinnersCountDialog(ctx, ownerID); err != nil {
			b.log.Error().Err(err).Int64("owner_id", ownerID).Msg("Failed to start winners dialog")
			return
		}
		b.reply(ctx, chatID, "How many winners should be drawn? Send a number.")
		return
	}

	count, err := strconv.Atoi(arg)
	if err != nil || count <= 0 {
		b.reply(ctx, chatID, "Please send a positive number, e.g. /setwinners 5")
		return
	}
	if err := b.settings.SetWinnersCount(ctx, ownerID, count); err != nil {
		b.log.Error().Err(err).Int64("owner_id", ownerID).Msg("Failed to save winners count")
		b.reply(ctx, chatID, "Something went wrong, please try again.")
		return
	}
	b.reply(ctx, chatID, fmt.Sprintf("✅ Winner count set to %d.", count))
}

func (b *Bot) setFormat(ctx context.Context, ownerID, chatID int64, arg string) {
	if arg == "" {
		if err := b.settings.BeginFormatDialog(ctx, ownerID); err != nil {
			b.log.Error().Err(err).Int64("owner_id", ownerID).Msg("Failed to start format dialog")
			return
		}
		b.reply(ctx, chatID, "Send the winners line template. Use {username} and optionally {place}.")
		return
	}

	if err := b.settings.SetWinnersFormat(ctx, ownerID, arg); err != nil {
		b.reply(ctx, chatID, "The format must contain the {username} placeholder.")
		return
	}
	b.reply(ctx, chatID, "✅ Winners message format saved.")
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.gateway.SendMessage(ctx, chatID, text); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
	}
}

func (b *Bot) acknowledge(ctx context.Context, callbackID, feedback string) {
	if err := b.gateway.AcknowledgeInteraction(ctx, callbackID, feedback); err != nil {
		b.log.Warn().Err(err).Msg("Failed to answer callback")
	}
}

// command extracts the bot command name from a message, covering channel
// posts where tgbotapi's entity-based Command() may be absent.
func command(msg *tgbotapi.Message) string {
	if cmd := msg.Command(); cmd != "" {
		return cmd
	}
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.Fields(text)[0][1:]
	if at := strings.Index(name, "@"); at != -1 {
		name = name[:at]
	}
	return name
}

func commandArg(msg *tgbotapi.Message) string {
	if args := msg.CommandArguments(); args != "" {
		return strings.TrimSpace(args)
	}
	fields := strings.Fields(strings.TrimSpace(msg.Text))
	if len(fields) < 2 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg.Text), fields[0]))
}
