package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "alice", displayName(&tgbotapi.User{UserName: "alice", FirstName: "Alice"}))
	assert.Equal(t, "Alice Smith", displayName(&tgbotapi.User{FirstName: "Alice", LastName: "Smith"}))
	assert.Equal(t, "Alice", displayName(&tgbotapi.User{FirstName: "Alice"}))
	assert.Equal(t, "anonymous", displayName(&tgbotapi.User{}))
	assert.Equal(t, "anonymous", displayName(nil))
}

func TestCommand_ChannelPostWithoutEntities(t *testing.T) {
	// Channel posts often carry no bot_command entity, the raw text is the
	// only signal.
	msg := &tgbotapi.Message{Text: "/run"}
	assert.Equal(t, "run", command(msg))

	msg = &tgbotapi.Message{Text: "/draw@my_giveaway_bot"}
	assert.Equal(t, "draw", command(msg))

	msg = &tgbotapi.Message{Text: "not a command"}
	assert.Equal(t, "", command(msg))
}

func TestCommandArg(t *testing.T) {
	msg := &tgbotapi.Message{Text: "/setwinners 5"}
	assert.Equal(t, "5", commandArg(msg))

	msg = &tgbotapi.Message{Text: "/setformat 🎉 {username} won!"}
	assert.Equal(t, "🎉 {username} won!", commandArg(msg))

	msg = &tgbotapi.Message{Text: "/setwinners"}
	assert.Equal(t, "", commandArg(msg))
}
