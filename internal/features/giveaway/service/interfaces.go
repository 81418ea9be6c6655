package service

import (
	"context"

	"giveaway-bot/internal/features/giveaway/models"
	settingsservice "giveaway-bot/internal/features/settings/service"
)

// GiveawayService is the giveaway lifecycle engine. All state mutation goes
// through Create, Join and Draw; operations on the same channel are
// serialized, different channels proceed in parallel.
type GiveawayService interface {
	// Create starts a new giveaway for the channel. Fails with
	// ErrAlreadyActive if one is already open. Ledger creation and the
	// announcement post are all-or-nothing: on failure no giveaway exists.
	Create(ctx context.Context, channelID, requesterID int64) (*models.Giveaway, error)

	// Join adds a participant to the open giveaway. giveawayID, when
	// non-empty, must match the open giveaway (stale buttons from a
	// previous run are rejected). Returns the updated participant count.
	Join(ctx context.Context, channelID int64, giveawayID string, userID int64, displayName string) (int, error)

	// Draw closes the giveaway and selects winners. The empty-participants
	// case fails with ErrNoParticipants and leaves the giveaway open.
	Draw(ctx context.Context, channelID, requesterID int64) (*DrawResult, error)

	// ListOpen returns all open giveaways.
	ListOpen(ctx context.Context) ([]*models.Giveaway, error)

	// GetByChannel returns the open giveaway for a channel.
	GetByChannel(ctx context.Context, channelID int64) (*models.Giveaway, error)
}

// DrawResult carries the outcome of a completed draw.
type DrawResult struct {
	Giveaway *models.Giveaway
	Winners  []models.Participant
	Text     string
}

// Gateway is the messaging platform collaborator. Implementations deliver
// announcements and edits; they never mutate giveaway state.
type Gateway interface {
	// PostAnnouncement posts the giveaway announcement with a participate
	// button carrying joinToken and a link to the public ledger. Returns
	// the message ID for later edits.
	PostAnnouncement(ctx context.Context, channelID int64, text, joinToken, ledgerURL string) (int, error)

	// EditAnnouncement refreshes the announcement text, keeping the
	// participate button and ledger link.
	EditAnnouncement(ctx context.Context, channelID int64, messageID int, text, joinToken, ledgerURL string) error

	// MarkAnnouncementEnded removes the participate button and shows a
	// terminal ended marker.
	MarkAnnouncementEnded(ctx context.Context, channelID int64, messageID int, ledgerURL string) error

	// SendMessage posts a plain message to the channel.
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Ledger is the external append-only participant record store. It is an
// audit trail: the draw never depends on it.
type Ledger interface {
	// Create provisions a ledger resource and returns its handle and a
	// public view URL.
	Create(ctx context.Context, title string) (id string, publicURL string, err error)

	// AppendRow records one join event.
	AppendRow(ctx context.Context, ledgerID string, userID int64, displayName, joinTime string) error
}

// SettingsProvider snapshots configuration at giveaway creation.
type SettingsProvider interface {
	Resolve(ctx context.Context, requesterID, channelID int64) settingsservice.Snapshot
}
