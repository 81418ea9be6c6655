package repository

import (
	"context"
	"errors"

	"giveaway-bot/internal/features/giveaway/models"
)

var ErrNotFound = errors.New("giveaway not found")

// GiveawayRepository is the durable channel-keyed store for giveaways.
// Open giveaways are keyed by channel ID (at most one per channel); closed
// ones are archived by giveaway ID for audit.
type GiveawayRepository interface {
	// SaveOpen persists an open giveaway under its channel key. Used both
	// for creation and after every accepted join.
	SaveOpen(ctx context.Context, giveaway *models.Giveaway) error

	// GetOpenByChannel returns the open giveaway for the channel, or
	// ErrNotFound.
	GetOpenByChannel(ctx context.Context, channelID int64) (*models.Giveaway, error)

	// ListOpen returns all open giveaways, e.g. for recovery or inspection.
	ListOpen(ctx context.Context) ([]*models.Giveaway, error)

	// Archive removes the giveaway from the open index and stores the
	// closed record read-only.
	Archive(ctx context.Context, giveaway *models.Giveaway) error

	// GetArchived returns a closed giveaway by its ID, or ErrNotFound.
	GetArchived(ctx context.Context, giveawayID string) (*models.Giveaway, error)
}
