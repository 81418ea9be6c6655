package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidWinnersCount = errors.New("winners count must be a positive number")
	ErrInvalidFormat       = errors.New("winners format must contain the {username} placeholder")
)

// UsernamePlaceholder is substituted with a winner's display name when the
// winners message is rendered. PlacePlaceholder optionally renders the
// 1-based place of the winner.
const (
	UsernamePlaceholder = "{username}"
	PlacePlaceholder    = "{place}"
)

// Settings holds per-owner giveaway configuration. The owner is either a
// user (configured in a private chat with the bot) or a channel.
type Settings struct {
	OwnerID       int64     `json:"owner_id"`
	WinnersCount  int       `json:"winners_count"`
	WinnersFormat string    `json:"winners_format"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidateWinnersCount checks a winners count value before it is stored.
func ValidateWinnersCount(count int) error {
	if count <= 0 {
		return ErrInvalidWinnersCount
	}
	return nil
}

// ValidateFormat checks a winners message format before it is stored.
func ValidateFormat(format string) error {
	if !strings.Contains(format, UsernamePlaceholder) {
		return ErrInvalidFormat
	}
	return nil
}

// DialogState tracks a multi-step configuration conversation with a user.
type DialogState string

const (
	DialogIdle                DialogState = "idle"
	DialogAwaitingWinnerCount DialogState = "awaiting_winner_count"
	DialogAwaitingFormat      DialogState = "awaiting_format"
)
