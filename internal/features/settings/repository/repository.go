package repository

import (
	"context"
	"errors"

	"giveaway-bot/internal/features/settings/models"
)

var ErrNotFound = errors.New("settings not found")

// SettingsRepository stores per-owner configuration and per-user dialog
// state. Dialog state is transient and may expire server-side.
type SettingsRepository interface {
	Get(ctx context.Context, ownerID int64) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error

	GetDialogState(ctx context.Context, userID int64) (models.DialogState, error)
	SetDialogState(ctx context.Context, userID int64, state models.DialogState) error
	ClearDialogState(ctx context.Context, userID int64) error
}
