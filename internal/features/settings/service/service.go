package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"giveaway-bot/internal/common/logger"
	"giveaway-bot/internal/features/settings/models"
	"giveaway-bot/internal/features/settings/repository"
)

// Snapshot is the configuration copied into a giveaway at creation time.
// Later settings changes never affect an already-open giveaway.
type Snapshot struct {
	WinnersCount  int
	WinnersFormat string
}

// SettingsService resolves and mutates per-owner giveaway configuration and
// drives the multi-step configuration dialog.
type SettingsService interface {
	// Resolve returns the effective configuration for a giveaway created by
	// requesterID in channelID. Requester settings win over channel
	// settings; built-in defaults apply last.
	Resolve(ctx context.Context, requesterID, channelID int64) Snapshot

	SetWinnersCount(ctx context.Context, ownerID int64, count int) error
	SetWinnersFormat(ctx context.Context, ownerID int64, format string) error

	// BeginWinnersCountDialog and BeginFormatDialog arm the dialog so the
	// user's next message is consumed as the value.
	BeginWinnersCountDialog(ctx context.Context, userID int64) error
	BeginFormatDialog(ctx context.Context, userID int64) error

	// HandleDialogMessage consumes a text message from userID if a dialog
	// is in progress. It returns the reply to show the user and whether the
	// message was consumed.
	HandleDialogMessage(ctx context.Context, userID int64, text string) (string, bool)
}

type settingsService struct {
	repo          repository.SettingsRepository
	defaultCount  int
	defaultFormat string
	log           zerolog.Logger
}

func NewSettingsService(repo repository.SettingsRepository, defaultCount int, defaultFormat string) SettingsService {
	return &settingsService{
		repo:          repo,
		defaultCount:  defaultCount,
		defaultFormat: defaultFormat,
		log:           logger.With("settings"),
	}
}

func (s *settingsService) Resolve(ctx context.Context, requesterID, channelID int64) Snapshot {
	snapshot := Snapshot{
		WinnersCount:  s.defaultCount,
		WinnersFormat: s.defaultFormat,
	}

	// Channel settings first, then requester overrides.
	for _, ownerID := range []int64{channelID, requesterID} {
		if ownerID == 0 {
			continue
		}
		settings, err := s.repo.Get(ctx, ownerID)
		if err == repository.ErrNotFound {
			continue
		}
		if err != nil {
			s.log.Error().Err(err).Int64("owner_id", ownerID).Msg("Failed to load settings, using defaults")
			continue
		}
		if settings.WinnersCount > 0 {
			snapshot.WinnersCount = settings.WinnersCount
		}
		if settings.WinnersFormat != "" {
			snapshot.WinnersFormat = settings.WinnersFormat
		}
	}

	return snapshot
}

func (s *settingsService) SetWinnersCount(ctx context.Context, ownerID int64, count int) error {
	if err := models.ValidateWinnersCount(count); err != nil {
		return err
	}

	settings, err := s.load(ctx, ownerID)
	if err != nil {
		return err
	}
	settings.WinnersCount = count
	settings.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, settings)
}

func (s *settingsService) SetWinnersFormat(ctx context.Context, ownerID int64, format string) error {
	if err := models.ValidateFormat(format); err != nil {
		return err
	}

	settings, err := s.load(ctx, ownerID)
	if err != nil {
		return err
	}
	settings.WinnersFormat = format
	settings.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, settings)
}

func (s *settingsService) load(ctx context.Context, ownerID int64) (*models.Settings, error) {
	settings, err := s.repo.Get(ctx, ownerID)
	if err == repository.ErrNotFound {
		return &models.Settings{OwnerID: ownerID}, nil
	}
	return settings, err
}

func (s *settingsService) BeginWinnersCountDialog(ctx context.Context, userID int64) error {
	return s.repo.SetDialogState(ctx, userID, models.DialogAwaitingWinnerCount)
}

func (s *settingsService) BeginFormatDialog(ctx context.Context, userID int64) error {
	return s.repo.SetDialogState(ctx, userID, models.DialogAwaitingFormat)
}

func (s *settingsService) HandleDialogMessage(ctx context.Context, userID int64, text string) (string, bool) {
	state, err := s.repo.GetDialogState(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to load dialog state")
		return "", false
	}

	switch state {
	case models.DialogAwaitingWinnerCount:
		count, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || models.ValidateWinnersCount(count) != nil {
			// Invalid input keeps the dialog armed so the user can retry.
			return "Please send a positive number of winners.", true
		}
		if err := s.SetWinnersCount(ctx, userID, count); err != nil {
			s.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to save winners count")
			return "Something went wrong, please try again.", true
		}
		s.clearDialog(ctx, userID)
		return fmt.Sprintf("✅ Winner count set to %d.", count), true

	case models.DialogAwaitingFormat:
		format := strings.TrimSpace(text)
		if models.ValidateFormat(format) != nil {
			return "The format must contain the {username} placeholder, e.g. 🎉 Congratulations {username}!", true
		}
		if err := s.SetWinnersFormat(ctx, userID, format); err != nil {
			s.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to save winners format")
			return "Something went wrong, please try again.", true
		}
		s.clearDialog(ctx, userID)
		return "✅ Winners message format saved.", true
	}

	return "", false
}

func (s *settingsService) clearDialog(ctx context.Context, userID int64) {
	if err := s.repo.ClearDialogState(ctx, userID); err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to clear dialog state")
	}
}
