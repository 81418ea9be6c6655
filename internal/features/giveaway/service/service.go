package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "giveaway-bot/internal/common/errors"
	"giveaway-bot/internal/common/logger"
	"giveaway-bot/internal/features/giveaway/models"
	"giveaway-bot/internal/features/giveaway/repository"
	settingsmodels "giveaway-bot/internal/features/settings/models"
	"giveaway-bot/internal/utils/random"
)

const (
	// JoinTokenPrefix prefixes the giveaway ID in participate button tokens.
	JoinTokenPrefix = "join_"

	winnersHeader = "🎉 Giveaway Winners:"
)

type giveawayService struct {
	repo     repository.GiveawayRepository
	gateway  Gateway
	ledger   Ledger
	settings SettingsProvider
	log      zerolog.Logger

	// One mutex per channel. Operations on a channel run one at a time,
	// including while suspended on gateway or ledger I/O; channels are
	// independent.
	channelLocks sync.Map
}

func NewGiveawayService(repo repository.GiveawayRepository, gateway Gateway, ledger Ledger, settings SettingsProvider) GiveawayService {
	return &giveawayService{
		repo:     repo,
		gateway:  gateway,
		ledger:   ledger,
		settings: settings,
		log:      logger.With("giveaway"),
	}
}

func (s *giveawayService) lockChannel(channelID int64) func() {
	value, _ := s.channelLocks.LoadOrStore(channelID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// JoinToken builds the participate button token for a giveaway.
func JoinToken(giveawayID string) string {
	return JoinTokenPrefix + giveawayID
}

// ParseJoinToken extracts the giveaway ID from a participate button token.
func ParseJoinToken(token string) (string, bool) {
	if !strings.HasPrefix(token, JoinTokenPrefix) {
		return "", false
	}
	return strings.TrimPrefix(token, JoinTokenPrefix), true
}

func announcementText(entries int) string {
	return fmt.Sprintf("🎉 GIVEAWAY STARTED!\nClick to join using the button below!\n📊 Entries: %d", entries)
}

func (s *giveawayService) Create(ctx context.Context, channelID, requesterID int64) (*models.Giveaway, error) {
	unlock := s.lockChannel(channelID)
	defer unlock()

	_, err := s.repo.GetOpenByChannel(ctx, channelID)
	if err == nil {
		return nil, ErrAlreadyActive
	}
	if err != repository.ErrNotFound {
		return nil, apperrors.NewStorageError("get_open_giveaway", err)
	}

	snapshot := s.settings.Resolve(ctx, requesterID, channelID)

	giveawayID := uuid.New().String()
	title := "Giveaway_" + giveawayID[:8]

	ledgerID, ledgerURL, err := s.ledger.Create(ctx, title)
	if err != nil {
		return nil, apperrors.NewLedgerError("create", err)
	}

	messageID, err := s.gateway.PostAnnouncement(ctx, channelID, announcementText(0), JoinToken(giveawayID), ledgerURL)
	if err != nil {
		// No giveaway comes into existence; the orphan ledger resource is
		// harmless and only logged.
		s.log.Error().Err(err).Int64("channel_id", channelID).Str("ledger_id", ledgerID).
			Msg("Announcement post failed, aborting creation")
		return nil, apperrors.NewGatewayError("post_announcement", err)
	}

	giveaway := &models.Giveaway{
		ID:            giveawayID,
		ChannelID:     channelID,
		MessageID:     messageID,
		LedgerID:      ledgerID,
		LedgerURL:     ledgerURL,
		WinnersCount:  snapshot.WinnersCount,
		WinnersFormat: snapshot.WinnersFormat,
		Status:        models.GiveawayStatusOpen,
		CreatedAt:     time.Now().UTC(),
		Participants:  make([]models.Participant, 0),
	}

	if err := s.repo.SaveOpen(ctx, giveaway); err != nil {
		return nil, apperrors.NewStorageError("save_giveaway", err)
	}

	s.log.Info().Str("giveaway_id", giveawayID).Int64("channel_id", channelID).
		Int("winners_count", giveaway.WinnersCount).Msg("Giveaway created")
	return giveaway, nil
}

func (s *giveawayService) Join(ctx context.Context, channelID int64, giveawayID string, userID int64, displayName string) (int, error) {
	unlock := s.lockChannel(channelID)
	defer unlock()

	giveaway, err := s.repo.GetOpenByChannel(ctx, channelID)
	if err == repository.ErrNotFound {
		return 0, ErrNoActiveGiveaway
	}
	if err != nil {
		return 0, apperrors.NewStorageError("get_open_giveaway", err)
	}
	// A token from a previous run in the same channel must not join the
	// current giveaway.
	if giveawayID != "" && giveawayID != giveaway.ID {
		return 0, ErrNoActiveGiveaway
	}

	participant := models.Participant{
		UserID:   userID,
		Username: displayName,
		JoinedAt: models.FormatJoinTime(time.Now()),
	}
	if err := giveaway.AddParticipant(participant); err != nil {
		if err == models.ErrDuplicateJoin {
			return len(giveaway.Participants), ErrAlreadyJoined
		}
		return 0, err
	}

	// Persist the transition before any side effect so a collaborator
	// failure cannot corrupt engine state.
	if err := s.repo.SaveOpen(ctx, giveaway); err != nil {
		return 0, apperrors.NewStorageError("save_join", err)
	}

	count := len(giveaway.Participants)

	// Ledger policy: the join stays accepted even if the audit write fails;
	// the failure is logged for manual reconciliation.
	if err := s.ledger.AppendRow(ctx, giveaway.LedgerID, userID, displayName, participant.JoinedAt); err != nil {
		s.log.Error().Err(err).Str("giveaway_id", giveaway.ID).Int64("user_id", userID).
			Msg("Ledger append failed, participant kept for draw")
	}

	// UI freshness is best-effort; the participant is already recorded.
	if err := s.gateway.EditAnnouncement(ctx, channelID, giveaway.MessageID, announcementText(count), JoinToken(giveaway.ID), giveaway.LedgerURL); err != nil {
		s.log.Warn().Err(err).Str("giveaway_id", giveaway.ID).Msg("Failed to refresh announcement entry count")
	}

	return count, nil
}

func (s *giveawayService) Draw(ctx context.Context, channelID, requesterID int64) (*DrawResult, error) {
	unlock := s.lockChannel(channelID)
	defer unlock()

	giveaway, err := s.repo.GetOpenByChannel(ctx, channelID)
	if err == repository.ErrNotFound {
		return nil, ErrNoActiveGiveaway
	}
	if err != nil {
		return nil, apperrors.NewStorageError("get_open_giveaway", err)
	}

	if len(giveaway.Participants) == 0 {
		// The giveaway stays open so a draw can be retried once someone
		// has joined.
		return nil, ErrNoParticipants
	}

	winners, err := random.Pick(giveaway.Participants, giveaway.WinnersCount)
	if err != nil {
		return nil, fmt.Errorf("failed to shuffle participants: %w", err)
	}

	giveaway.Status = models.GiveawayStatusClosed
	giveaway.ClosedAt = time.Now().UTC()
	giveaway.Winners = winners

	// Committing the close releases the channel for a new /run and makes
	// any racing draw observe ErrNoActiveGiveaway.
	if err := s.repo.Archive(ctx, giveaway); err != nil {
		return nil, apperrors.NewStorageError("archive_giveaway", err)
	}

	text := RenderWinners(giveaway.WinnersFormat, winners)

	if err := s.gateway.SendMessage(ctx, channelID, text); err != nil {
		s.log.Error().Err(err).Str("giveaway_id", giveaway.ID).Msg("Failed to announce winners")
	}
	if err := s.gateway.MarkAnnouncementEnded(ctx, channelID, giveaway.MessageID, giveaway.LedgerURL); err != nil {
		s.log.Warn().Err(err).Str("giveaway_id", giveaway.ID).Msg("Failed to mark announcement ended")
	}

	s.log.Info().Str("giveaway_id", giveaway.ID).Int64("channel_id", channelID).
		Int("participants", len(giveaway.Participants)).Int("winners", len(winners)).
		Msg("Giveaway drawn")

	return &DrawResult{Giveaway: giveaway, Winners: winners, Text: text}, nil
}

func (s *giveawayService) ListOpen(ctx context.Context) ([]*models.Giveaway, error) {
	return s.repo.ListOpen(ctx)
}

func (s *giveawayService) GetByChannel(ctx context.Context, channelID int64) (*models.Giveaway, error) {
	giveaway, err := s.repo.GetOpenByChannel(ctx, channelID)
	if err == repository.ErrNotFound {
		return nil, ErrNoActiveGiveaway
	}
	return giveaway, err
}

// RenderWinners renders the winners message: a header plus one format line
// per winner, joined by newlines. {username} expands to the winner's handle,
// {place} to the 1-based place.
func RenderWinners(format string, winners []models.Participant) string {
	lines := make([]string, 0, len(winners)+1)
	lines = append(lines, winnersHeader)
	for i, winner := range winners {
		line := strings.ReplaceAll(format, settingsmodels.UsernamePlaceholder, "@"+winner.Username)
		line = strings.ReplaceAll(line, settingsmodels.PlacePlaceholder, strconv.Itoa(i+1))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
