package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giveaway-bot/internal/features/settings/models"
	"giveaway-bot/internal/features/settings/repository/memory"
)

func newService() SettingsService {
	return NewSettingsService(memory.NewSettingsRepository(), 10, "🎉 Congratulations {username}!")
}

func TestResolve_Defaults(t *testing.T) {
	s := newService()

	snapshot := s.Resolve(context.Background(), 1, -100)
	assert.Equal(t, 10, snapshot.WinnersCount)
	assert.Equal(t, "🎉 Congratulations {username}!", snapshot.WinnersFormat)
}

func TestResolve_RequesterOverridesChannel(t *testing.T) {
	s := newService()
	ctx := context.Background()

	require.NoError(t, s.SetWinnersCount(ctx, -100, 3)) // channel settings
	require.NoError(t, s.SetWinnersCount(ctx, 1, 5))    // requester settings

	snapshot := s.Resolve(ctx, 1, -100)
	assert.Equal(t, 5, snapshot.WinnersCount)

	// Without requester settings the channel value applies.
	snapshot = s.Resolve(ctx, 2, -100)
	assert.Equal(t, 3, snapshot.WinnersCount)
}

func TestSetWinnersCount_Validation(t *testing.T) {
	s := newService()

	assert.ErrorIs(t, s.SetWinnersCount(context.Background(), 1, 0), models.ErrInvalidWinnersCount)
	assert.ErrorIs(t, s.SetWinnersCount(context.Background(), 1, -2), models.ErrInvalidWinnersCount)
}

func TestSetWinnersFormat_Validation(t *testing.T) {
	s := newService()

	assert.ErrorIs(t, s.SetWinnersFormat(context.Background(), 1, "no placeholder"), models.ErrInvalidFormat)
	assert.NoError(t, s.SetWinnersFormat(context.Background(), 1, "Winner: {username}"))
}

func TestDialog_WinnersCount(t *testing.T) {
	s := newService()
	ctx := context.Background()

	// Idle: plain messages are not consumed.
	_, handled := s.HandleDialogMessage(ctx, 1, "hello")
	assert.False(t, handled)

	require.NoError(t, s.BeginWinnersCountDialog(ctx, 1))

	// Invalid input keeps the dialog armed.
	reply, handled := s.HandleDialogMessage(ctx, 1, "not a number")
	assert.True(t, handled)
	assert.Contains(t, reply, "positive number")

	reply, handled = s.HandleDialogMessage(ctx, 1, "7")
	assert.True(t, handled)
	assert.Contains(t, reply, "7")

	snapshot := s.Resolve(ctx, 1, 0)
	assert.Equal(t, 7, snapshot.WinnersCount)

	// Dialog is done, the next message passes through.
	_, handled = s.HandleDialogMessage(ctx, 1, "8")
	assert.False(t, handled)
}

func TestDialog_Format(t *testing.T) {
	s := newService()
	ctx := context.Background()

	require.NoError(t, s.BeginFormatDialog(ctx, 1))

	reply, handled := s.HandleDialogMessage(ctx, 1, "missing placeholder")
	assert.True(t, handled)
	assert.Contains(t, reply, "{username}")

	_, handled = s.HandleDialogMessage(ctx, 1, "{place}. {username} wins!")
	assert.True(t, handled)

	snapshot := s.Resolve(ctx, 1, 0)
	assert.Equal(t, "{place}. {username} wins!", snapshot.WinnersFormat)
}

func TestDialog_PerUserIsolation(t *testing.T) {
	s := newService()
	ctx := context.Background()

	require.NoError(t, s.BeginWinnersCountDialog(ctx, 1))

	// Another user's message is not consumed by user 1's dialog.
	_, handled := s.HandleDialogMessage(ctx, 2, "5")
	assert.False(t, handled)
}
