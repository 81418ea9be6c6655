package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatJoinTime(t *testing.T) {
	moment := time.Date(2025, time.March, 7, 9, 5, 59, 0, time.UTC)
	assert.Equal(t, "07/03/2025 09:05 UTC", FormatJoinTime(moment))

	// Non-UTC input is normalized.
	loc := time.FixedZone("UTC+3", 3*3600)
	assert.Equal(t, "07/03/2025 09:05 UTC", FormatJoinTime(moment.In(loc)))
}

func TestAddParticipant(t *testing.T) {
	g := &Giveaway{Status: GiveawayStatusOpen}

	require.NoError(t, g.AddParticipant(Participant{UserID: 1, Username: "alice"}))
	require.NoError(t, g.AddParticipant(Participant{UserID: 2, Username: "bob"}))
	assert.Len(t, g.Participants, 2)

	err := g.AddParticipant(Participant{UserID: 1, Username: "alice-again"})
	assert.ErrorIs(t, err, ErrDuplicateJoin)
	assert.Len(t, g.Participants, 2)
}

func TestAddParticipant_Closed(t *testing.T) {
	g := &Giveaway{Status: GiveawayStatusClosed}

	err := g.AddParticipant(Participant{UserID: 1})
	assert.ErrorIs(t, err, ErrGiveawayClosed)
	assert.Empty(t, g.Participants)
}
