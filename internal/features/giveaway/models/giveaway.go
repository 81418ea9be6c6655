package models

import (
	"errors"
	"time"
)

var (
	ErrGiveawayClosed = errors.New("giveaway has been closed")
	ErrDuplicateJoin  = errors.New("user has already joined this giveaway")
)

// GiveawayStatus represents the lifecycle state of a giveaway
type GiveawayStatus string

const (
	GiveawayStatusOpen   GiveawayStatus = "open"   // Accepting joins
	GiveawayStatusClosed GiveawayStatus = "closed" // Winners drawn, immutable
)

// JoinTimeLayout is the fixed UTC layout recorded for each join
// (DD/MM/YYYY HH:MM). Lexicographic order within a day matches join order.
const JoinTimeLayout = "02/01/2006 15:04"

// FormatJoinTime renders t in the ledger join-time format.
func FormatJoinTime(t time.Time) string {
	return t.UTC().Format(JoinTimeLayout) + " UTC"
}

// Participant is a user who joined an open giveaway
type Participant struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	JoinedAt string `json:"joined_at"`
}

// Giveaway represents one run of the participate/draw lifecycle in a channel.
// At most one giveaway per channel is open at any time.
type Giveaway struct {
	ID            string         `json:"id"`
	ChannelID     int64          `json:"channel_id"`
	MessageID     int            `json:"message_id"` // announcement message to edit
	LedgerID      string         `json:"ledger_id"`
	LedgerURL     string         `json:"ledger_url"`
	WinnersCount  int            `json:"winners_count"`
	WinnersFormat string         `json:"winners_format"`
	Status        GiveawayStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	ClosedAt      time.Time      `json:"closed_at,omitempty"`
	Participants  []Participant  `json:"participants"`
	Winners       []Participant  `json:"winners,omitempty"`
}

func (g *Giveaway) IsOpen() bool {
	return g.Status == GiveawayStatusOpen
}

// HasParticipant reports whether userID already joined.
func (g *Giveaway) HasParticipant(userID int64) bool {
	for _, p := range g.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// AddParticipant appends a participant, enforcing uniqueness by user ID and
// rejecting mutation of a closed giveaway. Join order is preserved.
func (g *Giveaway) AddParticipant(p Participant) error {
	if !g.IsOpen() {
		return ErrGiveawayClosed
	}
	if g.HasParticipant(p.UserID) {
		return ErrDuplicateJoin
	}
	g.Participants = append(g.Participants, p)
	return nil
}
