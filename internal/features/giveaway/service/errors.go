package service

import "errors"

// Expected lifecycle outcomes. These are surfaced to the requesting user as
// short acknowledgements, never treated as faults.
var (
	ErrAlreadyActive    = errors.New("an active giveaway already exists for this channel")
	ErrNoActiveGiveaway = errors.New("no active giveaway for this channel")
	ErrAlreadyJoined    = errors.New("user has already joined")
	ErrNoParticipants   = errors.New("giveaway has no participants yet")
)
