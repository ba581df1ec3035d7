package model

import (
	"time"

	"github.com/google/uuid"
)

type VoteType = string

const (
	VoteLike    VoteType = "LIKE"
	VoteDislike VoteType = "DISLIKE"
)

// VoteRecord is written at most once per (user, item) pair.
type VoteRecord struct {
	RoomID  uuid.UUID
	UserID  uuid.UUID
	ItemID  int64
	Type    VoteType
	VotedAt time.Time
}

// VoteAggregate counts LIKE votes only. Updated exclusively through
// atomic increments.
type VoteAggregate struct {
	RoomID    uuid.UUID
	ItemID    int64
	LikeCount int
}

// MatchEvent is handed to the notification layer when a room matches.
// Delivery is best-effort; room state stays authoritative.
type MatchEvent struct {
	RoomID       uuid.UUID
	ItemID       int64
	Title        string
	Participants []uuid.UUID
}
