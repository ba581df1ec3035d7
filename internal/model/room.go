package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomStatus = string

const (
	StatusWaiting     RoomStatus = "WAITING"
	StatusActive      RoomStatus = "ACTIVE"
	StatusMatched     RoomStatus = "MATCHED"
	StatusNoConsensus RoomStatus = "NO_CONSENSUS"
)

// IsTerminal reports whether no further vote writes are accepted.
func IsTerminal(s RoomStatus) bool {
	return s == StatusMatched || s == StatusNoConsensus
}

func IsVotable(s RoomStatus) bool {
	return s == StatusWaiting || s == StatusActive
}

type Room struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	Name            string
	Status          RoomStatus
	RequiredMembers int
	Filter          FilterCriteria
	ResultItemID    *int64
	CreatedAt       time.Time
}

type MemberRole = string

const (
	RoleHost   MemberRole = "HOST"
	RoleMember MemberRole = "MEMBER"
)

type Member struct {
	RoomID   uuid.UUID
	UserID   uuid.UUID
	Role     MemberRole
	IsActive bool
	JoinedAt time.Time
}
