package usecase_vote

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_room "github.com/mkhalturin/filmatch/core/internal/usecase/room"
	"github.com/mkhalturin/filmatch/core/pkg/retry"
)

var (
	ErrDuplicateVote     = errors.New("duplicate vote")
	ErrAggregateConflict = errors.New("aggregate creation conflict")
	ErrRoomNotVotable    = errors.New("room is not votable")
	ErrNotAMember        = errors.New("not an active member")
	ErrResourceNotFound  = errors.New("no such resource")
	ErrUnavailable       = errors.New("temporarily unavailable")
	ErrInternal          = errors.New("internal error")
)

//go:generate mockery --name=RoomGateway --output=./mocks/vote/room --filename=room.go
type RoomGateway interface {
	RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error)
	IsActiveMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	ActiveMembers(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)
	MarkMatched(ctx context.Context, roomID uuid.UUID, itemID int64) (bool, error)
	MarkNoConsensus(ctx context.Context, roomID uuid.UUID) (bool, error)
}

//go:generate mockery --name=VoteLedger --output=./mocks/vote/ledger --filename=ledger.go
type VoteLedger interface {
	CreateVoteRecord(ctx context.Context, rec model.VoteRecord) error
	IncrementLike(ctx context.Context, roomID uuid.UUID, itemID int64) (int, error)
	LikeCount(ctx context.Context, roomID uuid.UUID, itemID int64) (int, error)
	UserVoteCount(ctx context.Context, roomID, userID uuid.UUID) (int, error)
	AllActiveFinished(ctx context.Context, roomID uuid.UUID, threshold int) (bool, error)
}

//go:generate mockery --name=PoolReader --output=./mocks/vote/pool --filename=pool.go
type PoolReader interface {
	All(ctx context.Context, roomID uuid.UUID) ([]model.PoolEntry, error)
}

//go:generate mockery --name=Publisher --output=./mocks/vote/publisher --filename=publisher.go
type Publisher interface {
	PublishMatch(ctx context.Context, event model.MatchEvent) error
	PublishNoConsensus(ctx context.Context, roomID uuid.UUID) error
}

//go:generate mockery --name=CleanupScheduler --output=./mocks/vote/cleanup --filename=cleanup.go
type CleanupScheduler interface {
	Schedule(ctx context.Context, roomID uuid.UUID) error
}

type Outcome struct {
	RoomStatus model.RoomStatus
	LikeCount  int
	Matched    *model.ContentItem
}

type Engine struct {
	rooms     RoomGateway
	ledger    VoteLedger
	pool      PoolReader
	publisher Publisher
	cleanup   CleanupScheduler
	retrier   retry.Policy
	logger    *slog.Logger
}

type EngineOption func(*Engine)

func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(rooms RoomGateway, ledger VoteLedger, pool PoolReader, publisher Publisher, cleanup CleanupScheduler, opts ...EngineOption) *Engine {
	e := &Engine{
		rooms:     rooms,
		ledger:    ledger,
		pool:      pool,
		publisher: publisher,
		cleanup:   cleanup,
		retrier: retry.Policy{
			MaxAttempts: 3,
			Backoff:     retry.Exponential(100 * time.Millisecond),
			// An aggregate-creation race resolves by re-entering through the
			// increment path, so the conflict is retried like a transient.
			Retryable: func(err error) bool {
				return retry.IsTransient(err) || errors.Is(err, ErrAggregateConflict)
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Vote drives one ballot through the consensus pipeline. Late votes on an
// already matched room return the standing result without recording
// anything; every other terminal state refuses the vote.
func (e *Engine) Vote(ctx context.Context, roomID, userID uuid.UUID, itemID int64, voteType model.VoteType) (Outcome, error) {
	room, err := e.rooms.RoomByID(ctx, roomID)
	if err != nil {
		return Outcome{}, e.mapErr(err)
	}

	if !model.IsVotable(room.Status) && room.Status != model.StatusMatched {
		return Outcome{}, ErrRoomNotVotable
	}

	member, err := e.rooms.IsActiveMember(ctx, roomID, userID)
	if err != nil {
		return Outcome{}, e.mapErr(err)
	}
	if !member {
		return Outcome{}, ErrNotAMember
	}

	if room.Status == model.StatusMatched {
		return e.standingResult(ctx, room)
	}

	if err := e.ledger.CreateVoteRecord(ctx, model.VoteRecord{
		RoomID:  roomID,
		UserID:  userID,
		ItemID:  itemID,
		Type:    voteType,
		VotedAt: time.Now().UTC(),
	}); err != nil {
		if errors.Is(err, ErrDuplicateVote) {
			return Outcome{}, ErrDuplicateVote
		}
		return Outcome{}, e.mapErr(err)
	}

	var count int
	if voteType == model.VoteLike {
		if err := e.retrier.Do(ctx, func() error {
			var opErr error
			count, opErr = e.ledger.IncrementLike(ctx, roomID, itemID)
			return opErr
		}); err != nil {
			return Outcome{}, e.mapErr(err)
		}

		if count >= room.RequiredMembers {
			return e.settleMatch(ctx, room, itemID, count)
		}
	} else {
		if count, err = e.ledger.LikeCount(ctx, roomID, itemID); err != nil {
			return Outcome{}, e.mapErr(err)
		}
	}

	status, err := e.maybeExhausted(ctx, room, userID)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{RoomStatus: status, LikeCount: count}, nil
}

// settleMatch performs the one-way transition to MATCHED. Losing the
// transition race to a concurrent vote means another item already won; the
// room state stays authoritative and this vote reports it.
func (e *Engine) settleMatch(ctx context.Context, room model.Room, itemID int64, count int) (Outcome, error) {
	flipped, err := e.rooms.MarkMatched(ctx, room.ID, itemID)
	if err != nil {
		return Outcome{}, e.mapErr(err)
	}
	if !flipped {
		fresh, err := e.rooms.RoomByID(ctx, room.ID)
		if err != nil {
			return Outcome{}, e.mapErr(err)
		}
		return e.standingResult(ctx, fresh)
	}

	item := e.lookupItem(ctx, room.ID, itemID)

	e.logger.Info("room matched",
		slog.String("room_id", room.ID.String()),
		slog.Int64("item_id", itemID),
		slog.Int("like_count", count))

	e.notifyMatch(ctx, room.ID, itemID, item)
	e.scheduleCleanup(ctx, room.ID)

	return Outcome{RoomStatus: model.StatusMatched, LikeCount: count, Matched: item}, nil
}

// maybeExhausted transitions the room to NO_CONSENSUS once every active
// member has voted through the whole pool without a match.
func (e *Engine) maybeExhausted(ctx context.Context, room model.Room, userID uuid.UUID) (model.RoomStatus, error) {
	voted, err := e.ledger.UserVoteCount(ctx, room.ID, userID)
	if err != nil {
		return "", e.mapErr(err)
	}
	if voted < model.PoolSize {
		return room.Status, nil
	}

	finished, err := e.ledger.AllActiveFinished(ctx, room.ID, model.PoolSize)
	if err != nil {
		return "", e.mapErr(err)
	}
	if !finished {
		return room.Status, nil
	}

	flipped, err := e.rooms.MarkNoConsensus(ctx, room.ID)
	if err != nil {
		return "", e.mapErr(err)
	}
	if !flipped {
		// Lost the transition race; a concurrent vote may have matched the
		// room instead, so the stored state is what this voter sees.
		fresh, err := e.rooms.RoomByID(ctx, room.ID)
		if err != nil {
			return "", e.mapErr(err)
		}
		return fresh.Status, nil
	}

	e.logger.Info("room exhausted without consensus", slog.String("room_id", room.ID.String()))
	if err := e.publisher.PublishNoConsensus(ctx, room.ID); err != nil {
		e.logger.Warn("no-consensus notification failed",
			slog.String("room_id", room.ID.String()),
			slog.String("error", err.Error()))
	}
	e.scheduleCleanup(ctx, room.ID)

	return model.StatusNoConsensus, nil
}

// standingResult reports an already matched room back to a late voter.
func (e *Engine) standingResult(ctx context.Context, room model.Room) (Outcome, error) {
	out := Outcome{RoomStatus: room.Status}
	if room.ResultItemID == nil {
		return out, nil
	}

	count, err := e.ledger.LikeCount(ctx, room.ID, *room.ResultItemID)
	if err != nil {
		return Outcome{}, e.mapErr(err)
	}
	out.LikeCount = count
	out.Matched = e.lookupItem(ctx, room.ID, *room.ResultItemID)

	return out, nil
}

// lookupItem resolves the matched item from the pool cache. The match
// decision never depends on it; a missing cache just degrades the payload.
func (e *Engine) lookupItem(ctx context.Context, roomID uuid.UUID, itemID int64) *model.ContentItem {
	entries, err := e.pool.All(ctx, roomID)
	if err != nil {
		e.logger.Warn("matched item lookup failed",
			slog.String("room_id", roomID.String()),
			slog.String("error", err.Error()))
		return nil
	}
	for _, entry := range entries {
		if entry.Item.ID == itemID {
			item := entry.Item
			return &item
		}
	}
	return nil
}

// notifyMatch is best-effort: the room state is authoritative and a failed
// publish never rolls the match back.
func (e *Engine) notifyMatch(ctx context.Context, roomID uuid.UUID, itemID int64, item *model.ContentItem) {
	event := model.MatchEvent{RoomID: roomID, ItemID: itemID}
	if item != nil {
		event.Title = item.Title
	}

	participants, err := e.rooms.ActiveMembers(ctx, roomID)
	if err != nil {
		e.logger.Warn("participant list lookup failed",
			slog.String("room_id", roomID.String()),
			slog.String("error", err.Error()))
	}
	event.Participants = participants

	if err := e.publisher.PublishMatch(ctx, event); err != nil {
		e.logger.Warn("match notification failed",
			slog.String("room_id", roomID.String()),
			slog.String("error", err.Error()))
	}
}

func (e *Engine) scheduleCleanup(ctx context.Context, roomID uuid.UUID) {
	if err := e.cleanup.Schedule(ctx, roomID); err != nil {
		e.logger.Warn("cleanup scheduling failed",
			slog.String("room_id", roomID.String()),
			slog.String("error", err.Error()))
	}
}

func (e *Engine) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase_room.ErrResourceNotFound):
		return ErrResourceNotFound
	case retry.IsTransient(err):
		return errors.Join(ErrUnavailable, err)
	default:
		return errors.Join(ErrInternal, err)
	}
}
