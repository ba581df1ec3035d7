package usecase_vote

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mkhalturin/filmatch/core/internal/model"
	cleanup_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/vote/mocks/vote/cleanup"
	ledger_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/vote/mocks/vote/ledger"
	pool_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/vote/mocks/vote/pool"
	publisher_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/vote/mocks/vote/publisher"
	room_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/vote/mocks/vote/room"
)

type ConsensusEngineUnitSuite struct {
	suite.Suite

	engine    *Engine
	rooms     *room_mocks.RoomGateway
	ledger    *ledger_mocks.VoteLedger
	pool      *pool_mocks.PoolReader
	publisher *publisher_mocks.Publisher
	cleanup   *cleanup_mocks.CleanupScheduler

	ctx context.Context
}

/*
'Object Mother' pattern
aka cooks specific objects.
*/
func activeRoom(capacity int) model.Room {
	return model.Room{
		ID:              uuid.New(),
		HostID:          uuid.New(),
		Status:          model.StatusActive,
		RequiredMembers: capacity,
		Filter:          model.FilterCriteria{MediaType: model.MediaMovie},
	}
}

func matchedRoom(itemID int64) model.Room {
	room := activeRoom(2)
	room.Status = model.StatusMatched
	room.ResultItemID = &itemID
	return room
}

func poolWith(itemID int64) []model.PoolEntry {
	entries := make([]model.PoolEntry, 0, model.PoolSize)
	for i := 0; i < model.PoolSize; i++ {
		id := int64(1000 + i)
		if i == 0 {
			id = itemID
		}
		entries = append(entries, model.PoolEntry{
			SequenceIndex: i,
			Item:          model.ContentItem{ID: id, Title: "title", Overview: "overview"},
		})
	}
	return entries
}

func (s *ConsensusEngineUnitSuite) BeforeEach(t provider.T) {
	s.rooms = room_mocks.NewRoomGateway(t)
	s.ledger = ledger_mocks.NewVoteLedger(t)
	s.pool = pool_mocks.NewPoolReader(t)
	s.publisher = publisher_mocks.NewPublisher(t)
	s.cleanup = cleanup_mocks.NewCleanupScheduler(t)
	s.engine = New(s.rooms, s.ledger, s.pool, s.publisher, s.cleanup)
	s.ctx = context.Background()
}

func (s *ConsensusEngineUnitSuite) TestVoteRecording(t provider.T) {
	t.Run("Should record LIKE below threshold and keep room active", func(t provider.T) {
		room := activeRoom(3)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("IncrementLike", s.ctx, room.ID, int64(550)).Return(1, nil).Once()
		s.ledger.On("UserVoteCount", s.ctx, room.ID, userID).Return(1, nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteLike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusActive, outcome.RoomStatus)
		assert.Equal(t, 1, outcome.LikeCount)
		assert.Nil(t, outcome.Matched)
	})

	t.Run("Should record DISLIKE without incrementing the aggregate", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("LikeCount", s.ctx, room.ID, int64(550)).Return(1, nil).Once()
		s.ledger.On("UserVoteCount", s.ctx, room.ID, userID).Return(5, nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteDislike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusActive, outcome.RoomStatus)
		assert.Equal(t, 1, outcome.LikeCount)
	})

	t.Run("Should fail with DuplicateVote on a second vote for the same item", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(ErrDuplicateVote).Once()

		_, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteLike)

		assert.ErrorIs(t, err, ErrDuplicateVote)
	})
}

func (s *ConsensusEngineUnitSuite) TestMembershipAndState(t provider.T) {
	t.Run("Should fail with NotAMember when user is not active in the room", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(false, nil).Once()

		_, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteLike)

		assert.ErrorIs(t, err, ErrNotAMember)
	})

	t.Run("Should fail with RoomNotVotable on an exhausted room", func(t provider.T) {
		room := activeRoom(2)
		room.Status = model.StatusNoConsensus
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()

		_, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteLike)

		assert.ErrorIs(t, err, ErrRoomNotVotable)
	})

	t.Run("Should return the standing result for a late vote on a matched room", func(t provider.T) {
		room := matchedRoom(550)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("LikeCount", s.ctx, room.ID, int64(550)).Return(2, nil).Once()
		s.pool.On("All", s.ctx, room.ID).Return(poolWith(550), nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 1001, model.VoteLike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusMatched, outcome.RoomStatus)
		assert.Equal(t, 2, outcome.LikeCount)
		if assert.NotNil(t, outcome.Matched) {
			assert.Equal(t, int64(550), outcome.Matched.ID)
		}
		// No write happened: CreateVoteRecord was never set up.
	})
}

func (s *ConsensusEngineUnitSuite) TestStopOnMatch(t provider.T) {
	t.Run("Should transition to MATCHED exactly on the Nth like", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()
		participants := []uuid.UUID{room.HostID, userID}

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("IncrementLike", s.ctx, room.ID, int64(550)).Return(2, nil).Once()
		s.rooms.On("MarkMatched", s.ctx, room.ID, int64(550)).Return(true, nil).Once()
		s.pool.On("All", s.ctx, room.ID).Return(poolWith(550), nil).Once()
		s.rooms.On("ActiveMembers", s.ctx, room.ID).Return(participants, nil).Once()
		s.publisher.On("PublishMatch", s.ctx, mock.AnythingOfType("model.MatchEvent")).Return(nil).Once()
		s.cleanup.On("Schedule", s.ctx, room.ID).Return(nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteLike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusMatched, outcome.RoomStatus)
		assert.Equal(t, 2, outcome.LikeCount)
		if assert.NotNil(t, outcome.Matched) {
			assert.Equal(t, int64(550), outcome.Matched.ID)
		}
	})

	t.Run("Should not roll the match back when notification fails", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("IncrementLike", s.ctx, room.ID, int64(550)).Return(2, nil).Once()
		s.rooms.On("MarkMatched", s.ctx, room.ID, int64(550)).Return(true, nil).Once()
		s.pool.On("All", s.ctx, room.ID).Return(poolWith(550), nil).Once()
		s.rooms.On("ActiveMembers", s.ctx, room.ID).Return([]uuid.UUID{userID}, nil).Once()
		s.publisher.On("PublishMatch", s.ctx, mock.AnythingOfType("model.MatchEvent")).
			Return(errors.New("broker down")).Once()
		s.cleanup.On("Schedule", s.ctx, room.ID).Return(nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteLike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusMatched, outcome.RoomStatus)
	})

	t.Run("Should report the winner when losing the transition race", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()
		winner := matchedRoom(777)
		winner.ID = room.ID

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("IncrementLike", s.ctx, room.ID, int64(550)).Return(2, nil).Once()
		s.rooms.On("MarkMatched", s.ctx, room.ID, int64(550)).Return(false, nil).Once()
		s.rooms.On("RoomByID", s.ctx, room.ID).Return(winner, nil).Once()
		s.ledger.On("LikeCount", s.ctx, room.ID, int64(777)).Return(2, nil).Once()
		s.pool.On("All", s.ctx, room.ID).Return(poolWith(777), nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteLike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusMatched, outcome.RoomStatus)
		if assert.NotNil(t, outcome.Matched) {
			assert.Equal(t, int64(777), outcome.Matched.ID)
		}
	})
}

func (s *ConsensusEngineUnitSuite) TestAggregateConflictRetry(t provider.T) {
	t.Run("Should retry through the increment path after a creation race", func(t provider.T) {
		room := activeRoom(3)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("IncrementLike", s.ctx, room.ID, int64(550)).Return(0, ErrAggregateConflict).Once()
		s.ledger.On("IncrementLike", s.ctx, room.ID, int64(550)).Return(2, nil).Once()
		s.ledger.On("UserVoteCount", s.ctx, room.ID, userID).Return(1, nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteLike)

		assert.NoError(t, err)
		assert.Equal(t, 2, outcome.LikeCount)
	})
}

func (s *ConsensusEngineUnitSuite) TestNoConsensus(t provider.T) {
	t.Run("Should transition to NO_CONSENSUS when every member exhausted the pool", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("LikeCount", s.ctx, room.ID, int64(550)).Return(0, nil).Once()
		s.ledger.On("UserVoteCount", s.ctx, room.ID, userID).Return(model.PoolSize, nil).Once()
		s.ledger.On("AllActiveFinished", s.ctx, room.ID, model.PoolSize).Return(true, nil).Once()
		s.rooms.On("MarkNoConsensus", s.ctx, room.ID).Return(true, nil).Once()
		s.publisher.On("PublishNoConsensus", s.ctx, room.ID).Return(nil).Once()
		s.cleanup.On("Schedule", s.ctx, room.ID).Return(nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteDislike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusNoConsensus, outcome.RoomStatus)
	})

	t.Run("Should keep the room active while others are still voting", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("LikeCount", s.ctx, room.ID, int64(550)).Return(0, nil).Once()
		s.ledger.On("UserVoteCount", s.ctx, room.ID, userID).Return(model.PoolSize, nil).Once()
		s.ledger.On("AllActiveFinished", s.ctx, room.ID, model.PoolSize).Return(false, nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteDislike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusActive, outcome.RoomStatus)
	})

	t.Run("Should report the stored state after losing the transition race", func(t provider.T) {
		room := activeRoom(2)
		userID := uuid.New()

		winner := room
		winner.Status = model.StatusMatched

		s.rooms.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.rooms.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()
		s.ledger.On("CreateVoteRecord", s.ctx, mock.AnythingOfType("model.VoteRecord")).Return(nil).Once()
		s.ledger.On("LikeCount", s.ctx, room.ID, int64(550)).Return(0, nil).Once()
		s.ledger.On("UserVoteCount", s.ctx, room.ID, userID).Return(model.PoolSize, nil).Once()
		s.ledger.On("AllActiveFinished", s.ctx, room.ID, model.PoolSize).Return(true, nil).Once()
		s.rooms.On("MarkNoConsensus", s.ctx, room.ID).Return(false, nil).Once()
		s.rooms.On("RoomByID", s.ctx, room.ID).Return(winner, nil).Once()

		outcome, err := s.engine.Vote(s.ctx, room.ID, userID, 550, model.VoteDislike)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusMatched, outcome.RoomStatus)
		s.publisher.AssertNotCalled(t, "PublishNoConsensus", s.ctx, room.ID)
		s.cleanup.AssertNotCalled(t, "Schedule", s.ctx, room.ID)
	})
}

func TestConsensusEngineUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ConsensusEngineUnitSuite))
}
