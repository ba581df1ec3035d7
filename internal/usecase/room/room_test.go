package usecase_room

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
	builder_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/room/mocks/room/builder"
	cache_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/room/mocks/room/cache"
	genres_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/room/mocks/room/genres"
	repo_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/room/mocks/room/repository"
)

type UsecaseRoomUnitSuite struct {
	suite.Suite

	usecase *Usecase

	roomRepo *repo_mocks.RoomRepository
	builder  *builder_mocks.PoolBuilder
	cache    *cache_mocks.PoolCache
	genres   *genres_mocks.GenreProvider

	ctx context.Context
}

func validCriteria() model.FilterCriteria {
	return model.FilterCriteria{
		MediaType: model.MediaMovie,
		GenreIDs:  []int{28},
	}
}

func validEntries() []model.PoolEntry {
	entries := make([]model.PoolEntry, 0, model.PoolSize)
	for i := 0; i < model.PoolSize; i++ {
		entries = append(entries, model.PoolEntry{
			SequenceIndex: i,
			Item:          model.ContentItem{ID: int64(i + 1), Title: "title", Overview: "overview"},
		})
	}
	return entries
}

func waitingRoom(capacity int) model.Room {
	return model.Room{
		ID:              uuid.New(),
		HostID:          uuid.New(),
		Status:          model.StatusWaiting,
		RequiredMembers: capacity,
		Filter:          validCriteria(),
	}
}

func (s *UsecaseRoomUnitSuite) BeforeEach(t provider.T) {
	s.roomRepo = repo_mocks.NewRoomRepository(t)
	s.builder = builder_mocks.NewPoolBuilder(t)
	s.cache = cache_mocks.NewPoolCache(t)
	s.genres = genres_mocks.NewGenreProvider(t)
	s.usecase = New(s.roomRepo, s.builder, s.cache, s.genres)
	s.ctx = context.Background()
}

func (s *UsecaseRoomUnitSuite) TestCreate(t provider.T) {
	t.Run("Should create room with pool stored", func(t provider.T) {
		hostID := uuid.New()
		criteria := validCriteria()
		entries := validEntries()

		s.builder.On("BuildPool", s.ctx, criteria).Return(entries, nil).Once()
		s.roomRepo.On("Create", s.ctx, mock.AnythingOfType("model.Room")).Return(nil).Once()
		s.cache.On("StorePool", s.ctx, mock.AnythingOfType("uuid.UUID"), 2, criteria, entries).
			Return(nil).Once()

		room, err := s.usecase.Create(s.ctx, hostID, "friday night", 2, criteria)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusWaiting, room.Status)
		assert.Equal(t, 2, room.RequiredMembers)
		assert.Equal(t, hostID, room.HostID)
	})

	t.Run("Should reject capacity out of range", func(t provider.T) {
		_, err := s.usecase.Create(s.ctx, uuid.New(), "", 1, validCriteria())

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should reject more than two genre filters", func(t provider.T) {
		criteria := validCriteria()
		criteria.GenreIDs = []int{28, 12, 35}

		_, err := s.usecase.Create(s.ctx, uuid.New(), "", 2, criteria)

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should return ErrInternal when pool build fails", func(t provider.T) {
		criteria := validCriteria()

		s.builder.On("BuildPool", s.ctx, criteria).
			Return(nil, errors.New("all strategies starved")).Once()

		_, err := s.usecase.Create(s.ctx, uuid.New(), "", 2, criteria)

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func (s *UsecaseRoomUnitSuite) TestJoin(t provider.T) {
	t.Run("Should join waiting room and flip it to active at capacity", func(t provider.T) {
		room := waitingRoom(2)
		userID := uuid.New()

		s.roomRepo.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.roomRepo.On("IsActiveMember", s.ctx, room.ID, userID).Return(false, nil).Once()
		s.roomRepo.On("ActiveMemberCount", s.ctx, room.ID).Return(1, nil).Once()
		s.roomRepo.On("AddMember", s.ctx, mock.AnythingOfType("model.Member")).Return(nil).Once()
		s.roomRepo.On("SetStatus", s.ctx, room.ID, model.StatusWaiting, model.StatusActive).
			Return(true, nil).Once()

		joined, err := s.usecase.Join(s.ctx, room.ID, userID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusActive, joined.Status)
	})

	t.Run("Should keep room waiting below capacity", func(t provider.T) {
		room := waitingRoom(3)
		userID := uuid.New()

		s.roomRepo.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.roomRepo.On("IsActiveMember", s.ctx, room.ID, userID).Return(false, nil).Once()
		s.roomRepo.On("ActiveMemberCount", s.ctx, room.ID).Return(1, nil).Once()
		s.roomRepo.On("AddMember", s.ctx, mock.AnythingOfType("model.Member")).Return(nil).Once()

		joined, err := s.usecase.Join(s.ctx, room.ID, userID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusWaiting, joined.Status)
	})

	t.Run("Should be idempotent for an existing active member", func(t provider.T) {
		room := waitingRoom(2)
		userID := uuid.New()

		s.roomRepo.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.roomRepo.On("IsActiveMember", s.ctx, room.ID, userID).Return(true, nil).Once()

		joined, err := s.usecase.Join(s.ctx, room.ID, userID)

		assert.NoError(t, err)
		assert.Equal(t, room.ID, joined.ID)
	})

	t.Run("Should fail with RoomFull at capacity", func(t provider.T) {
		room := waitingRoom(2)
		userID := uuid.New()

		s.roomRepo.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.roomRepo.On("IsActiveMember", s.ctx, room.ID, userID).Return(false, nil).Once()
		s.roomRepo.On("ActiveMemberCount", s.ctx, room.ID).Return(2, nil).Once()

		_, err := s.usecase.Join(s.ctx, room.ID, userID)

		assert.ErrorIs(t, err, ErrRoomFull)
	})

	t.Run("Should fail with RoomNotJoinable once voting started", func(t provider.T) {
		room := waitingRoom(2)
		room.Status = model.StatusActive
		userID := uuid.New()

		s.roomRepo.On("RoomByID", s.ctx, room.ID).Return(room, nil).Once()
		s.roomRepo.On("IsActiveMember", s.ctx, room.ID, userID).Return(false, nil).Once()

		_, err := s.usecase.Join(s.ctx, room.ID, userID)

		assert.ErrorIs(t, err, ErrRoomNotJoinable)
	})

	t.Run("Should pass through ResourceNotFound for an unknown room", func(t provider.T) {
		roomID := uuid.New()

		s.roomRepo.On("RoomByID", s.ctx, roomID).Return(model.Room{}, ErrResourceNotFound).Once()

		_, err := s.usecase.Join(s.ctx, roomID, uuid.New())

		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func (s *UsecaseRoomUnitSuite) TestUpdateFilters(t provider.T) {
	t.Run("Should always refuse filter updates", func(t provider.T) {
		err := s.usecase.UpdateFilters(s.ctx, uuid.New(), validCriteria())

		assert.ErrorIs(t, err, ErrFiltersImmutable)
	})
}

func (s *UsecaseRoomUnitSuite) TestGenres(t provider.T) {
	t.Run("Should return genres from the provider", func(t provider.T) {
		expected := []model.Genre{{ID: 28, Name: "Action"}}

		s.genres.On("Genres", s.ctx, model.MediaMovie).Return(expected, nil).Once()

		genres, err := s.usecase.Genres(s.ctx, model.MediaMovie)

		assert.NoError(t, err)
		assert.Equal(t, expected, genres)
	})

	t.Run("Should wrap provider failures as internal", func(t provider.T) {
		s.genres.On("Genres", s.ctx, model.MediaTV).
			Return(nil, errors.New("upstream timeout")).Once()

		_, err := s.usecase.Genres(s.ctx, model.MediaTV)

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUsecaseRoomUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoomUnitSuite))
}
