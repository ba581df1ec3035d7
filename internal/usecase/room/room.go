package usecase_room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkhalturin/filmatch/core/internal/model"
	"github.com/mkhalturin/filmatch/core/pkg/retry"
)

var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrValidation       = errors.New("invalid room parameters")
	ErrRoomFull         = errors.New("room is full")
	ErrRoomNotJoinable  = errors.New("room is not joinable")
	ErrFiltersImmutable = errors.New("filters are immutable after creation")
	ErrUnavailable      = errors.New("temporarily unavailable")
	ErrInternal         = errors.New("internal error")
)

const (
	minCapacity = 2
	maxCapacity = 10
)

//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --filename=repository.go
type RoomRepository interface {
	Create(ctx context.Context, room model.Room) error
	RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error)
	AddMember(ctx context.Context, member model.Member) error
	IsActiveMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	ActiveMemberCount(ctx context.Context, roomID uuid.UUID) (int, error)
	ActiveMembers(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)
	SetStatus(ctx context.Context, roomID uuid.UUID, from, to model.RoomStatus) (bool, error)
}

//go:generate mockery --name=PoolBuilder --output=./mocks/room/builder --filename=builder.go
type PoolBuilder interface {
	BuildPool(ctx context.Context, criteria model.FilterCriteria) ([]model.PoolEntry, error)
}

//go:generate mockery --name=PoolCache --output=./mocks/room/cache --filename=cache.go
type PoolCache interface {
	StorePool(ctx context.Context, roomID uuid.UUID, capacity int, criteria model.FilterCriteria, entries []model.PoolEntry) error
}

//go:generate mockery --name=GenreProvider --output=./mocks/room/genres --filename=genres.go
type GenreProvider interface {
	Genres(ctx context.Context, mediaType model.MediaType) ([]model.Genre, error)
}

type Usecase struct {
	repository RoomRepository
	builder    PoolBuilder
	cache      PoolCache
	genres     GenreProvider
	logger     *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(repository RoomRepository, builder PoolBuilder, cache PoolCache, genres GenreProvider, opts ...UsecaseOption) *Usecase {
	u := &Usecase{
		repository: repository,
		builder:    builder,
		cache:      cache,
		genres:     genres,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Create books a room, builds its fixed content pool and stores both.
// Capacity and filters are sealed here: the consensus threshold is the
// capacity chosen now, and the filters never change afterwards.
func (u *Usecase) Create(ctx context.Context, hostID uuid.UUID, name string, capacity int, criteria model.FilterCriteria) (model.Room, error) {
	if capacity < minCapacity || capacity > maxCapacity {
		return model.Room{}, errors.Join(ErrValidation, errors.New("capacity out of range"))
	}
	if err := criteria.Validate(); err != nil {
		return model.Room{}, errors.Join(ErrValidation, err)
	}

	entries, err := u.builder.BuildPool(ctx, criteria)
	if err != nil {
		return model.Room{}, errors.Join(ErrInternal, err)
	}

	room := model.Room{
		ID:              uuid.New(),
		HostID:          hostID,
		Name:            name,
		Status:          model.StatusWaiting,
		RequiredMembers: capacity,
		Filter:          criteria,
		CreatedAt:       time.Now().UTC(),
	}

	if err := u.repository.Create(ctx, room); err != nil {
		return model.Room{}, u.mapErr(err)
	}

	if err := u.cache.StorePool(ctx, room.ID, capacity, criteria, entries); err != nil {
		return model.Room{}, errors.Join(ErrInternal, err)
	}

	u.logger.Info("room created",
		slog.String("room_id", room.ID.String()),
		slog.Int("capacity", capacity),
		slog.String("media_type", string(criteria.MediaType)))

	return room, nil
}

// Join admits a user into a waiting room. Rejoin by an existing active
// member is idempotent and bypasses the capacity check. Reaching capacity
// flips the room to active.
func (u *Usecase) Join(ctx context.Context, roomID, userID uuid.UUID) (model.Room, error) {
	room, err := u.repository.RoomByID(ctx, roomID)
	if err != nil {
		return model.Room{}, u.mapErr(err)
	}

	member, err := u.repository.IsActiveMember(ctx, roomID, userID)
	if err != nil {
		return model.Room{}, u.mapErr(err)
	}
	if member {
		return room, nil
	}

	if room.Status != model.StatusWaiting {
		return model.Room{}, ErrRoomNotJoinable
	}

	count, err := u.repository.ActiveMemberCount(ctx, roomID)
	if err != nil {
		return model.Room{}, u.mapErr(err)
	}
	if count >= room.RequiredMembers {
		return model.Room{}, ErrRoomFull
	}

	if err := u.repository.AddMember(ctx, model.Member{
		RoomID:   roomID,
		UserID:   userID,
		Role:     model.RoleMember,
		IsActive: true,
		JoinedAt: time.Now().UTC(),
	}); err != nil {
		return model.Room{}, u.mapErr(err)
	}

	if count+1 == room.RequiredMembers {
		// A concurrent join may have flipped the room already; the
		// transition is WAITING -> ACTIVE either way, so a zero-row
		// update is not an error.
		if _, err := u.repository.SetStatus(ctx, roomID, model.StatusWaiting, model.StatusActive); err != nil {
			return model.Room{}, u.mapErr(err)
		}
		room.Status = model.StatusActive
	}

	return room, nil
}

func (u *Usecase) Room(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	room, err := u.repository.RoomByID(ctx, roomID)
	if err != nil {
		return model.Room{}, u.mapErr(err)
	}
	return room, nil
}

func (u *Usecase) Members(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	members, err := u.repository.ActiveMembers(ctx, roomID)
	if err != nil {
		return nil, u.mapErr(err)
	}
	return members, nil
}

// UpdateFilters exists only to refuse. Filters seed the pool at creation;
// changing them would desynchronize members mid-vote.
func (u *Usecase) UpdateFilters(_ context.Context, _ uuid.UUID, _ model.FilterCriteria) error {
	return ErrFiltersImmutable
}

func (u *Usecase) Genres(ctx context.Context, mediaType model.MediaType) ([]model.Genre, error) {
	genres, err := u.genres.Genres(ctx, mediaType)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return genres, nil
}

func (u *Usecase) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrResourceNotFound):
		return ErrResourceNotFound
	case retry.IsTransient(err):
		return errors.Join(ErrUnavailable, err)
	default:
		return errors.Join(ErrInternal, err)
	}
}
