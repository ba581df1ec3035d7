package infra_postgres_room

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	infra_pg_init "github.com/mkhalturin/filmatch/core/internal/infra/postgres/init"
	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_room "github.com/mkhalturin/filmatch/core/internal/usecase/room"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID           uuid.UUID     `db:"id"`
	HostID       uuid.UUID     `db:"host_id"`
	Name         string        `db:"name"`
	Status       string        `db:"status"`
	Capacity     int           `db:"capacity"`
	MediaType    string        `db:"media_type"`
	GenreIDs     pq.Int64Array `db:"genre_ids"`
	ResultItemID sql.NullInt64 `db:"result_item_id"`
	CreatedAt    time.Time     `db:"created_at"`
}

func (dto roomDTO) toModel() model.Room {
	genres := make([]int, 0, len(dto.GenreIDs))
	for _, g := range dto.GenreIDs {
		genres = append(genres, int(g))
	}

	room := model.Room{
		ID:              dto.ID,
		HostID:          dto.HostID,
		Name:            dto.Name,
		Status:          dto.Status,
		RequiredMembers: dto.Capacity,
		Filter: model.FilterCriteria{
			MediaType: dto.MediaType,
			GenreIDs:  genres,
		},
		CreatedAt: dto.CreatedAt,
	}
	if dto.ResultItemID.Valid {
		id := dto.ResultItemID.Int64
		room.ResultItemID = &id
	}
	return room
}

// Create inserts the room together with its host membership. Rooms get
// fresh ids per request, so id collisions are not a concern here.
func (d *Driver) Create(ctx context.Context, room model.Room) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return infra_pg_init.WrapTransient(err)
	}
	defer func() { _ = tx.Rollback() }()

	genres := make(pq.Int64Array, 0, len(room.Filter.GenreIDs))
	for _, g := range room.Filter.GenreIDs {
		genres = append(genres, int64(g))
	}

	const roomQuery = `
		INSERT INTO rooms (id, host_id, name, status, capacity, media_type, genre_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.ExecContext(ctx, roomQuery,
		room.ID, room.HostID, room.Name, room.Status,
		room.RequiredMembers, room.Filter.MediaType, genres, room.CreatedAt,
	); err != nil {
		return infra_pg_init.WrapTransient(err)
	}

	const memberQuery = `
		INSERT INTO members (room_id, user_id, role, is_active, joined_at)
		VALUES ($1, $2, $3, true, $4)
	`
	if _, err := tx.ExecContext(ctx, memberQuery,
		room.ID, room.HostID, model.RoleHost, room.CreatedAt,
	); err != nil {
		return infra_pg_init.WrapTransient(err)
	}

	return infra_pg_init.WrapTransient(tx.Commit())
}

func (d *Driver) RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	var dto roomDTO

	const query = `
		SELECT id, host_id, name, status, capacity, media_type, genre_ids, result_item_id, created_at
		FROM rooms
		WHERE id = $1
	`
	if err := d.db.GetContext(ctx, &dto, query, roomID); err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, infra_pg_init.WrapTransient(err)
	}

	return dto.toModel(), nil
}

// AddMember is idempotent: a rejoin reactivates the existing record.
func (d *Driver) AddMember(ctx context.Context, member model.Member) error {
	const query = `
		INSERT INTO members (room_id, user_id, role, is_active, joined_at)
		VALUES ($1, $2, $3, true, $4)
		ON CONFLICT (room_id, user_id)
		DO UPDATE SET is_active = true
	`
	_, err := d.db.ExecContext(ctx, query,
		member.RoomID, member.UserID, member.Role, member.JoinedAt,
	)
	return infra_pg_init.WrapTransient(err)
}

func (d *Driver) IsActiveMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	var active bool

	const query = `
		SELECT EXISTS(
			SELECT 1 FROM members
			WHERE room_id = $1 AND user_id = $2 AND is_active
		)
	`
	if err := d.db.GetContext(ctx, &active, query, roomID, userID); err != nil {
		return false, infra_pg_init.WrapTransient(err)
	}

	return active, nil
}

func (d *Driver) ActiveMemberCount(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int

	const query = `
		SELECT COUNT(*) FROM members
		WHERE room_id = $1 AND is_active
	`
	if err := d.db.GetContext(ctx, &count, query, roomID); err != nil {
		return 0, infra_pg_init.WrapTransient(err)
	}

	return count, nil
}

func (d *Driver) ActiveMembers(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	const query = `
		SELECT user_id FROM members
		WHERE room_id = $1 AND is_active
		ORDER BY joined_at
	`
	if err := d.db.SelectContext(ctx, &ids, query, roomID); err != nil {
		return nil, infra_pg_init.WrapTransient(err)
	}

	return ids, nil
}

// SetStatus performs a guarded transition and reports whether this call
// actually moved the room out of the expected state.
func (d *Driver) SetStatus(ctx context.Context, roomID uuid.UUID, from, to model.RoomStatus) (bool, error) {
	const query = `
		UPDATE rooms
		SET status = $1
		WHERE id = $2 AND status = $3
	`
	result, err := d.db.ExecContext(ctx, query, to, roomID, from)
	if err != nil {
		return false, infra_pg_init.WrapTransient(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, infra_pg_init.WrapTransient(err)
	}

	return affected > 0, nil
}

// MarkMatched is the one-way stop-on-match transition. Once a room left the
// votable states the update matches zero rows and the call is a no-op.
func (d *Driver) MarkMatched(ctx context.Context, roomID uuid.UUID, itemID int64) (bool, error) {
	const query = `
		UPDATE rooms
		SET status = $1, result_item_id = $2
		WHERE id = $3 AND status IN ($4, $5)
	`
	result, err := d.db.ExecContext(ctx, query,
		model.StatusMatched, itemID, roomID,
		model.StatusWaiting, model.StatusActive,
	)
	if err != nil {
		return false, infra_pg_init.WrapTransient(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, infra_pg_init.WrapTransient(err)
	}

	return affected > 0, nil
}

func (d *Driver) MarkNoConsensus(ctx context.Context, roomID uuid.UUID) (bool, error) {
	const query = `
		UPDATE rooms
		SET status = $1
		WHERE id = $2 AND status IN ($3, $4)
	`
	result, err := d.db.ExecContext(ctx, query,
		model.StatusNoConsensus, roomID,
		model.StatusWaiting, model.StatusActive,
	)
	if err != nil {
		return false, infra_pg_init.WrapTransient(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, infra_pg_init.WrapTransient(err)
	}

	return affected > 0, nil
}
