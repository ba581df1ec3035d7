package infra_postgres_vote

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	infra_pg_init "github.com/mkhalturin/filmatch/core/internal/infra/postgres/init"
	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_vote "github.com/mkhalturin/filmatch/core/internal/usecase/vote"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

// CreateVoteRecord is a create-if-absent write. A conflict on the
// (room, user, item) key is the expected signal of a duplicate vote race
// and is surfaced as such, never retried.
func (d *Driver) CreateVoteRecord(ctx context.Context, rec model.VoteRecord) error {
	const query = `
		INSERT INTO votes (room_id, user_id, item_id, vote_type, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_id, user_id, item_id) DO NOTHING
	`
	result, err := d.db.ExecContext(ctx, query,
		rec.RoomID, rec.UserID, rec.ItemID, rec.Type, rec.VotedAt,
	)
	if err != nil {
		return infra_pg_init.WrapTransient(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return infra_pg_init.WrapTransient(err)
	}
	if affected == 0 {
		return usecase_vote.ErrDuplicateVote
	}

	return nil
}

// IncrementLike atomically adds one to the aggregate and returns the new
// count. When the row does not exist yet it is created with count 1 via a
// conditional insert; losing that race to a concurrent voter is tagged
// transient so the caller's retry policy re-enters through the increment
// path.
func (d *Driver) IncrementLike(ctx context.Context, roomID uuid.UUID, itemID int64) (int, error) {
	var count int

	const incrQuery = `
		UPDATE vote_aggregates
		SET like_count = like_count + 1
		WHERE room_id = $1 AND item_id = $2
		RETURNING like_count
	`
	err := d.db.GetContext(ctx, &count, incrQuery, roomID, itemID)
	if err == nil {
		return count, nil
	}
	if err != sql.ErrNoRows {
		return 0, infra_pg_init.WrapTransient(err)
	}

	const createQuery = `
		INSERT INTO vote_aggregates (room_id, item_id, like_count)
		VALUES ($1, $2, 1)
	`
	if _, err := d.db.ExecContext(ctx, createQuery, roomID, itemID); err != nil {
		if infra_pg_init.IsUniqueViolation(err) {
			return 0, usecase_vote.ErrAggregateConflict
		}
		return 0, infra_pg_init.WrapTransient(err)
	}

	return 1, nil
}

func (d *Driver) LikeCount(ctx context.Context, roomID uuid.UUID, itemID int64) (int, error) {
	var count int

	const query = `
		SELECT like_count FROM vote_aggregates
		WHERE room_id = $1 AND item_id = $2
	`
	if err := d.db.GetContext(ctx, &count, query, roomID, itemID); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, infra_pg_init.WrapTransient(err)
	}

	return count, nil
}

func (d *Driver) UserVoteCount(ctx context.Context, roomID, userID uuid.UUID) (int, error) {
	var count int

	const query = `
		SELECT COUNT(*) FROM votes
		WHERE room_id = $1 AND user_id = $2
	`
	if err := d.db.GetContext(ctx, &count, query, roomID, userID); err != nil {
		return 0, infra_pg_init.WrapTransient(err)
	}

	return count, nil
}

// AllActiveFinished answers "did every active member run out of pool" with
// a single aggregate query instead of N point reads per member.
func (d *Driver) AllActiveFinished(ctx context.Context, roomID uuid.UUID, threshold int) (bool, error) {
	var result struct {
		ActiveCount   int `db:"active_count"`
		FinishedCount int `db:"finished_count"`
	}

	const query = `
		SELECT
			COUNT(*) AS active_count,
			COUNT(*) FILTER (WHERE COALESCE(v.cnt, 0) >= $2) AS finished_count
		FROM members m
		LEFT JOIN (
			SELECT room_id, user_id, COUNT(*) AS cnt
			FROM votes
			WHERE room_id = $1
			GROUP BY room_id, user_id
		) v ON v.room_id = m.room_id AND v.user_id = m.user_id
		WHERE m.room_id = $1 AND m.is_active
	`
	if err := d.db.GetContext(ctx, &result, query, roomID, threshold); err != nil {
		return false, infra_pg_init.WrapTransient(err)
	}

	return result.ActiveCount > 0 && result.FinishedCount == result.ActiveCount, nil
}
