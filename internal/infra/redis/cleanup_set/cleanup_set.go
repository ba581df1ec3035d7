package infra_redis_cleanup_set

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
)

// Driver keeps the queue of rooms whose pool cache awaits reclamation after
// the room reached a terminal state. Rooms are scored by their ready-at
// deadline, so a pop only ever surfaces entries whose grace period has
// elapsed; the cache TTL remains the backstop.
type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Add(ctx context.Context, roomID uuid.UUID, readyAt time.Time) error {
	member := redis.Z{
		Score:  float64(readyAt.Unix()),
		Member: roomID.String(),
	}
	if err := d.client.ZAdd(d.key, member).Err(); err != nil {
		return err
	}
	return nil
}

// RemoveDue pops one room whose ready-at deadline has passed. A Nil id
// means nothing is due yet.
func (d *Driver) RemoveDue(ctx context.Context, now time.Time) (uuid.UUID, error) {
	ids, err := d.client.ZRangeByScore(d.key, redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: 1,
	}).Result()
	if err != nil {
		return uuid.Nil, err
	}
	if len(ids) == 0 {
		return uuid.Nil, nil
	}

	if err := d.client.ZRem(d.key, ids[0]).Err(); err != nil {
		return uuid.Nil, err
	}

	parsed, err := uuid.Parse(ids[0])
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}
