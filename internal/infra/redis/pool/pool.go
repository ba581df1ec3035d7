package infra_redis_pool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"

	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_cache "github.com/mkhalturin/filmatch/core/internal/usecase/cache"
	"github.com/mkhalturin/filmatch/core/pkg/retry"
)

// Writes are batched purely for throughput. Batch boundaries are never
// observable as partial completeness: metadata flips to COMPLETED only
// after every batch is confirmed.
const batchSize = 25

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

type entryDTO struct {
	SequenceIndex    int     `json:"sequence_index"`
	ItemID           int64   `json:"item_id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	MediaType        string  `json:"media_type"`
	Tier             int     `json:"tier"`
}

type metadataDTO struct {
	RoomID        string `json:"room_id"`
	TotalItems    int    `json:"total_items"`
	CacheComplete bool   `json:"cache_complete"`
	Status        string `json:"status"`
	RoomCapacity  int    `json:"room_capacity"`
	MediaType     string `json:"media_type"`
	GenreIDs      []int  `json:"genre_ids"`
}

func entryToDTO(e model.PoolEntry) entryDTO {
	return entryDTO{
		SequenceIndex:    e.SequenceIndex,
		ItemID:           e.Item.ID,
		Title:            e.Item.Title,
		Overview:         e.Item.Overview,
		PosterPath:       e.Item.PosterPath,
		ReleaseDate:      e.Item.ReleaseDate,
		VoteAverage:      e.Item.VoteAverage,
		GenreIDs:         e.Item.GenreIDs,
		OriginalLanguage: e.Item.OriginalLanguage,
		MediaType:        e.Item.MediaType,
		Tier:             e.Item.Tier,
	}
}

func (dto entryDTO) toModel() model.PoolEntry {
	return model.PoolEntry{
		SequenceIndex: dto.SequenceIndex,
		Item: model.ContentItem{
			ID:               dto.ItemID,
			Title:            dto.Title,
			Overview:         dto.Overview,
			PosterPath:       dto.PosterPath,
			ReleaseDate:      dto.ReleaseDate,
			VoteAverage:      dto.VoteAverage,
			GenreIDs:         dto.GenreIDs,
			OriginalLanguage: dto.OriginalLanguage,
			MediaType:        dto.MediaType,
			Tier:             dto.Tier,
		},
	}
}

func (d *Driver) entryKey(roomID uuid.UUID, index int) string {
	return fmt.Sprintf("%s:%s:item:%d", d.key, roomID, index)
}

func (d *Driver) metaKey(roomID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:meta", d.key, roomID)
}

func (d *Driver) StoreMetadata(ctx context.Context, meta model.CacheMetadata, ttl time.Duration) error {
	dto := metadataDTO{
		RoomID:        meta.RoomID.String(),
		TotalItems:    meta.TotalItems,
		CacheComplete: meta.CacheComplete,
		Status:        meta.Status,
		RoomCapacity:  meta.RoomCapacity,
		MediaType:     meta.Filter.MediaType,
		GenreIDs:      meta.Filter.GenreIDs,
	}
	raw, err := json.Marshal(dto)
	if err != nil {
		return err
	}

	if err := d.client.Set(d.metaKey(meta.RoomID), raw, ttl).Err(); err != nil {
		return wrapTransient(err)
	}
	return nil
}

func (d *Driver) Metadata(ctx context.Context, roomID uuid.UUID) (model.CacheMetadata, error) {
	raw, err := d.client.Get(d.metaKey(roomID)).Result()
	if err == redis.Nil {
		return model.CacheMetadata{}, usecase_cache.ErrCacheNotFound
	}
	if err != nil {
		return model.CacheMetadata{}, wrapTransient(err)
	}

	var dto metadataDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return model.CacheMetadata{}, err
	}

	id, err := uuid.Parse(dto.RoomID)
	if err != nil {
		return model.CacheMetadata{}, err
	}

	return model.CacheMetadata{
		RoomID:        id,
		TotalItems:    dto.TotalItems,
		CacheComplete: dto.CacheComplete,
		Status:        dto.Status,
		RoomCapacity:  dto.RoomCapacity,
		Filter: model.FilterCriteria{
			MediaType: dto.MediaType,
			GenreIDs:  dto.GenreIDs,
		},
	}, nil
}

// StoreEntries writes the pool in pipelined batches. Every entry carries
// its own TTL so abandoned rooms expire without a deletion pass.
func (d *Driver) StoreEntries(ctx context.Context, roomID uuid.UUID, entries []model.PoolEntry, ttl time.Duration) error {
	for start := 0; start < len(entries); start += batchSize {
		end := start + batchSize
		if end > len(entries) {
			end = len(entries)
		}

		pipe := d.client.Pipeline()
		for _, entry := range entries[start:end] {
			raw, err := json.Marshal(entryToDTO(entry))
			if err != nil {
				return err
			}
			pipe.Set(d.entryKey(roomID, entry.SequenceIndex), raw, ttl)
		}
		if _, err := pipe.Exec(); err != nil {
			return wrapTransient(err)
		}
	}
	return nil
}

// Entry validates the index range before any storage access.
func (d *Driver) Entry(ctx context.Context, roomID uuid.UUID, index int) (model.PoolEntry, error) {
	if index < 0 || index >= model.PoolSize {
		return model.PoolEntry{}, fmt.Errorf("%w: %d", model.ErrInvalidSequenceIndex, index)
	}

	raw, err := d.client.Get(d.entryKey(roomID, index)).Result()
	if err == redis.Nil {
		return model.PoolEntry{}, usecase_cache.ErrEntryNotFound
	}
	if err != nil {
		return model.PoolEntry{}, wrapTransient(err)
	}

	var dto entryDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return model.PoolEntry{}, err
	}

	return dto.toModel(), nil
}

// Entries returns whatever is present, ordered by key index. Completeness
// and sequence invariants are the caller's concern.
func (d *Driver) Entries(ctx context.Context, roomID uuid.UUID) ([]model.PoolEntry, error) {
	keys := make([]string, 0, model.PoolSize)
	for i := 0; i < model.PoolSize; i++ {
		keys = append(keys, d.entryKey(roomID, i))
	}

	values, err := d.client.MGet(keys...).Result()
	if err != nil {
		return nil, wrapTransient(err)
	}

	entries := make([]model.PoolEntry, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var dto entryDTO
		if err := json.Unmarshal([]byte(raw), &dto); err != nil {
			return nil, err
		}
		entries = append(entries, dto.toModel())
	}

	return entries, nil
}

// Purge removes the metadata and every entry key. Used only after an
// explicit rebuild decision; repair itself never mutates.
func (d *Driver) Purge(ctx context.Context, roomID uuid.UUID) error {
	keys := make([]string, 0, model.PoolSize+1)
	keys = append(keys, d.metaKey(roomID))
	for i := 0; i < model.PoolSize; i++ {
		keys = append(keys, d.entryKey(roomID, i))
	}

	if err := d.client.Del(keys...).Err(); err != nil {
		return wrapTransient(err)
	}
	return nil
}

// Anything the client reports besides a key miss is a connectivity or
// throttling condition, so it is fair game for the shared retry policy.
func wrapTransient(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(retry.ErrTransient, err)
}
