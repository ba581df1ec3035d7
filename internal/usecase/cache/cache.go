package usecase_cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mkhalturin/filmatch/core/internal/model"
	"github.com/mkhalturin/filmatch/core/pkg/retry"
)

var (
	ErrCacheNotFound         = errors.New("cache not found")
	ErrCacheNotReady         = errors.New("cache not ready")
	ErrEntryNotFound         = errors.New("cache entry not found")
	ErrSequenceInconsistency = errors.New("sequence inconsistency")
	ErrUnavailable           = errors.New("temporarily unavailable")
	ErrInternal              = errors.New("internal error")
)

// CleanupGrace is how long a terminal room's cache stays readable before it
// may be reclaimed. Late voters still resolve the standing result inside
// this window.
const CleanupGrace = 24 * time.Hour

//go:generate mockery --name=CacheRepository --output=./mocks/cache/repository --filename=repository.go
type CacheRepository interface {
	StoreMetadata(ctx context.Context, meta model.CacheMetadata, ttl time.Duration) error
	Metadata(ctx context.Context, roomID uuid.UUID) (model.CacheMetadata, error)
	StoreEntries(ctx context.Context, roomID uuid.UUID, entries []model.PoolEntry, ttl time.Duration) error
	Entry(ctx context.Context, roomID uuid.UUID, index int) (model.PoolEntry, error)
	Entries(ctx context.Context, roomID uuid.UUID) ([]model.PoolEntry, error)
	Purge(ctx context.Context, roomID uuid.UUID) error
}

type Usecase struct {
	repository CacheRepository
	ttl        time.Duration
	retrier    retry.Policy
	logger     *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithRetryPolicy(p retry.Policy) UsecaseOption {
	return func(u *Usecase) {
		u.retrier = p
	}
}

func New(repository CacheRepository, ttl time.Duration, opts ...UsecaseOption) *Usecase {
	u := &Usecase{
		repository: repository,
		ttl:        ttl,
		retrier:    retry.DefaultStorePolicy(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// StorePool persists the pool all-or-nothing from the caller's perspective:
// metadata claims completeness only after every entry write is confirmed,
// so batch boundaries are never observable.
func (u *Usecase) StorePool(ctx context.Context, roomID uuid.UUID, capacity int, criteria model.FilterCriteria, entries []model.PoolEntry) error {
	if _, _, ok := sequenceDiagnostic(entries); !ok || len(entries) != model.PoolSize {
		return fmt.Errorf("%w: refusing to store a malformed pool of %d entries", ErrInternal, len(entries))
	}

	meta := model.CacheMetadata{
		RoomID:        roomID,
		TotalItems:    len(entries),
		CacheComplete: false,
		Status:        model.CacheLoading,
		RoomCapacity:  capacity,
		Filter:        criteria,
	}
	if err := u.store(ctx, func() error {
		return u.repository.StoreMetadata(ctx, meta, u.ttl)
	}); err != nil {
		return err
	}

	if err := u.store(ctx, func() error {
		return u.repository.StoreEntries(ctx, roomID, entries, u.ttl)
	}); err != nil {
		return err
	}

	meta.CacheComplete = true
	meta.Status = model.CacheCompleted
	return u.store(ctx, func() error {
		return u.repository.StoreMetadata(ctx, meta, u.ttl)
	})
}

func (u *Usecase) Metadata(ctx context.Context, roomID uuid.UUID) (model.CacheMetadata, error) {
	meta, err := u.repository.Metadata(ctx, roomID)
	if err != nil {
		return model.CacheMetadata{}, u.mapErr(err)
	}
	return meta, nil
}

// Item rejects out-of-range indices before any storage access; the range
// check happens in the repository layer ahead of the key lookup.
func (u *Usecase) Item(ctx context.Context, roomID uuid.UUID, index int) (model.PoolEntry, error) {
	var entry model.PoolEntry
	err := u.retrier.Do(ctx, func() error {
		var opErr error
		entry, opErr = u.repository.Entry(ctx, roomID, index)
		return opErr
	})
	if err != nil {
		return model.PoolEntry{}, u.mapErr(err)
	}
	return entry, nil
}

// All returns the pool sorted by sequence index. Once metadata claims
// completeness, gaps, duplicates or a short count are a sequence
// inconsistency, never silently tolerated.
func (u *Usecase) All(ctx context.Context, roomID uuid.UUID) ([]model.PoolEntry, error) {
	meta, err := u.repository.Metadata(ctx, roomID)
	if err != nil {
		return nil, u.mapErr(err)
	}
	if !meta.CacheComplete || meta.Status != model.CacheCompleted {
		return nil, ErrCacheNotReady
	}

	entries, err := u.repository.Entries(ctx, roomID)
	if err != nil {
		return nil, u.mapErr(err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SequenceIndex < entries[j].SequenceIndex
	})

	if found, first, ok := sequenceDiagnostic(entries); !ok {
		return nil, fmt.Errorf("%w: found %d of %d entries, first mismatch at index %d",
			ErrSequenceInconsistency, found, model.PoolSize, first)
	}

	return entries, nil
}

// CanonicalHash is a stable digest of the sequence-sorted pool. Every
// member resolving the same hash is the guarantee that all of them see the
// same 50 items in the same order.
func (u *Usecase) CanonicalHash(ctx context.Context, roomID uuid.UUID) (string, error) {
	entries, err := u.All(ctx, roomID)
	if err != nil {
		return "", err
	}
	return HashEntries(entries), nil
}

func HashEntries(entries []model.PoolEntry) string {
	h := sha256.New()
	for _, e := range entries {
		fmt.Fprintf(h, "%d:%d;", e.SequenceIndex, e.Item.ID)
	}
	return hex.EncodeToString(h.Sum(nil))
}

type ConsistencyResult struct {
	Consistent    bool
	CanonicalHash string
}

// CrossUserConsistencyCheck asserts every member sees the same pool. The
// pool is shared and caller-independent, so one canonical resolution plus a
// single verifying re-read covers all members; any disagreement between the
// two reads means storage corruption, not a legitimate divergence.
func (u *Usecase) CrossUserConsistencyCheck(ctx context.Context, roomID uuid.UUID, _ []uuid.UUID) (ConsistencyResult, error) {
	canonical, err := u.CanonicalHash(ctx, roomID)
	if err != nil {
		return ConsistencyResult{}, err
	}

	verify, err := u.CanonicalHash(ctx, roomID)
	if err != nil {
		return ConsistencyResult{}, err
	}

	return ConsistencyResult{Consistent: verify == canonical, CanonicalHash: canonical}, nil
}

type RepairAction = string

const (
	RepairNone          RepairAction = "NO_ACTION_NEEDED"
	RepairRecreate      RepairAction = "RECREATE_CACHE"
	RepairCountMismatch RepairAction = "COUNT_MISMATCH"
	RepairSequence      RepairAction = "SEQUENCE_INDEX_REPAIR_NEEDED"
)

type RepairReport struct {
	Action   RepairAction
	Found    int
	Expected int
}

// Repair classifies the fault and nothing more. Mutating the cache is an
// explicit rebuild decision that stays with the caller.
func (u *Usecase) Repair(ctx context.Context, roomID uuid.UUID) (RepairReport, error) {
	entries, err := u.repository.Entries(ctx, roomID)
	if err != nil {
		return RepairReport{}, u.mapErr(err)
	}

	report := RepairReport{Found: len(entries), Expected: model.PoolSize}

	switch {
	case len(entries) == 0:
		report.Action = RepairRecreate
	case len(entries) != model.PoolSize:
		report.Action = RepairCountMismatch
	default:
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].SequenceIndex < entries[j].SequenceIndex
		})
		if _, _, ok := sequenceDiagnostic(entries); !ok {
			report.Action = RepairSequence
		} else {
			report.Action = RepairNone
		}
	}

	return report, nil
}

// MarkCleanup moves a terminal room's cache into its reclamation grace
// period. Best-effort by contract; callers log and move on.
func (u *Usecase) MarkCleanup(ctx context.Context, roomID uuid.UUID) error {
	meta, err := u.repository.Metadata(ctx, roomID)
	if err != nil {
		return u.mapErr(err)
	}

	meta.Status = model.CacheCleanup
	if err := u.repository.StoreMetadata(ctx, meta, CleanupGrace); err != nil {
		return u.mapErr(err)
	}
	return nil
}

// Purge drops the room's metadata and every entry key.
func (u *Usecase) Purge(ctx context.Context, roomID uuid.UUID) error {
	if err := u.repository.Purge(ctx, roomID); err != nil {
		return u.mapErr(err)
	}
	return nil
}

func (u *Usecase) store(ctx context.Context, op func() error) error {
	if err := u.retrier.Do(ctx, op); err != nil {
		return u.mapErr(err)
	}
	return nil
}

// mapErr hides exhausted transient failures behind a generic unavailable
// error; business sentinels pass through verbatim.
func (u *Usecase) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case retry.IsTransient(err):
		return errors.Join(ErrUnavailable, err)
	case errors.Is(err, ErrCacheNotFound),
		errors.Is(err, ErrEntryNotFound),
		errors.Is(err, model.ErrInvalidSequenceIndex):
		return err
	default:
		return errors.Join(ErrInternal, err)
	}
}

// sequenceDiagnostic checks the sorted entries form exactly {0..PoolSize-1}.
// Returns the found count, the first mismatching index and overall validity.
func sequenceDiagnostic(entries []model.PoolEntry) (found int, firstMismatch int, ok bool) {
	found = len(entries)
	for i, e := range entries {
		if e.SequenceIndex != i {
			return found, i, false
		}
	}
	return found, -1, len(entries) == model.PoolSize
}
