package usecase_consistency

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_cache "github.com/mkhalturin/filmatch/core/internal/usecase/cache"
)

var ErrInternal = errors.New("internal error")

type Verdict string

const (
	VerdictConsistent     Verdict = "CONSISTENT"
	VerdictCacheNotFound  Verdict = "CACHE_NOT_FOUND"
	VerdictCacheNotReady  Verdict = "CACHE_NOT_READY"
	VerdictSequenceRepair Verdict = "SEQUENCE_REPAIR_NEEDED"
)

type Report struct {
	Verdict            Verdict
	Found              int
	Expected           int
	FirstMismatchIndex int
}

//go:generate mockery --name=CacheReader --output=./mocks/consistency/reader --filename=reader.go
type CacheReader interface {
	Metadata(ctx context.Context, roomID uuid.UUID) (model.CacheMetadata, error)
	Entries(ctx context.Context, roomID uuid.UUID) ([]model.PoolEntry, error)
}

// Validator is a read-only diagnostic over a room's pool cache. It reports
// what it found and never writes, whatever the verdict.
type Validator struct {
	reader CacheReader
	logger *slog.Logger
}

type ValidatorOption func(*Validator)

func WithLogger(logger *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		v.logger = logger
	}
}

func New(reader CacheReader, opts ...ValidatorOption) *Validator {
	v := &Validator{
		reader: reader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) Validate(ctx context.Context, roomID uuid.UUID) (Report, error) {
	report := Report{Expected: model.PoolSize, FirstMismatchIndex: -1}

	meta, err := v.reader.Metadata(ctx, roomID)
	if err != nil {
		if errors.Is(err, usecase_cache.ErrCacheNotFound) {
			report.Verdict = VerdictCacheNotFound
			return report, nil
		}
		return Report{}, errors.Join(ErrInternal, err)
	}

	if !meta.CacheComplete || meta.Status != model.CacheCompleted {
		report.Verdict = VerdictCacheNotReady
		return report, nil
	}

	start := time.Now()
	entries, err := v.reader.Entries(ctx, roomID)
	if err != nil {
		return Report{}, errors.Join(ErrInternal, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SequenceIndex < entries[j].SequenceIndex
	})

	report.Found = len(entries)
	for i, e := range entries {
		if e.SequenceIndex != i {
			report.Verdict = VerdictSequenceRepair
			report.FirstMismatchIndex = i
			break
		}
	}
	if report.Verdict == "" {
		if len(entries) != model.PoolSize {
			report.Verdict = VerdictSequenceRepair
			report.FirstMismatchIndex = len(entries)
		} else {
			report.Verdict = VerdictConsistent
		}
	}

	if report.Verdict != VerdictConsistent {
		v.logger.Warn("pool cache failed validation",
			slog.String("room_id", roomID.String()),
			slog.String("verdict", string(report.Verdict)),
			slog.Int("found", report.Found),
			slog.Duration("took", time.Since(start)))
	}

	return report, nil
}
