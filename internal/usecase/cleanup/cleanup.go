package usecase_cleanup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	usecase_cache "github.com/mkhalturin/filmatch/core/internal/usecase/cache"
)

var ErrInternal = errors.New("internal error")

//go:generate mockery --name=CleanupSet --output=./mocks/cleanup/set --filename=set.go
type CleanupSet interface {
	Add(ctx context.Context, roomID uuid.UUID, readyAt time.Time) error
	RemoveDue(ctx context.Context, now time.Time) (uuid.UUID, error)
}

//go:generate mockery --name=CacheJanitor --output=./mocks/cleanup/janitor --filename=janitor.go
type CacheJanitor interface {
	MarkCleanup(ctx context.Context, roomID uuid.UUID) error
	Purge(ctx context.Context, roomID uuid.UUID) error
}

// Scheduler queues terminal rooms for cache reclamation and sweeps the
// queue in the background. A queued room becomes due only after the grace
// period, so late voters keep resolving the standing result; TTLs already
// bound every key's lifetime and stay the backstop.
type Scheduler struct {
	set     CleanupSet
	janitor CacheJanitor
	grace   time.Duration
	logger  *slog.Logger
}

type SchedulerOption func(*Scheduler)

func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func WithGrace(grace time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.grace = grace
	}
}

func New(set CleanupSet, janitor CacheJanitor, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		set:     set,
		janitor: janitor,
		grace:   usecase_cache.CleanupGrace,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule marks the room's cache for reclamation and enqueues it with a
// ready-at deadline one grace period out. Both writes are best-effort from
// the caller's perspective, but a failure here is still reported so the
// caller can log it.
func (s *Scheduler) Schedule(ctx context.Context, roomID uuid.UUID) error {
	if err := s.janitor.MarkCleanup(ctx, roomID); err != nil {
		return errors.Join(ErrInternal, err)
	}
	if err := s.set.Add(ctx, roomID, time.Now().Add(s.grace)); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Run sweeps the queue until the context is cancelled. Each tick drains
// whatever is due; an empty pop ends the drain.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.drain(ctx)
		}
	}
}

func (s *Scheduler) drain(ctx context.Context) {
	for {
		roomID, err := s.set.RemoveDue(ctx, time.Now())
		if err != nil {
			s.logger.Warn("cleanup queue pop failed", slog.String("error", err.Error()))
			return
		}
		if roomID == uuid.Nil {
			return
		}

		if err := s.janitor.Purge(ctx, roomID); err != nil {
			s.logger.Warn("cache purge failed",
				slog.String("room_id", roomID.String()),
				slog.String("error", err.Error()))
			continue
		}

		s.logger.Info("room cache reclaimed", slog.String("room_id", roomID.String()))
	}
}
