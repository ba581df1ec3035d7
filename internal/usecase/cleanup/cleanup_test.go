package usecase_cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	janitor_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/cleanup/mocks/cleanup/janitor"
	set_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/cleanup/mocks/cleanup/set"
)

type SchedulerUnitSuite struct {
	suite.Suite

	scheduler *Scheduler
	set       *set_mocks.CleanupSet
	janitor   *janitor_mocks.CacheJanitor

	ctx context.Context
}

func (s *SchedulerUnitSuite) BeforeEach(t provider.T) {
	s.set = set_mocks.NewCleanupSet(t)
	s.janitor = janitor_mocks.NewCacheJanitor(t)
	s.scheduler = New(s.set, s.janitor)
	s.ctx = context.Background()
}

func (s *SchedulerUnitSuite) TestSchedule(t provider.T) {
	t.Run("Should mark the cache and enqueue one grace period out", func(t provider.T) {
		roomID := uuid.New()
		earliest := time.Now().Add(s.scheduler.grace - time.Minute)

		s.janitor.On("MarkCleanup", s.ctx, roomID).Return(nil).Once()
		s.set.On("Add", s.ctx, roomID, mock.MatchedBy(func(readyAt time.Time) bool {
			return readyAt.After(earliest)
		})).Return(nil).Once()

		err := s.scheduler.Schedule(s.ctx, roomID)

		assert.NoError(t, err)
	})

	t.Run("Should not enqueue when marking fails", func(t provider.T) {
		roomID := uuid.New()

		s.janitor.On("MarkCleanup", s.ctx, roomID).
			Return(errors.New("store gone")).Once()

		err := s.scheduler.Schedule(s.ctx, roomID)

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("Should surface enqueue failures", func(t provider.T) {
		roomID := uuid.New()

		s.janitor.On("MarkCleanup", s.ctx, roomID).Return(nil).Once()
		s.set.On("Add", s.ctx, roomID, mock.AnythingOfType("time.Time")).
			Return(errors.New("store gone")).Once()

		err := s.scheduler.Schedule(s.ctx, roomID)

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func (s *SchedulerUnitSuite) TestDrain(t provider.T) {
	t.Run("Should purge every due room until the queue is empty", func(t provider.T) {
		first, second := uuid.New(), uuid.New()

		s.set.On("RemoveDue", s.ctx, mock.AnythingOfType("time.Time")).Return(first, nil).Once()
		s.set.On("RemoveDue", s.ctx, mock.AnythingOfType("time.Time")).Return(second, nil).Once()
		s.set.On("RemoveDue", s.ctx, mock.AnythingOfType("time.Time")).Return(uuid.Nil, nil).Once()
		s.janitor.On("Purge", s.ctx, first).Return(nil).Once()
		s.janitor.On("Purge", s.ctx, second).Return(nil).Once()

		s.scheduler.drain(s.ctx)
	})

	t.Run("Should keep draining past a failed purge", func(t provider.T) {
		first, second := uuid.New(), uuid.New()

		s.set.On("RemoveDue", s.ctx, mock.AnythingOfType("time.Time")).Return(first, nil).Once()
		s.set.On("RemoveDue", s.ctx, mock.AnythingOfType("time.Time")).Return(second, nil).Once()
		s.set.On("RemoveDue", s.ctx, mock.AnythingOfType("time.Time")).Return(uuid.Nil, nil).Once()
		s.janitor.On("Purge", s.ctx, first).Return(errors.New("timeout")).Once()
		s.janitor.On("Purge", s.ctx, second).Return(nil).Once()

		s.scheduler.drain(s.ctx)
	})

	t.Run("Should stop the drain on a queue error", func(t provider.T) {
		s.set.On("RemoveDue", s.ctx, mock.AnythingOfType("time.Time")).
			Return(uuid.Nil, errors.New("conn reset")).Once()

		s.scheduler.drain(s.ctx)
	})
}

// queuedRoom and memoryQueue give the grace tests a real deadline-honoring
// queue instead of canned mock returns.
type queuedRoom struct {
	roomID  uuid.UUID
	readyAt time.Time
}

type memoryQueue struct {
	entries []queuedRoom
}

func (q *memoryQueue) Add(_ context.Context, roomID uuid.UUID, readyAt time.Time) error {
	q.entries = append(q.entries, queuedRoom{roomID: roomID, readyAt: readyAt})
	return nil
}

func (q *memoryQueue) RemoveDue(_ context.Context, now time.Time) (uuid.UUID, error) {
	for i, entry := range q.entries {
		if !entry.readyAt.After(now) {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return entry.roomID, nil
		}
	}
	return uuid.Nil, nil
}

func (s *SchedulerUnitSuite) TestGracePeriod(t provider.T) {
	t.Run("Should keep a freshly scheduled room past the first sweep", func(t provider.T) {
		roomID := uuid.New()
		queue := &memoryQueue{}
		scheduler := New(queue, s.janitor)

		s.janitor.On("MarkCleanup", s.ctx, roomID).Return(nil).Once()

		assert.NoError(t, scheduler.Schedule(s.ctx, roomID))
		scheduler.drain(s.ctx)

		// The entry is still queued and nothing was purged.
		assert.Len(t, queue.entries, 1)
		s.janitor.AssertNotCalled(t, "Purge", s.ctx, roomID)
	})

	t.Run("Should purge only after the grace deadline passes", func(t provider.T) {
		roomID := uuid.New()
		queue := &memoryQueue{}
		scheduler := New(queue, s.janitor, WithGrace(time.Hour))

		s.janitor.On("MarkCleanup", s.ctx, roomID).Return(nil).Once()
		s.janitor.On("Purge", s.ctx, roomID).Return(nil).Once()

		assert.NoError(t, scheduler.Schedule(s.ctx, roomID))
		scheduler.drain(s.ctx)
		assert.Len(t, queue.entries, 1)

		queue.entries[0].readyAt = time.Now().Add(-time.Second)
		scheduler.drain(s.ctx)

		assert.Empty(t, queue.entries)
	})
}

func TestSchedulerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(SchedulerUnitSuite))
}
