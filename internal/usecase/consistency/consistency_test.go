package usecase_consistency

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_cache "github.com/mkhalturin/filmatch/core/internal/usecase/cache"
	reader_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/consistency/mocks/consistency/reader"
)

type ValidatorUnitSuite struct {
	suite.Suite

	validator *Validator
	reader    *reader_mocks.CacheReader

	ctx context.Context
}

func completePool() []model.PoolEntry {
	entries := make([]model.PoolEntry, 0, model.PoolSize)
	for i := 0; i < model.PoolSize; i++ {
		entries = append(entries, model.PoolEntry{
			SequenceIndex: i,
			Item:          model.ContentItem{ID: int64(100 + i)},
		})
	}
	return entries
}

func readyMetadata(roomID uuid.UUID) model.CacheMetadata {
	return model.CacheMetadata{
		RoomID:        roomID,
		TotalItems:    model.PoolSize,
		CacheComplete: true,
		Status:        model.CacheCompleted,
	}
}

func (s *ValidatorUnitSuite) BeforeEach(t provider.T) {
	s.reader = reader_mocks.NewCacheReader(t)
	s.validator = New(s.reader)
	s.ctx = context.Background()
}

func (s *ValidatorUnitSuite) TestValidate(t provider.T) {
	t.Run("Should pass a complete ordered pool", func(t provider.T) {
		roomID := uuid.New()

		s.reader.On("Metadata", s.ctx, roomID).Return(readyMetadata(roomID), nil).Once()
		s.reader.On("Entries", s.ctx, roomID).Return(completePool(), nil).Once()

		report, err := s.validator.Validate(s.ctx, roomID)

		assert.NoError(t, err)
		assert.Equal(t, VerdictConsistent, report.Verdict)
		assert.Equal(t, model.PoolSize, report.Found)
		assert.Equal(t, -1, report.FirstMismatchIndex)
	})

	t.Run("Should report a missing cache without failing", func(t provider.T) {
		roomID := uuid.New()

		s.reader.On("Metadata", s.ctx, roomID).
			Return(model.CacheMetadata{}, usecase_cache.ErrCacheNotFound).Once()

		report, err := s.validator.Validate(s.ctx, roomID)

		assert.NoError(t, err)
		assert.Equal(t, VerdictCacheNotFound, report.Verdict)
	})

	t.Run("Should report a cache still loading", func(t provider.T) {
		roomID := uuid.New()
		meta := readyMetadata(roomID)
		meta.CacheComplete = false
		meta.Status = model.CacheLoading

		s.reader.On("Metadata", s.ctx, roomID).Return(meta, nil).Once()

		report, err := s.validator.Validate(s.ctx, roomID)

		assert.NoError(t, err)
		assert.Equal(t, VerdictCacheNotReady, report.Verdict)
	})

	t.Run("Should locate the first sequence gap", func(t provider.T) {
		roomID := uuid.New()
		entries := completePool()
		entries[30].SequenceIndex = 77

		s.reader.On("Metadata", s.ctx, roomID).Return(readyMetadata(roomID), nil).Once()
		s.reader.On("Entries", s.ctx, roomID).Return(entries, nil).Once()

		report, err := s.validator.Validate(s.ctx, roomID)

		assert.NoError(t, err)
		assert.Equal(t, VerdictSequenceRepair, report.Verdict)
		assert.Equal(t, 30, report.FirstMismatchIndex)
	})

	t.Run("Should flag a short pool", func(t provider.T) {
		roomID := uuid.New()

		s.reader.On("Metadata", s.ctx, roomID).Return(readyMetadata(roomID), nil).Once()
		s.reader.On("Entries", s.ctx, roomID).Return(completePool()[:48], nil).Once()

		report, err := s.validator.Validate(s.ctx, roomID)

		assert.NoError(t, err)
		assert.Equal(t, VerdictSequenceRepair, report.Verdict)
		assert.Equal(t, 48, report.Found)
		assert.Equal(t, 48, report.FirstMismatchIndex)
	})
}

func TestValidatorUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ValidatorUnitSuite))
}
