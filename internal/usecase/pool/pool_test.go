package usecase_pool

import (
	"context"
	"errors"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mkhalturin/filmatch/core/internal/model"
	source_mocks "github.com/mkhalturin/filmatch/core/internal/usecase/pool/mocks/pool/source"
)

type PoolBuilderUnitSuite struct {
	suite.Suite

	builder *Builder
	source  *source_mocks.ContentSource

	ctx context.Context
}

func movieCriteria() model.FilterCriteria {
	return model.FilterCriteria{
		MediaType: model.MediaMovie,
		GenreIDs:  []int{28},
	}
}

func makeItems(firstID int64, n int) []model.ContentItem {
	items := make([]model.ContentItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, model.ContentItem{
			ID:        firstID + int64(i),
			MediaType: model.MediaMovie,
			Title:     "title",
			Overview:  "overview",
		})
	}
	return items
}

func queryWith(mode model.GenreMode, limit int) interface{} {
	return mock.MatchedBy(func(q model.DiscoverQuery) bool {
		return q.Mode == mode && q.Limit == limit
	})
}

func (s *PoolBuilderUnitSuite) BeforeEach(t provider.T) {
	s.source = source_mocks.NewContentSource(t)
	s.builder = New(s.source)
	s.ctx = context.Background()
}

func (s *PoolBuilderUnitSuite) TestTieredBuild(t provider.T) {
	t.Run("Should fill tier targets in order", func(t provider.T) {
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAll, 15)).
			Return(makeItems(1, 15), nil).Once()
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAny, 15)).
			Return(makeItems(100, 15), nil).Once()
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAny, 20)).
			Return(makeItems(200, 20), nil).Once()

		entries, err := s.builder.BuildPool(s.ctx, movieCriteria())

		assert.NoError(t, err)
		assert.Len(t, entries, model.PoolSize)
		for i, entry := range entries {
			assert.Equal(t, i, entry.SequenceIndex)
		}
		for _, entry := range entries[:15] {
			assert.Equal(t, model.TierAllGenres, entry.Item.Tier)
		}
		for _, entry := range entries[15:30] {
			assert.Equal(t, model.TierAnyGenre, entry.Item.Tier)
		}
		for _, entry := range entries[30:] {
			assert.Equal(t, model.TierPopular, entry.Item.Tier)
		}
	})

	t.Run("Should deduplicate ids across tiers", func(t provider.T) {
		overlapping := append(makeItems(1, 15), makeItems(100, 15)...)

		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAll, 15)).
			Return(makeItems(1, 15), nil).Once()
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAny, 15)).
			Return(overlapping, nil).Once()
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAny, 20)).
			Return(makeItems(200, 20), nil).Once()

		entries, err := s.builder.BuildPool(s.ctx, movieCriteria())

		assert.NoError(t, err)
		seen := make(map[int64]struct{}, model.PoolSize)
		for _, entry := range entries {
			_, dup := seen[entry.Item.ID]
			assert.False(t, dup, "duplicate item %d in pool", entry.Item.ID)
			seen[entry.Item.ID] = struct{}{}
		}
		assert.Len(t, seen, model.PoolSize)
	})

	t.Run("Should drop items without title or overview", func(t provider.T) {
		damaged := makeItems(1, 15)
		damaged[0].Title = ""
		damaged[1].Overview = ""

		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAll, 15)).
			Return(damaged, nil).Once()
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAny, 17)).
			Return(makeItems(100, 17), nil).Once()
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAny, 20)).
			Return(makeItems(200, 20), nil).Once()

		entries, err := s.builder.BuildPool(s.ctx, movieCriteria())

		assert.NoError(t, err)
		for _, entry := range entries {
			assert.NotEmpty(t, entry.Item.Title)
			assert.NotEmpty(t, entry.Item.Overview)
		}
	})

	t.Run("Should broaden the query when genre tiers starve", func(t provider.T) {
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAll, 15)).
			Return(makeItems(1, 15), nil).Once()
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAny, 15)).
			Return([]model.ContentItem{}, nil).Once()
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAny, 35)).
			Return(makeItems(100, 20), nil).Once()
		s.source.On("Discover", s.ctx, mock.MatchedBy(func(q model.DiscoverQuery) bool {
			return len(q.GenreIDs) == 0 && q.Limit == 15
		})).Return(makeItems(300, 15), nil).Once()

		entries, err := s.builder.BuildPool(s.ctx, movieCriteria())

		assert.NoError(t, err)
		assert.Len(t, entries, model.PoolSize)
	})
}

func (s *PoolBuilderUnitSuite) TestFallbackLadder(t provider.T) {
	t.Run("Should fall back to the legacy build when the tiered one fails", func(t provider.T) {
		s.source.On("Discover", s.ctx, queryWith(model.GenreModeAll, 15)).
			Return(nil, errors.New("upstream 500")).Once()
		s.source.On("Discover", s.ctx, mock.MatchedBy(func(q model.DiscoverQuery) bool {
			return q.Mode == "" && q.Limit == model.PoolSize
		})).Return(makeItems(1, model.PoolSize), nil).Once()

		entries, err := s.builder.BuildPool(s.ctx, movieCriteria())

		assert.NoError(t, err)
		assert.Len(t, entries, model.PoolSize)
	})

	t.Run("Should serve the emergency pool when the source is down", func(t provider.T) {
		s.source.On("Discover", s.ctx, mock.AnythingOfType("model.DiscoverQuery")).
			Return(nil, errors.New("connection refused")).Twice()

		entries, err := s.builder.BuildPool(s.ctx, movieCriteria())

		assert.NoError(t, err)
		assert.Len(t, entries, model.PoolSize)
		for i, entry := range entries {
			assert.Equal(t, i, entry.SequenceIndex)
			assert.NotEmpty(t, entry.Item.Title)
		}
	})

	t.Run("Should reject criteria with too many genres", func(t provider.T) {
		criteria := movieCriteria()
		criteria.GenreIDs = []int{28, 12, 35}

		_, err := s.builder.BuildPool(s.ctx, criteria)

		assert.ErrorIs(t, err, ErrPoolGeneration)
	})
}

func (s *PoolBuilderUnitSuite) TestRemapGenres(t provider.T) {
	testCases := []struct {
		name     string
		ids      []int
		target   model.MediaType
		expected []int
	}{
		{
			name:     "Movie action maps to tv action-adventure",
			ids:      []int{28},
			target:   model.MediaTV,
			expected: []int{10759},
		},
		{
			name:     "Colliding buckets deduplicate",
			ids:      []int{28, 12},
			target:   model.MediaTV,
			expected: []int{10759},
		},
		{
			name:     "TV soap maps to movie drama",
			ids:      []int{10766},
			target:   model.MediaMovie,
			expected: []int{18},
		},
		{
			name:     "Unknown ids pass through",
			ids:      []int{35},
			target:   model.MediaTV,
			expected: []int{35},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			assert.Equal(t, tc.expected, RemapGenres(tc.ids, tc.target))
		})
	}
}

func (s *PoolBuilderUnitSuite) TestEmergencyPool(t provider.T) {
	t.Run("Should hold exactly one pool of unique viable items", func(t provider.T) {
		items := EmergencyPool()

		assert.Len(t, items, model.PoolSize)
		seen := make(map[int64]struct{}, len(items))
		for _, item := range items {
			assert.NotEmpty(t, item.Title)
			assert.NotEmpty(t, item.Overview)
			_, dup := seen[item.ID]
			assert.False(t, dup, "duplicate emergency item %d", item.ID)
			seen[item.ID] = struct{}{}
		}
	})
}

func TestPoolBuilderUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(PoolBuilderUnitSuite))
}
