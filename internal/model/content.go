package model

import (
	"errors"
	"fmt"
)

type MediaType = string

const (
	MediaMovie MediaType = "MOVIE"
	MediaTV    MediaType = "TV"
)

// PoolSize is the fixed amount of candidate items every room is seeded with.
const PoolSize = 50

const MaxGenreFilters = 2

var ErrInvalidSequenceIndex = errors.New("sequence index out of range")

// FilterCriteria is fixed at room creation and never changes afterwards.
type FilterCriteria struct {
	MediaType MediaType
	GenreIDs  []int
}

func (f FilterCriteria) Validate() error {
	if f.MediaType != MediaMovie && f.MediaType != MediaTV {
		return fmt.Errorf("unknown media type %q", f.MediaType)
	}
	if len(f.GenreIDs) > MaxGenreFilters {
		return fmt.Errorf("at most %d genre filters allowed, got %d", MaxGenreFilters, len(f.GenreIDs))
	}
	return nil
}

// SourceTier marks which priority query produced an item.
type SourceTier = int

const (
	TierAllGenres SourceTier = 1
	TierAnyGenre  SourceTier = 2
	TierPopular   SourceTier = 3
)

type ContentItem struct {
	ID               int64
	Title            string
	Overview         string
	PosterPath       string
	ReleaseDate      string
	VoteAverage      float64
	GenreIDs         []int
	OriginalLanguage string
	MediaType        MediaType
	Tier             SourceTier
}

// PoolEntry is one position of a room's immutable sequence.
type PoolEntry struct {
	SequenceIndex int
	Item          ContentItem
}

// NewPoolEntry validates the index range at the boundary so malformed
// records never reach storage.
func NewPoolEntry(index int, item ContentItem) (PoolEntry, error) {
	if index < 0 || index >= PoolSize {
		return PoolEntry{}, fmt.Errorf("%w: %d", ErrInvalidSequenceIndex, index)
	}
	return PoolEntry{SequenceIndex: index, Item: item}, nil
}

type Genre struct {
	ID   int
	Name string
}

type GenreMode = string

const (
	GenreModeAll GenreMode = "ALL"
	GenreModeAny GenreMode = "ANY"
)

type SortMode = string

const (
	SortQuality    SortMode = "QUALITY"
	SortPopularity SortMode = "POPULARITY"
)

// DiscoverQuery is the contract with the content source adapter. Exclude
// carries ids already selected so tiers never produce duplicates.
type DiscoverQuery struct {
	MediaType MediaType
	GenreIDs  []int
	Mode      GenreMode
	Sort      SortMode
	Exclude   map[int64]struct{}
	Limit     int
}
