package infra_tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mkhalturin/filmatch/core/internal/config"
	"github.com/mkhalturin/filmatch/core/internal/model"
)

// Discover results come 20 per page; cap the page walk so a generous
// limit cannot turn into an unbounded crawl.
const maxPages = 5

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func New(cfg config.ContentSource) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		logger:     slog.Default(),
	}
}

type discoverResponseDTO struct {
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Results    []itemDTO `json:"results"`
}

type itemDTO struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
}

type genreListDTO struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

func mediaPath(mt model.MediaType) string {
	if mt == model.MediaTV {
		return "tv"
	}
	return "movie"
}

func (dto itemDTO) toModel(mt model.MediaType) model.ContentItem {
	title := dto.Title
	if title == "" {
		title = dto.Name
	}
	release := dto.ReleaseDate
	if release == "" {
		release = dto.FirstAirDate
	}
	return model.ContentItem{
		ID:               dto.ID,
		Title:            title,
		Overview:         dto.Overview,
		PosterPath:       dto.PosterPath,
		ReleaseDate:      release,
		VoteAverage:      dto.VoteAverage,
		GenreIDs:         dto.GenreIDs,
		OriginalLanguage: dto.OriginalLanguage,
		MediaType:        mt,
	}
}

// Discover walks result pages until the requested amount of non-excluded
// items is collected or the source runs dry.
func (c *Client) Discover(ctx context.Context, q model.DiscoverQuery) ([]model.ContentItem, error) {
	items := make([]model.ContentItem, 0, q.Limit)

	for page := 1; page <= maxPages; page++ {
		dto, err := c.discoverPage(ctx, q, page)
		if err != nil {
			return nil, err
		}

		for _, raw := range dto.Results {
			if _, excluded := q.Exclude[raw.ID]; excluded {
				continue
			}
			items = append(items, raw.toModel(q.MediaType))
			if q.Limit > 0 && len(items) >= q.Limit {
				return items, nil
			}
		}

		if dto.Page >= dto.TotalPages || len(dto.Results) == 0 {
			break
		}
	}

	return items, nil
}

func (c *Client) discoverPage(ctx context.Context, q model.DiscoverQuery, page int) (*discoverResponseDTO, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	switch q.Sort {
	case model.SortQuality:
		params.Set("sort_by", "vote_average.desc")
		// Without a vote floor the quality sort surfaces obscure items
		// with a handful of perfect scores.
		params.Set("vote_count.gte", "200")
	default:
		params.Set("sort_by", "popularity.desc")
	}

	if len(q.GenreIDs) > 0 {
		sep := "|"
		if q.Mode == model.GenreModeAll {
			sep = ","
		}
		ids := make([]string, 0, len(q.GenreIDs))
		for _, id := range q.GenreIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		params.Set("with_genres", strings.Join(ids, sep))
	}

	endpoint := fmt.Sprintf("%s/discover/%s?%s", c.baseURL, mediaPath(q.MediaType), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discover %s page %d: unexpected status %d", q.MediaType, page, resp.StatusCode)
	}

	var dto discoverResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) Genres(ctx context.Context, mt model.MediaType) ([]model.Genre, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/genre/%s/list?%s", c.baseURL, mediaPath(mt), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("genre list %s: unexpected status %d", mt, resp.StatusCode)
	}

	var dto genreListDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, err
	}

	genres := make([]model.Genre, 0, len(dto.Genres))
	for _, g := range dto.Genres {
		genres = append(genres, model.Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}
