package http_pool

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/mkhalturin/filmatch/core/internal/delivery/http/common"
	http_identity_middleware "github.com/mkhalturin/filmatch/core/internal/delivery/http/middleware/identity"
	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_cache "github.com/mkhalturin/filmatch/core/internal/usecase/cache"
	usecase_consistency "github.com/mkhalturin/filmatch/core/internal/usecase/consistency"
	usecase_room "github.com/mkhalturin/filmatch/core/internal/usecase/room"
)

type Controller struct {
	cache     *usecase_cache.Usecase
	validator *usecase_consistency.Validator
	rooms     *usecase_room.Usecase
	identity  *http_identity_middleware.Middleware
	logger    *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	cache *usecase_cache.Usecase,
	validator *usecase_consistency.Validator,
	rooms *usecase_room.Usecase,
	identity *http_identity_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		cache:     cache,
		validator: validator,
		rooms:     rooms,
		identity:  identity,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	pool := router.Group("/rooms/:room_id/pool", c.identity.IdentityRequired())
	{
		pool.GET("", c.all)
		pool.GET("/items/:index", c.item)
		pool.GET("/consistency", c.consistency)
		pool.GET("/validation", c.validation)
		pool.POST("/repair", c.repair)
	}
}

// PoolEntryDTO DTO элемента пула
type PoolEntryDTO struct {
	SequenceIndex int     `json:"sequence_index"`
	ItemID        int64   `json:"item_id"`
	Title         string  `json:"title"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	VoteAverage   float64 `json:"vote_average"`
	GenreIDs      []int   `json:"genre_ids,omitempty"`
	MediaType     string  `json:"media_type"`
}

func toEntryDTO(entry model.PoolEntry) PoolEntryDTO {
	return PoolEntryDTO{
		SequenceIndex: entry.SequenceIndex,
		ItemID:        entry.Item.ID,
		Title:         entry.Item.Title,
		Overview:      entry.Item.Overview,
		PosterPath:    entry.Item.PosterPath,
		ReleaseDate:   entry.Item.ReleaseDate,
		VoteAverage:   entry.Item.VoteAverage,
		GenreIDs:      entry.Item.GenreIDs,
		MediaType:     entry.Item.MediaType,
	}
}

// PoolResponseDTO DTO пула комнаты
type PoolResponseDTO struct {
	Entries []PoolEntryDTO `json:"entries"`
}

// All возвращает весь пул комнаты в порядке показа
// @Summary Получение пула контента
// @Tags Pool
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} PoolResponseDTO "Пул комнаты"
// @Failure 404 {object} http_common.ErrorResponse "Пул не найден"
// @Failure 409 {object} http_common.ErrorResponse "Пул еще не готов"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/{room_id}/pool [get]
func (c *Controller) all(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	entries, err := c.cache.All(ctx, roomID)
	if err != nil {
		c.respondError(ctx, "failed to read pool", err)
		return
	}

	dtos := make([]PoolEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toEntryDTO(entry))
	}

	ctx.JSON(http.StatusOK, PoolResponseDTO{Entries: dtos})
}

// Item возвращает элемент пула по порядковому индексу
// @Summary Получение элемента пула
// @Tags Pool
// @Param room_id path string true "Идентификатор комнаты"
// @Param index path int true "Порядковый индекс (0..49)"
// @Success 200 {object} PoolEntryDTO "Элемент пула"
// @Failure 400 {object} http_common.ErrorResponse "Индекс вне диапазона"
// @Failure 404 {object} http_common.ErrorResponse "Элемент не найден"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/{room_id}/pool/items/{index} [get]
func (c *Controller) item(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid index",
		})
		return
	}

	entry, err := c.cache.Item(ctx, roomID, index)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSequenceIndex) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "index out of range",
			})
			return
		}
		c.respondError(ctx, "failed to read pool entry", err)
		return
	}

	ctx.JSON(http.StatusOK, toEntryDTO(entry))
}

// ConsistencyResponseDTO DTO проверки согласованности
type ConsistencyResponseDTO struct {
	Consistent    bool   `json:"consistent"`
	CanonicalHash string `json:"canonical_hash"`
}

// Consistency проверяет, что все участники видят одинаковый пул
// @Summary Кросс-пользовательская проверка согласованности
// @Tags Pool
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} ConsistencyResponseDTO "Результат проверки"
// @Failure 404 {object} http_common.ErrorResponse "Пул не найден"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/{room_id}/pool/consistency [get]
func (c *Controller) consistency(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	members, err := c.rooms.Members(ctx, roomID)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.respondError(ctx, "failed to list members", err)
		return
	}

	result, err := c.cache.CrossUserConsistencyCheck(ctx, roomID, members)
	if err != nil {
		c.respondError(ctx, "consistency check failed", err)
		return
	}

	ctx.JSON(http.StatusOK, ConsistencyResponseDTO{
		Consistent:    result.Consistent,
		CanonicalHash: result.CanonicalHash,
	})
}

// ValidationResponseDTO DTO диагностики пула
type ValidationResponseDTO struct {
	Verdict            string `json:"verdict"`
	Found              int    `json:"found"`
	Expected           int    `json:"expected"`
	FirstMismatchIndex int    `json:"first_mismatch_index"`
}

// Validation возвращает диагностический вердикт по пулу
// @Summary Валидация пула
// @Tags Pool
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} ValidationResponseDTO "Вердикт"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/{room_id}/pool/validation [get]
func (c *Controller) validation(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	report, err := c.validator.Validate(ctx, roomID)
	if err != nil {
		c.respondError(ctx, "pool validation failed", err)
		return
	}

	ctx.JSON(http.StatusOK, ValidationResponseDTO{
		Verdict:            string(report.Verdict),
		Found:              report.Found,
		Expected:           report.Expected,
		FirstMismatchIndex: report.FirstMismatchIndex,
	})
}

// RepairResponseDTO DTO рекомендации по восстановлению
type RepairResponseDTO struct {
	Action   string `json:"action"`
	Found    int    `json:"found"`
	Expected int    `json:"expected"`
}

// Repair классифицирует повреждение пула, ничего не изменяя
// @Summary Диагностика восстановления пула
// @Description Возвращает рекомендованное действие; сам пул не модифицируется
// @Tags Pool
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} RepairResponseDTO "Рекомендация"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/{room_id}/pool/repair [post]
func (c *Controller) repair(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	report, err := c.cache.Repair(ctx, roomID)
	if err != nil {
		c.respondError(ctx, "pool repair diagnostic failed", err)
		return
	}

	ctx.JSON(http.StatusOK, RepairResponseDTO{
		Action:   report.Action,
		Found:    report.Found,
		Expected: report.Expected,
	})
}

func (c *Controller) parseRoomID(ctx *gin.Context) (uuid.UUID, bool) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid room id",
		})
		return uuid.Nil, false
	}
	return roomID, true
}

func (c *Controller) respondError(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, slog.String("error", err.Error()))
	switch {
	case errors.Is(err, usecase_cache.ErrCacheNotFound),
		errors.Is(err, usecase_cache.ErrEntryNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_cache.ErrCacheNotReady):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "pool is not ready yet",
		})
	case errors.Is(err, usecase_cache.ErrUnavailable), errors.Is(err, usecase_room.ErrUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
			Message: "unavailable",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
