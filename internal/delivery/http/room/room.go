package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/mkhalturin/filmatch/core/internal/delivery/http/common"
	http_identity_middleware "github.com/mkhalturin/filmatch/core/internal/delivery/http/middleware/identity"
	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_room "github.com/mkhalturin/filmatch/core/internal/usecase/room"
)

type Controller struct {
	usecase  *usecase_room.Usecase
	identity *http_identity_middleware.Middleware
	logger   *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(usecase *usecase_room.Usecase, identity *http_identity_middleware.Middleware, opts ...ControllerOption) *Controller {
	c := &Controller{
		usecase:  usecase,
		identity: identity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/genres", c.genres)

	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:room_id", c.room)
		rooms.GET("/:room_id/status", c.status)
		rooms.POST("/:room_id/join", c.identity.IdentityRequired(), c.join)
		rooms.PUT("/:room_id/filters", c.identity.IdentityRequired(), c.updateFilters)
	}
}

// CreateRoomRequestDTO DTO для создания комнаты
type CreateRoomRequestDTO struct {
	Name      string `json:"name"`
	Capacity  int    `json:"capacity" binding:"required" example:"2"`
	MediaType string `json:"media_type" binding:"required" example:"MOVIE" enums:"MOVIE,TV"`
	GenreIDs  []int  `json:"genre_ids" example:"28,12"`
}

// RoomResponseDTO DTO комнаты
type RoomResponseDTO struct {
	RoomID       string `json:"room_id"`
	Name         string `json:"name,omitempty"`
	Status       string `json:"status"`
	Capacity     int    `json:"capacity"`
	MediaType    string `json:"media_type"`
	GenreIDs     []int  `json:"genre_ids,omitempty"`
	ResultItemID *int64 `json:"result_item_id,omitempty"`
}

func toRoomDTO(room model.Room) RoomResponseDTO {
	return RoomResponseDTO{
		RoomID:       room.ID.String(),
		Name:         room.Name,
		Status:       room.Status,
		Capacity:     room.RequiredMembers,
		MediaType:    room.Filter.MediaType,
		GenreIDs:     room.Filter.GenreIDs,
		ResultItemID: room.ResultItemID,
	}
}

// Create создает новую комнату
// @Summary Создание комнаты
// @Description Создает комнату с фиксированной вместимостью и фильтрами, собирает пул контента
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body CreateRoomRequestDTO true "Параметры комнаты"
// @Success 201 {object} RoomResponseDTO "Комната успешно создана"
// @Header 201 {string} X-user-token "Токен владельца комнаты"
// @Failure 400 {object} http_common.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	hostID := uuid.New()

	room, err := c.usecase.Create(ctx, hostID, req.Name, req.Capacity, model.FilterCriteria{
		MediaType: req.MediaType,
		GenreIDs:  req.GenreIDs,
	})
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid room parameters",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Header("X-user-token", hostID.String())
	ctx.JSON(http.StatusCreated, toRoomDTO(room))
}

// Room возвращает состояние комнаты
// @Summary Получение комнаты
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} RoomResponseDTO "Комната"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id} [get]
func (c *Controller) room(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	room, err := c.usecase.Room(ctx, roomID)
	if err != nil {
		c.respondError(ctx, "failed to get room", err)
		return
	}

	ctx.JSON(http.StatusOK, toRoomDTO(room))
}

// StatusResponseDTO DTO статуса комнаты
type StatusResponseDTO struct {
	Status string `json:"status"`
}

// Status возвращает статус комнаты
// @Summary Получение статуса комнаты
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} StatusResponseDTO "Статус комнаты"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/status [get]
func (c *Controller) status(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	room, err := c.usecase.Room(ctx, roomID)
	if err != nil {
		c.respondError(ctx, "failed to get status", err)
		return
	}

	ctx.JSON(http.StatusOK, StatusResponseDTO{Status: room.Status})
}

// Join добавляет участника в комнату
// @Summary Вход в комнату
// @Description Добавляет участника, пока комната не заполнена; повторный вход идемпотентен
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} RoomResponseDTO "Участник в комнате"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 409 {object} http_common.ErrorResponse "Комната заполнена или закрыта"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/{room_id}/join [post]
func (c *Controller) join(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	userID, ok := http_identity_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "unauthorized",
		})
		return
	}

	room, err := c.usecase.Join(ctx, roomID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase_room.ErrRoomFull):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room is full",
			})
		case errors.Is(err, usecase_room.ErrRoomNotJoinable):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room is not joinable",
			})
		default:
			c.respondError(ctx, "failed to join room", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, toRoomDTO(room))
}

// UpdateFilters отклоняет изменение фильтров
// @Summary Изменение фильтров комнаты
// @Description Фильтры фиксируются при создании; запрос всегда отклоняется
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Failure 409 {object} http_common.ErrorResponse "Фильтры неизменяемы"
// @Security UserToken
// @Router /rooms/{room_id}/filters [put]
func (c *Controller) updateFilters(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	err := c.usecase.UpdateFilters(ctx, roomID, model.FilterCriteria{})
	if errors.Is(err, usecase_room.ErrFiltersImmutable) {
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "filters are immutable after room creation",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GenresResponseDTO DTO списка жанров
type GenresResponseDTO struct {
	Genres []model.Genre `json:"genres"`
}

// Genres возвращает справочник жанров
// @Summary Список жанров
// @Tags Rooms
// @Param media_type query string false "Тип контента" enums:"MOVIE,TV"
// @Success 200 {object} GenresResponseDTO "Жанры"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /genres [get]
func (c *Controller) genres(ctx *gin.Context) {
	mediaType := ctx.DefaultQuery("media_type", model.MediaMovie)
	if mediaType != model.MediaMovie && mediaType != model.MediaTV {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "unknown media type",
		})
		return
	}

	genres, err := c.usecase.Genres(ctx, mediaType)
	if err != nil {
		c.respondError(ctx, "failed to list genres", err)
		return
	}

	ctx.JSON(http.StatusOK, GenresResponseDTO{Genres: genres})
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
	case errors.Is(err, usecase_room.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_room.ErrUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
			Message: "unavailable",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
