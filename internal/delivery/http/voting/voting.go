package http_voting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/mkhalturin/filmatch/core/internal/delivery/http/common"
	http_identity_middleware "github.com/mkhalturin/filmatch/core/internal/delivery/http/middleware/identity"
	"github.com/mkhalturin/filmatch/core/internal/model"
	usecase_vote "github.com/mkhalturin/filmatch/core/internal/usecase/vote"
)

type Controller struct {
	engine   *usecase_vote.Engine
	identity *http_identity_middleware.Middleware
	logger   *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(engine *usecase_vote.Engine, identity *http_identity_middleware.Middleware, opts ...ControllerOption) *Controller {
	c := &Controller{
		engine:   engine,
		identity: identity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	voting := router.Group("/rooms/:room_id/voting", c.identity.IdentityRequired())
	voting.POST("/votes", c.vote)
}

// VoteRequestDTO DTO голоса
type VoteRequestDTO struct {
	ItemID   int64  `json:"item_id" binding:"required" example:"550"`
	VoteType string `json:"vote_type" binding:"required" example:"LIKE" enums:"LIKE,DISLIKE"`
}

// MatchedItemDTO DTO совпавшего элемента
type MatchedItemDTO struct {
	ItemID      int64   `json:"item_id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average"`
}

// VoteResponseDTO DTO результата голоса
type VoteResponseDTO struct {
	RoomStatus string          `json:"room_status"`
	LikeCount  int             `json:"like_count"`
	Matched    *MatchedItemDTO `json:"matched,omitempty"`
}

// Vote регистрирует голос и двигает машину состояний комнаты
// @Summary Голосование за элемент пула
// @Description Регистрирует голос; N-й лайк по одному элементу переводит комнату в MATCHED
// @Tags Voting
// @Accept json
// @Produce json
// @Param room_id path string true "Идентификатор комнаты"
// @Param request body VoteRequestDTO true "Голос"
// @Success 200 {object} VoteResponseDTO "Голос учтен"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} http_common.ErrorResponse "Пользователь не является участником комнаты"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 409 {object} http_common.ErrorResponse "Повторный голос или комната закрыта"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/{room_id}/voting/votes [post]
func (c *Controller) vote(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid room id",
		})
		return
	}

	userID, ok := http_identity_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "unauthorized",
		})
		return
	}

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}
	if req.VoteType != model.VoteLike && req.VoteType != model.VoteDislike {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "vote_type must be LIKE or DISLIKE",
		})
		return
	}

	outcome, err := c.engine.Vote(ctx, roomID, userID, req.ItemID, req.VoteType)
	if err != nil {
		c.respondError(ctx, roomID, err)
		return
	}

	resp := VoteResponseDTO{
		RoomStatus: outcome.RoomStatus,
		LikeCount:  outcome.LikeCount,
	}
	if outcome.Matched != nil {
		resp.Matched = &MatchedItemDTO{
			ItemID:      outcome.Matched.ID,
			Title:       outcome.Matched.Title,
			PosterPath:  outcome.Matched.PosterPath,
			VoteAverage: outcome.Matched.VoteAverage,
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) respondError(ctx *gin.Context, roomID uuid.UUID, err error) {
	c.logger.Error("failed to process vote",
		slog.String("room_id", roomID.String()),
		slog.String("error", err.Error()))

	switch {
	case errors.Is(err, usecase_vote.ErrDuplicateVote):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "vote already recorded for this item",
		})
	case errors.Is(err, usecase_vote.ErrRoomNotVotable):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "room is not accepting votes",
		})
	case errors.Is(err, usecase_vote.ErrNotAMember):
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "user is not a participant of this room",
		})
	case errors.Is(err, usecase_vote.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_vote.ErrUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
			Message: "unavailable",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
