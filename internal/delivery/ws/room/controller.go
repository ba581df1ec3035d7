package ws_room

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	http_common "github.com/mkhalturin/filmatch/core/internal/delivery/http/common"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

type Controller struct {
	hub    *Hub
	logger *slog.Logger
}

func NewController(hub *Hub) *Controller {
	return &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rooms/:room_id/ws", c.connect)
}

// connect upgrades the request and subscribes the caller to room events.
// The token travels as a query param because browsers cannot set headers
// on websocket handshakes.
func (c *Controller) connect(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid room id",
		})
		return
	}

	userID, err := uuid.Parse(ctx.Query("token"))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "missing or malformed token",
		})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed",
			slog.String("room_id", roomID.String()),
			slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:    c.hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		roomID: roomID,
		userID: userID,
	}

	c.hub.register(client)
	go c.hub.startClientWriting(client)
	go c.hub.startClientReading(client)
}
