package http_identity_middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/mkhalturin/filmatch/core/internal/delivery/http/common"
)

const (
	header     = "X-user-token"
	contextKey = "user_id"
)

type Middleware struct {
	logger *slog.Logger
}

func New() *Middleware {
	return &Middleware{
		logger: slog.Default(),
	}
}

// IdentityRequired resolves the caller's id from the X-user-token header.
// Tokens are opaque uuid strings issued on room creation or join.
func (m *Middleware) IdentityRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(header)
		if t == "" {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "no " + header + " header",
			})
			ctx.Abort()
			return
		}

		userID, err := uuid.Parse(t)
		if err != nil {
			m.logger.Error("malformed user token", slog.String("error", err.Error()))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "malformed " + header + " header",
			})
			ctx.Abort()
			return
		}

		ctx.Set(contextKey, userID)
		ctx.Next()
	}
}

// UserID reads the id the middleware stored on the request context.
func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(contextKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
