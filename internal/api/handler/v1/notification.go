package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sanisamoj/Borai-sub000/internal/api/handler/v1/response"
)

type NotificationHub interface {
	Serve(conn *websocket.Conn, userID uuid.UUID)
}

type NotificationHandler struct {
	hub      NotificationHub
	upgrader websocket.Upgrader
}

// NewNotificationHandler accepts upgrades from allowedOrigins. An empty list
// or a "*" entry accepts any origin.
func NewNotificationHandler(hub NotificationHub, allowedOrigins []string) *NotificationHandler {
	return &NotificationHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// HandleNotifications godoc
// @Summary      Subscribe to real-time notifications
// @Description  Upgrades to a websocket that receives follow, reply and insignia notifications for the caller. Browsers may pass the token in the token query parameter.
// @Tags         notifications
// @Param        token  query     string  false  "bearer token"
// @Success      101    {string}  string  "Switching Protocols"
// @Failure      401    {object}  response.Err
// @Router       /notifications/ws [get]
// @Security BearerAuth
func (h *NotificationHandler) HandleNotifications(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		zap.L().Warn("websocket upgrade failed", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}

	h.hub.Serve(conn, userID)
}
