package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rahnacm97/Talentra/internal/notify"
	"github.com/rahnacm97/Talentra/internal/service"
)

type WsHandler struct {
	hub      *notify.Hub
	tokens   *service.TokenService
	upgrader websocket.Upgrader
	log      *zap.SugaredLogger
}

func NewWsHandler(hub *notify.Hub, tokens *service.TokenService, allowedOrigins []string, log *zap.SugaredLogger) *WsHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}
	return &WsHandler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
		log: log,
	}
}

// Serve upgrades the connection and registers it for push events. The token
// subject must match the requested userId, so a client can only subscribe to
// its own events.
func (h *WsHandler) Serve(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	token := c.Query("token")
	if token == "" {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	payload, err := h.tokens.VerifyAccessToken(token)
	if err != nil || payload.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	h.hub.Connect(userID, conn)
	defer h.hub.Disconnect(userID, conn)

	// Drain incoming frames until the client goes away. Events only flow
	// server to client.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
