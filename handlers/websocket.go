package handlers

import (
	"net/http"
	"time"

	"social-server/handlers/middleware"
	"social-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
)

// WSHandler pushes events to authenticated users over websockets.
type WSHandler struct {
	mgr      *ws.Manager
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler accepts any origin when allowOrigin is nil.
func NewWSHandler(mgr *ws.Manager, allowOrigin func(r *http.Request) bool, log *zap.Logger) *WSHandler {
	if allowOrigin == nil {
		allowOrigin = func(r *http.Request) bool { return true }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		mgr:      mgr,
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
	}
}

// Handle upgrades GET /ws. The connection is push only; incoming frames are
// read so that control frames are processed.
func (h *WSHandler) Handle(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := h.mgr.Register(userID, conn)
	h.log.Info("websocket connected", zap.String("user_id", userID))

	done := make(chan struct{})
	defer func() {
		close(done)
		h.mgr.Unregister(client)
		h.log.Info("websocket disconnected", zap.String("user_id", userID))
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go h.keepAlive(client, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read error", zap.String("user_id", userID), zap.Error(err))
			}
			return
		}
	}
}

func (h *WSHandler) keepAlive(client *ws.Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := client.Ping(); err != nil {
				return
			}
		}
	}
}

// Connected handles GET /ws/connected
func (h *WSHandler) Connected(c *gin.Context) {
	users := h.mgr.List()
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}
