package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	ws "github.com/dverdugo/message-app/internal/websocket"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origins once the frontend host is fixed
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and wires it into the hub. An
// optional user_id query parameter identifies the peer for presence; an
// absent or malformed hint leaves the connection anonymous.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID := uuid.Nil
	if raw := c.Query("user_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			userID = id
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// OnlineUsers lists users with at least one identified live connection.
func (h *WebSocketHandler) OnlineUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"online":      h.hub.OnlineUsers(),
		"connections": h.hub.ClientCount(),
	})
}
