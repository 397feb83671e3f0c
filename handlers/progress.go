package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"ytmp3/websocket"
)

// ProgressHandler handles WebSocket connections for the progress channel
type ProgressHandler struct {
	hub websocket.Hub
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(hub websocket.Hub) *ProgressHandler {
	return &ProgressHandler{hub: hub}
}

// HandleConnection upgrades the request and starts the client pumps. Group
// membership is established by the client's subscribe command; disconnects
// unsubscribe through the read pump's lifecycle hook.
func (h *ProgressHandler) HandleConnection(c *gin.Context) {
	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn)
	client.StartPumps()
}
