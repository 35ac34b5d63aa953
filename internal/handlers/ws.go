package handlers

import (
	"log"
	"net/http"

	"github.com/czhengjuarez/FireDrill/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      WebSocket stream of session updates
// @Description  Pushes session snapshots as they change; polling still works without it
// @Tags         websocket
// @Param        code path string true "Session code"
// @Router       /ws/session/{code} [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session code"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(code, conn)
	defer h.hub.RemoveConnection(code, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
