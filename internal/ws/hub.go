package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans session snapshots out to connected clients, keyed by session
// code. Polling remains the baseline sync mechanism; the hub just shortens
// the window between a write and the other side seeing it.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[code] == nil {
		h.sessions[code] = make(map[*websocket.Conn]bool)
	}
	h.sessions[code][conn] = true
	log.Printf("ws: client connected to session %s (total: %d)", code, len(h.sessions[code]))
}

func (h *Hub) RemoveConnection(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.sessions[code]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.sessions, code)
		}
		log.Printf("ws: client disconnected from session %s", code)
	}
}

// Broadcast holds the write lock for the whole fan-out: failed writes prune
// the connection map in place, which is only safe when no other broadcast is
// iterating it.
func (h *Hub) Broadcast(code string, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[code]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.sessions, code)
	}
}
