package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestConn wires one client into the hub and hands back both ends.
func dialTestConn(t *testing.T, hub *Hub, code string) (client, server *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.AddConnection(code, conn)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, <-serverConns
}

func TestBroadcastDeliversToSession(t *testing.T) {
	hub := NewHub()
	client, _ := dialTestConn(t, hub, "123456")

	hub.Broadcast("123456", Message{Type: "phase_changed", Data: "briefing"})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "phase_changed")

	// broadcasting to a session with no connections is a no-op
	hub.Broadcast("999999", Message{Type: "phase_changed"})
}

func TestConcurrentBroadcastsPruneDeadConnections(t *testing.T) {
	hub := NewHub()
	code := "123456"
	_, server := dialTestConn(t, hub, code)
	require.NoError(t, server.Close())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(code, Message{Type: "session_updated"})
		}()
	}
	wg.Wait()

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.Empty(t, hub.sessions[code])
}
