package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytmp3/types"
	"ytmp3/websocket"
)

// TestProgressChannelEndToEnd drives a real WebSocket connection through the
// upgrade, subscribe command and a published tick.
func TestProgressChannelEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := websocket.NewHub()
	go hub.Run()

	router := gin.New()
	router.GET("/ws", NewProgressHandler(hub).HandleConnection)

	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(types.ClientCommand{Action: "subscribe", GroupID: "g1"}))

	// Give the hub loop a moment to register the subscription
	time.Sleep(200 * time.Millisecond)
	hub.Publish("g1", 42)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg types.ProgressMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "g1", msg.GroupID)
	assert.Equal(t, 42, msg.Percent)
	assert.False(t, msg.Timestamp.IsZero())
}

// TestProgressChannelIgnoresOtherGroups verifies that a subscriber sees no
// ticks for groups it never joined.
func TestProgressChannelIgnoresOtherGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := websocket.NewHub()
	go hub.Run()

	router := gin.New()
	router.GET("/ws", NewProgressHandler(hub).HandleConnection)

	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(types.ClientCommand{Action: "subscribe", GroupID: "g1"}))
	time.Sleep(200 * time.Millisecond)

	hub.Publish("g2", 10)
	hub.Publish("g1", 20)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg types.ProgressMessage
	require.NoError(t, conn.ReadJSON(&msg))

	// The first delivered tick is the one for the joined group
	assert.Equal(t, "g1", msg.GroupID)
	assert.Equal(t, 20, msg.Percent)
}
