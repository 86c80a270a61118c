package websocket

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatcli/pkg/contracts/events"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:         hub,
		send:        make(chan []byte, 16),
		id:          "test-client",
		connectedAt: time.Now(),
		logger:      slog.Default(),
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Start()
	defer hub.Stop()

	client := newTestClient(hub)
	hub.register <- client

	// Registration sends a connection message
	select {
	case msg := <-client.send:
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &decoded))
		assert.Equal(t, events.TypeConnection, decoded["type"])
	case <-time.After(time.Second):
		t.Fatal("no connection message received")
	}

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.unregister <- client
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	// Send channel is closed after unregister
	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestHubBroadcastUpdate(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Start()
	defer hub.Stop()

	client := newTestClient(hub)
	hub.register <- client
	<-client.send // drain connection message

	hub.BroadcastUpdate(events.TypeDataUpdate, events.SubtypeTables, events.ActionRefresh, map[string]int{"tables": 3})

	select {
	case msg := <-client.send:
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &decoded))
		assert.Equal(t, events.TypeDataUpdate, decoded["type"])
		assert.Equal(t, events.SubtypeTables, decoded["subtype"])
		assert.Equal(t, events.ActionRefresh, decoded["action"])
	case <-time.After(time.Second):
		t.Fatal("broadcast not delivered")
	}
}

func TestHubBroadcastCalcComplete(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Start()
	defer hub.Stop()

	client := newTestClient(hub)
	hub.register <- client
	<-client.send

	hub.BroadcastCalcComplete("heat_transfer", map[string]float64{"heat_rate_watts": 104550})

	select {
	case msg := <-client.send:
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &decoded))
		assert.Equal(t, events.TypeCalcComplete, decoded["type"])
		data := decoded["data"].(map[string]interface{})
		assert.Equal(t, "heat_transfer", data["calculation"])
	case <-time.After(time.Second):
		t.Fatal("broadcast not delivered")
	}
}

func TestHubSlowClientDisconnected(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Start()
	defer hub.Stop()

	client := newTestClient(hub)
	client.send = make(chan []byte) // unbuffered, nothing reads it
	hub.register <- client

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastProgress("clean", 50, "halfway")

	// The full buffer forces a disconnect
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}
