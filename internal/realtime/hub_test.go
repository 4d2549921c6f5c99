package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func dial(t *testing.T, hub *Hub, flightID string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, flightID)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount(flightID) > 0 }, time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_SeatBooked(t *testing.T) {
	hub := startHub(t)
	conn := dial(t, hub, "F1")

	hub.SeatBooked("F1", 42, 0.25)

	var msg Message
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageTypeSeatBooked, msg.Type)
	assert.Equal(t, "F1", msg.FlightID)
	assert.Equal(t, []int64{42}, msg.SeatIDs)
	require.NotNil(t, msg.Occupancy)
	assert.InDelta(t, 0.25, *msg.Occupancy, 1e-9)
}

func TestHub_OnlyWatchersOfFlightReceive(t *testing.T) {
	hub := startHub(t)
	other := dial(t, hub, "F2")
	watcher := dial(t, hub, "F1")

	hub.SeatsReleased("F1", []int64{1, 2})

	var msg Message
	_ = watcher.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, watcher.ReadJSON(&msg))
	assert.Equal(t, MessageTypeSeatsReleased, msg.Type)
	assert.Nil(t, msg.Occupancy)

	_ = other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	assert.Error(t, other.ReadJSON(&msg))
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	hub := startHub(t)
	conn := dial(t, hub, "F1")

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount("F1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishDoesNotBlockWithoutRunner(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.SeatBooked("F1", int64(i), 0)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}
}
