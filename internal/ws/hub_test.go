package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PushReachesConnectedUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	userID := uuid.New()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(conn, hub, userID)
		hub.Register(client)
		client.Run(r.Context())
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Online(userID) == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hub.Push(userID, "notification", map[string]string{"title": "Новая ставка"}))
	require.NoError(t, hub.Push(uuid.New(), "notification", "чужое"))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "notification", got.Type)
	assert.Equal(t, "Новая ставка", got.Data["title"])
}

func TestHub_PushWithoutClients(t *testing.T) {
	hub := NewHub()

	assert.NoError(t, hub.Push(uuid.New(), "notification", nil))
	assert.Zero(t, hub.Online(uuid.New()))
}

func TestHub_UnregisterAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		hub.Unregister(&Client{userID: uuid.New(), send: make(chan []byte)})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after hub stopped")
	}
}
