package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newTestHub() *Hub {
	logger := zerolog.Nop()
	return NewHub(&logger)
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
}

// TestHub_RegisterUnregister tests client bookkeeping without a connection.
func TestHub_RegisterUnregister(t *testing.T) {
	hub := newTestHub()

	client := NewClient("test-1", hub, nil)
	hub.Register(client)
	if count := hub.ClientCount(); count != 1 {
		t.Fatalf("ClientCount() = %d, want 1", count)
	}

	hub.Unregister(client)
	if count := hub.ClientCount(); count != 0 {
		t.Fatalf("ClientCount() = %d, want 0", count)
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel still open after Unregister")
	}

	// A second unregister must not close the channel twice.
	hub.Unregister(client)
}

// TestHub_BroadcastToClients tests delivery to registered clients.
func TestHub_BroadcastToClients(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c1 := NewClient("c1", hub, nil)
	c2 := NewClient("c2", hub, nil)
	hub.Register(c1)
	hub.Register(c2)

	hub.Broadcast(Message{Type: "item.created", Timestamp: time.Now()})

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.send:
			if msg.Type != "item.created" {
				t.Errorf("%s got type %q", c.ID(), msg.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s did not receive the broadcast", c.ID())
		}
	}
}

// TestHub_ShutdownClosesClients tests that cancelling Run disconnects everyone.
func TestHub_ShutdownClosesClients(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())

	client := NewClient("c1", hub, nil)
	hub.Register(client)

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after shutdown, want 0", hub.ClientCount())
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel still open after shutdown")
	}
}

// TestHub_EndToEnd dials a real WebSocket and reads a broadcast message.
func TestHub_EndToEnd(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient("e2e", hub, conn)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	waitForClients(t, hub, 1)
	hub.Broadcast(Message{Type: "catalog.reloaded", Timestamp: time.Now(), Data: map[string]any{"count": 2}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if msg.Type != "catalog.reloaded" {
		t.Errorf("Type = %q, want catalog.reloaded", msg.Type)
	}

	_ = conn.Close()
	waitForClients(t, hub, 0)
}
