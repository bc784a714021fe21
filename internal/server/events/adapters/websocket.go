// Package adapters provides transport-specific implementations of the Subscriber interface.
package adapters

import (
	"github.com/agentstation/retroshelf/internal/server/events"
	ws "github.com/agentstation/retroshelf/internal/server/websocket"
)

// WebSocketSubscriber pushes catalog events to every connected WebSocket
// client.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a new WebSocket subscriber.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send broadcasts the event. Item events carry the record key at the top
// level so clients can patch one card without decoding the payload.
func (w *WebSocketSubscriber) Send(event events.Event) error {
	w.hub.Broadcast(ws.Message{
		Type:      string(event.Type),
		ItemID:    event.ItemID(),
		Timestamp: event.Timestamp,
		Data:      event.Data,
	})
	return nil
}

// Close is a no-op; the hub owns the client connections.
func (w *WebSocketSubscriber) Close() error {
	return nil
}
