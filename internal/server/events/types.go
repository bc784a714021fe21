// Package events provides a unified event system for real-time catalog updates.
//
// The broker connects controller change notifications to multiple transport
// mechanisms (WebSocket, SSE) through a common event pipeline.
package events

import (
	"time"

	"github.com/agentstation/retroshelf/pkg/items"
)

// EventType represents the type of catalog event.
type EventType string

// Event types for catalog changes.
const (
	// Item events (from controller mutations).
	ItemCreated EventType = "item.created"
	ItemUpdated EventType = "item.updated"
	ItemDeleted EventType = "item.deleted"

	// CatalogReloaded is published after an explicit full reload.
	CatalogReloaded EventType = "catalog.reloaded"

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// CatalogEvents lists the types that describe a change to the catalog.
func CatalogEvents() []EventType {
	return []EventType{ItemCreated, ItemUpdated, ItemDeleted, CatalogReloaded}
}

// Event represents a catalog event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// ItemPayload is the data of an item event. Item is nil for deletes.
type ItemPayload struct {
	ID   string      `json:"id"`
	Item *items.Item `json:"item,omitempty"`
}

// ReloadPayload is the data of a CatalogReloaded event.
type ReloadPayload struct {
	Count int `json:"count"`
}

// ItemID returns the key of the record an item event refers to, or "" for
// any other event.
func (e Event) ItemID() string {
	switch d := e.Data.(type) {
	case ItemPayload:
		return d.ID
	case *ItemPayload:
		if d != nil {
			return d.ID
		}
	}
	return ""
}
