package controller

import (
	"context"

	"github.com/agentstation/retroshelf/pkg/items"
)

// ChangeKind names a catalog change.
type ChangeKind string

// Change kinds.
const (
	ChangeCreated  ChangeKind = "created"
	ChangeUpdated  ChangeKind = "updated"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeReloaded ChangeKind = "reloaded"
)

// Change describes a completed mutation or reload.
type Change struct {
	Kind ChangeKind
	ID   string
	Item items.Item

	// Count is the number of records after a reload.
	Count int
}

// Notifier is told about every change the controller makes.
type Notifier interface {
	Notify(ctx context.Context, change Change)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, change Change)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, change Change) {
	f(ctx, change)
}
