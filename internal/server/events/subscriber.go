package events

import "slices"

// Subscriber receives catalog events from the broker. Implementations push
// them to one transport (WebSocket, SSE) and must not block.
type Subscriber interface {
	Send(Event) error
	Close() error
}

// Filter wraps sub so it only receives events of the given types.
// Unsubscribe needs the returned value, not sub.
func Filter(sub Subscriber, types ...EventType) Subscriber {
	return &filtered{Subscriber: sub, types: slices.Clone(types)}
}

type filtered struct {
	Subscriber
	types []EventType
}

func (f *filtered) Send(e Event) error {
	if !slices.Contains(f.types, e.Type) {
		return nil
	}
	return f.Subscriber.Send(e)
}
