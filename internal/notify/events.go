package notify

import (
	"tableside/internal/dto"
)

const (
	EventOrderNew    = "order:new"
	EventOrderUpdate = "order:update"
)

// Event is one staff-facing notification. There is a single logical
// topic (staff orders); every connected client receives every event.
type Event struct {
	Type  string             `json:"type"`
	Order *dto.ResolvedOrder `json:"order"`
}

// Publisher is the seam between the order lifecycle and the realtime
// channel. Delivery is best-effort: Publish never blocks and never
// reports failure to the caller.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards events. Used by the seed tool and in tests
// that do not observe notifications.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
