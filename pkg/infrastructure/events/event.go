package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is one recorded step in a production order's history. The store
// assigns Sequence, counting from 1 per production.
type Event struct {
	Type         string      `json:"type"`
	ProductionID uuid.UUID   `json:"production_id"`
	Sequence     int         `json:"sequence"`
	OccurredAt   time.Time   `json:"occurred_at"`
	Data         interface{} `json:"data"`
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventStore records production histories and notifies subscribers
type EventStore interface {
	// Append records event and returns it with its sequence assigned
	Append(event Event) (Event, error)
	// History returns the events of one production from fromSequence on
	History(productionID uuid.UUID, fromSequence int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
}

func newEvent(eventType string, productionID uuid.UUID, data interface{}) Event {
	return Event{
		Type:         eventType,
		ProductionID: productionID,
		OccurredAt:   time.Now().UTC(),
		Data:         data,
	}
}
