package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InMemoryEventStore keeps production histories in memory.
// Subscribers are notified synchronously, after the store lock is released.
type InMemoryEventStore struct {
	histories   map[uuid.UUID][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	logger      logrus.FieldLogger
}

func NewInMemoryEventStore(logger logrus.FieldLogger) *InMemoryEventStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &InMemoryEventStore{
		histories:   make(map[uuid.UUID][]Event),
		subscribers: make(map[string][]EventHandler),
		logger:      logger,
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) Append(event Event) (Event, error) {
	if event.ProductionID == uuid.Nil {
		return Event{}, fmt.Errorf("event %s has no production", event.Type)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	s.mutex.Lock()
	event.Sequence = len(s.histories[event.ProductionID]) + 1
	s.histories[event.ProductionID] = append(s.histories[event.ProductionID], event)
	handlers := append([]EventHandler(nil), s.subscribers[event.Type]...)
	s.mutex.Unlock()

	for _, handler := range handlers {
		if !handler.CanHandle(event.Type) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			s.logger.WithFields(logrus.Fields{
				"event":      event.Type,
				"production": event.ProductionID.String(),
			}).WithError(err).Error("event handler failed")
		}
	}

	return event, nil
}

func (s *InMemoryEventStore) History(productionID uuid.UUID, fromSequence int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	history := s.histories[productionID]
	if fromSequence < 1 {
		fromSequence = 1
	}
	if fromSequence > len(history) {
		return []Event{}, nil
	}

	return append([]Event(nil), history[fromSequence-1:]...), nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}

	return nil
}
