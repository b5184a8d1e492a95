package events

import "github.com/sirupsen/logrus"

// ProductionEventTypes lists every event the production service publishes
var ProductionEventTypes = []string{
	ProductionExplodedEvent,
	ProductionDisassembledEvent,
	ProductionDisassemblyFailedEvent,
}

// LogHandler writes every event it receives to a logger
type LogHandler struct {
	logger logrus.FieldLogger
}

func NewLogHandler(logger logrus.FieldLogger) *LogHandler {
	return &LogHandler{logger: logger}
}

func (h *LogHandler) Handle(event Event) error {
	entry := h.logger.WithFields(logrus.Fields{
		"event":      event.Type,
		"production": event.ProductionID.String(),
		"sequence":   event.Sequence,
		"data":       event.Data,
	})
	if event.Type == ProductionDisassemblyFailedEvent {
		entry.Warn("production event")
		return nil
	}
	entry.Info("production event")
	return nil
}

func (h *LogHandler) CanHandle(string) bool {
	return true
}
