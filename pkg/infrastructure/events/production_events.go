package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ProductionExplodedEvent          = "production.exploded"
	ProductionDisassembledEvent      = "production.disassembled"
	ProductionDisassemblyFailedEvent = "production.disassembly_failed"
)

type ProductionExploded struct {
	ProductionID uuid.UUID       `json:"production_id"`
	Number       string          `json:"number"`
	Disassembly  bool            `json:"disassembly"`
	Inputs       int             `json:"inputs"`
	Outputs      int             `json:"outputs"`
	Cost         decimal.Decimal `json:"cost"`
}

type ProductionDisassembled struct {
	ProductionID uuid.UUID       `json:"production_id"`
	Number       string          `json:"number"`
	Inputs       int             `json:"inputs"`
	Outputs      int             `json:"outputs"`
	Cost         decimal.Decimal `json:"cost"`
	Adjustment   decimal.Decimal `json:"adjustment"`
}

type ProductionDisassemblyFailed struct {
	ProductionID uuid.UUID `json:"production_id"`
	Reason       string    `json:"reason"`
}

func NewProductionExplodedEvent(data ProductionExploded) Event {
	return newEvent(ProductionExplodedEvent, data.ProductionID, data)
}

func NewProductionDisassembledEvent(data ProductionDisassembled) Event {
	return newEvent(ProductionDisassembledEvent, data.ProductionID, data)
}

func NewProductionDisassemblyFailedEvent(id uuid.UUID, reason string) Event {
	return newEvent(ProductionDisassemblyFailedEvent, id, ProductionDisassemblyFailed{
		ProductionID: id,
		Reason:       reason,
	})
}
