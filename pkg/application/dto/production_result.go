package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/domain/entities"
)

// ExplosionResult is the full replacement set of moves computed for a production.
// Adjustment points at the output move absorbing a disassembly cost difference, if any.
type ExplosionResult struct {
	Inputs     []*entities.Move
	Outputs    []*entities.Move
	Cost       decimal.Decimal
	Adjustment *entities.Move
}

// NewExplosionResult returns an empty result with zero cost
func NewExplosionResult() *ExplosionResult {
	return &ExplosionResult{
		Inputs:  make([]*entities.Move, 0),
		Outputs: make([]*entities.Move, 0),
		Cost:    decimal.Zero,
	}
}

// IsEmpty reports whether no move was produced
func (r *ExplosionResult) IsEmpty() bool {
	return len(r.Inputs) == 0 && len(r.Outputs) == 0
}

// MoveChanges lists moves to drop and moves to add to one move collection
type MoveChanges struct {
	Remove []uuid.UUID
	Add    []*entities.Move
}

// ProductionChanges is a replace-all delta for an unsaved production
type ProductionChanges struct {
	Inputs  MoveChanges
	Outputs MoveChanges
	Cost    decimal.Decimal
}

// DisassembleFailure records why one production of a batch could not be disassembled
type DisassembleFailure struct {
	ID  uuid.UUID
	Err error
}

// DisassembleReport summarises a batch disassembly
type DisassembleReport struct {
	Disassembled []uuid.UUID
	Skipped      []uuid.UUID
	Failed       []DisassembleFailure
}

// NewDisassembleReport creates an empty report
func NewDisassembleReport() *DisassembleReport {
	return &DisassembleReport{
		Disassembled: make([]uuid.UUID, 0),
		Skipped:      make([]uuid.UUID, 0),
		Failed:       make([]DisassembleFailure, 0),
	}
}
