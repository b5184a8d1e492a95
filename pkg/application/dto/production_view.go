package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/domain/entities"
)

// MoveView is the flattened, serialisable form of a move
type MoveView struct {
	ID        uuid.UUID           `json:"id"`
	Product   string              `json:"product"`
	UOM       string              `json:"uom"`
	Quantity  decimal.Decimal     `json:"quantity"`
	From      string              `json:"from"`
	To        string              `json:"to"`
	UnitPrice decimal.NullDecimal `json:"unit_price"`
	Value     decimal.Decimal     `json:"value"`
}

// ProductionView is the flattened, serialisable form of a production order
type ProductionView struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Product     string          `json:"product"`
	BOM         string          `json:"bom"`
	UOM         string          `json:"uom"`
	Quantity    decimal.Decimal `json:"quantity"`
	State       string          `json:"state"`
	Disassembly bool            `json:"disassembly"`
	Cost        decimal.Decimal `json:"cost"`
	Inputs      []MoveView      `json:"inputs"`
	Outputs     []MoveView      `json:"outputs"`
}

// ChangesView is the serialisable form of a replace-all delta
type ChangesView struct {
	RemoveInputs  []uuid.UUID     `json:"remove_inputs"`
	RemoveOutputs []uuid.UUID     `json:"remove_outputs"`
	Inputs        []MoveView      `json:"inputs"`
	Outputs       []MoveView      `json:"outputs"`
	Cost          decimal.Decimal `json:"cost"`
}

// FailureView is one failed order of a batch
type FailureView struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

// ReportView is the serialisable form of a DisassembleReport
type ReportView struct {
	Disassembled []uuid.UUID   `json:"disassembled"`
	Skipped      []uuid.UUID   `json:"skipped"`
	Failed       []FailureView `json:"failed"`
}

// NewMoveView flattens m
func NewMoveView(m *entities.Move) MoveView {
	view := MoveView{
		ID:        m.ID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Value:     m.Value(),
	}
	if m.Product != nil {
		view.Product = m.Product.Code
	}
	if m.UOM != nil {
		view.UOM = m.UOM.ID
	}
	if m.FromLocation != nil {
		view.From = m.FromLocation.Code
	}
	if m.ToLocation != nil {
		view.To = m.ToLocation.Code
	}
	return view
}

// NewMoveViews flattens moves
func NewMoveViews(moves []*entities.Move) []MoveView {
	views := make([]MoveView, 0, len(moves))
	for _, m := range moves {
		views = append(views, NewMoveView(m))
	}
	return views
}

// NewProductionView flattens p
func NewProductionView(p *entities.Production) ProductionView {
	view := ProductionView{
		ID:          p.ID,
		Number:      p.Number,
		Quantity:    p.Quantity,
		State:       p.State.String(),
		Disassembly: p.Disassembly,
		Cost:        p.Cost,
		Inputs:      NewMoveViews(p.Inputs),
		Outputs:     NewMoveViews(p.Outputs),
	}
	if p.Product != nil {
		view.Product = p.Product.Code
	}
	if p.BOM != nil {
		view.BOM = p.BOM.ID
	}
	if p.UOM != nil {
		view.UOM = p.UOM.ID
	}
	return view
}

// NewChangesView flattens changes
func NewChangesView(changes *ProductionChanges) ChangesView {
	return ChangesView{
		RemoveInputs:  changes.Inputs.Remove,
		RemoveOutputs: changes.Outputs.Remove,
		Inputs:        NewMoveViews(changes.Inputs.Add),
		Outputs:       NewMoveViews(changes.Outputs.Add),
		Cost:          changes.Cost,
	}
}

// NewReportView flattens report
func NewReportView(report *DisassembleReport) ReportView {
	view := ReportView{
		Disassembled: report.Disassembled,
		Skipped:      report.Skipped,
		Failed:       make([]FailureView, 0, len(report.Failed)),
	}
	for _, f := range report.Failed {
		view.Failed = append(view.Failed, FailureView{ID: f.ID, Error: f.Err.Error()})
	}
	return view
}
