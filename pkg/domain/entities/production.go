package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionState represents where a production order is in its lifecycle
type ProductionState int

const (
	Request ProductionState = iota
	Draft
	Waiting
	Assigned
	Running
	Done
	Cancelled
)

// String method for ProductionState enum
func (s ProductionState) String() string {
	switch s {
	case Request:
		return "request"
	case Draft:
		return "draft"
	case Waiting:
		return "waiting"
	case Assigned:
		return "assigned"
	case Running:
		return "running"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseProductionState maps the textual form back to a ProductionState
func ParseProductionState(s string) (ProductionState, error) {
	for st := Request; st <= Cancelled; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return Draft, fmt.Errorf("unknown production state: %s", s)
}

// Production is a manufacturing order, run either as an assembly or a disassembly
type Production struct {
	ID          uuid.UUID
	Number      string
	Product     *Product
	BOM         *BOM
	UOM         *UnitOfMeasure
	Quantity    decimal.Decimal
	Location    *Location
	Warehouse   *Warehouse
	Company     *Company
	Disassembly bool
	State       ProductionState
	Cost        decimal.Decimal
	Inputs      []*Move
	Outputs     []*Move
}

// NewProduction creates a validated draft Production
func NewProduction(
	number string,
	product *Product,
	bom *BOM,
	uom *UnitOfMeasure,
	quantity decimal.Decimal,
	location *Location,
	warehouse *Warehouse,
	company *Company,
) (*Production, error) {
	if number == "" {
		return nil, fmt.Errorf("production number cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}
	if location == nil {
		return nil, fmt.Errorf("production location cannot be nil")
	}
	if company == nil || company.Currency == nil {
		return nil, fmt.Errorf("company with a currency is required")
	}

	return &Production{
		ID:        uuid.New(),
		Number:    number,
		Product:   product,
		BOM:       bom,
		UOM:       uom,
		Quantity:  quantity,
		Location:  location,
		Warehouse: warehouse,
		Company:   company,
		State:     Draft,
		Cost:      decimal.Zero,
	}, nil
}

// Editable reports whether the order still accepts recomputation of its moves
func (p *Production) Editable() bool {
	return p.State == Request || p.State == Draft
}

// Ready reports whether product, unit and a non-empty BOM are all set
func (p *Production) Ready() bool {
	return p.Product != nil && p.UOM != nil && p.BOM != nil && !p.BOM.IsEmpty()
}

// StorageLocation returns the warehouse storage location, nil without a warehouse
func (p *Production) StorageLocation() *Location {
	if p.Warehouse == nil {
		return nil
	}
	return p.Warehouse.StorageLocation
}

// Currency returns the company currency
func (p *Production) Currency() *Currency {
	if p.Company == nil {
		return nil
	}
	return p.Company.Currency
}

// MoveIDs returns the ids of the current input and output moves
func (p *Production) MoveIDs() (inputs, outputs []uuid.UUID) {
	inputs = make([]uuid.UUID, 0, len(p.Inputs))
	for _, m := range p.Inputs {
		inputs = append(inputs, m.ID)
	}
	outputs = make([]uuid.UUID, 0, len(p.Outputs))
	for _, m := range p.Outputs {
		outputs = append(outputs, m.ID)
	}
	return inputs, outputs
}
