package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProduction_Validation(t *testing.T) {
	unit, _, _, _ := testUnits(t)
	usd, _ := NewCurrency("USD", decimal.RequireFromString("0.01"))
	company := &Company{ID: "c1", Name: "ACME", Currency: usd}
	location := &Location{ID: "prod", Code: "PROD", Type: ProductionLocation}

	production, err := NewProduction("MO001", nil, nil, unit, decimal.NewFromInt(1), location, nil, company)
	if err != nil {
		t.Fatalf("Expected valid production creation to succeed: %v", err)
	}
	if production.State != Draft {
		t.Errorf("Expected new production in draft, got %s", production.State)
	}
	if production.Ready() {
		t.Error("Expected production without product and BOM not to be ready")
	}
	if production.StorageLocation() != nil {
		t.Error("Expected nil storage location without warehouse")
	}

	testCases := []struct {
		name        string
		number      string
		quantity    decimal.Decimal
		location    *Location
		company     *Company
		expectError string
	}{
		{"empty number", "", decimal.NewFromInt(1), location, company, "production number cannot be empty"},
		{"negative quantity", "MO002", decimal.NewFromInt(-1), location, company, "quantity cannot be negative, got -1"},
		{"nil location", "MO002", decimal.NewFromInt(1), nil, company, "production location cannot be nil"},
		{"nil company", "MO002", decimal.NewFromInt(1), location, nil, "company with a currency is required"},
		{"company without currency", "MO002", decimal.NewFromInt(1), location, &Company{ID: "c2"}, "company with a currency is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduction(tc.number, nil, nil, unit, tc.quantity, tc.location, nil, tc.company)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestProductionState_Editable(t *testing.T) {
	tests := []struct {
		state    ProductionState
		editable bool
	}{
		{Request, true},
		{Draft, true},
		{Waiting, false},
		{Assigned, false},
		{Running, false},
		{Done, false},
		{Cancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			p := &Production{State: tt.state}
			if p.Editable() != tt.editable {
				t.Errorf("Expected Editable()=%v for %s", tt.editable, tt.state)
			}

			parsed, err := ParseProductionState(tt.state.String())
			if err != nil {
				t.Fatalf("ParseProductionState failed: %v", err)
			}
			if parsed != tt.state {
				t.Errorf("Expected %s after round trip, got %s", tt.state, parsed)
			}
		})
	}

	if _, err := ParseProductionState("exploded"); err == nil {
		t.Error("Expected error for unknown state")
	}
}

func TestConfiguration_DifferenceProduct(t *testing.T) {
	var cfg *Configuration
	_, err := cfg.DifferenceProduct()
	if err == nil {
		t.Fatal("Expected error for nil configuration")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Fatalf("Expected *ConfigurationError, got %T", err)
	}
	if err.Error() != "disassembly difference product not set" {
		t.Errorf("Unexpected message: %s", err.Error())
	}

	unit, _, _, _ := testUnits(t)
	diff, _ := NewProduct("d", "DIFF", "Disassembly difference", Goods, unit, decimal.Zero)
	cfg = &Configuration{DisassemblyDifferenceProduct: diff}
	got, err := cfg.DifferenceProduct()
	if err != nil {
		t.Fatalf("Expected configured product, got error: %v", err)
	}
	if got.Code != "DIFF" {
		t.Errorf("Expected DIFF, got %s", got.Code)
	}
}

func TestMove_Value(t *testing.T) {
	m := &Move{Quantity: decimal.NewFromInt(3)}
	if !m.Value().IsZero() {
		t.Errorf("Expected zero value for unpriced move, got %s", m.Value())
	}
	m.SetUnitPrice(decimal.RequireFromString("2.5"))
	if !m.Value().Equal(decimal.RequireFromString("7.5")) {
		t.Errorf("Expected 7.5, got %s", m.Value())
	}

	total := SumValues([]*Move{m, {Quantity: decimal.NewFromInt(1)}})
	if !total.Equal(decimal.RequireFromString("7.5")) {
		t.Errorf("Expected total 7.5, got %s", total)
	}
}

func TestProductionReady(t *testing.T) {
	entry := &BOMEntry{Product: &Product{ID: "widget"}, Quantity: decimal.NewFromInt(1)}
	tests := []struct {
		name     string
		bom      *BOM
		expected bool
	}{
		{"no bom", nil, false},
		{"empty bom", &BOM{ID: "EMPTY"}, false},
		{"outputs only", &BOM{ID: "B", Outputs: []*BOMEntry{entry}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			production := &Production{Product: &Product{ID: "widget"}, UOM: &UnitOfMeasure{ID: "u"}, BOM: tc.bom}
			if got := production.Ready(); got != tc.expected {
				t.Errorf("Expected ready %v, got %v", tc.expected, got)
			}
		})
	}
}
