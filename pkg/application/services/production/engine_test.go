package production

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/services"
	testhelpers "github.com/vsinha/production/pkg/infrastructure/testing"
)

func newTestEngine() *Engine {
	logger, _ := test.NewNullLogger()
	return NewEngine(logger)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func productCodes(moves []*entities.Move) []string {
	codes := make([]string, 0, len(moves))
	for _, m := range moves {
		codes = append(codes, m.Product.Code)
	}
	return codes
}

func TestComputeDisassembly_WidgetScenario(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	order := scenario.NewProduction("MO-1", 1)

	result, err := newTestEngine().ComputeDisassembly(order, scenario.Config)
	if err != nil {
		t.Fatalf("ComputeDisassembly failed: %v", err)
	}

	if !result.Cost.Equal(dec("100")) {
		t.Errorf("Expected cost 100, got %s", result.Cost)
	}

	if len(result.Inputs) != 1 {
		t.Fatalf("Expected 1 input move, got %d", len(result.Inputs))
	}
	widget := result.Inputs[0]
	if widget.Product.Code != "WIDGET" || !widget.Quantity.Equal(dec("1")) {
		t.Errorf("Expected 1 WIDGET consumed, got %s %s", widget.Quantity, widget.Product.Code)
	}
	if widget.FromLocation != scenario.Storage || widget.ToLocation != scenario.Floor {
		t.Errorf("Expected consumed move from storage to production location")
	}
	if widget.UnitPrice.Valid {
		t.Errorf("Consumed move must keep the default cost basis, got unit price %s", widget.UnitPrice.Decimal)
	}

	expected := []struct {
		code     string
		quantity string
		price    string
	}{
		{"PART_A", "2", "40"},
		{"PART_B", "1", "15"},
		{"DISASSEMBLY_DIFF", "1", "5"},
	}
	if len(result.Outputs) != len(expected) {
		t.Fatalf("Expected %d output moves, got %d: %v", len(expected), len(result.Outputs), productCodes(result.Outputs))
	}
	for i, exp := range expected {
		move := result.Outputs[i]
		if move.Product.Code != exp.code {
			t.Errorf("Output %d: expected %s, got %s", i, exp.code, move.Product.Code)
		}
		if !move.Quantity.Equal(dec(exp.quantity)) {
			t.Errorf("Output %s: expected quantity %s, got %s", exp.code, exp.quantity, move.Quantity)
		}
		if !move.UnitPrice.Valid || !move.UnitPrice.Decimal.Equal(dec(exp.price)) {
			t.Errorf("Output %s: expected unit price %s, got %v", exp.code, exp.price, move.UnitPrice)
		}
		if move.FromLocation != scenario.Floor || move.ToLocation != scenario.Storage {
			t.Errorf("Output %s: expected move from production location to storage", exp.code)
		}
	}

	if result.Adjustment != result.Outputs[2] {
		t.Errorf("Expected the adjustment to be the difference product move")
	}
}

func TestComputeDisassembly_ValueConservation(t *testing.T) {
	costs := []string{"100", "95", "90", "90.333", "0.01", "1234.5678"}
	quantities := []int64{0, 1, 2, 3, 7}

	for _, cost := range costs {
		for _, quantity := range quantities {
			scenario := testhelpers.BuildWidgetScenario()
			scenario.Widget.CostPrice = dec(cost)
			order := scenario.NewProduction("MO", quantity)

			result, err := newTestEngine().ComputeDisassembly(order, scenario.Config)
			if err != nil {
				t.Fatalf("cost %s qty %d: unexpected error %v", cost, quantity, err)
			}

			produced := entities.SumValues(result.Outputs)
			if !scenario.Currency.IsZero(result.Cost.Sub(produced)) {
				t.Errorf("cost %s qty %d: consumed %s but produced %s", cost, quantity, result.Cost, produced)
			}
		}
	}
}

func TestComputeDisassembly_RoleInversion(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()

	for quantity := int64(1); quantity <= 4; quantity++ {
		order := scenario.NewProduction("MO", quantity)
		result, err := newTestEngine().ComputeDisassembly(order, scenario.Config)
		if err != nil {
			t.Fatalf("qty %d: %v", quantity, err)
		}

		inputs := productCodes(result.Inputs)
		if len(inputs) != 1 || inputs[0] != "WIDGET" {
			t.Errorf("qty %d: expected inputs [WIDGET], got %v", quantity, inputs)
		}

		outputs := productCodes(result.Outputs)
		if len(outputs) < 2 || outputs[0] != "PART_A" || outputs[1] != "PART_B" {
			t.Errorf("qty %d: expected outputs to start with PART_A PART_B, got %v", quantity, outputs)
		}
		if len(outputs) > 3 || (len(outputs) == 3 && outputs[2] != "DISASSEMBLY_DIFF") {
			t.Errorf("qty %d: expected at most one difference line, got %v", quantity, outputs)
		}

		partA := result.Outputs[0]
		if !partA.Quantity.Equal(decimal.NewFromInt(2 * quantity)) {
			t.Errorf("qty %d: expected %d PART_A, got %s", quantity, 2*quantity, partA.Quantity)
		}
	}
}

func TestComputeDisassembly_NoOpGuards(t *testing.T) {
	tests := []struct {
		name  string
		clear func(p *entities.Production)
	}{
		{"missing product", func(p *entities.Production) { p.Product = nil }},
		{"missing bom", func(p *entities.Production) { p.BOM = nil }},
		{"missing uom", func(p *entities.Production) { p.UOM = nil }},
		{"empty bom", func(p *entities.Production) { p.BOM = &entities.BOM{ID: "EMPTY", Name: "Empty"} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scenario := testhelpers.BuildWidgetScenario()
			order := scenario.NewProduction("MO", 1)
			tc.clear(order)

			result, err := newTestEngine().ComputeDisassembly(order, nil)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !result.IsEmpty() {
				t.Errorf("Expected no moves, got %d inputs and %d outputs", len(result.Inputs), len(result.Outputs))
			}
			if !result.Cost.IsZero() {
				t.Errorf("Expected zero cost, got %s", result.Cost)
			}
		})
	}
}

func TestComputeDisassembly_ProductNotProducedByBOM(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	order := scenario.NewProduction("MO", 5)
	order.Product = scenario.PartA

	result, err := newTestEngine().ComputeDisassembly(order, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.IsEmpty() || !result.Cost.IsZero() {
		t.Errorf("Expected empty result for a zero factor, got %d/%d moves cost %s",
			len(result.Inputs), len(result.Outputs), result.Cost)
	}
}

func TestComputeDisassembly_MissingDifferenceProduct(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	order := scenario.NewProduction("MO", 1)

	for _, cfg := range []*entities.Configuration{nil, {}} {
		result, err := newTestEngine().ComputeDisassembly(order, cfg)
		if result != nil {
			t.Errorf("Expected no result on failure")
		}

		var configErr *entities.ConfigurationError
		if !errors.As(err, &configErr) {
			t.Fatalf("Expected ConfigurationError, got %v", err)
		}
		if configErr.Error() != "disassembly difference product not set" {
			t.Errorf("Expected 'disassembly difference product not set', got %q", configErr.Error())
		}
		if configErr.Setting != "disassembly_difference_product" {
			t.Errorf("Expected setting disassembly_difference_product, got %s", configErr.Setting)
		}
	}
}

func TestComputeDisassembly_BalancedNeedsNoConfiguration(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	scenario.Widget.CostPrice = dec("95")
	order := scenario.NewProduction("MO", 2)

	result, err := newTestEngine().ComputeDisassembly(order, nil)
	if err != nil {
		t.Fatalf("Balanced disassembly must not need configuration: %v", err)
	}
	if len(result.Outputs) != 2 {
		t.Errorf("Expected no adjustment line, got %v", productCodes(result.Outputs))
	}
	if result.Adjustment != nil {
		t.Errorf("Expected no adjustment")
	}
}

func TestComputeDisassembly_DifferenceBelowCurrencyRounding(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	scenario.Widget.CostPrice = dec("95.004")
	order := scenario.NewProduction("MO", 1)

	result, err := newTestEngine().ComputeDisassembly(order, nil)
	if err != nil {
		t.Fatalf("A difference below the currency rounding is zero: %v", err)
	}
	if len(result.Outputs) != 2 {
		t.Errorf("Expected no adjustment line, got %v", productCodes(result.Outputs))
	}
}

func TestComputeDisassembly_NegativeAdjustment(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	scenario.Widget.CostPrice = dec("90")
	order := scenario.NewProduction("MO", 1)

	result, err := newTestEngine().ComputeDisassembly(order, scenario.Config)
	if err != nil {
		t.Fatalf("ComputeDisassembly failed: %v", err)
	}

	adjustment := result.Adjustment
	if adjustment == nil {
		t.Fatalf("Expected an adjustment move")
	}
	if !adjustment.UnitPrice.Decimal.Equal(dec("-5")) {
		t.Errorf("Expected unit price -5, got %s", adjustment.UnitPrice.Decimal)
	}
	if !adjustment.Quantity.Equal(dec("1")) || adjustment.UOM != scenario.Unit {
		t.Errorf("Expected one unit of the difference product in its default unit")
	}
}

func TestComputeDisassembly_DifferenceProductNotMovable(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	order := scenario.NewProduction("MO", 1)
	cfg := &entities.Configuration{DisassemblyDifferenceProduct: scenario.Labour}

	_, err := newTestEngine().ComputeDisassembly(order, cfg)

	var configErr *entities.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if configErr.Error() != "disassembly difference product LABOUR cannot be moved" {
		t.Errorf("Unexpected message %q", configErr.Error())
	}
}

func TestComputeDisassembly_SkipsServiceEntries(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	scenario.BOM.Inputs = append(scenario.BOM.Inputs, testhelpers.Entry(scenario.Labour, scenario.Unit, "1"))
	order := scenario.NewProduction("MO", 1)

	result, err := newTestEngine().ComputeDisassembly(order, scenario.Config)
	if err != nil {
		t.Fatalf("ComputeDisassembly failed: %v", err)
	}

	for _, move := range result.Outputs {
		if move.Product.Code == "LABOUR" {
			t.Errorf("Service entries must not produce moves")
		}
	}
	if !result.Adjustment.UnitPrice.Decimal.Equal(dec("5")) {
		t.Errorf("Skipped entries must not count in the produced cost, adjustment %s", result.Adjustment.UnitPrice.Decimal)
	}
}

func TestComputeDisassembly_UnitConversion(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	screw := testhelpers.Product("screw", "SCREW", entities.Goods, scenario.Unit, "0.5")
	flour := testhelpers.Product("flour", "FLOUR", entities.Goods, scenario.Kilogram, "2")

	// A dozen Widgets are made from a dozen screws and 500 g of flour.
	scenario.BOM.Inputs = []*entities.BOMEntry{
		testhelpers.Entry(screw, scenario.Dozen, "1"),
		testhelpers.Entry(flour, scenario.Gram, "500"),
	}
	scenario.BOM.Outputs = []*entities.BOMEntry{
		testhelpers.Entry(scenario.Widget, scenario.Dozen, "1"),
	}

	order := scenario.NewProduction("MO", 24)
	result, err := newTestEngine().ComputeDisassembly(order, scenario.Config)
	if err != nil {
		t.Fatalf("ComputeDisassembly failed: %v", err)
	}

	consumed := result.Inputs[0]
	if !consumed.Quantity.Equal(dec("2")) || consumed.UOM != scenario.Dozen {
		t.Errorf("Expected 2 dozen Widgets consumed, got %s %s", consumed.Quantity, consumed.UOM.Symbol)
	}
	if !result.Cost.Equal(dec("2400")) {
		t.Errorf("Expected cost 24 x 100 = 2400, got %s", result.Cost)
	}

	screws := result.Outputs[0]
	if !screws.Quantity.Equal(dec("2")) || !screws.UnitPrice.Decimal.Equal(dec("6")) {
		t.Errorf("Expected 2 dozen screws at 6 per dozen, got %s at %s", screws.Quantity, screws.UnitPrice.Decimal)
	}

	flourMove := result.Outputs[1]
	if !flourMove.Quantity.Equal(dec("1000")) || !flourMove.UnitPrice.Decimal.Equal(dec("0.002")) {
		t.Errorf("Expected 1000 g of flour at 0.002 per g, got %s at %s", flourMove.Quantity, flourMove.UnitPrice.Decimal)
	}

	// 2400 - (12 + 2)
	if !result.Adjustment.UnitPrice.Decimal.Equal(dec("2386")) {
		t.Errorf("Expected adjustment 2386, got %s", result.Adjustment.UnitPrice.Decimal)
	}
}

func TestComputeDisassembly_ProducedPricesRounded(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	nut := testhelpers.Product("nut", "NUT", entities.Goods, scenario.Dozen, "1")
	scenario.BOM.Inputs = []*entities.BOMEntry{
		testhelpers.Entry(nut, scenario.Unit, "1000"),
	}

	order := scenario.NewProduction("MO", 100)
	result, err := newTestEngine().ComputeDisassembly(order, scenario.Config)
	if err != nil {
		t.Fatalf("ComputeDisassembly failed: %v", err)
	}

	nuts := result.Outputs[0]
	if !nuts.UnitPrice.Decimal.Equal(dec("0.0833")) {
		t.Errorf("Expected 1/12 rounded to 0.0833, got %s", nuts.UnitPrice.Decimal)
	}

	// 10000 - 100000 x 0.0833
	if !result.Adjustment.UnitPrice.Decimal.Equal(dec("1670")) {
		t.Errorf("Expected adjustment 1670, got %s", result.Adjustment.UnitPrice.Decimal)
	}

	for _, move := range result.Outputs {
		price := move.UnitPrice.Decimal
		if !price.Equal(price.Round(4)) {
			t.Errorf("%s: unit price %s has more than 4 digits", move.Product.Code, price)
		}
	}
	if produced := entities.SumValues(result.Outputs); !produced.Equal(result.Cost) {
		t.Errorf("Expected stored prices to add up to %s, got %s", result.Cost, produced)
	}
}

type recordingDeriver struct {
	inner services.MoveDeriver
	lines []entities.LineSpec
}

func (r *recordingDeriver) Derive(from, to *entities.Location, company *entities.Company, line entities.LineSpec) *entities.Move {
	r.lines = append(r.lines, line)
	return r.inner.Derive(from, to, company, line)
}

func TestComputeDisassembly_AdjustmentUsesMoveDeriver(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	deriver := &recordingDeriver{inner: services.NewStockMoveDeriver()}
	logger, _ := test.NewNullLogger()
	engine := NewEngineWithConfig(deriver, logger, DefaultEngineConfig())

	if _, err := engine.ComputeDisassembly(scenario.NewProduction("MO", 1), scenario.Config); err != nil {
		t.Fatalf("ComputeDisassembly failed: %v", err)
	}

	if len(deriver.lines) != 4 {
		t.Fatalf("Expected 4 derived lines, got %d", len(deriver.lines))
	}
	last := deriver.lines[3]
	if last.Product != scenario.Difference || last.UOM != scenario.Unit || !last.Quantity.Equal(dec("1")) {
		t.Errorf("Expected the adjustment line to be 1 unit of the difference product, got %+v", last)
	}
}

func TestExplode_SelectsStrategyFromFlag(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	engine := newTestEngine()

	assembly := scenario.NewProduction("MO-A", 1)
	result, err := engine.Explode(assembly, nil)
	if err != nil {
		t.Fatalf("Assembly explode failed: %v", err)
	}
	if got := productCodes(result.Inputs); len(got) != 2 || got[0] != "PART_A" {
		t.Errorf("Assembly must consume the BOM inputs, got %v", got)
	}
	if !result.Cost.Equal(dec("95")) {
		t.Errorf("Expected assembly cost 95, got %s", result.Cost)
	}
	if len(result.Outputs) != 1 || !result.Outputs[0].UnitPrice.Decimal.Equal(dec("95")) {
		t.Errorf("Expected the Widget produced at 95")
	}

	disassembly := scenario.NewProduction("MO-D", 1)
	disassembly.Disassembly = true
	result, err = engine.Explode(disassembly, scenario.Config)
	if err != nil {
		t.Fatalf("Disassembly explode failed: %v", err)
	}
	if got := productCodes(result.Inputs); len(got) != 1 || got[0] != "WIDGET" {
		t.Errorf("Disassembly must consume the BOM outputs, got %v", got)
	}
}

func TestAssemblyExploder_PriceRounding(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	scenario.BOM.Outputs = []*entities.BOMEntry{testhelpers.Entry(scenario.Widget, scenario.Unit, "3")}
	order := scenario.NewProduction("MO", 3)

	result, err := newTestEngine().Explode(order, nil)
	if err != nil {
		t.Fatalf("Explode failed: %v", err)
	}

	// 95 / 3 = 31.666...
	if !result.Outputs[0].UnitPrice.Decimal.Equal(dec("31.6667")) {
		t.Errorf("Expected unit price 31.6667, got %s", result.Outputs[0].UnitPrice.Decimal)
	}
}

func TestAssemblyExploder_SecondaryOutputsAtZero(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	scrap := testhelpers.Product("scrap", "SCRAP", entities.Goods, scenario.Unit, "1")
	scenario.BOM.Outputs = append(scenario.BOM.Outputs, testhelpers.Entry(scrap, scenario.Unit, "2"))

	result, err := newTestEngine().Explode(scenario.NewProduction("MO", 1), nil)
	if err != nil {
		t.Fatalf("Explode failed: %v", err)
	}
	if len(result.Outputs) != 2 {
		t.Fatalf("Expected 2 outputs, got %d", len(result.Outputs))
	}
	if !result.Outputs[1].UnitPrice.Valid || !result.Outputs[1].UnitPrice.Decimal.IsZero() {
		t.Errorf("Expected secondary output priced at zero, got %v", result.Outputs[1].UnitPrice)
	}
}

func TestChangesAndApply(t *testing.T) {
	scenario := testhelpers.BuildWidgetScenario()
	engine := newTestEngine()
	order := scenario.NewProduction("MO", 1)

	first, err := engine.Changes(order, nil)
	if err != nil {
		t.Fatalf("Changes failed: %v", err)
	}
	if len(first.Inputs.Remove) != 0 || len(first.Inputs.Add) != 2 {
		t.Fatalf("Expected 2 inputs added and none removed, got %+v", first.Inputs)
	}
	ApplyChanges(order, first)
	if len(order.Inputs) != 2 || order.Inputs[0].ProductionID != order.ID {
		t.Fatalf("Expected moves attached to the order")
	}

	order.Disassembly = true
	second, err := engine.Changes(order, scenario.Config)
	if err != nil {
		t.Fatalf("Changes failed: %v", err)
	}
	if len(second.Inputs.Remove) != 2 || len(second.Outputs.Remove) != 1 {
		t.Errorf("Expected every current move to be removed, got %d inputs %d outputs",
			len(second.Inputs.Remove), len(second.Outputs.Remove))
	}
	if len(order.Inputs) != 2 {
		t.Errorf("Changes must not mutate the order")
	}

	ApplyChanges(order, second)
	if got := productCodes(order.Inputs); len(got) != 1 || got[0] != "WIDGET" {
		t.Errorf("Expected inputs replaced wholesale, got %v", got)
	}
	if len(order.Outputs) != 3 {
		t.Errorf("Expected 3 outputs, got %d", len(order.Outputs))
	}
	if !order.Cost.Equal(dec("100")) {
		t.Errorf("Expected cost 100, got %s", order.Cost)
	}
}
