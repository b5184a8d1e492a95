package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/domain/entities"
)

func newValidatorProduct(t *testing.T, unit *entities.UnitOfMeasure, code string) *entities.Product {
	t.Helper()
	p, err := entities.NewProduct(code, code, code, entities.Goods, unit, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("NewProduct %s: %v", code, err)
	}
	return p
}

func newValidatorBOM(name string, unit *entities.UnitOfMeasure, inputs, outputs []*entities.Product) *entities.BOM {
	bom := &entities.BOM{ID: name, Name: name}
	for _, p := range inputs {
		bom.Inputs = append(bom.Inputs, &entities.BOMEntry{Product: p, UOM: unit, Quantity: decimal.NewFromInt(1)})
	}
	for _, p := range outputs {
		bom.Outputs = append(bom.Outputs, &entities.BOMEntry{Product: p, UOM: unit, Quantity: decimal.NewFromInt(1)})
	}
	return bom
}

func TestBOMValidator_DetectCycleAcrossBOMs(t *testing.T) {
	unit, _ := entities.NewUnitOfMeasure("u", "u", "units", decimal.NewFromInt(1), decimal.NewFromInt(1))
	a := newValidatorProduct(t, unit, "A")
	b := newValidatorProduct(t, unit, "B")

	boms := []*entities.BOM{
		newValidatorBOM("make-a", unit, []*entities.Product{b}, []*entities.Product{a}),
		newValidatorBOM("make-b", unit, []*entities.Product{a}, []*entities.Product{b}),
	}

	result := NewBOMValidator().ValidateBOMs(boms, nil)
	if !result.HasCycles {
		t.Fatal("Expected cycle A -> B -> A to be detected")
	}
	if len(result.Errors) == 0 {
		t.Error("Expected validation errors for cycle")
	}
}

func TestBOMValidator_CleanBOM(t *testing.T) {
	unit, _ := entities.NewUnitOfMeasure("u", "u", "units", decimal.NewFromInt(1), decimal.NewFromInt(1))
	widget := newValidatorProduct(t, unit, "WIDGET")
	partA := newValidatorProduct(t, unit, "PART_A")
	partB := newValidatorProduct(t, unit, "PART_B")
	diff := newValidatorProduct(t, unit, "DIFF")

	boms := []*entities.BOM{
		newValidatorBOM("widget", unit, []*entities.Product{partA, partB}, []*entities.Product{widget}),
	}

	result := NewBOMValidator().ValidateBOMs(boms, diff)
	if result.HasCycles {
		t.Errorf("Expected no cycles, got %v", result.CyclePaths)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", result.Errors)
	}
}

func TestBOMValidator_DuplicatesAndDifferenceProduct(t *testing.T) {
	unit, _ := entities.NewUnitOfMeasure("u", "u", "units", decimal.NewFromInt(1), decimal.NewFromInt(1))
	widget := newValidatorProduct(t, unit, "WIDGET")
	partA := newValidatorProduct(t, unit, "PART_A")
	diff := newValidatorProduct(t, unit, "DIFF")

	boms := []*entities.BOM{
		newValidatorBOM("widget", unit, []*entities.Product{partA, partA, diff}, []*entities.Product{widget}),
	}

	result := NewBOMValidator().ValidateBOMs(boms, diff)
	if len(result.DuplicateEntries) != 1 {
		t.Errorf("Expected 1 duplicate entry, got %d: %v", len(result.DuplicateEntries), result.DuplicateEntries)
	}

	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "disassembly difference product DIFF") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected difference product error, got %v", result.Errors)
	}
}

func TestBOMValidator_SelfReference(t *testing.T) {
	unit, _ := entities.NewUnitOfMeasure("u", "u", "units", decimal.NewFromInt(1), decimal.NewFromInt(1))
	widget := newValidatorProduct(t, unit, "WIDGET")

	boms := []*entities.BOM{
		newValidatorBOM("loop", unit, []*entities.Product{widget}, []*entities.Product{widget}),
	}

	result := NewBOMValidator().ValidateBOMs(boms, nil)
	if len(result.SelfReferences) != 1 {
		t.Fatalf("Expected 1 self reference, got %v", result.SelfReferences)
	}
	if result.SelfReferences[0] != "loop WIDGET" {
		t.Errorf("Expected 'loop WIDGET', got '%s'", result.SelfReferences[0])
	}
}
