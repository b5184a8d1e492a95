package services

import (
	"fmt"

	"github.com/vsinha/production/pkg/domain/entities"
)

// BOMValidator provides validation for BOM structure integrity
type BOMValidator struct{}

// NewBOMValidator creates a new BOM validator
func NewBOMValidator() *BOMValidator {
	return &BOMValidator{}
}

// ValidationResult contains the results of BOM validation
type ValidationResult struct {
	HasCycles        bool
	CyclePaths       [][]string
	DuplicateEntries []string
	SelfReferences   []string
	Errors           []string
}

// ValidateBOMs checks a set of BOMs for cycles across BOMs, duplicated
// entries and products that are both consumed and produced by one BOM.
// A BOM that lists the difference product is reported too: its adjustment
// line would be indistinguishable from a component.
func (v *BOMValidator) ValidateBOMs(boms []*entities.BOM, differenceProduct *entities.Product) *ValidationResult {
	result := &ValidationResult{
		CyclePaths:       make([][]string, 0),
		DuplicateEntries: make([]string, 0),
		SelfReferences:   make([]string, 0),
		Errors:           make([]string, 0),
	}

	adjacencyMap := v.buildAdjacencyMap(boms)

	cycles := v.detectCycles(adjacencyMap)
	result.HasCycles = len(cycles) > 0
	result.CyclePaths = cycles

	for _, bom := range boms {
		result.DuplicateEntries = append(result.DuplicateEntries, v.detectDuplicateEntries(bom)...)
		result.SelfReferences = append(result.SelfReferences, v.detectSelfReferences(bom)...)

		if differenceProduct != nil && bomUses(bom, differenceProduct) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("BOM %s uses the disassembly difference product %s", bom.Name, differenceProduct.Code))
		}
	}

	for _, cycle := range result.CyclePaths {
		result.Errors = append(result.Errors, fmt.Sprintf("BOM cycle detected: %v", cycle))
	}
	if len(result.DuplicateEntries) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Found %d duplicate BOM entries", len(result.DuplicateEntries)))
	}
	for _, ref := range result.SelfReferences {
		result.Errors = append(result.Errors, fmt.Sprintf("Product is both input and output: %s", ref))
	}

	return result
}

// buildAdjacencyMap links every output product to the input products it is made from
func (v *BOMValidator) buildAdjacencyMap(boms []*entities.BOM) map[string][]string {
	adjacencyMap := make(map[string][]string)

	for _, bom := range boms {
		for _, output := range bom.Outputs {
			children := adjacencyMap[output.Product.Code]
			for _, input := range bom.Inputs {
				found := false
				for _, child := range children {
					if child == input.Product.Code {
						found = true
						break
					}
				}
				if !found {
					children = append(children, input.Product.Code)
				}
			}
			adjacencyMap[output.Product.Code] = children
		}
	}

	return adjacencyMap
}

// detectCycles uses DFS to find cycles in the BOM structure
func (v *BOMValidator) detectCycles(adjacencyMap map[string][]string) [][]string {
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)
	cycles := make([][]string, 0)

	for parent := range adjacencyMap {
		if !visited[parent] {
			v.dfsDetectCycle(parent, adjacencyMap, visited, recursionStack, nil, &cycles)
		}
	}

	return cycles
}

func (v *BOMValidator) dfsDetectCycle(
	current string,
	adjacencyMap map[string][]string,
	visited map[string]bool,
	recursionStack map[string]bool,
	path []string,
	cycles *[][]string,
) {
	visited[current] = true
	recursionStack[current] = true
	path = append(path, current)

	for _, child := range adjacencyMap[current] {
		if !visited[child] {
			v.dfsDetectCycle(child, adjacencyMap, visited, recursionStack, path, cycles)
			continue
		}
		if !recursionStack[child] {
			continue
		}
		for i, part := range path {
			if part == child {
				cycle := make([]string, 0, len(path)-i+1)
				cycle = append(cycle, path[i:]...)
				cycle = append(cycle, child)
				*cycles = append(*cycles, cycle)
				break
			}
		}
	}

	recursionStack[current] = false
}

// detectDuplicateEntries finds products listed twice on the same side of a BOM
func (v *BOMValidator) detectDuplicateEntries(bom *entities.BOM) []string {
	duplicates := make([]string, 0)
	for side, entries := range map[string][]*entities.BOMEntry{"input": bom.Inputs, "output": bom.Outputs} {
		seen := make(map[string]bool)
		for _, entry := range entries {
			if seen[entry.Product.ID] {
				duplicates = append(duplicates, fmt.Sprintf("%s %s %s", bom.Name, side, entry.Product.Code))
				continue
			}
			seen[entry.Product.ID] = true
		}
	}
	return duplicates
}

// detectSelfReferences finds products appearing as both input and output of one BOM
func (v *BOMValidator) detectSelfReferences(bom *entities.BOM) []string {
	refs := make([]string, 0)
	outputs := make(map[string]bool, len(bom.Outputs))
	for _, output := range bom.Outputs {
		outputs[output.Product.ID] = true
	}
	for _, input := range bom.Inputs {
		if outputs[input.Product.ID] {
			refs = append(refs, fmt.Sprintf("%s %s", bom.Name, input.Product.Code))
		}
	}
	return refs
}

func bomUses(bom *entities.BOM, product *entities.Product) bool {
	for _, entry := range bom.Inputs {
		if entry.Product.ID == product.ID {
			return true
		}
	}
	for _, entry := range bom.Outputs {
		if entry.Product.ID == product.ID {
			return true
		}
	}
	return false
}
