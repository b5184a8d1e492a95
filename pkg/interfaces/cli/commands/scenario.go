package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
	"github.com/vsinha/production/pkg/domain/services"
	"github.com/vsinha/production/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/production/pkg/infrastructure/repositories/memory"
)

// memoryStores holds a scenario loaded into the in-memory repositories
type memoryStores struct {
	products    *memory.ProductRepository
	boms        *memory.BOMRepository
	productions *memory.ProductionRepository
	config      *memory.ConfigurationRepository
}

// loadScenario reads the CSV files of dir
func loadScenario(dir string) (*csv.Scenario, error) {
	if dir == "" {
		return nil, fmt.Errorf("scenario directory is required")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory not found: %s", dir)
	}

	scenario, err := csv.NewLoader().LoadScenario(dir)
	if err != nil {
		return nil, fmt.Errorf("error loading scenario: %w", err)
	}
	return scenario, nil
}

// newMemoryStores loads scenario into fresh in-memory repositories
func newMemoryStores(ctx context.Context, scenario *csv.Scenario) (*memoryStores, error) {
	stores := &memoryStores{
		products:    memory.NewProductRepository(len(scenario.Products)),
		boms:        memory.NewBOMRepository(len(scenario.BOMs)),
		productions: memory.NewProductionRepository(),
		config:      memory.NewConfigurationRepository(scenario.Config),
	}

	if err := stores.products.LoadProducts(scenario.Products); err != nil {
		return nil, fmt.Errorf("failed to load products into repository: %w", err)
	}
	if err := stores.boms.LoadBOMs(scenario.BOMs); err != nil {
		return nil, fmt.Errorf("failed to load BOMs into repository: %w", err)
	}
	for _, production := range scenario.Productions {
		if err := stores.productions.SaveProduction(ctx, production); err != nil {
			return nil, fmt.Errorf("failed to load production %s into repository: %w", production.Number, err)
		}
	}

	return stores, nil
}

// validateCatalog checks every BOM of boms for structural errors
func validateCatalog(
	ctx context.Context,
	boms repositories.BOMRepository,
	configRepo repositories.ConfigurationRepository,
	logger logrus.FieldLogger,
) error {
	all, err := boms.GetAllBOMs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list BOMs: %w", err)
	}
	cfg, err := configRepo.GetConfiguration(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	result := services.NewBOMValidator().ValidateBOMs(all, cfg.DisassemblyDifferenceProduct)
	if len(result.Errors) > 0 {
		return fmt.Errorf("BOM validation failed: %s", strings.Join(result.Errors, "; "))
	}

	logger.WithField("boms", len(all)).Debug("BOM validation passed")
	return nil
}

func emptyScenario() *csv.Scenario {
	return &csv.Scenario{Config: &entities.Configuration{}}
}
