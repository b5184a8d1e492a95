package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vsinha/production/pkg/infrastructure/config"
	"github.com/vsinha/production/pkg/infrastructure/logging"
	"github.com/vsinha/production/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/production/pkg/infrastructure/repositories/gormstore"
)

// ImportConfig holds configuration for the import command
type ImportConfig struct {
	ScenarioDir string
	ConfigDirs  []string
	Stdout      io.Writer
}

// ImportCommand copies a CSV scenario into the configured database
type ImportCommand struct {
	config ImportConfig
}

// NewImportCommand creates a new import command with the given configuration
func NewImportCommand(config ImportConfig) *ImportCommand {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &ImportCommand{config: config}
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) error {
	scenario, err := loadScenario(c.config.ScenarioDir)
	if err != nil {
		return err
	}

	var cfg *config.Config
	if len(c.config.ConfigDirs) == 0 {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(c.config.ConfigDirs...)
	}
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})
	store, closeDB, err := openDatabase(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := importScenario(ctx, store, scenario); err != nil {
		return err
	}

	fmt.Fprintf(c.config.Stdout, "✅ Imported %d products, %d BOMs, %d productions from %s\n",
		len(scenario.Products), len(scenario.BOMs), len(scenario.Productions), c.config.ScenarioDir)
	return nil
}

// importScenario saves scenario in reference order
func importScenario(ctx context.Context, store *gormstore.Store, scenario *csv.Scenario) error {
	for _, uom := range scenario.UOMs {
		if err := store.SaveUnitOfMeasure(ctx, uom); err != nil {
			return err
		}
	}
	for _, company := range scenario.Companies {
		if err := store.SaveCompany(ctx, company); err != nil {
			return err
		}
	}
	for _, location := range scenario.Locations {
		if err := store.SaveLocation(ctx, location); err != nil {
			return err
		}
	}
	for _, warehouse := range scenario.Warehouses {
		if err := store.SaveWarehouse(ctx, warehouse); err != nil {
			return err
		}
	}
	for _, product := range scenario.Products {
		if err := store.SaveProduct(ctx, product); err != nil {
			return err
		}
	}
	for _, bom := range scenario.BOMs {
		if err := store.SaveBOM(ctx, bom); err != nil {
			return err
		}
	}
	for _, p := range scenario.Productions {
		if err := store.SaveProduction(ctx, p); err != nil {
			return err
		}
	}
	if scenario.Config != nil {
		if err := store.SaveConfiguration(ctx, scenario.Config); err != nil {
			return err
		}
	}
	return nil
}
