package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vsinha/production/pkg/application/dto"
	"github.com/vsinha/production/pkg/application/services/production"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/infrastructure/events"
	"github.com/vsinha/production/pkg/infrastructure/lock"
	"github.com/vsinha/production/pkg/infrastructure/logging"
	"github.com/vsinha/production/pkg/interfaces/cli/output"
)

// Config holds configuration for the disassemble command
type Config struct {
	ScenarioDir string
	// Numbers selects orders by number; empty selects every order
	Numbers   []string
	DryRun    bool
	OutputDir string
	Format    string
	Verbose   bool
	LogLevel  string
	LogFormat string
	// Stdout receives the report, os.Stdout when nil
	Stdout io.Writer
}

// DisassembleCommand loads a CSV scenario and disassembles its production orders
type DisassembleCommand struct {
	config Config
	logger *logrus.Logger
}

// NewDisassembleCommand creates a new disassemble command with the given configuration
func NewDisassembleCommand(config Config) *DisassembleCommand {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Format == "" {
		config.Format = "text"
	}
	return &DisassembleCommand{
		config: config,
		logger: logging.New(logging.Options{Level: config.LogLevel, Format: config.LogFormat, Output: os.Stderr}),
	}
}

// Execute runs the disassemble command
func (c *DisassembleCommand) Execute(ctx context.Context) error {
	scenario, err := loadScenario(c.config.ScenarioDir)
	if err != nil {
		return err
	}
	if c.config.Verbose {
		fmt.Fprintf(c.config.Stdout, "📂 Loaded %d products, %d BOMs, %d productions from %s\n",
			len(scenario.Products), len(scenario.BOMs), len(scenario.Productions), c.config.ScenarioDir)
	}

	stores, err := newMemoryStores(ctx, scenario)
	if err != nil {
		return err
	}
	if err := validateCatalog(ctx, stores.boms, stores.config, c.logger); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	svc := production.NewProductionService(
		stores.productions,
		stores.config,
		production.NewEngine(c.logger),
		lock.NewLocalLocker(),
		events.NewInMemoryEventStore(c.logger),
		c.logger,
	)

	ids, err := c.selectProductions(ctx, svc)
	if err != nil {
		return err
	}

	startTime := time.Now()
	var result *output.Result
	var failed int
	if c.config.DryRun {
		result, failed = c.preview(ctx, svc, ids)
	} else {
		result, failed, err = c.disassemble(ctx, svc, ids)
		if err != nil {
			return err
		}
	}

	if err := output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Elapsed:   time.Since(startTime),
		Writer:    c.config.Stdout,
	}); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d productions failed to disassemble", failed, len(ids))
	}
	return nil
}

// selectProductions resolves the configured numbers, or every order when none are given
func (c *DisassembleCommand) selectProductions(ctx context.Context, svc *production.ProductionService) ([]uuid.UUID, error) {
	orders, err := svc.ListProductions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list productions: %w", err)
	}

	byNumber := make(map[string]uuid.UUID, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		byNumber[order.Number] = order.ID
		ids = append(ids, order.ID)
	}
	if len(c.config.Numbers) == 0 {
		return ids, nil
	}

	selected := make([]uuid.UUID, 0, len(c.config.Numbers))
	for _, number := range c.config.Numbers {
		id, ok := byNumber[number]
		if !ok {
			return nil, fmt.Errorf("unknown production: %s", number)
		}
		selected = append(selected, id)
	}
	return selected, nil
}

func (c *DisassembleCommand) disassemble(ctx context.Context, svc *production.ProductionService, ids []uuid.UUID) (*output.Result, int, error) {
	report, err := svc.Disassemble(ctx, ids)
	if err != nil && len(report.Failed) == 0 {
		return nil, 0, fmt.Errorf("error running disassembly: %w", err)
	}

	result := &output.Result{Productions: make([]dto.ProductionView, 0, len(ids))}
	for _, id := range ids {
		order, err := svc.GetProduction(ctx, id)
		if err != nil {
			continue
		}
		result.Productions = append(result.Productions, dto.NewProductionView(order))
	}
	view := dto.NewReportView(report)
	result.Report = &view

	return result, len(report.Failed), nil
}

// preview shows what a disassembly of each order would produce, saving nothing
func (c *DisassembleCommand) preview(ctx context.Context, svc *production.ProductionService, ids []uuid.UUID) (*output.Result, int) {
	result := &output.Result{Productions: make([]dto.ProductionView, 0, len(ids))}
	report := dto.NewDisassembleReport()
	disassembly := true

	for _, id := range ids {
		order, err := svc.GetProduction(ctx, id)
		if err != nil {
			report.Failed = append(report.Failed, dto.DisassembleFailure{ID: id, Err: err})
			continue
		}
		if order.Disassembly || order.State != entities.Draft {
			report.Skipped = append(report.Skipped, id)
			continue
		}

		changes, err := svc.Preview(ctx, id, production.PreviewRequest{Disassembly: &disassembly})
		if err != nil {
			report.Failed = append(report.Failed, dto.DisassembleFailure{ID: id, Err: err})
			continue
		}

		order.Disassembly = true
		production.ApplyChanges(order, changes)
		result.Productions = append(result.Productions, dto.NewProductionView(order))
		report.Disassembled = append(report.Disassembled, id)
	}

	view := dto.NewReportView(report)
	result.Report = &view
	return result, len(report.Failed)
}
