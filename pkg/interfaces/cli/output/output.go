package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/production/pkg/application/dto"
	"github.com/xuri/excelize/v2"
)

// Result is what a production run reports
type Result struct {
	Productions []dto.ProductionView `json:"productions"`
	Report      *dto.ReportView      `json:"report,omitempty"`
}

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
	// Writer receives stdout output, os.Stdout when nil
	Writer io.Writer
}

var (
	productionHeader = []string{"number", "product", "bom", "uom", "quantity", "state", "disassembly", "cost"}
	moveHeader       = []string{"production", "side", "product", "uom", "quantity", "from", "to", "unit_price", "value"}
)

// Generate creates output in the specified format
func Generate(result *Result, config Config) error {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "xlsx":
		return generateXLSXOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *Result, config Config) error {
	w := config.Writer

	fmt.Fprintf(w, "📊 Production Results Summary\n")
	fmt.Fprintf(w, "=============================\n\n")
	fmt.Fprintf(w, "Productions: %d\n", len(result.Productions))
	if result.Report != nil {
		fmt.Fprintf(w, "Disassembled: %d\n", len(result.Report.Disassembled))
		fmt.Fprintf(w, "Skipped: %d\n", len(result.Report.Skipped))
		fmt.Fprintf(w, "Failed: %d\n", len(result.Report.Failed))
	}
	if config.Elapsed > 0 {
		fmt.Fprintf(w, "Run Time: %v\n", config.Elapsed)
	}
	fmt.Fprintln(w)

	for _, p := range result.Productions {
		kind := "assembly"
		if p.Disassembly {
			kind = "disassembly"
		}
		fmt.Fprintf(w, "📋 %s  %s x %s %s  (%s, %s)  cost %s\n",
			p.Number, p.Product, p.Quantity, p.UOM, kind, p.State, p.Cost)
		writeMoveTable(w, "consumed", p.Inputs)
		writeMoveTable(w, "produced", p.Outputs)
		fmt.Fprintln(w)
	}

	if result.Report != nil && len(result.Report.Failed) > 0 {
		fmt.Fprintf(w, "⚠️  Failures:\n")
		for _, f := range result.Report.Failed {
			fmt.Fprintf(w, "  %s: %s\n", f.ID, f.Error)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func writeMoveTable(w io.Writer, side string, moves []dto.MoveView) {
	if len(moves) == 0 {
		return
	}
	fmt.Fprintf(w, "  %-9s %-18s %-10s %-6s %-8s %-8s %-12s %-12s\n",
		side, "Product", "Qty", "UoM", "From", "To", "Unit Price", "Value")
	for _, m := range moves {
		price := "-"
		if m.UnitPrice.Valid {
			price = m.UnitPrice.Decimal.String()
		}
		fmt.Fprintf(w, "  %-9s %-18s %-10s %-6s %-8s %-8s %-12s %-12s\n",
			"", m.Product, m.Quantity, m.UOM, m.From, m.To, price, m.Value)
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *Result, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.Writer, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "production_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes productions.csv and moves.csv
func generateCSVOutput(result *Result, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	productionsFile := filepath.Join(config.OutputDir, "productions.csv")
	if err := writeCSV(productionsFile, productionHeader, productionRows(result)); err != nil {
		return fmt.Errorf("failed to write productions CSV: %w", err)
	}
	movesFile := filepath.Join(config.OutputDir, "moves.csv")
	if err := writeCSV(movesFile, moveHeader, moveRows(result)); err != nil {
		return fmt.Errorf("failed to write moves CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 CSV results saved to:\n")
		fmt.Fprintf(config.Writer, "  Productions: %s\n", productionsFile)
		fmt.Fprintf(config.Writer, "  Moves: %s\n", movesFile)
	}
	return nil
}

func writeCSV(filename string, header []string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Sync()
}

// generateXLSXOutput writes one workbook with a Productions and a Moves sheet
func generateXLSXOutput(result *Result, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for XLSX format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Productions"); err != nil {
		return err
	}
	if err := writeSheet(f, "Productions", productionHeader, productionRows(result)); err != nil {
		return err
	}
	if _, err := f.NewSheet("Moves"); err != nil {
		return err
	}
	if err := writeSheet(f, "Moves", moveHeader, moveRows(result)); err != nil {
		return err
	}

	filename := filepath.Join(config.OutputDir, "production_results.xlsx")
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to write XLSX file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 XLSX results saved to: %s\n", filename)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	for i, row := range append([][]string{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func productionRows(result *Result) [][]string {
	rows := make([][]string, 0, len(result.Productions))
	for _, p := range result.Productions {
		rows = append(rows, []string{
			p.Number, p.Product, p.BOM, p.UOM, p.Quantity.String(), p.State,
			fmt.Sprintf("%t", p.Disassembly), p.Cost.String(),
		})
	}
	return rows
}

func moveRows(result *Result) [][]string {
	var rows [][]string
	for _, p := range result.Productions {
		for _, side := range []struct {
			name  string
			moves []dto.MoveView
		}{{"input", p.Inputs}, {"output", p.Outputs}} {
			for _, m := range side.moves {
				price := ""
				if m.UnitPrice.Valid {
					price = m.UnitPrice.Decimal.String()
				}
				rows = append(rows, []string{
					p.Number, side.name, m.Product, m.UOM, m.Quantity.String(),
					m.From, m.To, price, m.Value.String(),
				})
			}
		}
	}
	return rows
}
