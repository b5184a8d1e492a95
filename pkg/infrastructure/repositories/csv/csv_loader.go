package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/domain/entities"
)

// Scenario is everything a production run needs, loaded from one directory
type Scenario struct {
	UOMs        []*entities.UnitOfMeasure
	Companies   []*entities.Company
	Locations   []*entities.Location
	Warehouses  []*entities.Warehouse
	Products    []*entities.Product
	BOMs        []*entities.BOM
	Productions []*entities.Production
	Config      *entities.Configuration
}

// Loader handles loading production scenarios from CSV files.
// Rows reference each other by id (units, locations, warehouses, companies,
// BOMs) or by code (products), so files are read in dependency order.
type Loader struct {
	uoms       map[string]*entities.UnitOfMeasure
	companies  map[string]*entities.Company
	locations  map[string]*entities.Location
	warehouses map[string]*entities.Warehouse
	products   map[string]*entities.Product
	boms       map[string]*entities.BOM
}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{
		uoms:       make(map[string]*entities.UnitOfMeasure),
		companies:  make(map[string]*entities.Company),
		locations:  make(map[string]*entities.Location),
		warehouses: make(map[string]*entities.Warehouse),
		products:   make(map[string]*entities.Product),
		boms:       make(map[string]*entities.BOM),
	}
}

// LoadScenario reads uoms, companies, locations, warehouses, products, boms
// and productions CSV files from dir, plus config.csv when present
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	scenario := &Scenario{}
	var err error

	if scenario.UOMs, err = l.LoadUOMs(filepath.Join(dir, "uoms.csv")); err != nil {
		return nil, err
	}
	if scenario.Companies, err = l.LoadCompanies(filepath.Join(dir, "companies.csv")); err != nil {
		return nil, err
	}
	if scenario.Locations, err = l.LoadLocations(filepath.Join(dir, "locations.csv")); err != nil {
		return nil, err
	}
	if scenario.Warehouses, err = l.LoadWarehouses(filepath.Join(dir, "warehouses.csv")); err != nil {
		return nil, err
	}
	if scenario.Products, err = l.LoadProducts(filepath.Join(dir, "products.csv")); err != nil {
		return nil, err
	}
	if scenario.BOMs, err = l.LoadBOMs(filepath.Join(dir, "boms.csv")); err != nil {
		return nil, err
	}
	if scenario.Productions, err = l.LoadProductions(filepath.Join(dir, "productions.csv")); err != nil {
		return nil, err
	}

	scenario.Config = &entities.Configuration{}
	configFile := filepath.Join(dir, "config.csv")
	if _, statErr := os.Stat(configFile); statErr == nil {
		if scenario.Config, err = l.LoadConfiguration(configFile); err != nil {
			return nil, err
		}
	}

	return scenario, nil
}

// LoadUOMs loads units of measure from a CSV file
func (l *Loader) LoadUOMs(filename string) ([]*entities.UnitOfMeasure, error) {
	records, err := readCSV(filename, "uoms", []string{"id", "symbol", "category", "factor", "rounding"})
	if err != nil {
		return nil, err
	}

	var uoms []*entities.UnitOfMeasure
	for i, record := range records {
		factor, err := parseDecimal("factor", record[3])
		if err != nil {
			return nil, fmt.Errorf("uoms CSV row %d: %w", i+2, err)
		}
		rounding, err := parseDecimal("rounding", record[4])
		if err != nil {
			return nil, fmt.Errorf("uoms CSV row %d: %w", i+2, err)
		}

		uom, err := entities.NewUnitOfMeasure(record[0], record[1], record[2], factor, rounding)
		if err != nil {
			return nil, fmt.Errorf("uoms CSV row %d: %w", i+2, err)
		}
		l.uoms[uom.ID] = uom
		uoms = append(uoms, uom)
	}

	return uoms, nil
}

// LoadCompanies loads companies and their currencies from a CSV file
func (l *Loader) LoadCompanies(filename string) ([]*entities.Company, error) {
	records, err := readCSV(filename, "companies", []string{"id", "name", "currency", "currency_rounding"})
	if err != nil {
		return nil, err
	}

	var companies []*entities.Company
	for i, record := range records {
		rounding, err := parseDecimal("currency_rounding", record[3])
		if err != nil {
			return nil, fmt.Errorf("companies CSV row %d: %w", i+2, err)
		}
		currency, err := entities.NewCurrency(record[2], rounding)
		if err != nil {
			return nil, fmt.Errorf("companies CSV row %d: %w", i+2, err)
		}

		company := &entities.Company{ID: record[0], Name: record[1], Currency: currency}
		l.companies[company.ID] = company
		companies = append(companies, company)
	}

	return companies, nil
}

// LoadLocations loads locations from a CSV file
func (l *Loader) LoadLocations(filename string) ([]*entities.Location, error) {
	records, err := readCSV(filename, "locations", []string{"id", "code", "name", "type"})
	if err != nil {
		return nil, err
	}

	var locations []*entities.Location
	for i, record := range records {
		locationType, err := parseLocationType(record[3])
		if err != nil {
			return nil, fmt.Errorf("locations CSV row %d: %w", i+2, err)
		}

		location := &entities.Location{ID: record[0], Code: record[1], Name: record[2], Type: locationType}
		l.locations[location.ID] = location
		locations = append(locations, location)
	}

	return locations, nil
}

// LoadWarehouses loads warehouses from a CSV file
func (l *Loader) LoadWarehouses(filename string) ([]*entities.Warehouse, error) {
	records, err := readCSV(filename, "warehouses", []string{"id", "name", "storage_location"})
	if err != nil {
		return nil, err
	}

	var warehouses []*entities.Warehouse
	for i, record := range records {
		warehouse := &entities.Warehouse{ID: record[0], Name: record[1]}
		if record[2] != "" {
			storage, ok := l.locations[record[2]]
			if !ok {
				return nil, fmt.Errorf("warehouses CSV row %d: unknown location: %s", i+2, record[2])
			}
			warehouse.StorageLocation = storage
		}
		l.warehouses[warehouse.ID] = warehouse
		warehouses = append(warehouses, warehouse)
	}

	return warehouses, nil
}

// LoadProducts loads products from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readCSV(filename, "products", []string{"id", "code", "name", "type", "default_uom", "cost_price"})
	if err != nil {
		return nil, err
	}

	var products []*entities.Product
	for i, record := range records {
		productType, err := entities.ParseProductType(strings.ToLower(record[3]))
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		uom, ok := l.uoms[record[4]]
		if !ok {
			return nil, fmt.Errorf("products CSV row %d: unknown unit of measure: %s", i+2, record[4])
		}
		cost, err := parseDecimal("cost_price", record[5])
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}

		product, err := entities.NewProduct(record[0], record[1], record[2], productType, uom, cost)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		l.products[product.Code] = product
		products = append(products, product)
	}

	return products, nil
}

// LoadBOMs loads BOM entries from a CSV file, one row per entry.
// Rows sharing a bom_id form one BOM, entries kept in file order.
func (l *Loader) LoadBOMs(filename string) ([]*entities.BOM, error) {
	records, err := readCSV(filename, "boms", []string{"bom_id", "bom_name", "side", "product_code", "uom", "quantity"})
	if err != nil {
		return nil, err
	}

	var boms []*entities.BOM
	for i, record := range records {
		bom, ok := l.boms[record[0]]
		if !ok {
			bom = &entities.BOM{ID: record[0], Name: record[1]}
			l.boms[bom.ID] = bom
			boms = append(boms, bom)
		}

		product, ok := l.products[record[3]]
		if !ok {
			return nil, fmt.Errorf("boms CSV row %d: unknown product: %s", i+2, record[3])
		}
		uom, ok := l.uoms[record[4]]
		if !ok {
			return nil, fmt.Errorf("boms CSV row %d: unknown unit of measure: %s", i+2, record[4])
		}
		quantity, err := parseDecimal("quantity", record[5])
		if err != nil {
			return nil, fmt.Errorf("boms CSV row %d: %w", i+2, err)
		}
		entry, err := entities.NewBOMEntry(product, uom, quantity)
		if err != nil {
			return nil, fmt.Errorf("boms CSV row %d: %w", i+2, err)
		}

		switch strings.ToLower(record[2]) {
		case "input":
			bom.Inputs = append(bom.Inputs, entry)
		case "output":
			bom.Outputs = append(bom.Outputs, entry)
		default:
			return nil, fmt.Errorf("boms CSV row %d: invalid side: %s (expected 'input' or 'output')", i+2, record[2])
		}
	}

	return boms, nil
}

// LoadProductions loads production orders from a CSV file.
// Empty product_code, bom_id or uom leave the order incomplete.
func (l *Loader) LoadProductions(filename string) ([]*entities.Production, error) {
	expectedHeader := []string{"number", "product_code", "bom_id", "uom", "quantity", "location", "warehouse", "company", "state", "disassembly"}
	records, err := readCSV(filename, "productions", expectedHeader)
	if err != nil {
		return nil, err
	}

	var productions []*entities.Production
	for i, record := range records {
		production, err := l.parseProduction(record)
		if err != nil {
			return nil, fmt.Errorf("productions CSV row %d: %w", i+2, err)
		}
		productions = append(productions, production)
	}

	return productions, nil
}

// LoadConfiguration loads setting,value rows from a CSV file
func (l *Loader) LoadConfiguration(filename string) (*entities.Configuration, error) {
	records, err := readCSV(filename, "config", []string{"setting", "value"})
	if err != nil {
		return nil, err
	}

	cfg := &entities.Configuration{}
	for i, record := range records {
		switch record[0] {
		case "disassembly_difference_product":
			if record[1] == "" {
				continue
			}
			product, ok := l.products[record[1]]
			if !ok {
				return nil, fmt.Errorf("config CSV row %d: unknown product: %s", i+2, record[1])
			}
			cfg.DisassemblyDifferenceProduct = product
		default:
			return nil, fmt.Errorf("config CSV row %d: unknown setting: %s", i+2, record[0])
		}
	}

	return cfg, nil
}

func (l *Loader) parseProduction(record []string) (*entities.Production, error) {
	var product *entities.Product
	if record[1] != "" {
		p, ok := l.products[record[1]]
		if !ok {
			return nil, fmt.Errorf("unknown product: %s", record[1])
		}
		product = p
	}

	var bom *entities.BOM
	if record[2] != "" {
		b, ok := l.boms[record[2]]
		if !ok {
			return nil, fmt.Errorf("unknown bom: %s", record[2])
		}
		bom = b
	}

	var uom *entities.UnitOfMeasure
	if record[3] != "" {
		u, ok := l.uoms[record[3]]
		if !ok {
			return nil, fmt.Errorf("unknown unit of measure: %s", record[3])
		}
		uom = u
	}

	quantity, err := parseDecimal("quantity", record[4])
	if err != nil {
		return nil, err
	}

	location, ok := l.locations[record[5]]
	if !ok {
		return nil, fmt.Errorf("unknown location: %s", record[5])
	}

	var warehouse *entities.Warehouse
	if record[6] != "" {
		w, ok := l.warehouses[record[6]]
		if !ok {
			return nil, fmt.Errorf("unknown warehouse: %s", record[6])
		}
		warehouse = w
	}

	company, ok := l.companies[record[7]]
	if !ok {
		return nil, fmt.Errorf("unknown company: %s", record[7])
	}

	production, err := entities.NewProduction(record[0], product, bom, uom, quantity, location, warehouse, company)
	if err != nil {
		return nil, err
	}

	if record[8] != "" {
		if production.State, err = entities.ParseProductionState(strings.ToLower(record[8])); err != nil {
			return nil, err
		}
	}
	if record[9] != "" {
		if production.Disassembly, err = strconv.ParseBool(record[9]); err != nil {
			return nil, fmt.Errorf("invalid disassembly: %s", record[9])
		}
	}

	return production, nil
}

// Helper functions for parsing CSV records

// readCSV returns the data rows of filename after checking its header and row widths
func readCSV(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
	}

	return rows, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", field, s)
	}
	return value, nil
}

func parseLocationType(s string) (entities.LocationType, error) {
	switch strings.ToLower(s) {
	case "storage":
		return entities.StorageLocation, nil
	case "production":
		return entities.ProductionLocation, nil
	case "lost_found":
		return entities.LostFoundLocation, nil
	default:
		return entities.StorageLocation, fmt.Errorf("invalid location type: %s (expected: storage, production, or lost_found)", s)
	}
}
