// Package testkit generates synthetic price grids and spreadsheet fixtures
// for tests. Generated prices follow a rough seasonal shape (winter above
// summer) so statistical assertions exercise realistic spread.
package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"strompris/domain/pricing"

	"github.com/xuri/excelize/v2"
)

// GridConfig configures the synthetic price grid generator
type GridConfig struct {
	MinYear   int
	MaxYear   int
	BasePrice float64 // øre/kWh around which prices vary
	Seed      int64
}

// DefaultGridConfig returns the full 2014..2024 grid with a stable seed
func DefaultGridConfig() GridConfig {
	return GridConfig{
		MinYear:   pricing.DefaultMinYear,
		MaxYear:   pricing.DefaultMaxYear,
		BasePrice: 85.0,
		Seed:      42,
	}
}

// GridGenerator produces complete monthly price grids
type GridGenerator struct {
	config GridConfig
	rng    *rand.Rand
}

// NewGridGenerator creates a generator with the given config
func NewGridGenerator(config GridConfig) *GridGenerator {
	return &GridGenerator{config: config, rng: rand.New(rand.NewSource(config.Seed))}
}

// Generate builds one complete raw sheet: every month from MinYear-01
// through MaxYear-12, all five regions, non-negative prices.
func (g *GridGenerator) Generate() *pricing.RawPriceSheet {
	sheet := &pricing.RawPriceSheet{
		Source:  "testkit",
		MinYear: g.config.MinYear,
		MaxYear: g.config.MaxYear,
	}
	for year := g.config.MinYear; year <= g.config.MaxYear; year++ {
		for month := 1; month <= 12; month++ {
			cells := make(map[pricing.Region]string, len(pricing.AllRegions))
			for i, region := range pricing.AllRegions {
				price := g.price(year, month, i)
				cells[region] = strconv.FormatFloat(price, 'f', 2, 64)
			}
			sheet.Rows = append(sheet.Rows, pricing.RawRow{Year: year, Month: month, Cells: cells})
		}
	}
	return sheet
}

// GenerateDataset runs the generated sheet through the real transformer.
func (g *GridGenerator) GenerateDataset() (*pricing.Dataset, error) {
	return pricing.ToTidy(g.Generate())
}

// price produces a seasonal price: winter months run above the base, summer
// below, southern regions slightly above northern ones.
func (g *GridGenerator) price(year, month, regionIdx int) float64 {
	seasonal := 0.0
	switch pricing.SeasonForMonth(month) {
	case pricing.SeasonWinter:
		seasonal = 25.0
	case pricing.SeasonSummer:
		seasonal = -20.0
	}
	drift := float64(year-g.config.MinYear) * 4.0
	regional := float64(2-regionIdx) * 6.0
	noise := g.rng.Float64() * 15.0
	price := g.config.BasePrice + seasonal + drift + regional + noise
	if price < 0 {
		price = 0
	}
	return price
}

// DefaultHeaders is the header row fixtures are written with.
func DefaultHeaders() []string {
	headers := []string{"Year", "Month"}
	for _, region := range pricing.AllRegions {
		headers = append(headers, fmt.Sprintf("%s (%s)", region.DisplayName(), region))
	}
	return headers
}

// SheetRows renders a raw sheet as header + data string rows, the shape both
// fixture writers share.
func SheetRows(sheet *pricing.RawPriceSheet) [][]string {
	rows := [][]string{DefaultHeaders()}
	for _, raw := range sheet.Rows {
		row := []string{strconv.Itoa(raw.Year), strconv.Itoa(raw.Month)}
		for _, region := range pricing.AllRegions {
			row = append(row, raw.Cells[region])
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteXLSX writes the sheet as an .xlsx fixture at path.
func WriteXLSX(sheet *pricing.RawPriceSheet, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for rowIdx, row := range SheetRows(sheet) {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("fixture cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("fixture cell write: %w", err)
			}
		}
	}
	return f.SaveAs(path)
}

// WriteCSV writes the sheet as a .csv fixture at path.
func WriteCSV(sheet *pricing.RawPriceSheet, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fixture create: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(SheetRows(sheet)); err != nil {
		return fmt.Errorf("fixture write: %w", err)
	}
	writer.Flush()
	return writer.Error()
}
