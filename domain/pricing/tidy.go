package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToTidy melts a raw wide sheet (one column per region) into the tidy
// dataset (one record per year/month/region). It is pure and deterministic:
// the same RawPriceSheet always yields an identical Dataset, ordering
// included.
//
// Any non-numeric, negative, or non-finite price cell fails the whole load
// with ErrValidation. Missing cells fail too; the loader guarantees the
// monthly grid is complete, so a missing region cell here means a corrupt
// sheet.
func ToTidy(raw *RawPriceSheet) (*Dataset, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil sheet", ErrSchema)
	}

	records := make([]PriceRecord, 0, len(raw.Rows)*len(AllRegions))
	for _, row := range raw.Rows {
		if row.Month < 1 || row.Month > 12 {
			return nil, fmt.Errorf("%w: month %d out of range in %04d", ErrSchema, row.Month, row.Year)
		}
		for _, region := range AllRegions {
			cell, ok := row.Cells[region]
			if !ok {
				return nil, fmt.Errorf("%w: missing %s cell for %04d-%02d", ErrValidation, region, row.Year, row.Month)
			}
			price, err := parsePriceCell(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: %s at %04d-%02d: %v", ErrValidation, region, row.Year, row.Month, err)
			}
			records = append(records, PriceRecord{
				Year:   row.Year,
				Month:  row.Month,
				Region: region,
				Price:  price,
				Season: SeasonForMonth(row.Month),
			})
		}
	}

	ds, err := NewDataset(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return ds, nil
}

// parsePriceCell parses one øre/kWh cell. Both "123.4" and the Norwegian
// comma form "123,4" are accepted; Excel sometimes renders either depending
// on locale formatting.
func parsePriceCell(cell string) (float64, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return 0, fmt.Errorf("empty price cell")
	}
	normalized := strings.ReplaceAll(trimmed, ",", ".")
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric price %q", trimmed)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("non-finite price %q", trimmed)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %v", price)
	}
	return price, nil
}
