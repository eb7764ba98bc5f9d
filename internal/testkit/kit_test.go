package testkit

import (
	"testing"

	"strompris/domain/pricing"
)

func TestGenerateCompleteGrid(t *testing.T) {
	gen := NewGridGenerator(GridConfig{MinYear: 2020, MaxYear: 2022, BasePrice: 80, Seed: 7})
	ds, err := gen.GenerateDataset()
	if err != nil {
		t.Fatalf("generated grid failed transformation: %v", err)
	}

	want := 3 * 12 * len(pricing.AllRegions)
	if ds.Len() != want {
		t.Errorf("dataset size = %d, want %d", ds.Len(), want)
	}
	for _, rec := range ds.Records() {
		if rec.Price < 0 {
			t.Errorf("negative generated price at %s", rec.Key())
		}
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	config := DefaultGridConfig()
	a, err := NewGridGenerator(config).GenerateDataset()
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	b, err := NewGridGenerator(config).GenerateDataset()
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("same seed produced different grids")
	}
}

func TestSheetRowsShape(t *testing.T) {
	sheet := NewGridGenerator(GridConfig{MinYear: 2020, MaxYear: 2020, BasePrice: 80, Seed: 1}).Generate()
	rows := SheetRows(sheet)

	if len(rows) != 13 { // header + 12 months
		t.Fatalf("row count = %d, want 13", len(rows))
	}
	for i, row := range rows {
		if len(row) != 2+len(pricing.AllRegions) {
			t.Errorf("row %d has %d columns, want %d", i, len(row), 2+len(pricing.AllRegions))
		}
	}
}
