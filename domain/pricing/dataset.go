package pricing

import (
	"fmt"
	"sort"
)

// Dataset is an immutable, ordered collection of PriceRecord. It is built
// once by the transformer, published by the datastore, and shared read-only
// by every query afterwards. Records are sorted by year, then month, then
// canonical region order, so identical inputs always produce identical
// datasets, ordering included.
type Dataset struct {
	records []PriceRecord
	minYear int
	maxYear int
	regions []Region
}

// NewDataset sorts the records into canonical order and seals them into a
// Dataset. It rejects duplicate (year, month, region) keys; cell-level
// validation happens earlier, in ToTidy.
func NewDataset(records []PriceRecord) (*Dataset, error) {
	sorted := make([]PriceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Region.Order() < b.Region.Order()
	})

	seen := make(map[RecordKey]struct{}, len(sorted))
	regionSet := make(map[Region]struct{})
	ds := &Dataset{records: sorted}
	for i, rec := range sorted {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate price record %s", key)
		}
		seen[key] = struct{}{}
		regionSet[rec.Region] = struct{}{}
		if i == 0 || rec.Year < ds.minYear {
			ds.minYear = rec.Year
		}
		if rec.Year > ds.maxYear {
			ds.maxYear = rec.Year
		}
	}

	for _, r := range AllRegions {
		if _, ok := regionSet[r]; ok {
			ds.regions = append(ds.regions, r)
		}
	}
	return ds, nil
}

// Records returns the underlying records in canonical order. The slice is
// shared and must not be modified by callers.
func (d *Dataset) Records() []PriceRecord {
	return d.records
}

// Len returns the number of price records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// YearBounds returns the smallest and largest year present. Both are zero
// for an empty dataset.
func (d *Dataset) YearBounds() (min, max int) {
	return d.minYear, d.maxYear
}

// Regions returns the regions present, in canonical order.
func (d *Dataset) Regions() []Region {
	return d.regions
}

// Equal reports whether two datasets hold identical records in identical
// order. Used to assert load idempotence.
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil || len(d.records) != len(other.records) {
		return false
	}
	for i := range d.records {
		if d.records[i] != other.records[i] {
			return false
		}
	}
	return true
}
